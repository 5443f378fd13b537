// Package qdrant provides a FactIndex implementation using Qdrant.
package qdrant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
	"github.com/ersonp/liferpg-core/internal/infrastructure/config"
)

// Payload keys.
const (
	payloadFactID      = "fact_id"
	payloadName        = "name"
	payloadDescription = "description"
)

// apiKeyHeader carries the Qdrant Cloud API key.
const apiKeyHeader = "api-key"

// Repository implements ports.FactIndex and ports.CollectionManager using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository.
// The connection is established lazily on first use.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	if cfg.Collection == "" {
		return nil, errors.New("qdrant collection is required")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
	if cfg.APIKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: cfg.Collection,
		conn:       conn,
	}, nil
}

func apiKeyInterceptor(key string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, apiKeyHeader, key)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// Collection returns the collection name.
func (r *Repository) Collection() string {
	return r.collection
}

// EnsureCollection creates the collection if it doesn't exist, and checks
// the vector size of one that does.
func (r *Repository) EnsureCollection(ctx context.Context, dimensions uint64) error {
	info, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return checkDimensions(r.collection, info, dimensions)
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("reading collection: %w", err)
	}

	_, err = r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     dimensions,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// checkDimensions compares an existing collection's vector size with the embedder's.
// Collections with named vectors are not created by this repository and are rejected.
func checkDimensions(collection string, info *pb.GetCollectionInfoResponse, dimensions uint64) error {
	params := info.GetResult().GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return fmt.Errorf("collection %s has no single vector configuration", collection)
	}
	if params.GetSize() != dimensions {
		return fmt.Errorf("collection %s holds %d-dimension vectors but the embedder produces %d (delete the index or change the embedder)",
			collection, params.GetSize(), dimensions)
	}
	return nil
}

// DeleteCollection removes the collection and all its points.
func (r *Repository) DeleteCollection(ctx context.Context) error {
	_, err := r.client.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// SaveBatch stores multiple facts with their embeddings.
// Re-saving a fact ID replaces the earlier point.
func (r *Repository) SaveBatch(ctx context.Context, facts []ports.IndexedFact) error {
	if len(facts) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, 0, len(facts))
	for i := range facts {
		points = append(points, factToPoint(facts[i]))
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Search performs a semantic search and returns similar facts, best first.
func (r *Repository) Search(ctx context.Context, embedding []float32, limit int) ([]ports.IndexedFact, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	return scoredPointsToFacts(resp.Result), nil
}

// DeleteAll removes all facts.
func (r *Repository) DeleteAll(ctx context.Context) error {
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: &pb.Filter{},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting all points: %w", err)
	}

	return nil
}

// Count returns the total number of facts.
func (r *Repository) Count(ctx context.Context) (uint64, error) {
	resp, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("getting collection info: %w", err)
	}

	if resp.Result.PointsCount == nil {
		return 0, nil
	}

	return *resp.Result.PointsCount, nil
}

// PointID maps a fact ID to its stable point UUID.
// Qdrant only accepts UUIDs or integers, so authored IDs are hashed.
func PointID(factID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(factID)).String()
}

func factToPoint(f ports.IndexedFact) *pb.PointStruct {
	return &pb.PointStruct{
		Id: &pb.PointId{
			PointIdOptions: &pb.PointId_Uuid{
				Uuid: PointID(f.Fact.ID),
			},
		},
		Vectors: &pb.Vectors{
			VectorsOptions: &pb.Vectors_Vector{
				Vector: &pb.Vector{
					Data: f.Embedding,
				},
			},
		},
		Payload: map[string]*pb.Value{
			payloadFactID:      {Kind: &pb.Value_StringValue{StringValue: f.Fact.ID}},
			payloadName:        {Kind: &pb.Value_StringValue{StringValue: f.Fact.Name}},
			payloadDescription: {Kind: &pb.Value_StringValue{StringValue: f.Fact.Description}},
		},
	}
}

// scoredPointsToFacts converts scored points to indexed facts.
func scoredPointsToFacts(points []*pb.ScoredPoint) []ports.IndexedFact {
	facts := make([]ports.IndexedFact, 0, len(points))

	for _, point := range points {
		payload := point.Payload
		facts = append(facts, ports.IndexedFact{
			Fact: entities.Fact{
				ID:          getStringValue(payload, payloadFactID),
				Name:        getStringValue(payload, payloadName),
				Description: getStringValue(payload, payloadDescription),
			},
			Score: point.Score,
		})
	}

	return facts
}

// getStringValue extracts a string payload field.
func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
