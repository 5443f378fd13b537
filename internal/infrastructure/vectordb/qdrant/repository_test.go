package qdrant

import (
	"testing"

	pb "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
	"github.com/ersonp/liferpg-core/internal/infrastructure/config"
)

var (
	_ ports.FactIndex         = (*Repository)(nil)
	_ ports.CollectionManager = (*Repository)(nil)
)

func TestNewRepository(t *testing.T) {
	t.Run("lazy connection", func(t *testing.T) {
		repo, err := NewRepository(config.QdrantConfig{Host: "localhost", Port: 6334, Collection: "liferpg_test", APIKey: "k"})
		require.NoError(t, err)
		defer repo.Close()
		assert.Equal(t, "liferpg_test", repo.Collection())
	})

	t.Run("collection required", func(t *testing.T) {
		_, err := NewRepository(config.QdrantConfig{Host: "localhost", Port: 6334})
		assert.Error(t, err)
	})
}

func TestPointID(t *testing.T) {
	a := PointID("mayor_secret")
	assert.Equal(t, a, PointID("mayor_secret"), "stable")
	assert.NotEqual(t, a, PointID("bakery_hours"))
	assert.Len(t, a, 36)
}

func TestFactToPoint(t *testing.T) {
	point := factToPoint(ports.IndexedFact{
		Fact:      entities.Fact{ID: "mayor_secret", Name: "The mayor's secret", Description: "The mayor gambles."},
		Embedding: []float32{0.5, 0.25},
	})

	assert.Equal(t, PointID("mayor_secret"), point.Id.GetUuid())
	assert.Equal(t, []float32{0.5, 0.25}, point.Vectors.GetVector().Data)
	assert.Equal(t, "mayor_secret", point.Payload[payloadFactID].GetStringValue())
	assert.Equal(t, "The mayor gambles.", point.Payload[payloadDescription].GetStringValue())
}

func TestScoredPointsToFacts(t *testing.T) {
	points := []*pb.ScoredPoint{
		{
			Id:    &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: PointID("a")}},
			Score: 0.9,
			Payload: map[string]*pb.Value{
				payloadFactID: {Kind: &pb.Value_StringValue{StringValue: "a"}},
				payloadName:   {Kind: &pb.Value_StringValue{StringValue: "Fact A"}},
			},
		},
		{
			Id:    &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: PointID("b")}},
			Score: 0.4,
		},
	}

	facts := scoredPointsToFacts(points)
	require.Len(t, facts, 2)
	assert.Equal(t, "a", facts[0].Fact.ID)
	assert.Equal(t, "Fact A", facts[0].Fact.Name)
	assert.Empty(t, facts[0].Fact.Description)
	assert.InDelta(t, 0.9, facts[0].Score, 1e-6)
	assert.Empty(t, facts[1].Fact.ID)
}

func TestCheckDimensions(t *testing.T) {
	info := func(size uint64) *pb.GetCollectionInfoResponse {
		return &pb.GetCollectionInfoResponse{Result: &pb.CollectionInfo{
			Config: &pb.CollectionConfig{Params: &pb.CollectionParams{
				VectorsConfig: &pb.VectorsConfig{Config: &pb.VectorsConfig_Params{
					Params: &pb.VectorParams{Size: size, Distance: pb.Distance_Cosine},
				}},
			}},
		}}
	}

	assert.NoError(t, checkDimensions("facts", info(1536), 1536))

	err := checkDimensions("facts", info(3072), 1536)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3072-dimension")

	assert.Error(t, checkDimensions("facts", &pb.GetCollectionInfoResponse{}, 1536))
}
