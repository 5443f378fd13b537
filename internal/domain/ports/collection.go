package ports

import "context"

// CollectionManager owns the lifecycle of a save's fact collection.
type CollectionManager interface {
	// EnsureCollection creates the collection for vectors of the given length.
	// An existing collection built for another length is an error, since its
	// vectors cannot be compared with new queries.
	EnsureCollection(ctx context.Context, dimensions uint64) error

	// DeleteCollection drops the collection with every indexed fact.
	DeleteCollection(ctx context.Context) error
}
