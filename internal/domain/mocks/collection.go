// Package mocks provides mock implementations for testing.
package mocks

import "context"

// CollectionManager is a mock implementation of ports.CollectionManager.
// It remembers the dimensions of the last collection it was asked for.
type CollectionManager struct {
	EnsureErr error
	DeleteErr error

	Dimensions  uint64
	EnsureCalls int
	DeleteCalls int
}

// EnsureCollection records the requested dimensions.
func (m *CollectionManager) EnsureCollection(_ context.Context, dimensions uint64) error {
	m.EnsureCalls++
	if m.EnsureErr != nil {
		return m.EnsureErr
	}
	m.Dimensions = dimensions
	return nil
}

// DeleteCollection forgets the collection.
func (m *CollectionManager) DeleteCollection(_ context.Context) error {
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Dimensions = 0
	return nil
}
