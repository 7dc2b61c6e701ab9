package testsupport

import (
	"context"
	"testing"

	"subweave/internal/config"
	"subweave/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg.QueueDBPath())
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewItem creates a queue item for tests using the provided store.
func NewItem(t testing.TB, store *queue.Store, sourcePath, title string) *queue.Item {
	t.Helper()

	item, err := store.NewItem(context.Background(), sourcePath, title)
	if err != nil {
		t.Fatalf("store.NewItem: %v", err)
	}
	return item
}
