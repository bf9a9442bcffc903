package testsupport

import (
	"context"
	"testing"

	"splice/internal/config"
	"splice/internal/projectstore"
	"splice/internal/timeline"
)

// MustOpenStore opens a projectstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *projectstore.Store {
	t.Helper()

	store, err := projectstore.Open(cfg)
	if err != nil {
		t.Fatalf("projectstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustSaveProject persists a project for tests using the provided store.
func MustSaveProject(t testing.TB, store *projectstore.Store, project *timeline.Project) {
	t.Helper()

	if err := store.Save(context.Background(), project); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
}
