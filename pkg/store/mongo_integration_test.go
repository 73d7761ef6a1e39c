//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"
)

// Run with: GRIDLAYOUT_MONGO_URI=mongodb://localhost:27017 go test -tags integration ./pkg/store
func TestMongoStoreIntegration(t *testing.T) {
	uri := os.Getenv("GRIDLAYOUT_MONGO_URI")
	if uri == "" {
		t.Skip("GRIDLAYOUT_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, uri, "gridlayout_test")
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()

	if err := s.client.Database("gridlayout_test").Drop(ctx); err != nil {
		t.Fatalf("drop test database: %v", err)
	}
	s, err = NewMongoStore(ctx, uri, "gridlayout_test")
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()

	exerciseStore(t, s)
}
