//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Run with: GRIDLAYOUT_REDIS_URL=redis://localhost:6379/15 go test -tags integration ./pkg/cache
func TestRedisCacheIntegration(t *testing.T) {
	url := os.Getenv("GRIDLAYOUT_REDIS_URL")
	if url == "" {
		t.Skip("GRIDLAYOUT_REDIS_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := NewScopedKeyer(nil, "test:").LayoutKey(Hash([]byte(t.Name())), LayoutKeyOpts{Width: 3, Height: 3})
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get before Set: hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte(`{"cost":-3}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit %v, err %v", hit, err)
	}
	if string(data) != `{"cost":-3}` {
		t.Errorf("data = %s", data)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry should be gone after Delete")
	}
}
