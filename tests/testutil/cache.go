package testutil

import (
	"testing"

	"github.com/aharoni/caseboard/internal/refcache"
)

// NewTestCache creates an in-memory reference cache with all migrations
// applied. It automatically closes the cache when the test completes.
func NewTestCache(t *testing.T) *refcache.Cache {
	t.Helper()

	c, err := refcache.Open(":memory:")
	if err != nil {
		t.Fatalf("creating test cache: %v", err)
	}

	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("closing test cache: %v", err)
		}
	})

	return c
}
