package resolve

import (
	"context"
	"testing"
	"time"

	"github.com/openpathway/pathmerge/pkg/pathway"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type countingResolver struct {
	inner Resolver
	calls int
}

func (c *countingResolver) Resolve(ctx context.Context, xrefs []pathway.Xref) (Identity, bool, error) {
	c.calls++
	return c.inner.Resolve(ctx, xrefs)
}

func newCacheFixture(t *testing.T, ttl time.Duration) (*Cached, *countingResolver, *miniredis.Miniredis) {
	t.Helper()
	static := NewStatic()
	static.Add("hgnc", "391", Identity{Namespace: "hgnc", Name: "AKT1", Identifier: "391"})
	counting := &countingResolver{inner: static}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCached(counting, client, ttl), counting, mr
}

func TestCachedResolve_ServesRepeatsFromCache(t *testing.T) {
	cached, counting, _ := newCacheFixture(t, time.Minute)
	xrefs := []pathway.Xref{{Namespace: "hgnc", Identifier: "391"}}

	for i := 0; i < 3; i++ {
		identity, ok, err := cached.Resolve(context.Background(), xrefs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || identity.Name != "AKT1" {
			t.Fatalf("unexpected resolution: %+v ok=%v", identity, ok)
		}
	}
	if counting.calls != 1 {
		t.Errorf("expected 1 inner lookup, got %d", counting.calls)
	}
}

func TestCachedResolve_CachesMisses(t *testing.T) {
	cached, counting, _ := newCacheFixture(t, time.Minute)
	xrefs := []pathway.Xref{{Namespace: "ensembl", Identifier: "ENSG00000000000"}}

	for i := 0; i < 2; i++ {
		_, ok, err := cached.Resolve(context.Background(), xrefs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatal("expected a miss")
		}
	}
	if counting.calls != 1 {
		t.Errorf("expected the miss to be cached, got %d inner lookups", counting.calls)
	}
}

func TestCachedResolve_EntriesExpire(t *testing.T) {
	cached, counting, mr := newCacheFixture(t, time.Minute)
	xrefs := []pathway.Xref{{Namespace: "hgnc", Identifier: "391"}}

	if _, _, err := cached.Resolve(context.Background(), xrefs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, _, err := cached.Resolve(context.Background(), xrefs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counting.calls != 2 {
		t.Errorf("expected expired entry to trigger a second lookup, got %d", counting.calls)
	}
}

func TestCachedResolve_DegradesWhenCacheIsDown(t *testing.T) {
	cached, counting, mr := newCacheFixture(t, time.Minute)
	mr.Close()

	identity, ok, err := cached.Resolve(context.Background(), []pathway.Xref{
		{Namespace: "hgnc", Identifier: "391"},
	})
	if err != nil {
		t.Fatalf("expected cache failure to degrade, got %v", err)
	}
	if !ok || identity.Name != "AKT1" {
		t.Fatalf("unexpected resolution: %+v ok=%v", identity, ok)
	}
	if counting.calls != 1 {
		t.Errorf("expected inner lookup, got %d", counting.calls)
	}
}
