package catalog

import (
	"testing"
	"time"

	"reelfind/models"
)

func TestNormalizeCacheKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"batman", "batman"},
		{" Batman ", "batman"},
		{"BATMAN", "batman"},
		{"The Dark Knight", "the dark knight"},
		{"", browseCacheKey},
		{"   ", browseCacheKey},
	}
	for _, tt := range tests {
		if got := normalizeCacheKey(tt.in); got != tt.want {
			t.Errorf("normalizeCacheKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSessionCachePutGet(t *testing.T) {
	c := newSessionCache()
	results := []models.ContentItem{movieItem(1, "Batman")}

	if _, ok := c.get("batman"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.put("batman", results)
	got, ok := c.get("batman")
	if !ok || len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected hit with stored results, got %v ok=%v", got, ok)
	}
}

func TestSessionCacheVariantsShareEntry(t *testing.T) {
	c := newSessionCache()
	c.put(normalizeCacheKey(" Batman "), []models.ContentItem{movieItem(1, "Batman")})

	for _, q := range []string{"batman", "BATMAN", "  batman  "} {
		if _, ok := c.get(normalizeCacheKey(q)); !ok {
			t.Errorf("expected hit for variant %q", q)
		}
	}
}

func TestEvictStaleBrowseSameDayKept(t *testing.T) {
	c := newSessionCache()
	base := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	c.put(browseCacheKey, []models.ContentItem{movieItem(1, "a")})

	// Later the same day, even 23:59.
	c.now = func() time.Time { return time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC) }
	if c.evictStaleBrowse() {
		t.Fatal("same-day browse entry must not be evicted")
	}
	if _, ok := c.get(browseCacheKey); !ok {
		t.Fatal("browse entry should still be present")
	}
}

func TestEvictStaleBrowseNextDayEvicted(t *testing.T) {
	c := newSessionCache()
	c.now = func() time.Time { return time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC) }
	c.put(browseCacheKey, []models.ContentItem{movieItem(1, "a")})
	c.put("batman", []models.ContentItem{movieItem(2, "b")})

	// Two minutes later the calendar day has rolled over.
	c.now = func() time.Time { return time.Date(2026, 8, 30, 0, 1, 0, 0, time.UTC) }
	if !c.evictStaleBrowse() {
		t.Fatal("expected eviction after day rollover")
	}
	if _, ok := c.get(browseCacheKey); ok {
		t.Fatal("browse entry should be gone")
	}
	if _, ok := c.get("batman"); !ok {
		t.Fatal("search entries must survive browse eviction")
	}
}

func TestEvictStaleBrowseNoEntry(t *testing.T) {
	c := newSessionCache()
	if c.evictStaleBrowse() {
		t.Fatal("eviction with no browse entry should report false")
	}
}
