package catalog

import (
	"reflect"
	"testing"

	"reelfind/models"
)

func TestRankSearchTierBeforeMatchQuality(t *testing.T) {
	items := []models.ContentItem{
		{ID: 1, Title: "Batman", PriorityTier: 1, Popularity: 99},
		{ID: 2, Title: "Bat Out of Hell", PriorityTier: 0, Popularity: 1},
	}

	out := rankSearch(items, "batman")
	if out[0].ID != 2 {
		t.Fatalf("lower tier must rank first even with a worse title match, got id %d", out[0].ID)
	}
}

func TestRankSearchMatchQualityChain(t *testing.T) {
	items := []models.ContentItem{
		{ID: 1, Title: "The Dark Knight Batman Story", PriorityTier: 0, Popularity: 50}, // substring
		{ID: 2, Title: "Batman Begins", PriorityTier: 0, Popularity: 10},                // prefix
		{ID: 3, Title: "Unrelated", PriorityTier: 0, Popularity: 100},                   // no match
		{ID: 4, Title: "Batman", PriorityTier: 0, Popularity: 1},                        // exact
	}

	out := rankSearch(items, "batman")
	want := []int64{4, 2, 1, 3}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d (order %v)", i, id, out[i].ID, ids(out))
		}
	}
}

func TestRankSearchPopularityBreaksTies(t *testing.T) {
	items := []models.ContentItem{
		{ID: 1, Title: "Batman Begins", PriorityTier: 0, Popularity: 10},
		{ID: 2, Title: "Batman Returns", PriorityTier: 0, Popularity: 80},
	}

	out := rankSearch(items, "batman")
	if out[0].ID != 2 {
		t.Fatalf("same match quality must fall back to popularity, got id %d", out[0].ID)
	}
}

func TestRankSearchStableForFullTies(t *testing.T) {
	items := []models.ContentItem{
		{ID: 1, Title: "Batman A", PriorityTier: 0, Popularity: 10},
		{ID: 2, Title: "Batman B", PriorityTier: 0, Popularity: 10},
		{ID: 3, Title: "Batman C", PriorityTier: 0, Popularity: 10},
	}

	out := rankSearch(items, "batman")
	want := []int64{1, 2, 3}
	if !reflect.DeepEqual(ids(out), want) {
		t.Fatalf("full ties must keep aggregation order, got %v", ids(out))
	}
}

func TestRankSearchDeterministic(t *testing.T) {
	items := []models.ContentItem{
		{ID: 5, Title: "Avengers", PriorityTier: 1, Popularity: 70},
		{ID: 6, Title: "The Avengers", PriorityTier: 0, Popularity: 40},
		{ID: 7, Title: "Avengers: Endgame", PriorityTier: 1, Popularity: 90},
		{ID: 8, Title: "Infinity", PriorityTier: 0, Popularity: 40},
	}

	first := rankSearch(items, "avengers")
	second := rankSearch(items, "avengers")
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Fatalf("ranking must be deterministic: %v vs %v", ids(first), ids(second))
	}
}

func TestRankSearchDoesNotMutateInput(t *testing.T) {
	items := []models.ContentItem{
		{ID: 1, Title: "Z", PriorityTier: 2},
		{ID: 2, Title: "A", PriorityTier: 0},
	}
	rankSearch(items, "a")
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Fatal("rankSearch must operate on a copy")
	}
}

func TestRankSearchEmptyQueryFallsBackToPopularity(t *testing.T) {
	items := []models.ContentItem{
		{ID: 1, Title: "Low", PriorityTier: 0, Popularity: 1},
		{ID: 2, Title: "High", PriorityTier: 0, Popularity: 9},
	}
	out := rankSearch(items, "  ")
	if out[0].ID != 2 {
		t.Fatalf("expected popularity order for empty query, got %v", ids(out))
	}
}

func TestInterleaveBrowseRoundRobin(t *testing.T) {
	sets := []resultSet{
		{source: source{tier: 0, regional: true}, items: []models.ContentItem{movieItem(1, "a"), movieItem(2, "b")}},
		{source: source{tier: 1}, items: []models.ContentItem{movieItem(3, "c"), movieItem(4, "d")}},
		{source: source{tier: 2, featured: true}, items: []models.ContentItem{seriesItem(5, "e"), seriesItem(6, "f")}},
	}

	out := interleaveBrowse(sets, 20)
	want := []int64{1, 3, 5, 2, 4, 6}
	if !reflect.DeepEqual(ids(out), want) {
		t.Fatalf("expected round-robin order %v, got %v", want, ids(out))
	}
	if !out[0].IsRegional || !out[2].IsFeaturedProvider {
		t.Errorf("bucket annotations not stamped: %+v %+v", out[0], out[2])
	}
}

func TestInterleaveBrowseCapsOutput(t *testing.T) {
	var a, b []models.ContentItem
	for i := int64(1); i <= 15; i++ {
		a = append(a, movieItem(i, "a"))
		b = append(b, seriesItem(i+100, "b"))
	}
	sets := []resultSet{
		{source: source{tier: 0}, items: a},
		{source: source{tier: 1}, items: b},
	}

	out := interleaveBrowse(sets, 20)
	if len(out) != 20 {
		t.Fatalf("expected cap of 20, got %d", len(out))
	}
}

func TestInterleaveBrowseSkipsDuplicates(t *testing.T) {
	sets := []resultSet{
		{source: source{tier: 0}, items: []models.ContentItem{movieItem(1, "dup"), movieItem(2, "x")}},
		{source: source{tier: 1}, items: []models.ContentItem{movieItem(1, "dup"), movieItem(3, "y")}},
	}

	out := interleaveBrowse(sets, 20)
	want := []int64{1, 3, 2}
	if !reflect.DeepEqual(ids(out), want) {
		t.Fatalf("duplicate should be skipped, rotation continues: want %v, got %v", want, ids(out))
	}
}

func TestInterleaveBrowseDrainsUnevenBuckets(t *testing.T) {
	sets := []resultSet{
		{source: source{tier: 0}, items: []models.ContentItem{movieItem(1, "a")}},
		{source: source{tier: 1}, items: []models.ContentItem{movieItem(2, "b"), movieItem(3, "c"), movieItem(4, "d")}},
	}

	out := interleaveBrowse(sets, 20)
	want := []int64{1, 2, 3, 4}
	if !reflect.DeepEqual(ids(out), want) {
		t.Fatalf("short bucket drains, rotation keeps going: want %v, got %v", want, ids(out))
	}
}

func TestInterleaveBrowseZeroLimit(t *testing.T) {
	sets := []resultSet{{source: source{tier: 0}, items: []models.ContentItem{movieItem(1, "a")}}}
	if out := interleaveBrowse(sets, 0); out != nil {
		t.Fatalf("expected nil for zero limit, got %v", out)
	}
}

func ids(items []models.ContentItem) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
