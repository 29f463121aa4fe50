package catalog

import (
	"sort"
	"strings"

	"reelfind/models"
)

// rankSearch orders aggregated items for a search query. The comparator
// chain is: priority tier ascending, exact title match, prefix match,
// substring match, popularity descending. Items still tied after every
// tier keep their aggregation order (the sort is stable), which makes the
// output fully deterministic for a given input.
func rankSearch(items []models.ContentItem, query string) []models.ContentItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.ContentItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return searchLess(out[i], out[j], q)
	})
	return out
}

func searchLess(a, b models.ContentItem, q string) bool {
	if a.PriorityTier != b.PriorityTier {
		return a.PriorityTier < b.PriorityTier
	}
	if q != "" {
		at := strings.ToLower(a.Title)
		bt := strings.ToLower(b.Title)
		if exactA, exactB := at == q, bt == q; exactA != exactB {
			return exactA
		}
		if prefA, prefB := strings.HasPrefix(at, q), strings.HasPrefix(bt, q); prefA != prefB {
			return prefA
		}
		if subA, subB := strings.Contains(at, q), strings.Contains(bt, q); subA != subB {
			return subA
		}
	}
	return a.Popularity > b.Popularity
}

// interleaveBrowse builds the query-less landing feed. It round-robins
// over the source buckets in their declared order, skipping identity keys
// already emitted, until limit items are out or every bucket is drained.
// Browse has no query to rank against, so bucket rotation decides
// placement; this is a deliberately different contract from rankSearch.
func interleaveBrowse(sets []resultSet, limit int) []models.ContentItem {
	if limit <= 0 {
		return nil
	}
	out := make([]models.ContentItem, 0, limit)
	seen := make(map[models.IdentityKey]struct{}, limit)
	cursors := make([]int, len(sets))

	for len(out) < limit {
		emitted := false
		for s := range sets {
			if len(out) >= limit {
				break
			}
			for cursors[s] < len(sets[s].items) {
				item := sets[s].items[cursors[s]]
				cursors[s]++
				key := item.Key()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				item.PriorityTier = sets[s].source.tier
				item.IsRegional = sets[s].source.regional
				item.IsFeaturedProvider = sets[s].source.featured
				out = append(out, item)
				emitted = true
				break
			}
		}
		if !emitted {
			break
		}
	}
	return out
}
