package catalog

import (
	"context"

	"reelfind/models"
)

// source describes one parallel catalog request: where its results sit in
// the priority order and which annotations its items receive.
type source struct {
	name        string
	tier        int
	regional    bool
	featured    bool
	contentType models.ContentType
	fetch       func(ctx context.Context) ([]tmdbRawResult, error)
}

// resultSet pairs a source with its normalized results for one batch.
// Batches always hold result sets in declared source order regardless of
// which network call finished first.
type resultSet struct {
	source source
	items  []models.ContentItem
}

// aggregate flattens result sets in their declared priority order,
// stamping each item with the tier and flags of the source it came from,
// and drops later occurrences of an identity key. The first occurrence
// wins, so annotations from a lower-priority source are lost when the
// item already appeared earlier. That is the intended policy: bucket
// order is the tie-break authority, not flag completeness.
func aggregate(sets []resultSet) []models.ContentItem {
	total := 0
	for _, set := range sets {
		total += len(set.items)
	}
	seen := make(map[models.IdentityKey]struct{}, total)
	out := make([]models.ContentItem, 0, total)

	for _, set := range sets {
		for _, item := range set.items {
			key := item.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			item.PriorityTier = set.source.tier
			item.IsRegional = set.source.regional
			item.IsFeaturedProvider = set.source.featured
			out = append(out, item)
		}
	}
	return out
}
