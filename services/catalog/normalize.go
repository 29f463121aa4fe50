package catalog

import (
	"strings"

	"reelfind/models"
)

// normalizeResults maps raw catalog entries to ContentItems. This is the
// only place raw optional fields are default-filled: movies carry title/
// release_date, series carry name/first_air_date, and both collapse to a
// single display title and date here. Entries with no usable title are
// dropped. Items leave this stage unranked; the aggregator stamps tiers.
func normalizeResults(raw []tmdbRawResult, contentType models.ContentType) []models.ContentItem {
	items := make([]models.ContentItem, 0, len(raw))
	for _, r := range raw {
		title := firstNonEmpty(r.Title, r.Name)
		if title == "" || r.ID == 0 {
			continue
		}
		items = append(items, models.ContentItem{
			ID:               r.ID,
			Title:            title,
			ReleaseDate:      firstNonEmpty(r.ReleaseDate, r.FirstAirDate),
			OriginalLanguage: strValue(r.OriginalLanguage),
			Popularity:       floatValue(r.Popularity),
			Overview:         strValue(r.Overview),
			PosterPath:       strValue(r.PosterPath),
			ContentType:      contentType,
			PriorityTier:     models.TierUnranked,
		})
	}
	return items
}

func firstNonEmpty(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && strings.TrimSpace(*c) != "" {
			return strings.TrimSpace(*c)
		}
	}
	return ""
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatValue(f *float64) float64 {
	if f == nil || *f < 0 {
		return 0
	}
	return *f
}
