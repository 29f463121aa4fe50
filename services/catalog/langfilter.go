package catalog

import (
	"strings"

	"reelfind/models"
)

// excludeLanguages drops items whose original language is in the
// configured exclusion list. The filter is off unless codes are
// configured; it is a content-policy knob, not core ranking behavior.
func excludeLanguages(items []models.ContentItem, codes []string) []models.ContentItem {
	if len(codes) == 0 {
		return items
	}
	excluded := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			excluded[c] = struct{}{}
		}
	}
	if len(excluded) == 0 {
		return items
	}

	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if _, drop := excluded[strings.ToLower(item.OriginalLanguage)]; drop {
			continue
		}
		out = append(out, item)
	}
	return out
}
