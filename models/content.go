package models

// ContentType classifies a catalog entry as a movie or a TV series.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// TierUnranked is the priority tier assigned to items before the
// aggregation pipeline stamps them with their source tier. It sorts
// after every explicit tier.
const TierUnranked = 1 << 30

// ContentItem is one normalized catalog entry. The first block of fields
// comes from the catalog API after normalization; the annotation block is
// stamped by the aggregation pipeline and is never present in raw data.
type ContentItem struct {
	ID               int64       `json:"id"`
	Title            string      `json:"title"`
	ReleaseDate      string      `json:"releaseDate,omitempty"`
	OriginalLanguage string      `json:"originalLanguage,omitempty"`
	Popularity       float64     `json:"popularity"`
	Overview         string      `json:"overview,omitempty"`
	PosterPath       string      `json:"posterPath,omitempty"`
	ContentType      ContentType `json:"contentType"`

	PriorityTier       int  `json:"priorityTier"`
	IsRegional         bool `json:"isRegional,omitempty"`
	IsFeaturedProvider bool `json:"isFeaturedProvider,omitempty"`
}

// IdentityKey uniquely identifies an item across result sets. Catalog IDs
// are only unique within a content-type namespace, so the type is part of
// the key.
type IdentityKey struct {
	Type ContentType
	ID   int64
}

// Key returns the deduplication identity of the item.
func (c ContentItem) Key() IdentityKey {
	return IdentityKey{Type: c.ContentType, ID: c.ID}
}
