package models

// Person is a credited cast or crew member on a title.
type Person struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profilePath,omitempty"`
}

// DetailsBundle is everything the details panel needs for one title:
// selected credits, the best trailer, and streaming availability.
type DetailsBundle struct {
	Directors  []Person `json:"directors"`
	TopCast    []Person `json:"topCast"`
	Composers  []Person `json:"composers"`
	TrailerKey string   `json:"trailerKey,omitempty"`
	Providers  []string `json:"providers,omitempty"`
}

// TrendingSearch is one row of the recorded search-term counter.
type TrendingSearch struct {
	Term       string `json:"term"`
	Count      int64  `json:"count"`
	ContentID  int64  `json:"contentId,omitempty"`
	PosterPath string `json:"posterPath,omitempty"`
}
