package catalog

// Raw TMDB envelope shapes. Every field the API may omit is a pointer so
// the decode stage never guesses at defaults; normalize.go is the single
// place raw entries become models.ContentItem.

type tmdbEnvelope struct {
	Page         int             `json:"page"`
	Results      []tmdbRawResult `json:"results"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
}

type tmdbRawResult struct {
	ID               int64    `json:"id"`
	Title            *string  `json:"title"`
	Name             *string  `json:"name"`
	ReleaseDate      *string  `json:"release_date"`
	FirstAirDate     *string  `json:"first_air_date"`
	OriginalLanguage *string  `json:"original_language"`
	Popularity       *float64 `json:"popularity"`
	Overview         *string  `json:"overview"`
	PosterPath       *string  `json:"poster_path"`
}

type tmdbCredits struct {
	ID   int64            `json:"id"`
	Cast []tmdbCastMember `json:"cast"`
	Crew []tmdbCrewMember `json:"crew"`
}

type tmdbCastMember struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Character   *string `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

type tmdbCrewMember struct {
	ID                 int64   `json:"id"`
	Name               *string `json:"name"`
	Job                *string `json:"job"`
	Department         *string `json:"department"`
	KnownForDepartment *string `json:"known_for_department"`
	ProfilePath        *string `json:"profile_path"`
}

type tmdbVideos struct {
	ID      int64       `json:"id"`
	Results []tmdbVideo `json:"results"`
}

type tmdbVideo struct {
	Key      *string `json:"key"`
	Site     *string `json:"site"`
	Type     *string `json:"type"`
	Official bool    `json:"official"`
}

type tmdbWatchProviders struct {
	ID      int64                         `json:"id"`
	Results map[string]tmdbProviderRegion `json:"results"`
}

type tmdbProviderRegion struct {
	Flatrate []tmdbProvider `json:"flatrate"`
	Rent     []tmdbProvider `json:"rent"`
	Buy      []tmdbProvider `json:"buy"`
}

type tmdbProvider struct {
	ProviderID   int64   `json:"provider_id"`
	ProviderName *string `json:"provider_name"`
}
