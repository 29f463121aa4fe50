package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable the pipeline needs. It is constructed once
// at startup and injected into constructors; nothing reads the environment
// after Load returns.
type Config struct {
	ListenAddr string
	DataDir    string
	LogPath    string

	// Catalog API access.
	TMDBBaseURL string
	TMDBToken   string

	// Region whose catalog variants get the top priority tier.
	Region string

	// Streaming providers used for the browse-mode series buckets, in
	// bucket priority order (TMDB watch-provider IDs).
	BrowseProviders []int

	// Keyword → watch-provider ID triggers for the featured-provider
	// search source ("netflix" → 8 and so on).
	ProviderKeywords map[string]int

	// Pipeline tuning.
	DebounceInterval time.Duration
	InterleaveLimit  int
	PrewarmTerms     []string

	// Optional pluggable stages.
	EnableQueryExpansion   bool
	EnableProviderKeywords bool
	ExcludedLanguages      []string
}

// Load builds a Config from the environment, falling back to defaults
// suitable for local development. Call godotenv before this (main imports
// the autoload package) so a .env file is honored.
func Load() Config {
	cfg := Config{
		ListenAddr:  getString("LISTEN_ADDR", ":8787"),
		DataDir:     getString("DATA_DIR", "./data"),
		LogPath:     getString("LOG_PATH", ""),
		TMDBBaseURL: getString("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBToken:   getString("TMDB_API_TOKEN", ""),
		Region:      getString("CATALOG_REGION", "IN"),

		DebounceInterval: getDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),
		InterleaveLimit:  getInt("BROWSE_LIMIT", 20),
		PrewarmTerms:     getList("PREWARM_TERMS", []string{"batman", "avengers", "sholay"}),

		EnableQueryExpansion:   getBool("ENABLE_QUERY_EXPANSION", true),
		EnableProviderKeywords: getBool("ENABLE_PROVIDER_KEYWORDS", true),
		ExcludedLanguages:      getList("EXCLUDED_LANGUAGES", nil),
	}

	cfg.BrowseProviders = getIntList("BROWSE_PROVIDERS", []int{8, 119, 122})
	cfg.ProviderKeywords = map[string]int{
		"netflix": 8,
		"prime":   119,
		"hotstar": 122,
	}
	return cfg
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

// getList parses a comma-separated value; empty entries are dropped.
func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getIntList(key string, def []int) []int {
	parts := getList(key, nil)
	if parts == nil {
		return def
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
