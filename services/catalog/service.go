package catalog

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sourcegraph/conc/pool"

	"reelfind/config"
	"reelfind/models"
)

// SearchRecorder receives successful non-empty search terms as a side
// effect. Implementations must never influence the result pipeline:
// errors are logged and swallowed by the caller.
type SearchRecorder interface {
	Record(ctx context.Context, term string, top *models.ContentItem) error
}

// Service owns the fetch/aggregate/rank/cache pipeline. All entry points
// are safe for concurrent use; the session cache carries its own lock.
type Service struct {
	client   *tmdbClient
	cache    *sessionCache
	recorder SearchRecorder

	region            string
	browseProviders   []int
	providerKeywords  map[string]int
	excludedLanguages []string
	interleaveLimit   int
	expandQueries     bool
	keywordLookup     bool

	maintenance *cron.Cron
}

func NewService(cfg config.Config, recorder SearchRecorder) *Service {
	return &Service{
		client:            newTMDBClient(cfg.TMDBBaseURL, cfg.TMDBToken, &http.Client{}),
		cache:             newSessionCache(),
		recorder:          recorder,
		region:            cfg.Region,
		browseProviders:   cfg.BrowseProviders,
		providerKeywords:  cfg.ProviderKeywords,
		excludedLanguages: cfg.ExcludedLanguages,
		interleaveLimit:   cfg.InterleaveLimit,
		expandQueries:     cfg.EnableQueryExpansion,
		keywordLookup:     cfg.EnableProviderKeywords,
	}
}

// searchPlan is one resolved search request: the query the ranker should
// compare titles against (provider keywords stripped) and the parallel
// sources to fetch, in priority order.
type searchPlan struct {
	rankQuery string
	sources   []source
}

// buildSearchPlan resolves the source list for a search query. Source
// order is the aggregation priority order: regional and featured-provider
// buckets first, then general movies (plus expansion variants), then
// series.
func (s *Service) buildSearchPlan(query string) searchPlan {
	rankQuery := query
	var sources []source

	var featuredID int
	if s.keywordLookup {
		if id, remainder, ok := detectProviderKeyword(query, s.providerKeywords); ok {
			featuredID = id
			if remainder != "" {
				rankQuery = remainder
			}
		}
	}
	q := rankQuery

	sources = append(sources, source{
		name:        "movie-regional",
		tier:        0,
		regional:    true,
		contentType: models.ContentTypeMovie,
		fetch: func(ctx context.Context) ([]tmdbRawResult, error) {
			return s.client.searchMovies(ctx, q, s.region)
		},
	})

	if featuredID != 0 {
		id := featuredID
		sources = append(sources, source{
			name:        fmt.Sprintf("series-provider-%d", id),
			tier:        0,
			featured:    true,
			contentType: models.ContentTypeSeries,
			fetch: func(ctx context.Context) ([]tmdbRawResult, error) {
				return s.client.discoverSeriesByProvider(ctx, id, s.region)
			},
		})
	}

	sources = append(sources, source{
		name:        "movie-general",
		tier:        1,
		contentType: models.ContentTypeMovie,
		fetch: func(ctx context.Context) ([]tmdbRawResult, error) {
			return s.client.searchMovies(ctx, q, "")
		},
	})

	if s.expandQueries {
		for _, variant := range expandQuery(q) {
			v := variant
			sources = append(sources, source{
				name:        "movie-expanded",
				tier:        1,
				contentType: models.ContentTypeMovie,
				fetch: func(ctx context.Context) ([]tmdbRawResult, error) {
					return s.client.searchMovies(ctx, v, "")
				},
			})
		}
	}

	sources = append(sources, source{
		name:        "series-general",
		tier:        2,
		contentType: models.ContentTypeSeries,
		fetch: func(ctx context.Context) ([]tmdbRawResult, error) {
			return s.client.searchSeries(ctx, q)
		},
	})

	return searchPlan{rankQuery: rankQuery, sources: sources}
}

// buildBrowseSources resolves the fixed landing-feed buckets: regional
// popular movies, general popular movies, then one series bucket per
// configured streaming provider.
func (s *Service) buildBrowseSources() []source {
	sources := []source{
		{
			name:        "movie-regional-popular",
			tier:        0,
			regional:    true,
			contentType: models.ContentTypeMovie,
			fetch: func(ctx context.Context) ([]tmdbRawResult, error) {
				return s.client.discoverMovies(ctx, s.region)
			},
		},
		{
			name:        "movie-popular",
			tier:        1,
			contentType: models.ContentTypeMovie,
			fetch: func(ctx context.Context) ([]tmdbRawResult, error) {
				return s.client.discoverMovies(ctx, "")
			},
		},
	}
	for _, providerID := range s.browseProviders {
		id := providerID
		sources = append(sources, source{
			name:        fmt.Sprintf("series-provider-%d", id),
			tier:        2,
			featured:    true,
			contentType: models.ContentTypeSeries,
			fetch: func(ctx context.Context) ([]tmdbRawResult, error) {
				return s.client.discoverSeriesByProvider(ctx, id, s.region)
			},
		})
	}
	return sources
}

// fetchBatch runs every source in parallel and returns result sets in
// declared source order, never completion order. A failing source
// degrades to an empty contribution; the batch only fails when all
// sources failed (or the context was cancelled). onPartial, when
// non-nil, is invoked at most once with the first non-empty set to
// complete, for progressive disclosure.
func (s *Service) fetchBatch(ctx context.Context, sources []source, onPartial func([]models.ContentItem)) ([]resultSet, error) {
	sets := make([]resultSet, len(sources))
	errs := make([]error, len(sources))
	var partialOnce sync.Once

	p := pool.New().WithContext(ctx)
	for i := range sources {
		i := i
		src := sources[i]
		p.Go(func(ctx context.Context) error {
			raw, err := src.fetch(ctx)
			if err != nil {
				if !isCancellation(err) {
					log.Printf("[catalog] source %s failed: %v", src.name, err)
				}
				errs[i] = err
				return nil
			}
			items := normalizeResults(raw, src.contentType)
			sets[i] = resultSet{source: src, items: items}
			if onPartial != nil && len(items) > 0 {
				partialOnce.Do(func() { onPartial(items) })
			}
			return nil
		})
	}
	_ = p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var failures []error
	for i := range sources {
		if errs[i] != nil {
			failures = append(failures, errs[i])
		}
		sets[i].source = sources[i]
	}
	if len(failures) == len(sources) {
		return nil, &AllSourcesFailedError{Errors: failures}
	}
	return sets, nil
}

// Search runs the full search pipeline for a query: cache lookup, then
// parallel fetch, aggregate, rank, language filter, cache store. The
// empty query is routed to Browse. The cache is never written after the
// context has been cancelled.
func (s *Service) Search(ctx context.Context, query string, onPartial func([]models.ContentItem)) ([]models.ContentItem, error) {
	key := normalizeCacheKey(query)
	if key == browseCacheKey {
		return s.Browse(ctx)
	}
	if cached, ok := s.cache.get(key); ok {
		return cached, nil
	}

	plan := s.buildSearchPlan(query)
	sets, err := s.fetchBatch(ctx, plan.sources, onPartial)
	if err != nil {
		return nil, err
	}

	items := aggregate(sets)
	ranked := rankSearch(items, plan.rankQuery)
	ranked = excludeLanguages(ranked, s.excludedLanguages)

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.cache.put(key, ranked)
	s.recordSearch(key, ranked)
	return ranked, nil
}

// Browse returns the query-less landing feed: fixed popular-by-category
// buckets interleaved round-robin up to the configured cap, cached under
// the reserved browse key until the next calendar day.
func (s *Service) Browse(ctx context.Context) ([]models.ContentItem, error) {
	if cached, ok := s.cache.get(browseCacheKey); ok {
		return cached, nil
	}

	sets, err := s.fetchBatch(ctx, s.buildBrowseSources(), nil)
	if err != nil {
		return nil, err
	}

	feed := interleaveBrowse(sets, s.interleaveLimit)
	feed = excludeLanguages(feed, s.excludedLanguages)

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.cache.put(browseCacheKey, feed)
	return feed, nil
}

// recordSearch hands the term to the search recorder without letting the
// recorder's outcome touch the pipeline. Fire and forget.
func (s *Service) recordSearch(term string, ranked []models.ContentItem) {
	if s.recorder == nil || len(ranked) == 0 {
		return
	}
	top := ranked[0]
	go func() {
		if err := s.recorder.Record(context.Background(), term, &top); err != nil {
			log.Printf("[catalog] search recorder failed for %q: %v", term, err)
		}
	}()
}

// Prewarm populates the cache for a list of common terms. Failures are
// swallowed: a cold cache is a slower first search, not an error. Run it
// on its own goroutine so startup never blocks on the network.
func (s *Service) Prewarm(ctx context.Context, terms []string) {
	for _, term := range terms {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.Search(ctx, term, nil); err != nil && !isCancellation(err) {
			log.Printf("[catalog] prewarm %q failed: %v", term, err)
		}
	}
	log.Printf("[catalog] prewarm complete (%d terms, cache size %d)", len(terms), s.cache.len())
}

// StartMaintenance begins the minutely check that evicts the browse cache
// entry once its creation date falls on a previous calendar day.
func (s *Service) StartMaintenance() error {
	if s.maintenance != nil {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc("@every 1m", func() {
		if s.cache.evictStaleBrowse() {
			log.Printf("[catalog] browse cache rolled over to a new day, evicted")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule browse cache check: %w", err)
	}
	c.Start()
	s.maintenance = c
	return nil
}

// StopMaintenance stops the browse-cache poller and waits for any running
// check to finish.
func (s *Service) StopMaintenance() {
	if s.maintenance == nil {
		return
	}
	<-s.maintenance.Stop().Done()
	s.maintenance = nil
}
