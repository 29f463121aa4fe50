package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	retry "github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"
)

// Minimal TMDB v3 client (bearer auth, the search/discover/detail
// endpoints the pipeline needs).

const defaultTMDBBaseURL = "https://api.themoviedb.org/3"

type tmdbClient struct {
	baseURL string
	token   string
	httpc   *http.Client

	// Outbound throttle shared by every request the client issues.
	limiter *rate.Limiter

	retryAttempts uint
	retryDelay    time.Duration
}

func newTMDBClient(baseURL, token string, httpc *http.Client) *tmdbClient {
	if baseURL == "" {
		baseURL = defaultTMDBBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &tmdbClient{
		baseURL:       baseURL,
		token:         token,
		httpc:         httpc,
		limiter:       rate.NewLimiter(rate.Limit(40), 10),
		retryAttempts: 3,
		retryDelay:    300 * time.Millisecond,
	}
}

func (c *tmdbClient) isConfigured() bool { return c.token != "" }

// getJSON issues a throttled GET against the catalog API and decodes the
// response into v. Transport failures and 429/5xx responses are retried
// with exponential backoff; other non-2xx statuses and decode failures
// are terminal. Errors are classified into the pipeline taxonomy.
func (c *tmdbClient) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u = u + "?" + q.Encode()
	}

	return retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Accept", "application/json")
			req.Header.Set("Authorization", "Bearer "+c.token)

			resp, err := c.httpc.Do(req)
			if err != nil {
				if ctx.Err() != nil {
					return retry.Unrecoverable(ctx.Err())
				}
				return &NetworkError{Err: err}
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 300 {
				statusErr := &HTTPStatusError{Code: resp.StatusCode}
				if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
					return statusErr
				}
				return retry.Unrecoverable(statusErr)
			}

			if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
				return retry.Unrecoverable(&DecodeError{Err: err})
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

// searchMovies queries the movie search endpoint. region is optional and
// biases results toward a release region.
func (c *tmdbClient) searchMovies(ctx context.Context, query, region string) ([]tmdbRawResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if region != "" {
		params.Set("region", region)
	}
	var env tmdbEnvelope
	if err := c.getJSON(ctx, "/search/movie", params, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// searchSeries queries the TV search endpoint.
func (c *tmdbClient) searchSeries(ctx context.Context, query string) ([]tmdbRawResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	var env tmdbEnvelope
	if err := c.getJSON(ctx, "/search/tv", params, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// discoverMovies queries the movie discover feed sorted by popularity.
// originCountry optionally restricts to titles originating in a country.
func (c *tmdbClient) discoverMovies(ctx context.Context, originCountry string) ([]tmdbRawResult, error) {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	if originCountry != "" {
		params.Set("with_origin_country", originCountry)
	}
	var env tmdbEnvelope
	if err := c.getJSON(ctx, "/discover/movie", params, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// discoverSeriesByProvider queries the TV discover feed restricted to one
// streaming provider in the given watch region, sorted by popularity.
func (c *tmdbClient) discoverSeriesByProvider(ctx context.Context, providerID int, watchRegion string) ([]tmdbRawResult, error) {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("with_watch_providers", strconv.Itoa(providerID))
	if watchRegion != "" {
		params.Set("watch_region", watchRegion)
	}
	var env tmdbEnvelope
	if err := c.getJSON(ctx, "/discover/tv", params, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}

func mediaPath(contentType string, id int64) string {
	kind := "movie"
	if contentType == "series" {
		kind = "tv"
	}
	return fmt.Sprintf("/%s/%d", kind, id)
}

// credits fetches the cast and crew list for one title.
func (c *tmdbClient) credits(ctx context.Context, contentType string, id int64) (*tmdbCredits, error) {
	var out tmdbCredits
	if err := c.getJSON(ctx, mediaPath(contentType, id)+"/credits", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// videos fetches the trailer/teaser list for one title.
func (c *tmdbClient) videos(ctx context.Context, contentType string, id int64) (*tmdbVideos, error) {
	var out tmdbVideos
	if err := c.getJSON(ctx, mediaPath(contentType, id)+"/videos", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// watchProviders fetches per-region streaming availability for one title.
func (c *tmdbClient) watchProviders(ctx context.Context, contentType string, id int64) (*tmdbWatchProviders, error) {
	var out tmdbWatchProviders
	if err := c.getJSON(ctx, mediaPath(contentType, id)+"/watch/providers", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
