package catalog

import (
	"context"
	"log"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"reelfind/models"
)

const (
	maxDirectors = 5
	maxTopCast   = 12
	maxComposers = 6
)

// composerJobs are the crew jobs counted as the music credit, alongside
// anyone whose primary department is Sound.
var composerJobs = map[string]struct{}{
	"Original Music Composer": {},
	"Composer":                {},
	"Music":                   {},
	"Music Director":          {},
	"Score Composer":          {},
	"Music Supervisor":        {},
}

// Details assembles the details-panel bundle for one title: selected
// credits, the best trailer, and streaming availability in the configured
// region. The three lookups run in parallel and degrade independently;
// a failed lookup leaves its section empty.
func (s *Service) Details(ctx context.Context, contentType models.ContentType, id int64) (*models.DetailsBundle, error) {
	bundle := &models.DetailsBundle{}
	kind := string(contentType)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		credits, err := s.client.credits(ctx, kind, id)
		if err != nil {
			if !isCancellation(err) {
				log.Printf("[catalog] credits lookup failed for %s/%d: %v", kind, id, err)
			}
			return nil
		}
		bundle.Directors = selectDirectors(credits.Crew)
		bundle.TopCast = selectTopCast(credits.Cast)
		bundle.Composers = selectComposers(credits.Crew)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		videos, err := s.client.videos(ctx, kind, id)
		if err != nil {
			if !isCancellation(err) {
				log.Printf("[catalog] videos lookup failed for %s/%d: %v", kind, id, err)
			}
			return nil
		}
		bundle.TrailerKey = pickTrailerKey(videos.Results)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		providers, err := s.client.watchProviders(ctx, kind, id)
		if err != nil {
			if !isCancellation(err) {
				log.Printf("[catalog] providers lookup failed for %s/%d: %v", kind, id, err)
			}
			return nil
		}
		bundle.Providers = regionProviderNames(providers, s.region)
		return nil
	})
	_ = p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// selectDirectors keeps crew credited as Director (or known for
// directing, which catches episode directors on series), deduplicated by
// person ID in credit order.
func selectDirectors(crew []tmdbCrewMember) []models.Person {
	seen := make(map[int64]struct{})
	var out []models.Person
	for _, member := range crew {
		if strValue(member.Job) != "Director" && strValue(member.KnownForDepartment) != "Directing" {
			continue
		}
		if _, dup := seen[member.ID]; dup {
			continue
		}
		seen[member.ID] = struct{}{}
		out = append(out, models.Person{
			ID:          member.ID,
			Name:        strValue(member.Name),
			ProfilePath: strValue(member.ProfilePath),
		})
		if len(out) >= maxDirectors {
			break
		}
	}
	return out
}

func selectTopCast(cast []tmdbCastMember) []models.Person {
	n := len(cast)
	if n > maxTopCast {
		n = maxTopCast
	}
	out := make([]models.Person, 0, n)
	for _, member := range cast[:n] {
		out = append(out, models.Person{
			ID:          member.ID,
			Name:        strValue(member.Name),
			Character:   strValue(member.Character),
			ProfilePath: strValue(member.ProfilePath),
		})
	}
	return out
}

// selectComposers keeps the sound department plus anyone with a composer
// job title, deduplicated by person ID.
func selectComposers(crew []tmdbCrewMember) []models.Person {
	seen := make(map[int64]struct{})
	var out []models.Person
	for _, member := range crew {
		_, composerJob := composerJobs[strValue(member.Job)]
		if strValue(member.KnownForDepartment) != "Sound" && !composerJob {
			continue
		}
		if _, dup := seen[member.ID]; dup {
			continue
		}
		seen[member.ID] = struct{}{}
		out = append(out, models.Person{
			ID:          member.ID,
			Name:        strValue(member.Name),
			ProfilePath: strValue(member.ProfilePath),
		})
		if len(out) >= maxComposers {
			break
		}
	}
	return out
}

// pickTrailerKey prefers an official YouTube trailer, then any YouTube
// trailer, then any YouTube video.
func pickTrailerKey(videos []tmdbVideo) string {
	var trailer, fallback string
	for _, v := range videos {
		if !strings.EqualFold(strValue(v.Site), "YouTube") || strValue(v.Key) == "" {
			continue
		}
		if strings.EqualFold(strValue(v.Type), "Trailer") {
			if v.Official {
				return strValue(v.Key)
			}
			if trailer == "" {
				trailer = strValue(v.Key)
			}
		} else if fallback == "" {
			fallback = strValue(v.Key)
		}
	}
	if trailer != "" {
		return trailer
	}
	return fallback
}

// regionProviderNames flattens the region's streaming availability into
// provider names, flatrate first.
func regionProviderNames(wp *tmdbWatchProviders, region string) []string {
	regional, ok := wp.Results[region]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, group := range [][]tmdbProvider{regional.Flatrate, regional.Rent, regional.Buy} {
		for _, p := range group {
			name := strValue(p.ProviderName)
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
