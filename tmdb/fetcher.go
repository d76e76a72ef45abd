package tmdb

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/midwife-middleware/showbook/catalog"
)

// Fetcher pulls complete provider catalogs from the discover endpoint. It
// pages sequentially with a fixed politeness delay between requests to stay
// under the TMDB request quota.
type Fetcher struct {
	client   *Client
	maxPages int
	delay    time.Duration
	logger   zerolog.Logger
}

// NewFetcher creates a fetcher bounded by maxPages per query
func NewFetcher(client *Client, maxPages int, delay time.Duration, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client:   client,
		maxPages: maxPages,
		delay:    delay,
		logger:   logger,
	}
}

// FetchTitles fetches every title for one provider and media type. Results
// are deduplicated case-insensitively by name, keeping the first occurrence
// in the API's popularity order, then sorted alphabetically.
func (f *Fetcher) FetchTitles(ctx context.Context, providerID int64, mediaType, region string) ([]catalog.Title, error) {
	var raw []catalog.Title
	page := 1

	for page <= f.maxPages {
		data, err := f.client.Discover(ctx, DiscoverQuery{
			MediaType:  mediaType,
			ProviderID: providerID,
			Region:     region,
			Page:       page,
		})
		if err != nil {
			return nil, err
		}

		for _, item := range data.Results {
			raw = append(raw, catalog.Title{Name: item.DisplayName(), Year: item.Year()})
		}

		f.logger.Info().
			Str("media_type", mediaType).
			Int("page", page).
			Int("total_pages", min(data.TotalPages, f.maxPages)).
			Int("titles", len(raw)).
			Msg("Fetched discover page")

		if page >= data.TotalPages {
			break
		}
		page++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}

	return dedupeAndSort(raw), nil
}

// BuildCatalog fetches movies and shows for each provider in priority order
func (f *Fetcher) BuildCatalog(ctx context.Context, providers []Provider, region string) (*catalog.Catalog, error) {
	cat := catalog.New()

	for _, p := range providers {
		f.logger.Info().Str("provider", p.Name).Msg("Fetching provider catalog")

		movies, err := f.FetchTitles(ctx, p.ID, MediaTypeMovie, region)
		if err != nil {
			return nil, err
		}

		shows, err := f.FetchTitles(ctx, p.ID, MediaTypeTV, region)
		if err != nil {
			return nil, err
		}

		if len(movies) == 0 && len(shows) == 0 {
			f.logger.Warn().
				Int64("provider_id", p.ID).
				Str("provider", p.Name).
				Msg("No results; the provider ID may be wrong, try the providers command")
		}

		cat.Append(catalog.ProviderEntry{Name: p.Name, Movies: movies, Shows: shows})
	}

	return cat, nil
}

// dedupeAndSort drops case-insensitive duplicate names (first occurrence
// wins) and sorts the remainder alphabetically.
func dedupeAndSort(titles []catalog.Title) []catalog.Title {
	seen := make(map[string]bool, len(titles))
	unique := make([]catalog.Title, 0, len(titles))

	for _, t := range titles {
		key := catalog.SortKey(t.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, t)
	}

	catalog.SortTitles(unique)
	return unique
}
