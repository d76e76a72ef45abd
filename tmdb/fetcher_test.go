package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midwife-middleware/showbook/catalog"
)

// discoverServer serves canned discover pages keyed by page number
func discoverServer(t *testing.T, pages map[int][]map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"page":        page,
			"total_pages": len(pages),
			"results":     pages[page],
		})
	}))
}

func newTestFetcher(t *testing.T, serverURL string, maxPages int) *Fetcher {
	t.Helper()
	client, err := NewClient(serverURL, "test-key", zerolog.Nop())
	require.NoError(t, err)
	return NewFetcher(client, maxPages, 0, zerolog.Nop())
}

func TestFetchTitlesDedupesAndSorts(t *testing.T) {
	// Popularity order: first occurrence wins before the alphabetical sort
	server := discoverServer(t, map[int][]map[string]interface{}{
		1: {
			{"title": "Dune", "release_date": "2021-09-15"},
			{"title": "dune", "release_date": "1984-12-14"},
			{"title": "Dune: Part Two", "release_date": "2024-02-27"},
		},
	})
	defer server.Close()

	f := newTestFetcher(t, server.URL, 500)
	titles, err := f.FetchTitles(context.Background(), 8, MediaTypeMovie, "US")
	require.NoError(t, err)

	assert.Equal(t, []catalog.Title{
		{Name: "Dune", Year: "2021"},
		{Name: "Dune: Part Two", Year: "2024"},
	}, titles)
}

func TestFetchTitlesPaginates(t *testing.T) {
	server := discoverServer(t, map[int][]map[string]interface{}{
		1: {{"title": "Zodiac", "release_date": "2007-03-02"}},
		2: {{"title": "Alien", "release_date": "1979-05-25"}},
		3: {{"title": "Moon", "release_date": "2009-06-12"}},
	})
	defer server.Close()

	f := newTestFetcher(t, server.URL, 500)
	titles, err := f.FetchTitles(context.Background(), 8, MediaTypeMovie, "US")
	require.NoError(t, err)

	assert.Equal(t, []catalog.Title{
		{Name: "Alien", Year: "1979"},
		{Name: "Moon", Year: "2009"},
		{Name: "Zodiac", Year: "2007"},
	}, titles)
}

func TestFetchTitlesHonorsPageBudget(t *testing.T) {
	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"page":        1,
			"total_pages": 100,
			"results":     []map[string]interface{}{{"title": "Heat", "release_date": "1995-12-15"}},
		})
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL, 2)
	_, err := f.FetchTitles(context.Background(), 8, MediaTypeMovie, "US")
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, requested)
}

func TestBuildCatalogKeepsProviderOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var results []map[string]interface{}
		if r.URL.Path == "/discover/movie" {
			results = []map[string]interface{}{{"title": "Heat", "release_date": "1995-12-15"}}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"page":        1,
			"total_pages": 1,
			"results":     results,
		})
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL, 500)
	providers := []Provider{
		{ID: 337, Name: "Disney+"},
		{ID: 8, Name: "Netflix"},
	}

	cat, err := f.BuildCatalog(context.Background(), providers, "US")
	require.NoError(t, err)

	entries := cat.Providers()
	require.Len(t, entries, 2)
	assert.Equal(t, "Disney+", entries[0].Name)
	assert.Equal(t, "Netflix", entries[1].Name)
	assert.Equal(t, 1, entries[0].MovieCount())
	assert.Equal(t, 0, entries[0].ShowCount())
}

func TestBuildCatalogAbortsOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL, 500)
	_, err := f.BuildCatalog(context.Background(), []Provider{{ID: 8, Name: "Netflix"}}, "US")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
