package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleJSON(t *testing.T) {
	tests := []struct {
		name  string
		title Title
		want  string
	}{
		{
			name:  "with year",
			title: Title{Name: "Dune", Year: "2021"},
			want:  `["Dune","2021"]`,
		},
		{
			name:  "without year",
			title: Title{Name: "Unknown"},
			want:  `["Unknown",null]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var back Title
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.title, back)
		})
	}
}

func TestTitleUnmarshalRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "object", data: `{"name":"Dune"}`},
		{name: "too short", data: `["Dune"]`},
		{name: "null name", data: `[null,"2021"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var title Title
			assert.Error(t, json.Unmarshal([]byte(tt.data), &title))
		})
	}
}

func TestSortTitles(t *testing.T) {
	titles := []Title{
		{Name: "zodiac"},
		{Name: "Alien"},
		{Name: "aftersun"},
		{Name: "Zodiac Killer"},
	}

	SortTitles(titles)

	var names []string
	for _, title := range titles {
		names = append(names, title.Name)
	}
	assert.Equal(t, []string{"aftersun", "Alien", "zodiac", "Zodiac Killer"}, names)
}

func TestCatalogCounts(t *testing.T) {
	cat := New()
	cat.Append(ProviderEntry{
		Name:   "Netflix",
		Movies: []Title{{Name: "Dune", Year: "2021"}, {Name: "Heat", Year: "1995"}},
		Shows:  []Title{},
	})
	cat.Append(ProviderEntry{
		Name:   "Hulu",
		Movies: []Title{{Name: "Alien", Year: "1979"}},
		Shows:  []Title{{Name: "Shogun", Year: "2024"}},
	})

	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, 3, cat.MovieCount())
	assert.Equal(t, 1, cat.ShowCount())
	assert.Equal(t, 4, cat.TitleCount())

	entries := cat.Providers()
	require.Len(t, entries, 2)
	assert.Equal(t, "Netflix", entries[0].Name)
	assert.Equal(t, 2, entries[0].MovieCount())
	assert.Equal(t, 0, entries[0].ShowCount())
	assert.Equal(t, 2, entries[0].TitleCount())
}

func TestTitleString(t *testing.T) {
	assert.Equal(t, "Dune (2021)", Title{Name: "Dune", Year: "2021"}.String())
	assert.Equal(t, "Dune", Title{Name: "Dune"}.String())
}
