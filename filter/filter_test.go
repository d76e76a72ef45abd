package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midwife-middleware/showbook/catalog"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{
			name:       "valid expression",
			expression: `Year >= 2000`,
			wantErr:    false,
		},
		{
			name:       "empty expression",
			expression: "",
			wantErr:    true,
		},
		{
			name:       "blank expression",
			expression: "   ",
			wantErr:    true,
		},
		{
			name:       "invalid syntax",
			expression: `contains("unclosed`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `Year >= 1990 and contains(Name, "star")`,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestCompileEmptyIsSentinel(t *testing.T) {
	_, err := Compile("")
	assert.ErrorIs(t, err, ErrEmptyExpression)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		title      catalog.Title
		want       bool
	}{
		{
			name:       "year comparison",
			expression: `Year >= 2000`,
			title:      catalog.Title{Name: "Dune", Year: "2021"},
			want:       true,
		},
		{
			name:       "year comparison fails",
			expression: `Year >= 2000`,
			title:      catalog.Title{Name: "Heat", Year: "1995"},
			want:       false,
		},
		{
			name:       "unknown year is zero",
			expression: `Year == 0`,
			title:      catalog.Title{Name: "Lost Film"},
			want:       true,
		},
		{
			name:       "contains is case-insensitive",
			expression: `contains(Name, "dune")`,
			title:      catalog.Title{Name: "Dune: Part Two", Year: "2024"},
			want:       true,
		},
		{
			name:       "name equality",
			expression: `Name == "Heat"`,
			title:      catalog.Title{Name: "Heat", Year: "1995"},
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Match(tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	cat := catalog.New()
	cat.Append(catalog.ProviderEntry{
		Name: "Netflix",
		Movies: []catalog.Title{
			{Name: "Heat", Year: "1995"},
			{Name: "Dune", Year: "2021"},
		},
		Shows: []catalog.Title{{Name: "Severance", Year: "2022"}},
	})
	cat.Append(catalog.ProviderEntry{
		Name:   "Hulu",
		Movies: []catalog.Title{{Name: "Alien", Year: "1979"}},
		Shows:  []catalog.Title{},
	})

	f, err := Compile(`Year >= 2000`)
	require.NoError(t, err)

	got, err := Apply(cat, f)
	require.NoError(t, err)

	entries := got.Providers()
	require.Len(t, entries, 2, "provider order and presence must survive filtering")
	assert.Equal(t, "Netflix", entries[0].Name)
	assert.Equal(t, []catalog.Title{{Name: "Dune", Year: "2021"}}, entries[0].Movies)
	assert.Equal(t, []catalog.Title{{Name: "Severance", Year: "2022"}}, entries[0].Shows)
	assert.Equal(t, "Hulu", entries[1].Name)
	assert.Empty(t, entries[1].Movies)
}
