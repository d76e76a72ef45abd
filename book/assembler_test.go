package book

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midwife-middleware/showbook/catalog"
)

func kdpGeometry() Geometry {
	return Geometry{
		TrimWidth:    152.4,
		TrimHeight:   228.6,
		TopMargin:    16,
		BottomMargin: 16,
		OuterMargin:  12.7,
		GutterMargin: 19.05,
	}
}

func testEdition() time.Time {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
}

func TestBuildSingleProviderBook(t *testing.T) {
	cat := catalog.New()
	cat.Append(catalog.ProviderEntry{
		Name: "Netflix",
		Movies: []catalog.Title{
			{Name: "Dune", Year: "2021"},
			{Name: "Heat", Year: "1995"},
		},
		Shows: []catalog.Title{},
	})

	b := NewBuilder(kdpGeometry(), VariantStandard, 828, testEdition(), zerolog.Nop())
	b.Build(cat)

	// title, index, Netflix section, colophon
	assert.Equal(t, 4, b.Engine().PageCount())

	// the index is computed from the rendered catalog itself
	assert.Equal(t, 2, cat.MovieCount())
	assert.Equal(t, 0, cat.ShowCount())

	var buf bytes.Buffer
	require.NoError(t, b.WriteTo(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output is not a PDF")
}

func TestBuildPadsToEvenLeafCount(t *testing.T) {
	cat := catalog.New()
	for _, name := range []string{"Netflix", "Hulu"} {
		cat.Append(catalog.ProviderEntry{
			Name:   name,
			Movies: []catalog.Title{{Name: "Alien", Year: "1979"}},
			Shows:  []catalog.Title{},
		})
	}

	b := NewBuilder(kdpGeometry(), VariantKDP, 828, testEdition(), zerolog.Nop())
	b.Build(cat)

	// title, index, two sections, colophon = 5, padded to 6
	assert.Equal(t, 6, b.Engine().PageCount())
	assert.Zero(t, b.Engine().PageCount()%2)
}

func TestBuildLongSectionSpansPages(t *testing.T) {
	movies := make([]catalog.Title, 500)
	for i := range movies {
		movies[i] = catalog.Title{Name: fmt.Sprintf("Movie %03d", i), Year: "2001"}
	}

	cat := catalog.New()
	cat.Append(catalog.ProviderEntry{Name: "Netflix", Movies: movies, Shows: []catalog.Title{}})

	b := NewBuilder(kdpGeometry(), VariantKDP, 828, testEdition(), zerolog.Nop())
	b.Build(cat)

	pages := b.Engine().PageCount()
	assert.Greater(t, pages, 6, "500 titles should overflow the section across pages")
	assert.Zero(t, pages%2)
}

func TestEmptyCatalogStillProducesBook(t *testing.T) {
	b := NewBuilder(kdpGeometry(), VariantStandard, 828, testEdition(), zerolog.Nop())
	b.Build(catalog.New())

	// title, index, colophon, pad
	assert.Equal(t, 4, b.Engine().PageCount())

	var buf bytes.Buffer
	require.NoError(t, b.WriteTo(&buf))
}

func TestPageCeilingWarningIsAdvisory(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	cat := catalog.New()
	cat.Append(catalog.ProviderEntry{
		Name:   "Netflix",
		Movies: []catalog.Title{{Name: "Dune", Year: "2021"}},
		Shows:  []catalog.Title{},
	})

	b := NewBuilder(kdpGeometry(), VariantKDP, 2, testEdition(), logger)
	b.Build(cat)

	var buf bytes.Buffer
	require.NoError(t, b.WriteTo(&buf), "exceeding the ceiling must not fail the build")
	assert.Contains(t, logs.String(), "ceiling")
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
