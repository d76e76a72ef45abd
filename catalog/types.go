package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Title is a single movie or show as it appears in the book.
type Title struct {
	Name string
	Year string // 4-digit year, empty when unknown
}

// String formats the title the way it is printed in a section list.
func (t Title) String() string {
	if t.Year == "" {
		return t.Name
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Year)
}

// MarshalJSON encodes the title as a [name, year-or-null] pair, the shape
// used by cache snapshots.
func (t Title) MarshalJSON() ([]byte, error) {
	pair := [2]interface{}{t.Name, nil}
	if t.Year != "" {
		pair[1] = t.Year
	}
	return json.Marshal(pair)
}

// UnmarshalJSON decodes a [name, year-or-null] pair.
func (t *Title) UnmarshalJSON(data []byte) error {
	var pair []*string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("title must be a [name, year] pair: %w", err)
	}
	if len(pair) != 2 || pair[0] == nil {
		return fmt.Errorf("title must be a [name, year] pair, got %s", string(data))
	}
	t.Name = *pair[0]
	t.Year = ""
	if pair[1] != nil {
		t.Year = *pair[1]
	}
	return nil
}

// SortKey returns the case-insensitive ordering and deduplication key for a
// title name.
func SortKey(name string) string {
	return strings.ToLower(name)
}

// SortTitles orders titles alphabetically, case-insensitively, by name.
func SortTitles(titles []Title) {
	sort.SliceStable(titles, func(i, j int) bool {
		return SortKey(titles[i].Name) < SortKey(titles[j].Name)
	})
}

// ProviderEntry holds one streaming provider's catalog. Category labels are
// fixed: Movies and Shows.
type ProviderEntry struct {
	Name   string
	Movies []Title
	Shows  []Title
}

// MovieCount returns the number of movies in the entry.
func (e ProviderEntry) MovieCount() int { return len(e.Movies) }

// ShowCount returns the number of shows in the entry.
func (e ProviderEntry) ShowCount() int { return len(e.Shows) }

// TitleCount returns the total number of titles in the entry.
func (e ProviderEntry) TitleCount() int { return len(e.Movies) + len(e.Shows) }
