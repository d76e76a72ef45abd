package catalog

// Catalog is the ordered set of provider catalogs for one run. Provider
// order follows the configured priority list, not alphabetical order, and
// is preserved through caching and rendering. A catalog is built once by
// the fetcher (or loaded from a snapshot) and consumed read-only.
type Catalog struct {
	entries []ProviderEntry
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Append adds a provider entry at the end of the catalog.
func (c *Catalog) Append(e ProviderEntry) {
	c.entries = append(c.entries, e)
}

// Providers returns the entries in catalog order.
func (c *Catalog) Providers() []ProviderEntry {
	return c.entries
}

// Len returns the number of providers.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// MovieCount returns the total movie count across all providers.
func (c *Catalog) MovieCount() int {
	var n int
	for _, e := range c.entries {
		n += e.MovieCount()
	}
	return n
}

// ShowCount returns the total show count across all providers.
func (c *Catalog) ShowCount() int {
	var n int
	for _, e := range c.entries {
		n += e.ShowCount()
	}
	return n
}

// TitleCount returns the grand total of titles across all providers.
func (c *Catalog) TitleCount() int {
	return c.MovieCount() + c.ShowCount()
}
