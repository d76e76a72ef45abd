package tmdb

// Media types understood by the discover endpoint
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// DiscoverQuery describes one page of a discover request
type DiscoverQuery struct {
	MediaType  string
	ProviderID int64
	Region     string
	Page       int
}

// DiscoverPage is one page of discover results
type DiscoverPage struct {
	Page         int              `json:"page"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
	Results      []DiscoverResult `json:"results"`
}

// DiscoverResult is a single discover result item. Movies carry title and
// release_date, shows carry name and first_air_date.
type DiscoverResult struct {
	Title        string `json:"title"`
	Name         string `json:"name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
}

// DisplayName returns the item's title, falling back to "Unknown" when the
// API returns neither field.
func (r DiscoverResult) DisplayName() string {
	if r.Title != "" {
		return r.Title
	}
	if r.Name != "" {
		return r.Name
	}
	return "Unknown"
}

// Year returns the 4-digit release year, or "" when unknown.
func (r DiscoverResult) Year() string {
	release := r.ReleaseDate
	if release == "" {
		release = r.FirstAirDate
	}
	if len(release) >= 4 {
		return release[:4]
	}
	return ""
}

// ProviderInfo describes one watch provider available in a region
type ProviderInfo struct {
	ID          int64  `json:"provider_id"`
	DisplayName string `json:"provider_name"`
}

// watchProvidersResponse is the /watch/providers response envelope
type watchProvidersResponse struct {
	Results []ProviderInfo `json:"results"`
}

// Provider is one entry of the priority list the fetcher walks
type Provider struct {
	ID   int64
	Name string
}
