package model

// Sort keys accepted by the registry list endpoint.
const (
	SortByID          = "id"
	SortByName        = "name"
	SortByDescription = "description"
	SortByNumVersions = "num_versions"
	SortByLastUpdated = "last_updated_time"
)

// DefaultPageLimit is the page size used when no setting has been persisted.
const DefaultPageLimit = 20

// ViewSettings holds the persisted view preferences for one console page.
// Every filter, sort and pagination interaction mutates a copy of this
// struct, persists it, and re-queries the registry from it. The table never
// sorts or filters client-side.
type ViewSettings struct {
	// SortKey is one of the SortBy* constants
	SortKey string `json:"sort_key"`

	// SortDesc orders the sort descending when true
	SortDesc bool `json:"sort_desc"`

	// Name filters by name substring
	Name string `json:"name,omitempty"`

	// Description filters by description substring
	Description string `json:"description,omitempty"`

	// Labels filters to models carrying any of these labels
	Labels []string `json:"labels,omitempty"`

	// Users filters to models owned by any of these users
	Users []string `json:"users,omitempty"`

	// Archived includes archived models when true
	Archived bool `json:"archived"`

	// Offset is the pagination offset in records
	Offset int `json:"offset"`

	// Limit is the page size in records
	Limit int `json:"limit"`
}

// DefaultViewSettings returns the settings used before any preference has
// been persisted for a page: newest models first, one default page.
func DefaultViewSettings() ViewSettings {
	return ViewSettings{
		SortKey:  SortByLastUpdated,
		SortDesc: true,
		Limit:    DefaultPageLimit,
	}
}
