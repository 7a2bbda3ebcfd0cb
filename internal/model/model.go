package model

import "time"

// ModelItem represents a registry model entry.
type ModelItem struct {
	// ID is the registry-assigned identifier
	ID int `json:"id"`

	// Name is the display name of the model
	Name string `json:"name"`

	// Description is a free-form description
	Description string `json:"description"`

	// NumVersions is the number of versions registered under this model
	NumVersions int `json:"num_versions"`

	// LastUpdatedTime is the last modification timestamp
	LastUpdatedTime time.Time `json:"last_updated_time"`

	// Labels are the user-assigned labels
	Labels []string `json:"labels,omitempty"`

	// Archived marks the model as soft-hidden
	Archived bool `json:"archived"`

	// Username is the owning user
	Username string `json:"username"`
}

// ModelVersion represents an immutable version snapshot registered under a model.
type ModelVersion struct {
	ID              int            `json:"id"`
	Version         int            `json:"version"`
	Name            string         `json:"name"`
	Notes           string         `json:"notes,omitempty"`
	Labels          []string       `json:"labels,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	LastUpdatedTime time.Time      `json:"last_updated_time"`

	// Username is the uploader of this version, which may differ
	// from the owning user of the parent model.
	Username string `json:"username"`

	// ModelID references the parent model
	ModelID int `json:"model_id"`
}

// User identifies the acting console user.
type User struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}
