// Package model defines the data structures used throughout Curatr.
//
// This package contains the core domain models that represent the registry
// entities browsed by the console. These models are used by the registry
// client, the page controllers and the settings layer, with JSON conversions
// handled at the edges.
//
// # ModelItem
//
// The [ModelItem] struct represents one registry entry (a family of trained
// artifact versions):
//
//	type ModelItem struct {
//	    ID              int       // Registry-assigned identifier
//	    Name            string    // Display name
//	    Description     string    // Free-form description
//	    NumVersions     int       // Number of registered versions
//	    LastUpdatedTime time.Time // Last modification timestamp
//	    Labels          []string  // User-assigned labels
//	    Archived        bool      // Soft-hidden state
//	    Username        string    // Owning user
//	}
//
// # ViewSettings
//
// The [ViewSettings] struct holds the persisted per-page view preferences
// (sort key and direction, filter values, pagination window). It is the
// single source of truth for what a page shows: the sort indicator and the
// query sent to the registry are both derived from it.
package model
