// Package settings provides the persisted per-page view preference store.
//
// The package defines the [Store] interface which abstracts settings
// persistence. Two embedded backends are provided: BoltDB ([Bolt], the
// default) and SQLite ([SQLite]). Both keep, per page name, a small history
// of [model.ViewSettings] entries so that pagination moves are navigable
// (back/forward) while sort and page-size adjustments overwrite in place.
//
// Stores are constructed explicitly and injected into the page controllers;
// there is no package-level singleton.
package settings

import (
	"github.com/inovacc/curatr/internal/model"
)

// SaveMode distinguishes how a settings update changes the page history.
type SaveMode int

const (
	// Replace overwrites the current history entry. Used when only the sort
	// or the page size changed and the user logically stayed on the same page.
	Replace SaveMode = iota

	// Push records a new navigable history entry, discarding any forward
	// entries. Used when the pagination offset changed.
	Push
)

// maxHistoryEntries bounds the per-page history to keep records small.
const maxHistoryEntries = 100

// Store persists view settings per page name.
type Store interface {
	// Load returns the current settings for the page, or the defaults when
	// nothing has been persisted yet.
	Load(page string) (model.ViewSettings, error)

	// Save persists vs as the page's current settings using the given mode.
	Save(page string, vs model.ViewSettings, mode SaveMode) error

	// Back moves to the previously pushed entry. The second return is false
	// when there is no earlier entry.
	Back(page string) (model.ViewSettings, bool, error)

	// Forward undoes a Back. The second return is false when already at the
	// newest entry.
	Forward(page string) (model.ViewSettings, bool, error)

	// GetConfig returns the stored application configuration, or defaults.
	GetConfig() (*model.Config, error)

	// SaveConfig persists the application configuration.
	SaveConfig(cfg *model.Config) error

	Close() error
}

// history is the persisted record for one page: the settings entries in
// chronological order plus the index of the current one.
type history struct {
	Entries []model.ViewSettings `json:"entries"`
	Index   int                  `json:"index"`
}

func (h *history) current() (model.ViewSettings, bool) {
	if len(h.Entries) == 0 || h.Index < 0 || h.Index >= len(h.Entries) {
		return model.ViewSettings{}, false
	}

	return h.Entries[h.Index], true
}

// apply mutates the history according to the save mode and returns it for
// persistence. Shared by all backends so push/replace semantics cannot drift.
func (h *history) apply(vs model.ViewSettings, mode SaveMode) {
	if len(h.Entries) == 0 {
		h.Entries = []model.ViewSettings{vs}
		h.Index = 0

		return
	}

	switch mode {
	case Push:
		h.Entries = append(h.Entries[:h.Index+1], vs)
		h.Index = len(h.Entries) - 1

		if len(h.Entries) > maxHistoryEntries {
			drop := len(h.Entries) - maxHistoryEntries
			h.Entries = h.Entries[drop:]
			h.Index -= drop
		}
	case Replace:
		h.Entries[h.Index] = vs
	}
}

func (h *history) back() (model.ViewSettings, bool) {
	if h.Index <= 0 {
		return model.ViewSettings{}, false
	}

	h.Index--

	return h.Entries[h.Index], true
}

func (h *history) forward() (model.ViewSettings, bool) {
	if h.Index+1 >= len(h.Entries) {
		return model.ViewSettings{}, false
	}

	h.Index++

	return h.Entries[h.Index], true
}
