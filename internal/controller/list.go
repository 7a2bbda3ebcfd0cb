package controller

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/inovacc/curatr/internal/model"
	"github.com/inovacc/curatr/internal/notify"
	"github.com/inovacc/curatr/internal/registry"
	"github.com/inovacc/curatr/internal/settings"
)

// ListPage is the settings-store page name for the model list.
const ListPage = "models"

// Table column identifiers reported by the list page. Unknown identifiers
// are ignored by SortBy.
var listSortColumns = map[string]string{
	"id":          model.SortByID,
	"name":        model.SortByName,
	"description": model.SortByDescription,
	"versions":    model.SortByNumVersions,
	"lastUpdated": model.SortByLastUpdated,
}

// OrderDescend is the descending sort order as reported by the table
// component; every other value maps to ascending.
const OrderDescend = "descend"

// ListSnapshot is the published state of the list page.
type ListSnapshot struct {
	Settings model.ViewSettings
	Models   []model.ModelItem
	Total    int
	Loading  bool
}

// ListControllerOptions configures a ListController.
type ListControllerOptions struct {
	Logger   *slog.Logger
	Notifier notify.Notifier

	// Page overrides the settings-store page name, mainly for tests.
	Page string
}

// ListController keeps the remote list query, the displayed table state and
// the persisted settings mutually consistent, with the persisted settings as
// the single source of truth.
type ListController struct {
	page     string
	api      registry.API
	store    settings.Store
	notifier notify.Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	seq      uint64
	settings model.ViewSettings
	models   []model.ModelItem
	total    int
	loading  bool
	subs     []func(ListSnapshot)
}

// NewListController creates the list page controller, restoring the page's
// persisted view settings.
func NewListController(api registry.API, store settings.Store, opts ListControllerOptions) (*ListController, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewSlog(logger)
	}

	page := opts.Page
	if page == "" {
		page = ListPage
	}

	vs, err := store.Load(page)
	if err != nil {
		return nil, fmt.Errorf("load settings for page %q: %w", page, err)
	}

	return &ListController{
		page:     page,
		api:      api,
		store:    store,
		notifier: notifier,
		logger:   logger,
		settings: vs,
	}, nil
}

// Subscribe registers fn to receive every published snapshot.
func (c *ListController) Subscribe(fn func(ListSnapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subs = append(c.subs, fn)
}

// Snapshot returns the current published state.
func (c *ListController) Snapshot() ListSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Settings returns the current view settings.
func (c *ListController) Settings() model.ViewSettings {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.settings
}

// SetNameFilter filters the list by name substring. Clearing the filter
// resets the pagination offset.
func (c *ListController) SetNameFilter(ctx context.Context, name string) error {
	return c.update(ctx, func(vs *model.ViewSettings) {
		vs.Name = name
		if name == "" {
			vs.Offset = 0
		}
	})
}

// SetDescriptionFilter filters the list by description substring.
func (c *ListController) SetDescriptionFilter(ctx context.Context, description string) error {
	return c.update(ctx, func(vs *model.ViewSettings) {
		vs.Description = description
		if description == "" {
			vs.Offset = 0
		}
	})
}

// SetLabelFilter filters the list to models carrying any of the labels.
func (c *ListController) SetLabelFilter(ctx context.Context, labels []string) error {
	return c.update(ctx, func(vs *model.ViewSettings) {
		vs.Labels = slices.Clone(labels)
		if len(labels) == 0 {
			vs.Offset = 0
		}
	})
}

// SetUserFilter filters the list to models owned by any of the users.
func (c *ListController) SetUserFilter(ctx context.Context, users []string) error {
	return c.update(ctx, func(vs *model.ViewSettings) {
		vs.Users = slices.Clone(users)
		if len(users) == 0 {
			vs.Offset = 0
		}
	})
}

// SetArchived toggles inclusion of archived models. Returning to the
// default (hidden) resets the pagination offset.
func (c *ListController) SetArchived(ctx context.Context, archived bool) error {
	return c.update(ctx, func(vs *model.ViewSettings) {
		vs.Archived = archived
		if !archived {
			vs.Offset = 0
		}
	})
}

// SetPage moves the pagination window to the given offset. Other filters are
// left untouched.
func (c *ListController) SetPage(ctx context.Context, offset int) error {
	if offset < 0 {
		offset = 0
	}

	return c.update(ctx, func(vs *model.ViewSettings) {
		vs.Offset = offset
	})
}

// SetPageSize changes the page size without moving the offset or touching
// other filters.
func (c *ListController) SetPageSize(ctx context.Context, limit int) error {
	if limit <= 0 {
		limit = model.DefaultPageLimit
	}

	return c.update(ctx, func(vs *model.ViewSettings) {
		vs.Limit = limit
	})
}

// SortBy records a column-header interaction. The column identifier is
// mapped to its sort key; order "descend" sorts descending, anything else
// ascending. An unrecognized column identifier is a no-op.
func (c *ListController) SortBy(ctx context.Context, column, order string) error {
	key, ok := listSortColumns[column]
	if !ok {
		return nil
	}

	return c.update(ctx, func(vs *model.ViewSettings) {
		vs.SortKey = key
		vs.SortDesc = order == OrderDescend
	})
}

// Back restores the previously pushed settings entry and re-fetches with it.
func (c *ListController) Back(ctx context.Context) error {
	return c.navigateHistory(ctx, c.store.Back)
}

// Forward undoes a Back.
func (c *ListController) Forward(ctx context.Context) error {
	return c.navigateHistory(ctx, c.store.Forward)
}

func (c *ListController) navigateHistory(ctx context.Context, move func(string) (model.ViewSettings, bool, error)) error {
	vs, ok, err := move(c.page)
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	c.mu.Lock()
	c.settings = vs
	c.mu.Unlock()

	c.Refresh(ctx)

	return nil
}

// update mutates a copy of the settings, persists it and triggers exactly
// one re-fetch. An offset change is recorded as a new navigable history
// entry; anything else replaces the current entry.
func (c *ListController) update(ctx context.Context, mutate func(*model.ViewSettings)) error {
	c.mu.Lock()
	vs := c.settings
	mutate(&vs)

	mode := settings.Replace
	if vs.Offset != c.settings.Offset {
		mode = settings.Push
	}
	c.mu.Unlock()

	if err := c.store.Save(c.page, vs, mode); err != nil {
		return fmt.Errorf("save settings for page %q: %w", c.page, err)
	}

	c.mu.Lock()
	c.settings = vs
	c.mu.Unlock()

	c.Refresh(ctx)

	return nil
}

// Refresh runs the shared fetch routine: the current settings become the
// query, the newest response wins, and a result deeply equal to the held
// collection keeps the existing slice.
func (c *ListController) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	req := listRequest(c.settings)
	c.loading = true
	c.mu.Unlock()

	c.publish()

	resp, err := c.api.ListModels(ctx, req)

	c.mu.Lock()

	if seq != c.seq {
		// A newer fetch has been issued; this response is stale.
		c.mu.Unlock()

		return
	}

	c.loading = false

	if err != nil {
		c.mu.Unlock()

		if registry.IsAborted(err) {
			return
		}

		c.notifier.Error("unable to fetch models", err)
		c.publish()

		return
	}

	if !reflect.DeepEqual(resp.Models, c.models) {
		c.models = resp.Models
	}

	c.total = resp.Total
	c.mu.Unlock()

	c.publish()
}

// Archive soft-hides a model, then re-fetches the authoritative list.
func (c *ListController) Archive(ctx context.Context, id int) {
	c.mutate(ctx, "unable to archive model", func() error {
		return c.api.ArchiveModel(ctx, id)
	})
}

// Unarchive restores an archived model, then re-fetches.
func (c *ListController) Unarchive(ctx context.Context, id int) {
	c.mutate(ctx, "unable to unarchive model", func() error {
		return c.api.UnarchiveModel(ctx, id)
	})
}

// ToggleArchive archives or unarchives depending on the item's current
// state.
func (c *ListController) ToggleArchive(ctx context.Context, item model.ModelItem) {
	if item.Archived {
		c.Unarchive(ctx, item.ID)
	} else {
		c.Archive(ctx, item.ID)
	}
}

// DeleteModel removes a model, then re-fetches.
func (c *ListController) DeleteModel(ctx context.Context, id int) {
	c.mutate(ctx, "unable to delete model", func() error {
		return c.api.DeleteModel(ctx, id)
	})
}

// mutate runs a fire-and-forget action followed by an unconditional
// re-fetch. Failures go to the silent notification channel; the previous
// authoritative data stays in place.
func (c *ListController) mutate(ctx context.Context, message string, fn func() error) {
	if err := fn(); err != nil && !registry.IsAborted(err) {
		c.notifier.Error(message, err)
	}

	c.Refresh(ctx)
}

func (c *ListController) snapshotLocked() ListSnapshot {
	return ListSnapshot{
		Settings: c.settings,
		Models:   c.models,
		Total:    c.total,
		Loading:  c.loading,
	}
}

func (c *ListController) publish() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	subs := slices.Clone(c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// listRequest derives the exact remote query from the view settings.
func listRequest(vs model.ViewSettings) registry.ListModelsRequest {
	return registry.ListModelsRequest{
		Archived:    vs.Archived,
		Name:        vs.Name,
		Description: vs.Description,
		Labels:      vs.Labels,
		Users:       vs.Users,
		SortKey:     vs.SortKey,
		SortDesc:    vs.SortDesc,
		Limit:       vs.Limit,
		Offset:      vs.Offset,
	}
}
