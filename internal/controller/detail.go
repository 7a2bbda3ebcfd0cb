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
)

// DetailSnapshot is the published state of the model detail page.
type DetailSnapshot struct {
	Model    model.ModelItem
	Versions []model.ModelVersion
	Loading  bool

	// NotFound is set when the initial load reported a missing model.
	NotFound bool

	// FetchFailed is set when the initial load failed for any other reason.
	FetchFailed bool
}

// ErrorMessage returns the page-level error text, or "" when the page
// loaded.
func (s DetailSnapshot) ErrorMessage(modelID int) string {
	switch {
	case s.NotFound:
		return fmt.Sprintf("Unable to find model %d", modelID)
	case s.FetchFailed:
		return fmt.Sprintf("Unable to fetch model %d", modelID)
	default:
		return ""
	}
}

// DetailControllerOptions configures a DetailController.
type DetailControllerOptions struct {
	Logger   *slog.Logger
	Notifier notify.Notifier

	// NavigateAway is invoked after the model itself is deleted. The call is
	// made after issuing the delete, without waiting for a refresh.
	NavigateAway func()
}

// DetailController owns a single model's versions collection.
type DetailController struct {
	modelID  int
	api      registry.API
	notifier notify.Notifier
	logger   *slog.Logger
	navigate func()

	mu       sync.Mutex
	seq      uint64
	loaded   bool
	item     model.ModelItem
	versions []model.ModelVersion
	loading  bool
	notFound bool
	fetchErr bool
	subs     []func(DetailSnapshot)
}

// NewDetailController creates the detail page controller for one model.
func NewDetailController(api registry.API, modelID int, opts DetailControllerOptions) *DetailController {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewSlog(logger)
	}

	navigate := opts.NavigateAway
	if navigate == nil {
		navigate = func() {}
	}

	return &DetailController{
		modelID:  modelID,
		api:      api,
		notifier: notifier,
		logger:   logger,
		navigate: navigate,
	}
}

// ModelID returns the model this page shows.
func (c *DetailController) ModelID() int {
	return c.modelID
}

// Subscribe registers fn to receive every published snapshot.
func (c *DetailController) Subscribe(fn func(DetailSnapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subs = append(c.subs, fn)
}

// Snapshot returns the current published state.
func (c *DetailController) Snapshot() DetailSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Refresh runs the shared fetch routine. On the initial load a missing
// model marks the page not-found and any other failure marks it
// fetch-failed; once loaded, failures are silent and stale data stays
// displayed.
func (c *DetailController) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading = true
	c.mu.Unlock()

	c.publish()

	detail, err := c.api.GetModel(ctx, c.modelID)

	c.mu.Lock()

	if seq != c.seq {
		c.mu.Unlock()

		return
	}

	c.loading = false

	if err != nil {
		initial := !c.loaded

		if registry.IsAborted(err) {
			c.mu.Unlock()

			return
		}

		if initial {
			c.notFound = registry.IsNotFound(err)
			c.fetchErr = !c.notFound
			c.mu.Unlock()

			c.logger.Debug("initial detail load failed",
				slog.Int("model_id", c.modelID),
				slog.String("error", err.Error()),
			)
			c.publish()

			return
		}

		c.mu.Unlock()

		c.notifier.Error("unable to refresh model", err)
		c.publish()

		return
	}

	c.loaded = true
	c.notFound = false
	c.fetchErr = false

	if !reflect.DeepEqual(detail.Model, c.item) {
		c.item = detail.Model
	}

	if !reflect.DeepEqual(detail.Versions, c.versions) {
		c.versions = detail.Versions
	}

	c.mu.Unlock()

	c.publish()
}

// UpdateDescription patches the model description, then re-fetches.
func (c *DetailController) UpdateDescription(ctx context.Context, description string) {
	c.mutate(ctx, "unable to update description", func() error {
		return c.api.PatchModel(ctx, c.modelID, registry.PatchModelRequest{Description: &description})
	})
}

// UpdateLabels replaces the model labels, then re-fetches.
func (c *DetailController) UpdateLabels(ctx context.Context, labels []string) {
	c.mutate(ctx, "unable to update labels", func() error {
		return c.api.PatchModel(ctx, c.modelID, registry.PatchModelRequest{Labels: labels})
	})
}

// UpdateMetadata replaces the model metadata, then re-fetches.
func (c *DetailController) UpdateMetadata(ctx context.Context, metadata map[string]any) {
	c.mutate(ctx, "unable to update metadata", func() error {
		return c.api.PatchModel(ctx, c.modelID, registry.PatchModelRequest{Metadata: metadata})
	})
}

// UpdateVersionLabels replaces one version's labels, then re-fetches.
func (c *DetailController) UpdateVersionLabels(ctx context.Context, versionID int, labels []string) {
	c.mutate(ctx, "unable to update version labels", func() error {
		return c.api.PatchModelVersion(ctx, c.modelID, versionID, registry.PatchVersionRequest{Labels: labels})
	})
}

// DeleteVersion removes one version, then re-fetches.
func (c *DetailController) DeleteVersion(ctx context.Context, versionID int) {
	c.mutate(ctx, "unable to delete version", func() error {
		return c.api.DeleteModelVersion(ctx, c.modelID, versionID)
	})
}

// DeleteModel removes the model itself and navigates away immediately,
// without waiting for confirmation of success.
func (c *DetailController) DeleteModel(ctx context.Context) {
	if err := c.api.DeleteModel(ctx, c.modelID); err != nil && !registry.IsAborted(err) {
		c.notifier.Error("unable to delete model", err)
	}

	c.navigate()
}

func (c *DetailController) mutate(ctx context.Context, message string, fn func() error) {
	if err := fn(); err != nil && !registry.IsAborted(err) {
		c.notifier.Error(message, err)
	}

	c.Refresh(ctx)
}

func (c *DetailController) snapshotLocked() DetailSnapshot {
	return DetailSnapshot{
		Model:       c.item,
		Versions:    c.versions,
		Loading:     c.loading,
		NotFound:    c.notFound,
		FetchFailed: c.fetchErr,
	}
}

func (c *DetailController) publish() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	subs := slices.Clone(c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
