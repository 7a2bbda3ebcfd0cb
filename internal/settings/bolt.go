package settings

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/inovacc/curatr/internal/model"
	"go.etcd.io/bbolt"
)

const (
	boltBucketSettings = "view_settings" // key: page name -> history JSON
	boltBucketConfig   = "config"        // key: "config" -> Config JSON
)

// Bolt is the BoltDB-backed settings store.
type Bolt struct {
	storage *bbolt.DB
}

var _ Store = (*Bolt)(nil)

// NewBolt creates a new Bolt settings store at the specified path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucketSettings)); err != nil {
			return err
		}

		if _, err := tx.CreateBucketIfNotExists([]byte(boltBucketConfig)); err != nil {
			return err
		}

		return nil
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

// Load returns the current settings for the page, or defaults when unset.
func (b *Bolt) Load(page string) (model.ViewSettings, error) {
	var h history

	if err := b.loadHistory(page, &h); err != nil {
		return model.ViewSettings{}, err
	}

	if vs, ok := h.current(); ok {
		return vs, nil
	}

	return model.DefaultViewSettings(), nil
}

// Save persists vs as the page's current settings using the given mode.
func (b *Bolt) Save(page string, vs model.ViewSettings, mode SaveMode) error {
	var h history

	if err := b.loadHistory(page, &h); err != nil {
		return err
	}

	h.apply(vs, mode)

	return b.saveHistory(page, &h)
}

// Back moves to the previously pushed entry for the page.
func (b *Bolt) Back(page string) (model.ViewSettings, bool, error) {
	return b.step(page, (*history).back)
}

// Forward undoes a Back for the page.
func (b *Bolt) Forward(page string) (model.ViewSettings, bool, error) {
	return b.step(page, (*history).forward)
}

func (b *Bolt) step(page string, move func(*history) (model.ViewSettings, bool)) (model.ViewSettings, bool, error) {
	var h history

	if err := b.loadHistory(page, &h); err != nil {
		return model.ViewSettings{}, false, err
	}

	vs, ok := move(&h)
	if !ok {
		return model.ViewSettings{}, false, nil
	}

	if err := b.saveHistory(page, &h); err != nil {
		return model.ViewSettings{}, false, err
	}

	return vs, true, nil
}

// GetConfig returns the stored application configuration, or defaults.
func (b *Bolt) GetConfig() (*model.Config, error) {
	var cfg *model.Config

	err := b.storage.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(boltBucketConfig)).Get([]byte("config"))
		if raw == nil {
			return nil
		}

		cfg = &model.Config{}

		return json.Unmarshal(raw, cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg == nil {
		def := model.DefaultConfig()
		cfg = &def
	}

	return cfg, nil
}

// SaveConfig persists the application configuration.
func (b *Bolt) SaveConfig(cfg *model.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketConfig)).Put([]byte("config"), raw)
	})
}

func (b *Bolt) loadHistory(page string, h *history) error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(boltBucketSettings)).Get([]byte(page))
		if raw == nil {
			return nil
		}

		if err := json.Unmarshal(raw, h); err != nil {
			return fmt.Errorf("decode settings for page %q: %w", page, err)
		}

		return nil
	})
}

func (b *Bolt) saveHistory(page string, h *history) error {
	raw, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode settings for page %q: %w", page, err)
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSettings)).Put([]byte(page), raw)
	})
}
