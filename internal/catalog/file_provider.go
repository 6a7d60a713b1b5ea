// Healthrec - Health Item and Medicine Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/healthrec

package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/healthrec/internal/logging"
	"github.com/tomtom215/healthrec/internal/recommend"
)

// ErrNoPath indicates a FileProvider without a path.
var ErrNoPath = errors.New("catalog: file path is required")

// document is the on-disk layout of a YAML catalog.
type document struct {
	Items     []map[string]any `yaml:"items"`
	Medicines []map[string]any `yaml:"medicines"`
}

// FileProvider reads the catalog from a YAML file. The parsed catalog is
// cached until the file's modification time or size changes.
type FileProvider struct {
	path string

	mu        sync.Mutex
	modTime   time.Time
	size      int64
	items     []recommend.Item
	medicines []recommend.Medicine
}

// NewFileProvider creates a provider for the YAML file at path.
func NewFileProvider(path string) (*FileProvider, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	return &FileProvider{path: path}, nil
}

// Path returns the catalog file path.
func (p *FileProvider) Path() string {
	return p.path
}

// Items returns the catalog items.
func (p *FileProvider) Items(ctx context.Context) ([]recommend.Item, error) {
	if err := p.load(ctx); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recommend.Item(nil), p.items...), nil
}

// Medicines returns the catalog medicines.
func (p *FileProvider) Medicines(ctx context.Context) ([]recommend.Medicine, error) {
	if err := p.load(ctx); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recommend.Medicine{}, p.medicines...), nil
}

// load parses the file unless the cached copy is current.
func (p *FileProvider) load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(p.path)
	if err != nil {
		return fmt.Errorf("stat catalog %s: %w", p.path, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.items != nil && info.ModTime().Equal(p.modTime) && info.Size() == p.size {
		return nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", p.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse catalog %s: %w", p.path, err)
	}

	items := []recommend.Item{}
	if len(doc.Items) > 0 {
		items, err = recommend.ItemsFromTable(recommend.TableFromRecords(doc.Items))
		if err != nil {
			return fmt.Errorf("catalog %s: %w", p.path, err)
		}
	}
	medicines := []recommend.Medicine{}
	if len(doc.Medicines) > 0 {
		medicines, err = recommend.MedicinesFromTable(recommend.TableFromRecords(doc.Medicines))
		if err != nil {
			return fmt.Errorf("catalog %s: %w", p.path, err)
		}
	}

	p.items = items
	p.medicines = medicines
	p.modTime = info.ModTime()
	p.size = info.Size()

	logging.Debug().
		Str("path", p.path).
		Int("items", len(items)).
		Int("medicines", len(medicines)).
		Msg("YAML catalog parsed")
	return nil
}

var _ recommend.CatalogProvider = (*FileProvider)(nil)
