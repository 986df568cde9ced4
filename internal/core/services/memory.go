// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// In-memory repository implementations. These are the default backing for
// the injected repository ports; the surrounding platform's SQL persistence
// is a collaborator outside this module's scope.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
)

// MemoryRecords is a mutex-guarded ProcessingRecord store.
type MemoryRecords struct {
	mu      sync.RWMutex
	records map[string]model.ProcessingRecord
}

// NewMemoryRecords creates an empty record store.
func NewMemoryRecords() *MemoryRecords {
	return &MemoryRecords{records: make(map[string]model.ProcessingRecord)}
}

// Create stores a new record.
func (r *MemoryRecords) Create(_ context.Context, record *model.ProcessingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.Id] = *record
	return nil
}

// Get returns a copy of the record with the given id.
func (r *MemoryRecords) Get(_ context.Context, id string) (*model.ProcessingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &record, nil
}

// Update merges the partial update into the stored record. Records in a
// terminal state are returned unchanged.
func (r *MemoryRecords) Update(_ context.Context, id string, update RecordUpdate) (*model.ProcessingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	if record.Status.IsTerminal() {
		return &record, nil
	}
	if update.Status != nil {
		record.Status = *update.Status
	}
	if update.PreviewUrl != nil {
		record.PreviewUrl = *update.PreviewUrl
	}
	if update.FinalUrl != nil {
		record.FinalUrl = *update.FinalUrl
	}
	if update.ErrorMessage != nil {
		record.ErrorMessage = *update.ErrorMessage
	}
	record.UpdatedAt = time.Now().UTC()
	r.records[id] = record
	return &record, nil
}

// MemoryContents is a mutex-guarded ContentItem store.
type MemoryContents struct {
	mu    sync.RWMutex
	items map[string]model.ContentItem
}

// NewMemoryContents creates an empty content store.
func NewMemoryContents() *MemoryContents {
	return &MemoryContents{items: make(map[string]model.ContentItem)}
}

// Put seeds a content item.
func (r *MemoryContents) Put(item *model.ContentItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.Id] = *item
}

// Get returns the content item with the given id.
func (r *MemoryContents) Get(_ context.Context, id string) (*model.ContentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

// MemorySegments stores analysis segments per content id.
type MemorySegments struct {
	mu       sync.RWMutex
	segments map[string][]*model.ContentSegment
}

// NewMemorySegments creates an empty segment store.
func NewMemorySegments() *MemorySegments {
	return &MemorySegments{segments: make(map[string][]*model.ContentSegment)}
}

// Put seeds the ordered segment list for a content id. Segments are
// immutable once produced, so Put replaces wholesale.
func (r *MemorySegments) Put(contentId string, segments []*model.ContentSegment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments[contentId] = segments
}

// GetByContent returns the ordered segments for a content id, or an empty
// slice when no analysis exists.
func (r *MemorySegments) GetByContent(_ context.Context, contentId string) ([]*model.ContentSegment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.segments[contentId], nil
}

// MemoryTemplates is a mutex-guarded Template store.
type MemoryTemplates struct {
	mu        sync.RWMutex
	templates map[string]model.Template
}

// NewMemoryTemplates creates an empty template store.
func NewMemoryTemplates() *MemoryTemplates {
	return &MemoryTemplates{templates: make(map[string]model.Template)}
}

// Put seeds a template.
func (r *MemoryTemplates) Put(template *model.Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[template.Id] = *template
}

// Get returns the template with the given id.
func (r *MemoryTemplates) Get(_ context.Context, id string) (*model.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	template, ok := r.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &template, nil
}

// MemoryBrandAssets is a mutex-guarded BrandAsset store.
type MemoryBrandAssets struct {
	mu     sync.RWMutex
	assets map[string]model.BrandAsset
}

// NewMemoryBrandAssets creates an empty asset store.
func NewMemoryBrandAssets() *MemoryBrandAssets {
	return &MemoryBrandAssets{assets: make(map[string]model.BrandAsset)}
}

// Put seeds a brand asset.
func (r *MemoryBrandAssets) Put(asset *model.BrandAsset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[asset.Id] = *asset
}

// Get returns the asset with the given id.
func (r *MemoryBrandAssets) Get(_ context.Context, id string) (*model.BrandAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	asset, ok := r.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &asset, nil
}
