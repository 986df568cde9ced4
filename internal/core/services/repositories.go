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

// Package services contains the business logic of the render platform.
// This file defines the repository ports the pipeline reads and writes
// through. Every entity type gets its own narrow interface so the state
// machine depends on abstract contracts rather than a process-wide table
// store; in-memory implementations live in memory.go.
package services

import (
	"context"
	"errors"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
)

// ErrNotFound is returned by repository lookups for unknown identifiers.
var ErrNotFound = errors.New("not found")

// RecordUpdate is a partial update of a ProcessingRecord. Nil fields are
// left untouched; the repository merges set fields into the current record
// in one read-modify-write (last writer wins, which is safe under the
// single-writer-per-job model).
type RecordUpdate struct {
	Status       *model.ProcessingStatus
	PreviewUrl   *string
	FinalUrl     *string
	ErrorMessage *string
}

// ProcessingRecordRepository owns ProcessingRecord persistence. Only the
// state machine writes through it.
type ProcessingRecordRepository interface {
	Create(ctx context.Context, record *model.ProcessingRecord) error
	Get(ctx context.Context, id string) (*model.ProcessingRecord, error)

	// Update merges the partial update into the stored record and returns
	// the result. Updates against a record already in a terminal state are
	// ignored and return the record unchanged: Completed and Failed are
	// immutable.
	Update(ctx context.Context, id string, update RecordUpdate) (*model.ProcessingRecord, error)
}

// ContentRepository resolves uploaded source content.
type ContentRepository interface {
	Get(ctx context.Context, id string) (*model.ContentItem, error)
}

// SegmentRepository resolves the immutable, ordered analysis output for a
// content item. An empty result means no analysis exists.
type SegmentRepository interface {
	GetByContent(ctx context.Context, contentId string) ([]*model.ContentSegment, error)
}

// TemplateRepository resolves read-only rendering templates.
type TemplateRepository interface {
	Get(ctx context.Context, id string) (*model.Template, error)
}

// BrandAssetRepository resolves user-owned overlay assets; the pipeline
// uses it for existence and ownership checks only.
type BrandAssetRepository interface {
	Get(ctx context.Context, id string) (*model.BrandAsset, error)
}
