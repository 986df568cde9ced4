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

// Package model defines the core data structures for the application.
// This file, `persistent.go`, contains the entity types that are held in the
// injected repositories: processing records, content items, content segments,
// templates, and brand assets. These are the durable shapes a caller can
// observe through the service layer; everything that only lives for the span
// of a single workflow execution belongs in `transient.go` instead.
package model

import "time"

// ProcessingStatus is the lifecycle state of one render attempt.
type ProcessingStatus string

// The full set of lifecycle states. StatusReview is declared as a valid
// target for a future human-approval step; no transition currently reaches it.
const (
	StatusPending    ProcessingStatus = "pending"
	StatusAnalyzing  ProcessingStatus = "analyzing"
	StatusProcessing ProcessingStatus = "processing"
	StatusReview     ProcessingStatus = "review"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// IsTerminal reports whether the status permits no further transitions.
// Completed and Failed records are immutable; a retry is a new record.
func (s ProcessingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ProcessingRecord is the persisted state of a single render attempt. The
// preview and final URLs are set if and only if the record is Completed
// (and are identical in this design), and the error message is set if and
// only if the record is Failed.
type ProcessingRecord struct {
	Id           string           `json:"id"`
	ContentId    string           `json:"content_id"`
	Status       ProcessingStatus `json:"status"`
	PreviewUrl   string           `json:"preview_url,omitempty"`
	FinalUrl     string           `json:"final_url,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewProcessingRecord creates a Pending record for a fresh render attempt.
func NewProcessingRecord(id string, contentId string) *ProcessingRecord {
	now := time.Now().UTC()
	return &ProcessingRecord{
		Id:        id,
		ContentId: contentId,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ContentItem represents an uploaded source video. The StorageKey points at
// the object in the source bucket; an empty key means the media was never
// persisted remotely and the pipeline must fall back to the simulated path.
type ContentItem struct {
	Id               string  `json:"id"`
	UserId           string  `json:"user_id"`
	Title            string  `json:"title,omitempty"`
	StorageKey       string  `json:"storage_key,omitempty"`
	DurationSeconds  float64 `json:"duration_seconds,omitempty"`
	OriginalFilename string  `json:"original_filename,omitempty"`
}

// ContentSegment is one labeled time range of a source video, produced once
// by content analysis and immutable thereafter. Scores are conventionally in
// [0,1] but the type does not enforce that.
type ContentSegment struct {
	Id                   string   `json:"id"`
	StartTime            float64  `json:"start_time"`
	EndTime              float64  `json:"end_time"`
	Transcript           string   `json:"transcript,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
	ImportanceScore      float64  `json:"importance_score"`
	EngagementPrediction float64  `json:"engagement_prediction"`
}

// CaptionStyle carries the text styling portion of a template. It is consumed
// by rendering but is not required for the assembly contract itself.
type CaptionStyle struct {
	Font       string `json:"font,omitempty"`
	Size       int    `json:"size,omitempty"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
	Position   string `json:"position,omitempty"`
}

// Template is read-only reference data describing the rendering target:
// an aspect ratio (which maps to a fixed output resolution), caption styling,
// and optional intro/outro animation identifiers.
type Template struct {
	Id           string       `json:"id"`
	Name         string       `json:"name,omitempty"`
	AspectRatio  string       `json:"aspect_ratio"`
	CaptionStyle CaptionStyle `json:"caption_style,omitempty"`
	IntroId      string       `json:"intro_id,omitempty"`
	OutroId      string       `json:"outro_id,omitempty"`
}

// BrandAsset is a user-owned overlay asset (logo, font, color palette).
// The pipeline validates existence and ownership only; interpreting the
// asset bytes is a rendering concern outside the assembly contract.
type BrandAsset struct {
	Id     string `json:"id"`
	UserId string `json:"user_id"`
	Kind   string `json:"kind,omitempty"`
	Url    string `json:"url,omitempty"`
}
