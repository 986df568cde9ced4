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
// This file, `transient.go`, holds the shapes that only exist for the span of
// a single workflow execution and are never written to a repository: the
// render request payload, edit ranges handed to the clip assembler, and the
// output resolution derived from a template's aspect ratio.
package model

// These objects flow through workflows in memory and are not persisted.

// RenderRequest is the payload that creates a render job. It is also the JSON
// body of a Pub/Sub render-request message, so the field names mirror the
// persisted record shape.
type RenderRequest struct {
	ContentId        string                 `json:"content_id"`
	TemplateId       string                 `json:"template_id"`
	SelectedSegments []string               `json:"selected_segments,omitempty"`
	BrandAssetIds    []string               `json:"brand_asset_ids,omitempty"`
	CustomSettings   map[string]interface{} `json:"custom_settings,omitempty"`
}

// EditRange is one trim entry of the concat edit list: a half-open slice of
// the source media in seconds. Start is always strictly less than End for
// ranges produced by segment selection.
type EditRange struct {
	Start float64
	End   float64
}

// Resolution is a fixed output frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// Aspect ratio names accepted on templates.
const (
	AspectPortrait  = "9:16"
	AspectSquare    = "1:1"
	AspectLandscape = "16:9"
)

// ResolutionForAspectRatio maps a template aspect ratio to its fixed output
// resolution. Unknown ratios fall back to portrait, the platform's primary
// short-form target.
func ResolutionForAspectRatio(aspectRatio string) Resolution {
	switch aspectRatio {
	case AspectSquare:
		return Resolution{Width: 1080, Height: 1080}
	case AspectLandscape:
		return Resolution{Width: 1920, Height: 1080}
	case AspectPortrait:
		return Resolution{Width: 1080, Height: 1920}
	default:
		return Resolution{Width: 1080, Height: 1920}
	}
}
