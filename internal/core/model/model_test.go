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

package model

import (
	"testing"

	"github.com/zeebo/assert"
)

func TestResolutionForAspectRatio(t *testing.T) {
	assert.Equal(t, Resolution{Width: 1080, Height: 1920}, ResolutionForAspectRatio(AspectPortrait))
	assert.Equal(t, Resolution{Width: 1080, Height: 1080}, ResolutionForAspectRatio(AspectSquare))
	assert.Equal(t, Resolution{Width: 1920, Height: 1080}, ResolutionForAspectRatio(AspectLandscape))
	// Unknown ratios fall back to the portrait default.
	assert.Equal(t, Resolution{Width: 1080, Height: 1920}, ResolutionForAspectRatio("21:9"))
	assert.Equal(t, Resolution{Width: 1080, Height: 1920}, ResolutionForAspectRatio(""))
}

func TestProcessingStatusTerminality(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAnalyzing.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	// Review is valid but not terminal; a future approval step resumes
	// from it.
	assert.False(t, StatusReview.IsTerminal())
}

func TestNewProcessingRecordStartsPending(t *testing.T) {
	record := NewProcessingRecord("job-1", "abc")
	assert.Equal(t, StatusPending, record.Status)
	assert.Equal(t, "abc", record.ContentId)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, record.CreatedAt, record.UpdatedAt)
}
