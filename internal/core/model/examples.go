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
// This file provides example instances of the entity types. They give tests
// a consistent fixture set and double as documentation of what a fully
// populated entity looks like.
package model

// GetExampleSegments returns an ordered three-segment analysis result for a
// 150 second source video.
func GetExampleSegments() []*ContentSegment {
	return []*ContentSegment{
		{
			Id:                   "seg-001",
			StartTime:            0,
			EndTime:              30,
			Transcript:           "Welcome back to the channel, today we are looking at the new release.",
			Keywords:             []string{"intro", "release"},
			ImportanceScore:      0.82,
			EngagementPrediction: 0.75,
		},
		{
			Id:                   "seg-002",
			StartTime:            30,
			EndTime:              90,
			Transcript:           "The headline feature is the completely reworked editor.",
			Keywords:             []string{"feature", "editor"},
			ImportanceScore:      0.91,
			EngagementPrediction: 0.88,
		},
		{
			Id:                   "seg-003",
			StartTime:            90,
			EndTime:              150,
			Transcript:           "Let me know what you think in the comments.",
			Keywords:             []string{"outro"},
			ImportanceScore:      0.44,
			EngagementPrediction: 0.52,
		},
	}
}

// GetExampleTemplate returns a portrait short-form template with a typical
// caption style.
func GetExampleTemplate() *Template {
	return &Template{
		Id:          "t1",
		Name:        "Vertical Bold",
		AspectRatio: AspectPortrait,
		CaptionStyle: CaptionStyle{
			Font:       "Inter",
			Size:       42,
			Color:      "#FFFFFF",
			Background: "#000000AA",
			Position:   "bottom",
		},
	}
}

// GetExampleContent returns a content item that points at a source object in
// remote storage.
func GetExampleContent() *ContentItem {
	return &ContentItem{
		Id:               "abc",
		UserId:           "user-123",
		Title:            "release walkthrough",
		StorageKey:       "uploads/user-123/release-walkthrough.mp4",
		DurationSeconds:  150,
		OriginalFilename: "release-walkthrough.mp4",
	}
}
