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

// Package commands provides the concrete pipeline stage implementations of
// the Chain of Responsibility Command interface. This file defines the
// well-known context keys the stages use to share the entities of one render
// job, independent of the chain's CtxIn/CtxOut piping.
package commands

// GetContentParameterName returns the context key holding the job's
// *model.ContentItem.
func GetContentParameterName() string {
	return "__CONTENT_ITEM__"
}

// GetTemplateParameterName returns the context key holding the job's
// *model.Template.
func GetTemplateParameterName() string {
	return "__TEMPLATE__"
}

// GetSegmentsParameterName returns the context key holding the full ordered
// []*model.ContentSegment analysis result.
func GetSegmentsParameterName() string {
	return "__SEGMENTS__"
}

// GetRequestParameterName returns the context key holding the
// *model.RenderRequest that created the job.
func GetRequestParameterName() string {
	return "__RENDER_REQUEST__"
}

// GetSourcePathParameterName returns the context key holding the local path
// of the fetched source media. Absent when the source is unavailable and the
// job runs the simulated path.
func GetSourcePathParameterName() string {
	return "__SOURCE_PATH__"
}

// GetOutputURLParameterName returns the context key holding the final
// retrieval URL produced by publishing (or by the simulated renderer).
func GetOutputURLParameterName() string {
	return "__OUTPUT_URL__"
}
