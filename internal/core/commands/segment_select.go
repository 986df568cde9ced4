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

// This file defines the Segment Selector stage: turn a render request plus
// the content's analysis output into the ordered edit ranges the assembler
// will cut.
package commands

import (
	"log/slog"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
)

// SelectSegments resolves the ranges to cut. Selection is count-based: the
// request's segment list sets how many ranges come out, taken from the front
// of the analysis order, not which ones. An empty request falls back to the
// full analysis, and a request longer than the analysis is capped at it.
func SelectSegments(request *model.RenderRequest, analyzed []*model.ContentSegment) []model.EditRange {
	count := len(analyzed)
	if n := len(request.SelectedSegments); n > 0 && n < count {
		count = n
	}

	ranges := make([]model.EditRange, 0, count)
	for _, segment := range analyzed[:count] {
		ranges = append(ranges, model.EditRange{Start: segment.StartTime, End: segment.EndTime})
	}
	return ranges
}

// SegmentSelect is the selection stage of the render chain.
type SegmentSelect struct {
	cor.BaseCommand
}

// NewSegmentSelect creates the selection stage.
func NewSegmentSelect(name string) *SegmentSelect {
	cmd := &SegmentSelect{BaseCommand: *cor.NewBaseCommand(name)}
	cmd.InputParamName = GetRequestParameterName()
	return cmd
}

// IsExecutable requires the render request and the analysis segments.
func (c *SegmentSelect) IsExecutable(context cor.Context) bool {
	return c.BaseCommand.IsExecutable(context) &&
		context.Get(GetSegmentsParameterName()) != nil
}

// Execute emits the selected edit ranges as the chain's primary output.
func (c *SegmentSelect) Execute(context cor.Context) {
	request := context.Get(c.GetInputParam()).(*model.RenderRequest)
	analyzed := context.Get(GetSegmentsParameterName()).([]*model.ContentSegment)

	ranges := SelectSegments(request, analyzed)
	slog.Info("selected segments for assembly",
		"content_id", request.ContentId,
		"requested", len(request.SelectedSegments),
		"selected", len(ranges))

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), ranges)
}
