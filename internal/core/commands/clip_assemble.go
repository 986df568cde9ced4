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

// This file defines the Clip Assembler stage: cut the selected ranges from
// the fetched source and concatenate them, stream-copied, into a single
// intermediate clip. Unlike fetch, an assembly failure is fatal to the job.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/media"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
)

// ClipAssemble concatenates the selected ranges into one clip.
type ClipAssemble struct {
	cor.BaseCommand
	runner media.Runner
}

// NewClipAssemble creates the assembly stage driven by the given transcoder
// runner.
func NewClipAssemble(name string, runner media.Runner) *ClipAssemble {
	return &ClipAssemble{BaseCommand: *cor.NewBaseCommand(name), runner: runner}
}

// IsExecutable additionally requires a fetched source file.
func (c *ClipAssemble) IsExecutable(context cor.Context) bool {
	return c.BaseCommand.IsExecutable(context) &&
		context.Get(GetSourcePathParameterName()) != nil
}

// Execute writes the concat edit list, runs the stream-copy invocation, and
// publishes the assembled clip's path. Both intermediates are registered for
// cleanup with the context.
func (c *ClipAssemble) Execute(context cor.Context) {
	ranges := context.Get(c.GetInputParam()).([]model.EditRange)
	sourcePath := context.Get(GetSourcePathParameterName()).(string)

	run := uuid.NewString()
	editListPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s-edits.txt", run))
	outputPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s-assembled.mp4", run))
	context.AddTempFile(editListPath)
	context.AddTempFile(outputPath)

	if err := media.WriteEditList(editListPath, sourcePath, ranges); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), err)
		return
	}

	slog.Info("assembling clip", "source", sourcePath, "ranges", len(ranges))
	if err := c.runner.Run(context.GetContext(), media.ConcatArgs(editListPath, outputPath)...); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("clip assembly failed: %w", err))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), outputPath)
}
