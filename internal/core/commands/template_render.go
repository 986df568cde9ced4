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

// This file defines the Template Renderer stage: re-encode the assembled
// clip into the resolution the template's aspect ratio dictates, letterboxed
// or pillarboxed as needed. Like assembly, a render failure is fatal.
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

// TemplateRender reformats the assembled clip per the job's template.
type TemplateRender struct {
	cor.BaseCommand
	runner   media.Runner
	settings media.EncodeSettings
}

// NewTemplateRender creates the render stage with the given transcoder
// runner and encode settings.
func NewTemplateRender(name string, runner media.Runner, settings media.EncodeSettings) *TemplateRender {
	return &TemplateRender{BaseCommand: *cor.NewBaseCommand(name), runner: runner, settings: settings}
}

// IsExecutable additionally requires the job's template.
func (c *TemplateRender) IsExecutable(context cor.Context) bool {
	return c.BaseCommand.IsExecutable(context) &&
		context.Get(GetTemplateParameterName()) != nil
}

// Execute re-encodes the assembled clip into the template's resolution and
// publishes the rendered file's path.
func (c *TemplateRender) Execute(context cor.Context) {
	assembledPath := context.Get(c.GetInputParam()).(string)
	template := context.Get(GetTemplateParameterName()).(*model.Template)

	resolution := model.ResolutionForAspectRatio(template.AspectRatio)
	outputPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s-rendered.mp4", uuid.NewString()))
	context.AddTempFile(outputPath)

	slog.Info("rendering clip",
		"template_id", template.Id,
		"aspect_ratio", template.AspectRatio,
		"width", resolution.Width,
		"height", resolution.Height)

	args := media.RenderArgs(assembledPath, outputPath, resolution, c.settings)
	if err := c.runner.Run(context.GetContext(), args...); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("template render failed: %w", err))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), outputPath)
}
