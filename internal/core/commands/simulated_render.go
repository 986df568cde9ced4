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

// This file defines the simulated render stage, the whole body of the
// degraded path. When the transcoder is missing or the source media could
// not be fetched, the pipeline still completes the job: this stage waits a
// configured delay standing in for render time, then fabricates a plausible
// retrieval URL without producing any media. Downstream consumers (UI,
// billing, analytics) stay exercisable in environments without the binary.
package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
)

// DefaultSimulatedDelay approximates a short real render.
const DefaultSimulatedDelay = 2 * time.Second

// SimulatedRender fabricates a completed render without invoking the
// transcoder.
type SimulatedRender struct {
	cor.BaseCommand
	baseURL string
	delay   time.Duration
}

// NewSimulatedRender creates the simulated stage. The fabricated URL is
// rooted at baseURL; a non-positive delay falls back to the default.
func NewSimulatedRender(name string, baseURL string, delay time.Duration) *SimulatedRender {
	if delay <= 0 {
		delay = DefaultSimulatedDelay
	}
	cmd := &SimulatedRender{BaseCommand: *cor.NewBaseCommand(name), baseURL: baseURL, delay: delay}
	cmd.InputParamName = GetContentParameterName()
	return cmd
}

// Execute sleeps for the configured delay (honoring cancellation) and then
// publishes a fabricated retrieval URL in the same shape a real publish
// would produce.
func (c *SimulatedRender) Execute(context cor.Context) {
	content := context.Get(c.GetInputParam()).(*model.ContentItem)

	select {
	case <-time.After(c.delay):
	case <-context.GetContext().Done():
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), context.GetContext().Err())
		return
	}

	url := fmt.Sprintf("%s/renders/%s/%s.mp4", c.baseURL, content.UserId, uuid.NewString())
	slog.Info("simulated render complete", "content_id", content.Id, "url", url)

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetOutputURLParameterName(), url)
	context.Add(c.GetOutputParam(), url)
}
