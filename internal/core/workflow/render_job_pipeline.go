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

// This file implements the message-triggered render pipeline: the command
// attached to the render-request Pub/Sub listener. It parses the message
// into a render request, creates a job record, and drives the job through
// the state machine on the delivery goroutine.
package workflow

import (
	"log/slog"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/commands"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/services"
)

// RenderJobPipeline turns one Pub/Sub render-request message into one
// completed (or failed) job.
type RenderJobPipeline struct {
	cor.BaseCommand
	chain cor.Chain
}

// NewRenderJobPipeline builds the trigger chain over the given state
// machine.
func NewRenderJobPipeline(service *services.ProcessingService) *RenderJobPipeline {
	out := &RenderJobPipeline{BaseCommand: *cor.NewBaseCommand("render-job-pipeline")}

	chain := cor.NewBaseChain(out.GetName())
	chain.AddCommand(commands.NewRenderTriggerToRequest("render-trigger-reader"))
	chain.AddCommand(newJobRun("job-run", service))
	out.chain = chain
	return out
}

// Execute runs the trigger chain.
func (p *RenderJobPipeline) Execute(context cor.Context) {
	p.chain.Execute(context)
}

// jobRun creates the record and runs the job synchronously. Only
// infrastructure failures (a record that cannot be created) become chain
// errors and trigger redelivery; a job that reaches Failed is terminal and
// its message must still be acknowledged, since retries are explicit new
// records, never automatic.
type jobRun struct {
	cor.BaseCommand
	service *services.ProcessingService
}

func newJobRun(name string, service *services.ProcessingService) *jobRun {
	cmd := &jobRun{BaseCommand: *cor.NewBaseCommand(name), service: service}
	cmd.InputParamName = commands.GetRequestParameterName()
	return cmd
}

func (c *jobRun) Execute(context cor.Context) {
	request := context.Get(c.GetInputParam()).(*model.RenderRequest)

	record, err := c.service.CreateJob(context.GetContext(), request)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), err)
		return
	}

	if err := c.service.Run(context.GetContext(), record.Id, request); err != nil {
		slog.Warn("render job settled in failed state", "record_id", record.Id, "error", err)
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), record.Id)
}
