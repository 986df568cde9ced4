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

// Package workflow defines the high-level business logic orchestrations,
// combining commands into coherent pipelines. This file implements the
// render workflow, which carries a job from fetched source media to a
// published retrieval URL.
//
// The workflow is explicitly two-path. Both paths are assembled once, at
// construction:
//
//   - the real path fetches the source, selects segments, assembles and
//     re-encodes with the external transcoder, and publishes the result;
//   - the simulated path fabricates a plausible URL after an artificial
//     delay, producing no media at all.
//
// Path choice is a capability check, never a conditional buried inside a
// stage: the simulated path runs when the transcoder binary is unavailable
// (known at construction) or when the fetch stage could not produce a local
// source file (known only after fetch runs).
package workflow

import (
	"log/slog"
	"time"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/commands"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/media"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/storage"
)

// RenderWorkflow orchestrates one render job end to end. It expects the
// job's entities (content item, template, render request, and analysis
// segments) to already be present in the chain context under their
// well-known keys, and leaves the final retrieval URL in the context when
// the run succeeds.
type RenderWorkflow struct {
	cor.BaseCommand
	runner    media.Runner
	fetch     cor.Command
	realChain cor.Chain
	simulated cor.Chain
}

// NewRenderWorkflow builds both pipeline paths. The store backs fetch and
// publish, the runner drives the transcoder invocations, baseURL roots the
// placeholder and simulated URLs, and simulatedDelay stands in for render
// time on the degraded path.
func NewRenderWorkflow(
	store storage.ObjectStore,
	runner media.Runner,
	settings media.EncodeSettings,
	baseURL string,
	simulatedDelay time.Duration) *RenderWorkflow {

	out := &RenderWorkflow{
		BaseCommand: *cor.NewBaseCommand("render-workflow"),
		runner:      runner,
		fetch:       commands.NewSourceFetch("source-fetch", store),
	}

	real := cor.NewBaseChain("render-real")
	real.AddCommand(commands.NewSegmentSelect("segment-select"))
	real.AddCommand(commands.NewClipAssemble("clip-assemble", runner))
	real.AddCommand(commands.NewTemplateRender("template-render", runner, settings))
	real.AddCommand(commands.NewResultPublish("result-publish", store,
		commands.PlaceholderURLPolicy{BaseURL: baseURL}))
	out.realChain = real

	simulated := cor.NewBaseChain("render-simulated")
	simulated.AddCommand(commands.NewSimulatedRender("simulated-render", baseURL, simulatedDelay))
	out.simulated = simulated

	return out
}

// Execute picks a path and runs it. The transcoder capability check happens
// first; when the binary exists the fetch stage runs, and only a fetch that
// produced a local file commits the job to the real path.
func (w *RenderWorkflow) Execute(context cor.Context) {
	if !w.runner.Available() {
		slog.Warn("transcoder unavailable, running simulated render path")
		w.simulated.Execute(context)
		return
	}

	w.fetch.Execute(context)
	if context.HasErrors() {
		return
	}
	if context.Get(commands.GetSourcePathParameterName()) == nil {
		slog.Warn("source media unavailable, running simulated render path")
		w.simulated.Execute(context)
		return
	}

	w.realChain.Execute(context)
}
