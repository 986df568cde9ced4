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

// Package main contains the logic for setting up and starting the Pub/Sub
// message listeners that feed the render pipeline.
package main

import (
	"context"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/workflow"
)

// RenderRequestsListener is the logical name of the render-request
// subscription in the configuration's topic_subscriptions table.
const RenderRequestsListener = "RenderRequests"

// SetupListeners attaches the render-job pipeline to the render-request
// subscription and starts the listener as a background goroutine.
func SetupListeners(ctx context.Context) {
	pipeline := workflow.NewRenderJobPipeline(state.processingService)
	state.cloud.PubSubListeners[RenderRequestsListener].SetCommand(pipeline)
	state.cloud.PubSubListeners[RenderRequestsListener].Listen(ctx)
}
