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

// This file defines the entry command for message-triggered render jobs.
//
// Logic Flow:
// The worker's Pub/Sub subscription delivers render requests as JSON. This
// command parses the raw message body into a model.RenderRequest and places
// it under the request's well-known context key so every later stage can
// reach it without re-parsing.
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
)

// RenderTriggerToRequest parses a raw render-request message into a
// model.RenderRequest.
type RenderTriggerToRequest struct {
	cor.BaseCommand
}

// NewRenderTriggerToRequest is the constructor for the trigger reader.
func NewRenderTriggerToRequest(name string) *RenderTriggerToRequest {
	return &RenderTriggerToRequest{BaseCommand: *cor.NewBaseCommand(name)}
}

// Execute unmarshals the message body. A request without a content id is
// rejected here so downstream stages can rely on it being set.
func (c *RenderTriggerToRequest) Execute(context cor.Context) {
	in := context.Get(c.GetInputParam()).(string)

	var request model.RenderRequest
	if err := json.Unmarshal([]byte(in), &request); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to unmarshal render request: %w", err))
		return
	}
	if request.ContentId == "" {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("render request is missing a content id"))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetRequestParameterName(), &request)
	context.Add(c.GetOutputParam(), &request)
}
