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

package commands

import (
	"context"
	"testing"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTriggerParsesRequest(t *testing.T) {
	cmd := NewRenderTriggerToRequest("render-trigger-reader")

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, `{
	  "content_id": "abc",
	  "template_id": "t1",
	  "selected_segments": ["seg-001", "seg-002"],
	  "custom_settings": {"watermark": true}
	}`)

	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	request := chainCtx.Get(GetRequestParameterName()).(*model.RenderRequest)
	assert.Equal(t, "abc", request.ContentId)
	assert.Equal(t, "t1", request.TemplateId)
	assert.Len(t, request.SelectedSegments, 2)
	assert.Equal(t, true, request.CustomSettings["watermark"])
}

func TestRenderTriggerRejectsMalformedJSON(t *testing.T) {
	cmd := NewRenderTriggerToRequest("render-trigger-reader")

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, `{"content_id": `)

	cmd.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
}

func TestRenderTriggerRejectsMissingContentId(t *testing.T) {
	cmd := NewRenderTriggerToRequest("render-trigger-reader")

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, `{"template_id": "t1"}`)

	cmd.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
}
