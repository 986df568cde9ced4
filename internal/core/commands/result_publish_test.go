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
	"os"
	"strings"
	"testing"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://storage.example.test/output"

func writeRenderedFixture(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "rendered-*.mp4")
	require.NoError(t, err)
	_, err = f.WriteString("not really video")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestResultPublishUploadsUnderUserKey(t *testing.T) {
	store := storage.NewMemoryStore(testBaseURL)
	cmd := NewResultPublish("result-publish", store, PlaceholderURLPolicy{BaseURL: testBaseURL})

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(GetContentParameterName(), model.GetExampleContent())
	chainCtx.Add(cor.CtxIn, writeRenderedFixture(t))

	cmd.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	url := chainCtx.Get(GetOutputURLParameterName()).(string)
	assert.True(t, strings.HasPrefix(url, testBaseURL+"/renders/user-123/"))
	assert.True(t, strings.HasSuffix(url, ".mp4"))
}

// An upload failure must not fail the chain: the fallback policy's
// placeholder URL is recorded and the job still completes.
func TestResultPublishFallsBackToPlaceholderURL(t *testing.T) {
	store := storage.NewMemoryStore(testBaseURL)
	store.FailStore = true
	cmd := NewResultPublish("result-publish", store, PlaceholderURLPolicy{BaseURL: testBaseURL})

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(GetContentParameterName(), model.GetExampleContent())
	chainCtx.Add(cor.CtxIn, writeRenderedFixture(t))

	cmd.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	url := chainCtx.Get(GetOutputURLParameterName()).(string)
	assert.NotEmpty(t, url)
	assert.True(t, strings.HasPrefix(url, testBaseURL+"/renders/user-123/"))
}
