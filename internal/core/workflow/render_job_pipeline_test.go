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

package workflow_test

import (
	"testing"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/media"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/services"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/storage"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/workflow"
	test "github.com/jaycherian/gcp-go-clip-render/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store *storage.MemoryStore, runner media.Runner) (*services.ProcessingService, services.Repositories) {
	contents := services.NewMemoryContents()
	contents.Put(model.GetExampleContent())

	segments := services.NewMemorySegments()
	segments.Put(model.GetExampleContent().Id, model.GetExampleSegments())

	templates := services.NewMemoryTemplates()
	templates.Put(model.GetExampleTemplate())

	repos := services.Repositories{
		Records:     services.NewMemoryRecords(),
		Contents:    contents,
		Segments:    segments,
		Templates:   templates,
		BrandAssets: services.NewMemoryBrandAssets(),
	}

	renderWorkflow := workflow.NewRenderWorkflow(store, runner, media.DefaultEncodeSettings(), testBaseURL, simulatedDelay)
	return services.NewProcessingService(repos, renderWorkflow), repos
}

// A render-request message drives a job end to end: parsed, validated,
// rendered (fake transcoder), published, and settled in Completed.
func TestRenderJobPipelineFromMessage(t *testing.T) {
	store := storage.NewMemoryStore(testBaseURL)
	store.Put(model.GetExampleContent().StorageKey, []byte("not really video"))
	runner := &fakeRunner{available: true}
	service, repos := newTestService(store, runner)

	pipeline := workflow.NewRenderJobPipeline(service)

	traceContext, span := tracer.Start(ctx, "render-job-pipeline-test")
	defer span.End()

	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(traceContext)
	chainCtx.Add(cor.CtxIn, test.GetTestRenderRequestText())

	pipeline.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	recordId := chainCtx.Get(cor.CtxIn).(string)

	record, err := repos.Records.Get(traceContext, recordId)
	test.HandleErr(err, t)
	assert.Equal(t, model.StatusCompleted, record.Status)
	assert.NotEmpty(t, record.FinalUrl)
	assert.Equal(t, record.PreviewUrl, record.FinalUrl)
}

// A malformed message fails the chain, leaving the message unacked for
// redelivery; no record is created.
func TestRenderJobPipelineRejectsMalformedMessage(t *testing.T) {
	store := storage.NewMemoryStore(testBaseURL)
	runner := &fakeRunner{available: true}
	service, _ := newTestService(store, runner)

	pipeline := workflow.NewRenderJobPipeline(service)

	traceContext, span := tracer.Start(ctx, "render-job-pipeline-malformed-test")
	defer span.End()

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(traceContext)
	chainCtx.Add(cor.CtxIn, "{ not json")

	pipeline.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
}

// A job whose validation fails still acknowledges the message: the failed
// record is terminal and retries are explicit new requests.
func TestRenderJobPipelineAcksFailedJobs(t *testing.T) {
	store := storage.NewMemoryStore(testBaseURL)
	runner := &fakeRunner{available: true}
	service, repos := newTestService(store, runner)

	pipeline := workflow.NewRenderJobPipeline(service)

	traceContext, span := tracer.Start(ctx, "render-job-pipeline-failed-test")
	defer span.End()

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(traceContext)
	chainCtx.Add(cor.CtxIn, `{"content_id": "missing", "template_id": "t1"}`)

	pipeline.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	recordId := chainCtx.Get(cor.CtxIn).(string)

	record, err := repos.Records.Get(traceContext, recordId)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, record.Status)
	assert.Equal(t, "content not found", record.ErrorMessage)
}
