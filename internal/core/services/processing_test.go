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

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/commands"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer stands in for the render workflow: it either publishes a
// fixed URL or records an error, exactly as the real workflow would.
type fakeRenderer struct {
	url string
	err error
}

func (f *fakeRenderer) Execute(chainCtx cor.Context) {
	if f.err != nil {
		chainCtx.AddError("fake-renderer", f.err)
		return
	}
	chainCtx.Add(commands.GetOutputURLParameterName(), f.url)
}

// recordingRecords wraps MemoryRecords and captures every status written,
// so tests can assert on the exact transition sequence.
type recordingRecords struct {
	*MemoryRecords
	statuses []model.ProcessingStatus
}

func (r *recordingRecords) Update(ctx context.Context, id string, update RecordUpdate) (*model.ProcessingRecord, error) {
	if update.Status != nil {
		r.statuses = append(r.statuses, *update.Status)
	}
	return r.MemoryRecords.Update(ctx, id, update)
}

func newTestRepositories() (Repositories, *recordingRecords) {
	records := &recordingRecords{MemoryRecords: NewMemoryRecords()}

	contents := NewMemoryContents()
	contents.Put(model.GetExampleContent())

	segments := NewMemorySegments()
	segments.Put(model.GetExampleContent().Id, model.GetExampleSegments())

	templates := NewMemoryTemplates()
	templates.Put(model.GetExampleTemplate())

	return Repositories{
		Records:     records,
		Contents:    contents,
		Segments:    segments,
		Templates:   templates,
		BrandAssets: NewMemoryBrandAssets(),
	}, records
}

func exampleRequest() *model.RenderRequest {
	return &model.RenderRequest{
		ContentId:        "abc",
		TemplateId:       "t1",
		SelectedSegments: []string{"seg-001", "seg-002"},
	}
}

func TestRunCompletesWithIdenticalPreviewAndFinal(t *testing.T) {
	repos, records := newTestRepositories()
	service := NewProcessingService(repos, &fakeRenderer{url: "https://cdn.example.test/renders/user-123/clip.mp4"})
	ctx := context.Background()

	record, err := service.CreateJob(ctx, exampleRequest())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, record.Status)

	err = service.Run(ctx, record.Id, exampleRequest())
	require.NoError(t, err)

	final, err := service.GetStatus(ctx, record.Id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, final.Status)
	assert.NotEmpty(t, final.PreviewUrl)
	assert.Equal(t, final.PreviewUrl, final.FinalUrl)
	assert.Empty(t, final.ErrorMessage)

	// Forward-only transitions, no skipped or repeated states.
	assert.Equal(t, []model.ProcessingStatus{
		model.StatusAnalyzing,
		model.StatusProcessing,
		model.StatusCompleted,
	}, records.statuses)
}

// StartProcessing returns immediately; the caller learns the outcome only
// by polling GetStatus until the record settles in a terminal state.
func TestStartProcessingCompletesAsynchronously(t *testing.T) {
	repos, records := newTestRepositories()
	service := NewProcessingService(repos, &fakeRenderer{url: "https://cdn.example.test/renders/user-123/clip.mp4"})
	ctx := context.Background()

	record, err := service.CreateJob(ctx, exampleRequest())
	require.NoError(t, err)

	service.StartProcessing(record.Id, exampleRequest())

	deadline := time.Now().Add(5 * time.Second)
	var final *model.ProcessingRecord
	for {
		final, err = service.GetStatus(ctx, record.Id)
		require.NoError(t, err)
		if final.Status.IsTerminal() || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	assert.Equal(t, model.StatusCompleted, final.Status)
	assert.NotEmpty(t, final.FinalUrl)
	assert.Equal(t, final.PreviewUrl, final.FinalUrl)
	assert.Equal(t, []model.ProcessingStatus{
		model.StatusAnalyzing,
		model.StatusProcessing,
		model.StatusCompleted,
	}, records.statuses)
}

func TestRunFailsWhenContentMissing(t *testing.T) {
	repos, records := newTestRepositories()
	service := NewProcessingService(repos, &fakeRenderer{url: "unused"})
	ctx := context.Background()

	request := exampleRequest()
	request.ContentId = "missing"
	record, err := service.CreateJob(ctx, request)
	require.NoError(t, err)

	err = service.Run(ctx, record.Id, request)
	assert.EqualError(t, err, "content not found")

	final, err := service.GetStatus(ctx, record.Id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, final.Status)
	assert.Equal(t, "content not found", final.ErrorMessage)
	assert.Empty(t, final.PreviewUrl)
	assert.Empty(t, final.FinalUrl)

	// Validation failures abort before Processing is ever reached.
	assert.NotContains(t, records.statuses, model.StatusProcessing)
}

func TestRunFailsWhenTemplateMissing(t *testing.T) {
	repos, _ := newTestRepositories()
	service := NewProcessingService(repos, &fakeRenderer{url: "unused"})
	ctx := context.Background()

	request := exampleRequest()
	request.TemplateId = "missing"
	record, err := service.CreateJob(ctx, request)
	require.NoError(t, err)

	err = service.Run(ctx, record.Id, request)
	assert.EqualError(t, err, "template not found")
}

func TestRunFailsWhenAnalysisMissing(t *testing.T) {
	repos, _ := newTestRepositories()
	repos.Segments = NewMemorySegments()
	service := NewProcessingService(repos, &fakeRenderer{url: "unused"})
	ctx := context.Background()

	record, err := service.CreateJob(ctx, exampleRequest())
	require.NoError(t, err)

	err = service.Run(ctx, record.Id, exampleRequest())
	assert.EqualError(t, err, "content analysis not found")
}

func TestRunFailsWhenBrandAssetMissing(t *testing.T) {
	repos, _ := newTestRepositories()
	service := NewProcessingService(repos, &fakeRenderer{url: "unused"})
	ctx := context.Background()

	request := exampleRequest()
	request.BrandAssetIds = []string{"logo-9"}
	record, err := service.CreateJob(ctx, request)
	require.NoError(t, err)

	err = service.Run(ctx, record.Id, request)
	assert.EqualError(t, err, "brand asset logo-9 not found")
}

func TestRunRecordsStageErrorVerbatim(t *testing.T) {
	repos, _ := newTestRepositories()
	service := NewProcessingService(repos, &fakeRenderer{err: errors.New("clip assembly failed: transcoder failed: exit status 1")})
	ctx := context.Background()

	record, err := service.CreateJob(ctx, exampleRequest())
	require.NoError(t, err)

	err = service.Run(ctx, record.Id, exampleRequest())
	require.Error(t, err)

	final, err := service.GetStatus(ctx, record.Id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, final.Status)
	assert.Equal(t, "clip assembly failed: transcoder failed: exit status 1", final.ErrorMessage)
	assert.Empty(t, final.PreviewUrl)
	assert.Empty(t, final.FinalUrl)
}

func TestTerminalRecordsAreImmutable(t *testing.T) {
	repos, _ := newTestRepositories()
	service := NewProcessingService(repos, &fakeRenderer{url: "https://cdn.example.test/r.mp4"})
	ctx := context.Background()

	record, err := service.CreateJob(ctx, exampleRequest())
	require.NoError(t, err)
	require.NoError(t, service.Run(ctx, record.Id, exampleRequest()))

	status := model.StatusFailed
	message := "late failure"
	updated, err := repos.Records.Update(ctx, record.Id, RecordUpdate{Status: &status, ErrorMessage: &message})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, updated.Status)
	assert.Empty(t, updated.ErrorMessage)
}

func TestGetStatusUnknownRecord(t *testing.T) {
	repos, _ := newTestRepositories()
	service := NewProcessingService(repos, &fakeRenderer{url: "unused"})

	_, err := service.GetStatus(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
