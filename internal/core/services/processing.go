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

// This file implements the processing state machine that drives a render
// job through Pending, Analyzing, Processing, and one of the terminal
// states. The machine is strictly forward-only: nothing transitions
// backward, nothing retries automatically, and a caller that wants another
// attempt creates a new record.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/commands"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
)

// Repositories bundles the persistence ports the state machine reads and
// writes through.
type Repositories struct {
	Records     ProcessingRecordRepository
	Contents    ContentRepository
	Segments    SegmentRepository
	Templates   TemplateRepository
	BrandAssets BrandAssetRepository
}

// ProcessingService owns the lifecycle of ProcessingRecords. Rendering
// itself is delegated to an injected executable (the render workflow in
// production, a fake in tests).
type ProcessingService struct {
	repos    Repositories
	renderer cor.Executable
}

// NewProcessingService creates the state machine over the given ports.
func NewProcessingService(repos Repositories, renderer cor.Executable) *ProcessingService {
	return &ProcessingService{repos: repos, renderer: renderer}
}

// CreateJob records a new render job in Pending and returns it. Nothing is
// validated here; every reference check belongs to the Analyzing phase.
func (s *ProcessingService) CreateJob(ctx context.Context, request *model.RenderRequest) (*model.ProcessingRecord, error) {
	record := model.NewProcessingRecord(uuid.NewString(), request.ContentId)
	if err := s.repos.Records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create processing record: %w", err)
	}
	slog.Info("created render job", "record_id", record.Id, "content_id", request.ContentId)
	return record, nil
}

// StartProcessing launches the job on a background goroutine and returns
// immediately. The job keeps running detached from the caller's context; a
// request that triggered a job should not cancel it by returning.
func (s *ProcessingService) StartProcessing(recordId string, request *model.RenderRequest) {
	go func() {
		if err := s.Run(context.Background(), recordId, request); err != nil {
			slog.Error("render job failed", "record_id", recordId, "error", err)
		}
	}()
}

// GetStatus returns the current record for a job.
func (s *ProcessingService) GetStatus(ctx context.Context, recordId string) (*model.ProcessingRecord, error) {
	return s.repos.Records.Get(ctx, recordId)
}

// Run executes the job as one linear, blocking sequence: validate every
// reference under Analyzing, then render under Processing, then settle into
// Completed or Failed. Returns the error recorded on a failed job, nil on
// completion.
func (s *ProcessingService) Run(ctx context.Context, recordId string, request *model.RenderRequest) error {
	if _, err := s.setStatus(ctx, recordId, model.StatusAnalyzing); err != nil {
		return err
	}

	content, template, segments, err := s.validate(ctx, request)
	if err != nil {
		return s.fail(ctx, recordId, err)
	}

	if _, err := s.setStatus(ctx, recordId, model.StatusProcessing); err != nil {
		return err
	}

	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.GetRequestParameterName(), request)
	chainCtx.Add(commands.GetContentParameterName(), content)
	chainCtx.Add(commands.GetTemplateParameterName(), template)
	chainCtx.Add(commands.GetSegmentsParameterName(), segments)

	s.renderer.Execute(chainCtx)

	if chainCtx.HasErrors() {
		return s.fail(ctx, recordId, chainErr(chainCtx))
	}

	url, ok := chainCtx.Get(commands.GetOutputURLParameterName()).(string)
	if !ok || url == "" {
		return s.fail(ctx, recordId, errors.New("render produced no output url"))
	}

	status := model.StatusCompleted
	_, err = s.repos.Records.Update(ctx, recordId, RecordUpdate{
		Status:     &status,
		PreviewUrl: &url,
		FinalUrl:   &url,
	})
	if err != nil {
		return err
	}
	slog.Info("render job completed", "record_id", recordId, "url", url)
	return nil
}

// validate resolves every reference the request names. Any missing
// reference aborts the job before rendering begins.
func (s *ProcessingService) validate(ctx context.Context, request *model.RenderRequest) (*model.ContentItem, *model.Template, []*model.ContentSegment, error) {
	content, err := s.repos.Contents.Get(ctx, request.ContentId)
	if err != nil {
		return nil, nil, nil, errors.New("content not found")
	}

	template, err := s.repos.Templates.Get(ctx, request.TemplateId)
	if err != nil {
		return nil, nil, nil, errors.New("template not found")
	}

	segments, err := s.repos.Segments.GetByContent(ctx, request.ContentId)
	if err != nil || len(segments) == 0 {
		return nil, nil, nil, errors.New("content analysis not found")
	}

	for _, assetId := range request.BrandAssetIds {
		if _, err := s.repos.BrandAssets.Get(ctx, assetId); err != nil {
			return nil, nil, nil, fmt.Errorf("brand asset %s not found", assetId)
		}
	}

	return content, template, segments, nil
}

// setStatus advances the record to the given state.
func (s *ProcessingService) setStatus(ctx context.Context, recordId string, status model.ProcessingStatus) (*model.ProcessingRecord, error) {
	return s.repos.Records.Update(ctx, recordId, RecordUpdate{Status: &status})
}

// fail marks the record Failed with the error's message verbatim and passes
// the error back to the caller. Preview and final references stay unset.
func (s *ProcessingService) fail(ctx context.Context, recordId string, cause error) error {
	status := model.StatusFailed
	message := cause.Error()
	if _, err := s.repos.Records.Update(ctx, recordId, RecordUpdate{
		Status:       &status,
		ErrorMessage: &message,
	}); err != nil {
		slog.Error("failed to record job failure", "record_id", recordId, "error", err)
	}
	slog.Warn("render job failed", "record_id", recordId, "error", cause)
	return cause
}

// chainErr flattens the chain's error map into one error. A chain that
// stops on first failure records a single error, whose message comes back
// untouched; multiple errors are joined in command-name order for a
// deterministic message.
func chainErr(chainCtx cor.Context) error {
	chainErrors := chainCtx.GetErrors()
	if len(chainErrors) == 0 {
		return errors.New("render chain failed without a recorded error")
	}

	names := make([]string, 0, len(chainErrors))
	for name := range chainErrors {
		names = append(names, name)
	}
	sort.Strings(names)

	messages := make([]string, 0, len(names))
	for _, name := range names {
		messages = append(messages, chainErrors[name].Error())
	}
	return errors.New(strings.Join(messages, "; "))
}
