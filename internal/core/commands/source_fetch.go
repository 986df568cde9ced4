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

// This file defines the Media Fetcher stage: resolve a content item to a
// locally accessible source file by downloading it from object storage.
//
// Fetch failures are deliberately not workflow errors. A content item with
// no storage key, a missing object, or a failed download all leave the
// source-path key unset, which routes the job onto the simulated path. The
// only signals this command emits are the source path on success and a
// warning log otherwise.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/storage"
)

// SourceFetch downloads the job's source media to a local temp file.
type SourceFetch struct {
	cor.BaseCommand
	store storage.ObjectStore
}

// NewSourceFetch creates the fetch stage backed by the given object store.
func NewSourceFetch(name string, store storage.ObjectStore) *SourceFetch {
	cmd := &SourceFetch{BaseCommand: *cor.NewBaseCommand(name), store: store}
	cmd.InputParamName = GetContentParameterName()
	return cmd
}

// Execute fetches the source object and publishes its local path. The
// downloaded file gets an extension matching its detected media type, since
// the transcoder keys container handling off the file name.
func (c *SourceFetch) Execute(context cor.Context) {
	content := context.Get(c.GetInputParam()).(*model.ContentItem)

	if content.StorageKey == "" {
		slog.Warn("content has no storage key, proceeding without source media", "content_id", content.Id)
		return
	}

	path, err := c.store.Fetch(context.GetContext(), content.StorageKey)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		slog.Warn("failed to fetch source media, proceeding without it",
			"content_id", content.Id, "key", content.StorageKey, "error", err)
		return
	}
	// A missing object is the designed degraded path, not a fault; only
	// genuine fetch errors reach the error counter.
	if path == "" {
		slog.Warn("source media unavailable, proceeding without it",
			"content_id", content.Id, "key", content.StorageKey)
		return
	}
	context.AddTempFile(path)

	named, err := withMediaExtension(path)
	if err != nil {
		slog.Warn("could not type source media, using raw download", "path", path, "error", err)
		named = path
	} else if named != path {
		context.AddTempFile(named)
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	slog.Info("fetched source media", "content_id", content.Id, "path", named)
	context.Add(GetSourcePathParameterName(), named)
	context.Add(c.GetOutputParam(), named)
}

// withMediaExtension renames the downloaded file to carry the extension of
// its detected type. Unknown types keep the original name.
func withMediaExtension(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	head := make([]byte, 261)
	n, _ := f.Read(head)
	_ = f.Close()

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return path, nil
	}

	named := fmt.Sprintf("%s.%s", path, kind.Extension)
	if filepath.Ext(path) == "."+kind.Extension {
		return path, nil
	}
	if err := os.Rename(path, named); err != nil {
		return "", err
	}
	return named, nil
}
