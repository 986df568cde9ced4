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

// This file implements the object-store port on Google Cloud Storage.
// Source media is read from one bucket and rendered clips are published to
// another; a missing source object is reported as "unavailable" rather
// than an error so the pipeline can take its simulated path.
package cloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	gcs "cloud.google.com/go/storage"
)

// GCSObjectStore is the production ObjectStore: fetches from the source
// bucket, publishes to the output bucket through the quota-aware uploader.
type GCSObjectStore struct {
	client        *gcs.Client
	sourceBucket  string
	outputBucket  string
	publicBaseURL string
	uploader      *QuotaAwareUploader
}

// NewGCSObjectStore creates the store over an authenticated client using
// the configured bucket names and publish rate limit.
func NewGCSObjectStore(client *gcs.Client, config *Config) *GCSObjectStore {
	return &GCSObjectStore{
		client:        client,
		sourceBucket:  config.Storage.SourceBucket,
		outputBucket:  config.Storage.OutputBucket,
		publicBaseURL: config.Storage.PublicBaseURL,
		uploader:      NewQuotaAwareUploader(config.Storage.UploadsPerSec),
	}
}

// Fetch downloads the object to a local temp file and returns its path.
// A missing object returns ("", nil): the caller treats no path as
// "proceed without source media". The caller owns deleting the file.
func (s *GCSObjectStore) Fetch(ctx context.Context, key string) (string, error) {
	reader, err := s.client.Bucket(s.sourceBucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			slog.Warn("source object does not exist", "bucket", s.sourceBucket, "key", key)
			return "", nil
		}
		return "", fmt.Errorf("failed to open object %s in bucket %s: %w", key, s.sourceBucket, err)
	}
	defer func() { _ = reader.Close() }()

	out, err := os.CreateTemp("", "source-")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, reader); err != nil {
		_ = out.Close()
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("failed to download object %s: %w", key, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}

// Store uploads the local file to the output bucket under key and returns
// the public retrieval URL.
func (s *GCSObjectStore) Store(ctx context.Context, localPath string, key string, contentType string) (string, error) {
	bucket := s.client.Bucket(s.outputBucket)
	if err := s.uploader.Upload(ctx, bucket, key, localPath, contentType); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.publicBaseURL, key), nil
}
