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

// This file implements a quota-aware decorator around Google Cloud Storage
// uploads. Rendered clips can arrive in bursts when many jobs finish close
// together; the decorator smooths the write rate against the bucket's
// per-object-update quota and retries transient upload failures before the
// publish stage falls back to a placeholder URL.
package cloud

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/time/rate"
)

// MaxUploadRetries bounds the transient-failure retries of one upload.
const MaxUploadRetries = 3

// DefaultUploadsPerSec is used when no rate limit is configured.
const DefaultUploadsPerSec = 5

// QuotaAwareUploader wraps GCS object writes with a rate limiter and a
// bounded retry loop.
type QuotaAwareUploader struct {
	limiter *rate.Limiter
}

// NewQuotaAwareUploader creates an uploader allowing the given number of
// uploads per second (with an equal burst). Non-positive rates fall back to
// the default.
func NewQuotaAwareUploader(uploadsPerSec int) *QuotaAwareUploader {
	if uploadsPerSec <= 0 {
		uploadsPerSec = DefaultUploadsPerSec
	}
	return &QuotaAwareUploader{
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(uploadsPerSec)), uploadsPerSec),
	}
}

// Upload copies the local file into the bucket under the given key. Each
// attempt waits for a limiter token first; failed attempts are retried up
// to MaxUploadRetries times before the last error comes back.
func (u *QuotaAwareUploader) Upload(
	ctx context.Context,
	bucket *storage.BucketHandle,
	key string,
	localPath string,
	contentType string) error {

	var lastErr error
	for attempt := 0; attempt <= MaxUploadRetries; attempt++ {
		if err := u.limiter.Wait(ctx); err != nil {
			return err
		}
		lastErr = u.writeObject(ctx, bucket, key, localPath, contentType)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("upload of %s failed after %d attempts: %w", key, MaxUploadRetries+1, lastErr)
}

// writeObject performs a single upload attempt.
func (u *QuotaAwareUploader) writeObject(
	ctx context.Context,
	bucket *storage.BucketHandle,
	key string,
	localPath string,
	contentType string) error {

	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
