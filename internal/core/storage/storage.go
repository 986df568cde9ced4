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

// Package storage defines the object-store port the pipeline depends on.
// The pipeline treats Fetch as fallible but never fatal (a missing source
// routes the job onto the simulated path) and Store as best-effort (a failed
// upload is replaced by a placeholder URL). The GCS-backed implementation
// lives in internal/cloud; this package also provides an in-memory store for
// tests and storage-less environments.
package storage

import "context"

// ObjectStore is the contract with remote object storage.
type ObjectStore interface {
	// Fetch downloads the object under key to a local temporary file and
	// returns its path. An empty path with a nil error means the object is
	// not available; callers treat that as "proceed degraded", not failure.
	Fetch(ctx context.Context, key string) (string, error)

	// Store uploads the local file under key with the given content type and
	// returns a retrieval URL for the stored object.
	Store(ctx context.Context, localPath string, key string, contentType string) (string, error)
}
