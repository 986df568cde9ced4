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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files, plus the clients and wrappers for Google Cloud
// services. This file centralizes all configuration structs.
//
// Structs:
//   - TopicSubscription: Configuration for a single Pub/Sub subscription.
//   - Storage: Configuration for Google Cloud Storage buckets.
//   - Transcoder: Configuration for the external transcoding tool.
//   - Config: The top-level struct aggregating all of the above.
package cloud

// TopicSubscription represents the configuration for a Pub/Sub topic
// subscription.
type TopicSubscription struct {
	Name             string `toml:"name"`               // The name of the Pub/Sub subscription.
	DeadLetterTopic  string `toml:"dead_letter_topic"`  // The dead-letter topic for the subscription.
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // The subscription timeout in seconds.
}

// Storage represents the configuration for storage buckets.
type Storage struct {
	SourceBucket  string `toml:"source_bucket"`   // The bucket holding uploaded source media.
	OutputBucket  string `toml:"output_bucket"`   // The bucket rendered clips are published to.
	PublicBaseURL string `toml:"public_base_url"` // The base URL rendered objects are served from.
	UploadsPerSec int    `toml:"uploads_per_sec"` // The rate limit for publish uploads, in requests per second.
}

// Transcoder represents the configuration for the external transcoding tool.
// An empty Path means discovery: look on the PATH, then in the common
// install locations.
type Transcoder struct {
	Path                  string `toml:"path"`                    // Explicit path to the transcoder binary.
	Preset                string `toml:"preset"`                  // Encoder speed/quality preset for the render pass.
	CRF                   int    `toml:"crf"`                     // Constant rate factor for the render pass.
	AudioBitrate          string `toml:"audio_bitrate"`           // Audio bitrate for the render pass (e.g. "128k").
	SimulatedDelaySeconds int    `toml:"simulated_delay_seconds"` // Artificial delay of the simulated render path.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other
// configuration structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`              // The name of the application.
		GoogleProjectId string `toml:"google_project_id"` // The Google Cloud project ID.
		GoogleLocation  string `toml:"location"`          // The Google Cloud location.
	} `toml:"application"`
	Storage            Storage                      `toml:"storage"`             // Storage configuration.
	Transcoder         Transcoder                   `toml:"transcoder"`          // Transcoder configuration.
	TopicSubscriptions map[string]TopicSubscription `toml:"topic_subscriptions"` // Pub/Sub subscriptions, keyed by a logical name (e.g. "RenderRequests").
}

// NewConfig creates a new, initialized Config instance. The maps must be
// initialized before the configuration loader populates them.
func NewConfig() *Config {
	return &Config{
		TopicSubscriptions: make(map[string]TopicSubscription),
	}
}
