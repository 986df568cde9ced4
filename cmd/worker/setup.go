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

// Package main contains the setup and initialization logic for the render
// worker's state. A centralized state manager holds the shared
// dependencies: configuration, Google Cloud service clients, the
// repositories, and the processing state machine.
//
// Functions:
//   - SetupOS: Points the configuration loader at the config directory and
//     runtime.
//   - GetConfig: Singleton loader for the application configuration.
//   - InitState: Creates all clients and services and wires the render
//     workflow together.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jaycherian/gcp-go-clip-render/internal/cloud"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/media"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/services"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/workflow"
)

// StateManager holds all the shared dependencies of the worker, avoiding
// scattered globals and making the wiring explicit.
type StateManager struct {
	config            *cloud.Config
	cloud             *cloud.ServiceClients
	processingService *services.ProcessingService
}

var state = &StateManager{}

// SetupOS sets the environment variables the configuration loader uses to
// find the TOML files. The runtime defaults to "local" for a worker
// started by hand; deployments override GCP_RUNTIME.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

// GetConfig provides a singleton instance of the application
// configuration, loaded from the TOML files on first call.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup os: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState initializes the worker's state: cloud clients, the object
// store, the transcoder runner, the render workflow, the repositories, and
// the processing state machine.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		log.Fatalf("failed to create cloud service clients: %v\n", err)
	}
	state.cloud = cloudClients

	store := cloud.NewGCSObjectStore(cloudClients.StorageClient, config)

	commandPath, available := media.FindTranscoder(config.Transcoder.Path)
	runner := media.NewExecRunner(commandPath, available)

	settings := media.DefaultEncodeSettings()
	if config.Transcoder.Preset != "" {
		settings.Preset = config.Transcoder.Preset
	}
	if config.Transcoder.CRF > 0 {
		settings.CRF = config.Transcoder.CRF
	}
	if config.Transcoder.AudioBitrate != "" {
		settings.AudioBitrate = config.Transcoder.AudioBitrate
	}

	renderWorkflow := workflow.NewRenderWorkflow(
		store,
		runner,
		settings,
		config.Storage.PublicBaseURL,
		time.Duration(config.Transcoder.SimulatedDelaySeconds)*time.Second,
	)

	state.processingService = services.NewProcessingService(newRepositories(), renderWorkflow)
}

// newRepositories builds the in-memory repositories and seeds them with the
// example entities, keeping a hand-started worker exercisable end to end.
// The surrounding platform's persistence layer replaces these in
// deployment.
func newRepositories() services.Repositories {
	contents := services.NewMemoryContents()
	contents.Put(model.GetExampleContent())

	segments := services.NewMemorySegments()
	segments.Put(model.GetExampleContent().Id, model.GetExampleSegments())

	templates := services.NewMemoryTemplates()
	templates.Put(model.GetExampleTemplate())

	return services.Repositories{
		Records:     services.NewMemoryRecords(),
		Contents:    contents,
		Segments:    segments,
		Templates:   templates,
		BrandAssets: services.NewMemoryBrandAssets(),
	}
}
