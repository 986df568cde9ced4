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

// Package test provides utility functions and mock data to support the
// application's test suite: a cached test configuration, environment setup
// for the hierarchical config loader, and sample render-request payloads.
package test

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-clip-render/internal/cloud"
)

// StateManager is a simple in-memory cache for the application
// configuration during test runs, so the TOML files load once per suite.
type StateManager struct {
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the test when err is non-nil. Convenience to reduce
// boilerplate error checks in tests.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("Error reading config file: %v", err)
	}
}

// GetTestRenderRequestText returns the JSON payload of a render-request
// message: content "abc" rendered through template "t1" with two selected
// segments, no brand assets, no custom settings.
func GetTestRenderRequestText() string {
	return `{
  "content_id": "abc",
  "template_id": "t1",
  "selected_segments": ["seg-001", "seg-002"]
}`
}

// configDir locates the repository's configs directory. Test binaries run
// with their package directory as the working directory, so the lookup
// walks toward the repository root until the base config file appears.
func configDir() string {
	dir := "configs"
	for i := 0; i < 8; i++ {
		if _, err := os.Stat(filepath.Join(dir, cloud.ConfigFileBaseName+cloud.ConfigFileExtension)); err == nil {
			return dir
		}
		dir = filepath.Join("..", dir)
	}
	return "configs"
}

// SetupOS points the configuration loader at the test configuration files
// (configs/.env.toml overridden by configs/.env.test.toml).
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, configDir())
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration: loaded from
// the TOML files on first use and cached for subsequent calls.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}
