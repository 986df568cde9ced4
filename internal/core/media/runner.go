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

// Package media orchestrates the external transcoding tool. The pipeline
// depends only on the tool's exit code and the file it produces, never on a
// library binding, so the invocation surface is a small Runner interface
// that tests can replace without spawning processes.
package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Runner executes one transcoder invocation.
type Runner interface {
	// Run invokes the tool with the given arguments and returns an error on
	// a non-zero exit. A stage that gets an error must treat any partial
	// output file as unusable.
	Run(ctx context.Context, args ...string) error

	// Available reports whether the tool can actually be invoked. The
	// workflow checks this at construction time to pick the real or the
	// simulated strategy.
	Available() bool
}

// DefaultTranscoderCommand is the binary name used when no explicit path is
// configured, resolved through PATH.
const DefaultTranscoderCommand = "ffmpeg"

// commonInstallPaths are probed when PATH resolution fails.
var commonInstallPaths = []string{
	"/usr/bin/ffmpeg",
	"/usr/local/bin/ffmpeg",
	"/opt/homebrew/bin/ffmpeg",
}

// FindTranscoder resolves the transcoder binary: an explicitly configured
// path wins, then PATH lookup, then a short list of common install
// locations. The second return reports whether a usable binary was found;
// when it is false the returned name is still a best-effort default so log
// lines stay meaningful.
func FindTranscoder(configured string) (string, bool) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, true
		}
		slog.Warn("configured transcoder path does not exist", "path", configured)
	}
	if path, err := exec.LookPath(DefaultTranscoderCommand); err == nil {
		return path, true
	}
	for _, path := range commonInstallPaths {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return DefaultTranscoderCommand, false
}

// ExecRunner invokes the transcoder as a subprocess.
type ExecRunner struct {
	commandPath string
	available   bool
}

// NewExecRunner creates a runner for the resolved binary path.
func NewExecRunner(commandPath string, available bool) *ExecRunner {
	return &ExecRunner{commandPath: commandPath, available: available}
}

// Available reports whether the binary was found during resolution.
func (r *ExecRunner) Available() bool {
	return r.available
}

// Run executes the transcoder and waits for it to exit. Stderr is captured
// and folded into the returned error so stage failures carry the tool's own
// diagnostics.
func (r *ExecRunner) Run(ctx context.Context, args ...string) error {
	slog.Info("running transcoder", "command", r.commandPath, "args", strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.commandPath, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if len(detail) > 0 {
			return fmt.Errorf("transcoder failed: %w: %s", err, lastLine(detail))
		}
		return fmt.Errorf("transcoder failed: %w", err)
	}
	return nil
}

// lastLine trims a stderr dump to its final line, which is where ffmpeg
// reports the actual failure.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
