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

// This file builds the argument lists and edit-list files for the two
// transcoder invocations the pipeline makes per job: a lossless concat of
// the selected ranges, then a re-encode into the template's resolution.
// The builders are pure so they can be verified without invoking the tool.
package media

import (
	"fmt"
	"os"
	"strings"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
)

// Encoding defaults for the render pass: quality-oriented H.264 with a fixed
// stereo AAC audio stream.
const (
	DefaultVideoCodec   = "libx264"
	DefaultPreset       = "medium"
	DefaultCRF          = 23
	DefaultAudioCodec   = "aac"
	DefaultAudioBitrate = "128k"
)

// EncodeSettings carries the configurable knobs of the render pass.
type EncodeSettings struct {
	Preset       string
	CRF          int
	AudioBitrate string
}

// DefaultEncodeSettings returns the stock render settings.
func DefaultEncodeSettings() EncodeSettings {
	return EncodeSettings{Preset: DefaultPreset, CRF: DefaultCRF, AudioBitrate: DefaultAudioBitrate}
}

// WriteEditList writes a concat-demuxer edit list to path: one entry per
// range, each referencing the same source file with inpoint/outpoint trims.
// An empty range list is a caller error; the empty-request fallback is the
// selector's policy, not the assembler's.
func WriteEditList(path string, sourcePath string, ranges []model.EditRange) error {
	if len(ranges) == 0 {
		return fmt.Errorf("edit list requires at least one range")
	}

	var b strings.Builder
	for _, r := range ranges {
		fmt.Fprintf(&b, "file '%s'\n", sourcePath)
		fmt.Fprintf(&b, "inpoint %g\n", r.Start)
		fmt.Fprintf(&b, "outpoint %g\n", r.End)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("could not write edit list %s: %w", path, err)
	}
	return nil
}

// ConcatArgs builds the stream-copy concatenation invocation. The concat
// demuxer honors the inpoint/outpoint trims of the edit list and -c copy
// keeps the source encoding intact.
func ConcatArgs(editListPath string, outputPath string) []string {
	return []string{
		"-y", "-hide_banner",
		"-f", "concat",
		"-safe", "0",
		"-i", editListPath,
		"-c", "copy",
		outputPath,
	}
}

// RenderArgs builds the reformat invocation: scale to fit inside the target
// box preserving aspect ratio, pad (letterbox/pillarbox) to exactly fill it
// centered, then re-encode video and audio.
func RenderArgs(inputPath string, outputPath string, res model.Resolution, settings EncodeSettings) []string {
	filter := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		res.Width, res.Height, res.Width, res.Height)

	return []string{
		"-y", "-hide_banner",
		"-i", inputPath,
		"-vf", filter,
		"-c:v", DefaultVideoCodec,
		"-preset", settings.Preset,
		"-crf", fmt.Sprintf("%d", settings.CRF),
		"-c:a", DefaultAudioCodec,
		"-b:a", settings.AudioBitrate,
		outputPath,
	}
}
