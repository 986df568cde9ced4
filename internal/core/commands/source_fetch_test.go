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

package commands

import (
	"context"
	"os"
	"testing"

	"github.com/jaycherian/gcp-go-clip-render/internal/core/cor"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/model"
	"github.com/jaycherian/gcp-go-clip-render/internal/core/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestSourceFetchMissingObjectIsNotAnError(t *testing.T) {
	store := storage.NewMemoryStore(testBaseURL)
	cmd := NewSourceFetch("source-fetch", store)

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(GetContentParameterName(), model.GetExampleContent())

	cmd.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	assert.Nil(t, chainCtx.Get(GetSourcePathParameterName()))
}

func TestSourceFetchFailureIsNotAnError(t *testing.T) {
	store := storage.NewMemoryStore(testBaseURL)
	store.FailFetch = true
	cmd := NewSourceFetch("source-fetch", store)

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(GetContentParameterName(), model.GetExampleContent())

	cmd.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	assert.Nil(t, chainCtx.Get(GetSourcePathParameterName()))
}

func TestSourceFetchReturnsLocalPath(t *testing.T) {
	store := storage.NewMemoryStore(testBaseURL)
	content := model.GetExampleContent()
	store.Put(content.StorageKey, []byte("not really video"))
	cmd := NewSourceFetch("source-fetch", store)

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	defer chainCtx.Close()
	chainCtx.Add(GetContentParameterName(), content)

	cmd.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	path, ok := chainCtx.Get(GetSourcePathParameterName()).(string)
	require.True(t, ok)
	_, err := os.Stat(path)
	assert.NoError(t, err)
	assert.NotEmpty(t, chainCtx.GetTempFiles())
}

// The error counter must only count genuine fetch faults: a missing source
// object routes the job onto the simulated path and is not a fault.
func TestSourceFetchErrorCounterSkipsMissingObjects(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	previous := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	store := storage.NewMemoryStore(testBaseURL)
	cmd := NewSourceFetch("source-fetch-metrics", store)

	// First execution: object missing, degraded path, no error counted.
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(GetContentParameterName(), model.GetExampleContent())
	cmd.Execute(chainCtx)

	// Second execution: a genuine fetch failure, counted once.
	store.FailFetch = true
	chainCtx = cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(GetContentParameterName(), model.GetExampleContent())
	cmd.Execute(chainCtx)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var errorCount int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "source-fetch-metrics.counter.error" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				errorCount += dp.Value
			}
		}
	}
	assert.Equal(t, int64(1), errorCount)
}
