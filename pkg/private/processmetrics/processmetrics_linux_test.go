// Copyright 2026 SCION Association
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux

package processmetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsdn/ringsdn/pkg/private/processmetrics"
)

func TestInit(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, processmetrics.Init(reg))

	n, err := testutil.GatherAndCount(reg,
		"process_running_seconds_total",
		"process_runnable_seconds_total",
		"go_sched_maxprocs_threads",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// A second collector describes the same metrics.
	assert.Error(t, processmetrics.Init(reg))
}
