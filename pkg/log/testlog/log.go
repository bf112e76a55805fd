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

// Package testlog hooks controller logging into the test runner output.
package testlog

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/ringsdn/ringsdn/pkg/log"
)

// Setup replaces the global logger with one that writes to t for the
// duration of the test. The previous logger is restored on cleanup.
func Setup(t testing.TB, opts ...zaptest.LoggerOption) {
	t.Helper()
	restore := zap.ReplaceGlobals(zaptest.NewLogger(t, opts...))
	t.Cleanup(restore)
}

// NewLogger builds a new Logger that logs all messages to the given testing.TB.
func NewLogger(t testing.TB, opts ...zaptest.LoggerOption) log.Logger {
	t.Helper()
	Setup(t, opts...)
	return log.Root()
}
