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

package log

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	entriesCounter  *EntriesCounter
	stacktraceLevel *zapcore.Level
	callerSkip      int
}

func applyOptions(opts []Option) options {
	o := options{callerSkip: 1}
	for _, option := range opts {
		option(&o)
	}
	return o
}

// Option is a function that sets an option.
type Option func(o *options)

// WithEntriesCounter configures a metric counters that are incremented with
// every emitted log entry.
func WithEntriesCounter(m EntriesCounter) Option {
	return func(o *options) {
		o.entriesCounter = &m
	}
}

// AddCallerSkip increases the number of callers skipped by caller annotation.
func AddCallerSkip(skip int) Option {
	return func(o *options) {
		o.callerSkip += skip
	}
}

func (opts *options) zapOptions() []zap.Option {
	zapOpts := []zap.Option{zap.AddCallerSkip(opts.callerSkip)}
	if opts.entriesCounter != nil {
		zapOpts = append(zapOpts, zap.Hooks(opts.entriesCounter.hook))
	}
	if opts.stacktraceLevel != nil {
		zapOpts = append(zapOpts, zap.AddStacktrace(*opts.stacktraceLevel))
	}
	return zapOpts
}

// EntriesCounter defines the metrics that are incremented when emitting a log
// entry.
type EntriesCounter struct {
	Debug prometheus.Counter
	Info  prometheus.Counter
	Error prometheus.Counter
}

func (m *EntriesCounter) hook(e zapcore.Entry) error {
	var c prometheus.Counter
	switch e.Level {
	case zapcore.ErrorLevel:
		c = m.Error
	case zapcore.InfoLevel:
		c = m.Info
	case zapcore.DebugLevel:
		c = m.Debug
	}
	if c != nil {
		c.Inc()
	}
	return nil
}
