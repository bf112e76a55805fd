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

// Package log is the logging facade used by all controller components. It is
// backed by zap; call Setup once during start up, before any goroutine logs.
package log

import (
	"os"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ringsdn/ringsdn/pkg/private/serrors"
)

const (
	// DefaultConsoleLevel is the default log level for the console.
	DefaultConsoleLevel = "info"
	// DefaultStacktraceLevel is the default log level for which stack traces are included.
	DefaultStacktraceLevel = "none"
)

// Config is the configuration for the logger.
type Config struct {
	// Console is the configuration for the console logging.
	Console ConsoleConfig `toml:"console,omitempty"`
}

// ConsoleConfig is the config for the console logger.
type ConsoleConfig struct {
	// Level of console logging (defaults to DefaultConsoleLevel).
	Level string `toml:"level,omitempty"`
	// Format of the console logging. (human|json)
	Format string `toml:"format,omitempty"`
	// StacktraceLevel sets from which level stacktraces are included.
	StacktraceLevel string `toml:"stacktrace_level,omitempty"`
	// DisableCaller stops annotating logs with the calling function's file
	// name and line number.
	DisableCaller bool `toml:"disable_caller,omitempty"`
}

// InitDefaults populates unset fields in cfg to their default values (if they
// have one).
func (c *ConsoleConfig) InitDefaults() {
	if c.Level == "" {
		c.Level = DefaultConsoleLevel
	}
	if c.Format == "" {
		c.Format = "human"
	}
	if c.StacktraceLevel == "" {
		c.StacktraceLevel = DefaultStacktraceLevel
	}
}

// Setup configures the logging library with the given config.
func Setup(cfg Config, opts ...Option) error {
	o := applyOptions(opts)
	cfg.Console.InitDefaults()
	return setupConsole(cfg.Console, o)
}

func setupConsole(cfg ConsoleConfig, o options) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return serrors.Wrap("unable to parse log.console.level", err, "level", cfg.Level)
	}
	encoding := "console"
	switch strings.ToLower(cfg.Format) {
	case "human":
	case "json":
		encoding = "json"
	default:
		return serrors.New("unknown log.console.format", "format", cfg.Format)
	}
	zCfg := zap.NewProductionConfig()
	zCfg.DisableStacktrace = true
	if cfg.StacktraceLevel != "none" {
		var stackLevel zapcore.Level
		if err := stackLevel.UnmarshalText([]byte(cfg.StacktraceLevel)); err != nil {
			return serrors.Wrap("unable to parse log.console.stacktrace_level", err,
				"level", cfg.StacktraceLevel)
		}
		zCfg.DisableStacktrace = false
		o.stacktraceLevel = &stackLevel
	}
	zCfg.Level = zap.NewAtomicLevelAt(level)
	zCfg.Encoding = encoding
	zCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zCfg.DisableCaller = cfg.DisableCaller
	zCfg.Sampling = nil
	zCfg.OutputPaths = []string{"stderr"}
	zCfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := zCfg.Build(o.zapOptions()...)
	if err != nil {
		return serrors.Wrap("creating logger", err)
	}
	zap.ReplaceGlobals(logger)
	ConsoleLevel = httpLevel{a: zCfg.Level}
	return nil
}

// HandlePanic catches panics and logs them. It must be deferred at the top of
// every goroutine.
func HandlePanic() {
	if msg := recover(); msg != nil {
		zap.L().Error("Panic", zap.Any("msg", msg), zap.ByteString("stack", debug.Stack()))
		zap.L().Error("=====================> Service panicked!")
		Flush()
		os.Exit(255)
	}
}

// Flush writes the logs to the underlying buffer.
func Flush() {
	_ = zap.L().Sync()
}

// ConsoleLevel allows interacting with the logging level at runtime. It is
// initialized after a successful call to Setup.
var ConsoleLevel httpLevel

type httpLevel struct {
	a zap.AtomicLevel
}

// String returns the current console level, or the empty string before Setup.
func (l httpLevel) String() string {
	if l.a == (zap.AtomicLevel{}) {
		return ""
	}
	return l.a.String()
}

// SetLevel changes the console level at runtime.
func (l httpLevel) SetLevel(level string) error {
	if l.a == (zap.AtomicLevel{}) {
		return serrors.New("logging not set up")
	}
	return l.a.UnmarshalText([]byte(level))
}
