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
	"io"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/ringsdn/ringsdn/pkg/private/serrors"
	"github.com/ringsdn/ringsdn/private/config"
)

var _ config.Config = (*Config)(nil)

// InitDefaults populates unset fields in cfg to their default values.
func (c *Config) InitDefaults() {
	c.Console.InitDefaults()
}

// Validate checks that the console level and format can be used by Setup.
func (c *Config) Validate() error {
	return c.Console.Validate()
}

// Sample writes the sample of the console block.
func (c *Config) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteSample(dst, path, ctx, &c.Console)
}

// ConfigName returns the name of the logging block.
func (c *Config) ConfigName() string {
	return "log"
}

// Validate checks the console logging configuration.
func (c *ConsoleConfig) Validate() error {
	if c.Level != "" {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(c.Level)); err != nil {
			return serrors.Wrap("invalid log.console.level", err, "level", c.Level)
		}
	}
	switch strings.ToLower(c.Format) {
	case "", "human", "json":
	default:
		return serrors.New("invalid log.console.format", "format", c.Format)
	}
	return nil
}

// Sample writes the console sample.
func (c *ConsoleConfig) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, consoleSample)
}

// ConfigName returns the name of the console block.
func (c *ConsoleConfig) ConfigName() string {
	return "console"
}

const consoleSample = `
# Console logging level (debug|info|error) (default info)
level = "info"

# Logging format (human|json) (default human)
format = "human"

# Level from which stack traces are included (debug|info|error|none)
# (default none)
stacktrace_level = "none"
`
