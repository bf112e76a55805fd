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

package launcher

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsdn/ringsdn/pkg/log"
	"github.com/ringsdn/ringsdn/private/config"
	"github.com/ringsdn/ringsdn/private/env"
)

type testConfig struct {
	General env.General `toml:"general,omitempty"`
	Logging log.Config  `toml:"log,omitempty"`
}

func (c *testConfig) InitDefaults() { config.InitAll(&c.General) }

func (c *testConfig) Validate() error { return config.ValidateAll(&c.General) }

func (c *testConfig) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, config.CtxMap{config.ID: "ctrl"}, &c.General)
}

func TestApplicationRun(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ctrl.toml")
	raw := "[general]\nid = \"ctrl-1\"\nconfig_dir = \"" + dir + "\"\n\n" +
		"[log.console]\nlevel = \"debug\"\n"
	require.NoError(t, os.WriteFile(file, []byte(raw), 0o600))

	var cfg testConfig
	var ran bool
	app := &Application{
		TOMLConfig: &cfg,
		ShortName:  "test controller",
		Main: func(ctx context.Context) error {
			ran = true
			return nil
		},
	}
	require.NoError(t, app.run([]string{"--config", file}))
	assert.True(t, ran)
	assert.Equal(t, "ctrl-1", cfg.General.ID)
	assert.Equal(t, "debug", app.getLogging().Console.Level)
	assert.Equal(t, "human", app.getLogging().Console.Format)
}

func TestApplicationMissingConfig(t *testing.T) {
	var errOut bytes.Buffer
	app := &Application{TOMLConfig: &testConfig{}, ErrorWriter: &errOut}
	assert.Error(t, app.run([]string{}))
}
