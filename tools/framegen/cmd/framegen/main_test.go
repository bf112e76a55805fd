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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	testCases := map[string]struct {
		args      []string
		want      string
		assertErr assert.ErrorAssertionFunc
	}{
		"all pairs": {
			args:      []string{"--kinds", "arp,tcp"},
			want:      "Wrote 24 frames",
			assertErr: assert.NoError,
		},
		"single pair": {
			args:      []string{"--kinds", "all", "--src", "h2", "--dst", "h4"},
			want:      "Wrote 4 frames",
			assertErr: assert.NoError,
		},
		"unknown host": {
			args:      []string{"--src", "h2", "--dst", "h7"},
			assertErr: assert.Error,
		},
		"bad kind": {
			args:      []string{"--kinds", "ipx"},
			assertErr: assert.Error,
		},
		"missing topology": {
			args:      []string{"--topology", "testdata/missing.toml"},
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "frames.pcap")
			cmd := newCommand()
			var stdout bytes.Buffer
			cmd.SetOut(&stdout)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(append(tc.args, "-o", out))
			err := cmd.Execute()
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Contains(t, stdout.String(), tc.want)
			_, err = os.Stat(out)
			require.NoError(t, err)
		})
	}
}
