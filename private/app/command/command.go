// Copyright 2021 Anapaya Systems
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

// Package command contains helper sub-commands shared by the binaries.
package command

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ringsdn/ringsdn/private/config"
)

// Pather returns the command path of the parent command. It is used to
// render examples that refer to the full invocation.
type Pather interface {
	CommandPath() string
}

// StringPather is a static Pather.
type StringPather string

// CommandPath returns the string.
func (s StringPather) CommandPath() string {
	return string(s)
}

// NewSample creates a command that prints a sample configuration for the
// given samplers to stdout.
func NewSample(pather Pather, samplers ...config.Sampler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Display sample files",
		Example: "  " + pather.CommandPath() + " sample config > config.toml\n" +
			"  " + pather.CommandPath() + " sample topology > topology.toml",
		Args: cobra.NoArgs,
	}
	cmd.AddCommand(
		newSampleCmd("config", "Display a sample configuration file", samplers...),
	)
	return cmd
}

// NewSampleFile creates a sample sub-command that writes the text verbatim.
// It is used for file formats that are not TOML configuration blocks.
func NewSampleFile(name, short, text string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newSampleCmd(name, short string, samplers ...config.Sampler) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if out == nil {
				out = os.Stdout
			}
			config.WriteSample(out, nil, config.CtxMap{config.ID: cmd.Root().Name()},
				samplers...)
			return nil
		},
	}
}
