// Copyright 2024 OVGU Magdeburg
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
	"fmt"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ringsdn/ringsdn/pkg/private/prom"
	"github.com/ringsdn/ringsdn/private/app/command"
	libconfig "github.com/ringsdn/ringsdn/private/config"
)

func newCommandTemplate(
	executable string,
	shortName string,
	config libconfig.Sampler,
	samplers ...func(command.Pather) *cobra.Command,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:           executable + " --config <config.toml>",
		Short:         shortName,
		Example:       fmt.Sprintf("  %s --config ctrl.toml", executable),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
	}
	cmd.AddCommand(
		command.NewGendocs(cmd),
		command.NewVersion(cmd),
	)
	sample := command.NewSample(cmd, config)
	for _, f := range samplers {
		sample.AddCommand(f(cmd))
	}
	cmd.AddCommand(sample)
	cmd.Flags().String(cfgConfigFile, "", "Configuration file (required)")
	if err := cmd.MarkFlagRequired(cfgConfigFile); err != nil {
		panic(err)
	}
	return cmd
}

func exportBuildInfo() {
	version, goVersion := "(unknown)", "(unknown)"
	if bi, ok := debug.ReadBuildInfo(); ok {
		version = bi.Main.Version
		goVersion = bi.GoVersion
	}
	g := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ringsdn_build_info",
			Help: "Build information of the running binary.",
		},
		[]string{"version", "go_version"},
	)
	prom.SafeRegister(prometheus.DefaultRegisterer, g).(*prometheus.GaugeVec).
		WithLabelValues(version, goVersion).Set(1)
}

func exportElementID(id string) {
	g := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ringsdn_elem_id",
			Help: "The element ID from the config file.",
		},
		[]string{"cfg"},
	)
	prom.SafeRegister(prometheus.DefaultRegisterer, g).(*prometheus.GaugeVec).
		WithLabelValues(id).Set(1)
}
