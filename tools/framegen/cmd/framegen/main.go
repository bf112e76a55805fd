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
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ringsdn/ringsdn/pkg/private/serrors"
	"github.com/ringsdn/ringsdn/private/topology"
	"github.com/ringsdn/ringsdn/tools/framegen"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var flags frameFlags

	cmd := &cobra.Command{
		Use:   "framegen [flags]",
		Short: "Generate pcap captures of traffic between ring hosts",
		Example: `  framegen -o all.pcap
  framegen --kinds tcp --src h2 --dst h4 --dst-port 80 -o blocked.pcap`,
		Long: `'framegen' writes a pcap capture with frames between the hosts of a ring
topology.

Without --src and --dst, one frame per kind is generated for every ordered
pair of distinct hosts. ARP frames are broadcast requests for the IP of the
destination host.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := framegen.ParseKinds(flags.kinds)
			if err != nil {
				return err
			}
			dir := topology.Default()
			if flags.topology != "" {
				if dir, err = topology.FromFile(flags.topology); err != nil {
					return serrors.Wrap("loading topology", err)
				}
			}
			cmd.SilenceUsage = true

			g := &framegen.Generator{
				Dir:      dir,
				DstPort:  flags.dstPort,
				Interval: flags.interval,
			}
			pairs := g.Pairs()
			if flags.src != "" || flags.dst != "" {
				src, err := g.Host(flags.src)
				if err != nil {
					return err
				}
				dst, err := g.Host(flags.dst)
				if err != nil {
					return err
				}
				pairs = [][2]topology.Host{{src, dst}}
			}
			n, err := g.StorePcap(flags.output, kinds, pairs)
			if err != nil {
				return err
			}
			framegen.WriteSummary(cmd.OutOrStdout(), kinds, pairs)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frames to %s\n", n, flags.output)
			return err
		},
	}
	flags.Register(cmd.Flags())
	return cmd
}

type frameFlags struct {
	topology string
	kinds    string
	src      string
	dst      string
	dstPort  uint16
	interval time.Duration
	output   string
}

// Register adds the generator flags to fs.
func (f *frameFlags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.topology, "topology", "",
		"Topology file (defaults to the built-in four switch ring)")
	fs.StringVar(&f.kinds, "kinds", "all",
		"Comma separated frame kinds (arp, icmp, udp, tcp) or all")
	fs.StringVar(&f.src, "src", "", "Name of the source host")
	fs.StringVar(&f.dst, "dst", "", "Name of the destination host")
	fs.Uint16Var(&f.dstPort, "dst-port", 80, "Destination port of UDP and TCP frames")
	fs.DurationVar(&f.interval, "interval", time.Millisecond,
		"Capture time between consecutive frames")
	fs.StringVarP(&f.output, "output", "o", "frames.pcap", "Output pcap file")
}
