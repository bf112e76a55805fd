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

package config

const featuresSample = `
# Enabled feature flags. (default [])
#
# acl_before_learning: check the blacklists before forwarding to a learned
# destination. Without it, flows toward learned destinations bypass the
# blacklists.
enabled = []
`

const apiSample = `
# The address the read-only management API listens on (host:port or :port).
# If not set, the API is disabled. (default "")
addr = ""
`

const controllerSample = `
# Path of the ring topology file. (default "<general.config_dir>/topology.toml")
topology = "/etc/ringsdn/topology.toml"

# Capacity of the per-switch event queue. Events arriving at a full queue are
# dropped. (default 256)
queue_size = 256
`

const aclSample = `
# Sources whose TCP segments to tcp_blocked_port are answered with a reset.
tcp_blacklist = ["10:00:00:00:00:02", "10:00:00:00:00:04"]

# Sources whose UDP datagrams are dropped, whatever the destination port.
udp_blacklist = ["10:00:00:00:00:01", "10:00:00:00:00:04"]

# TCP destination port blocked for tcp_blacklist sources. (default 80)
tcp_blocked_port = 80
`

const replaySample = `
# Capture file (pcap) whose frames are reported as packet-ins. If not set, no
# frames are replayed. (default "")
input = ""

# Capture file (pcap) the injected frames are written to. (default "")
output = ""

# Switch the frames are reported on. (default 1)
dpid = 1

# Ingress port of the frames. (default 1)
in_port = 1

# Replay speed relative to the capture timestamps. 0 replays as fast as
# possible; frames that find the switch queue full are dropped. (default 0)
speed = 0.0
`
