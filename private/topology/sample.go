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

package topology

// Sample is the four switch ring. Host hN has MAC 10:00:00:00:00:0N and IP
// 10.0.0.N and hangs off port 1 of switch N. Ports 2 and 3 of every switch
// point clockwise and counter-clockwise respectively.
const Sample = `# Hosts and the switch port they are attached to.
[[hosts]]
name = "h1"
mac = "10:00:00:00:00:01"
ip = "10.0.0.1"
switch = 1
port = 1

[[hosts]]
name = "h2"
mac = "10:00:00:00:00:02"
ip = "10.0.0.2"
switch = 2
port = 1

[[hosts]]
name = "h3"
mac = "10:00:00:00:00:03"
ip = "10.0.0.3"
switch = 3
port = 1

[[hosts]]
name = "h4"
mac = "10:00:00:00:00:04"
ip = "10.0.0.4"
switch = 4
port = 1

# Directed links between neighboring switches. A switch is named by the MAC of
# its host; port is the egress port on the switch of "from".
[[links]]
from = "10:00:00:00:00:01"
to = "10:00:00:00:00:02"
port = 2

[[links]]
from = "10:00:00:00:00:01"
to = "10:00:00:00:00:04"
port = 3

[[links]]
from = "10:00:00:00:00:02"
to = "10:00:00:00:00:03"
port = 2

[[links]]
from = "10:00:00:00:00:02"
to = "10:00:00:00:00:01"
port = 3

[[links]]
from = "10:00:00:00:00:03"
to = "10:00:00:00:00:04"
port = 2

[[links]]
from = "10:00:00:00:00:03"
to = "10:00:00:00:00:02"
port = 3

[[links]]
from = "10:00:00:00:00:04"
to = "10:00:00:00:00:01"
port = 2

[[links]]
from = "10:00:00:00:00:04"
to = "10:00:00:00:00:03"
port = 3
`

// Default returns the directory described by Sample.
func Default() *Directory {
	d, err := FromTOML([]byte(Sample))
	if err != nil {
		panic(err)
	}
	return d
}
