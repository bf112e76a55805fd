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

package topology_test

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/private/topology"
)

func mac(n byte) addr.MAC {
	return addr.MAC{0x10, 0, 0, 0, 0, n}
}

func TestDefault(t *testing.T) {
	d := topology.Default()

	assert.Len(t, d.Hosts(), 4)
	assert.Len(t, d.Links(), 8)
	assert.Equal(t, []addr.DPID{1, 2, 3, 4}, d.Switches())

	for n := byte(1); n <= 4; n++ {
		h, ok := d.HostByMAC(mac(n))
		require.True(t, ok)
		assert.Equal(t, addr.DPID(n), h.Switch)
		assert.Equal(t, addr.Port(1), h.Port)
		assert.Equal(t, netip.AddrFrom4([4]byte{10, 0, 0, n}), h.IP)

		byIP, ok := d.HostByIP(h.IP)
		require.True(t, ok)
		assert.Equal(t, h, byIP)
	}

	testCases := map[string]struct {
		from, to addr.MAC
		port     addr.Port
		ok       bool
	}{
		"h1 to h2":              {from: mac(1), to: mac(2), port: 2, ok: true},
		"h1 to h4":              {from: mac(1), to: mac(4), port: 3, ok: true},
		"h2 to h1":              {from: mac(2), to: mac(1), port: 3, ok: true},
		"h4 to h1":              {from: mac(4), to: mac(1), port: 2, ok: true},
		"h1 to h3 not adjacent": {from: mac(1), to: mac(3)},
		"unknown source":        {from: mac(9), to: mac(1)},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			port, ok := d.Link(tc.from, tc.to)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.port, port)
		})
	}
}

func TestHostByIPMapped(t *testing.T) {
	d := topology.Default()
	h, ok := d.HostByIP(netip.MustParseAddr("::ffff:10.0.0.3"))
	require.True(t, ok)
	assert.Equal(t, "h3", h.Name)
	_, ok = d.HostByIP(netip.MustParseAddr("10.0.0.9"))
	assert.False(t, ok)
}

func TestAccessorsReturnCopies(t *testing.T) {
	d := topology.Default()
	hosts := d.Hosts()
	hosts[0].Port = 42
	links := d.Links()
	links[0].Port = 42

	h, _ := d.HostByMAC(mac(1))
	assert.Equal(t, addr.Port(1), h.Port)
	p, _ := d.Link(mac(1), mac(2))
	assert.Equal(t, addr.Port(2), p)
}

func TestFromTOMLErrors(t *testing.T) {
	const h1 = `
[[hosts]]
name = "h1"
mac = "10:00:00:00:00:01"
ip = "10.0.0.1"
switch = 1
port = 1
`
	const h2 = `
[[hosts]]
name = "h2"
mac = "10:00:00:00:00:02"
ip = "10.0.0.2"
switch = 2
port = 1
`
	testCases := map[string]string{
		"no hosts":      `links = []`,
		"unknown field": h1 + "color = \"red\"\n",
		"bad mac": `
[[hosts]]
name = "h1"
mac = "zz"
ip = "10.0.0.1"
switch = 1
port = 1
`,
		"ipv6 host": `
[[hosts]]
name = "h1"
mac = "10:00:00:00:00:01"
ip = "fe80::1"
switch = 1
port = 1
`,
		"zero switch": `
[[hosts]]
name = "h1"
mac = "10:00:00:00:00:01"
ip = "10.0.0.1"
switch = 0
port = 1
`,
		"duplicate mac": h1 + `
[[hosts]]
name = "h2"
mac = "10:00:00:00:00:01"
ip = "10.0.0.2"
switch = 2
port = 1
`,
		"duplicate ip": h1 + `
[[hosts]]
name = "h2"
mac = "10:00:00:00:00:02"
ip = "10.0.0.1"
switch = 2
port = 1
`,
		"shared attachment": h1 + `
[[hosts]]
name = "h2"
mac = "10:00:00:00:00:02"
ip = "10.0.0.2"
switch = 1
port = 1
`,
		"unknown link endpoint": h1 + h2 + `
[[links]]
from = "10:00:00:00:00:01"
to = "10:00:00:00:00:09"
port = 2
`,
		"self link": h1 + h2 + `
[[links]]
from = "10:00:00:00:00:01"
to = "10:00:00:00:00:01"
port = 2
`,
		"link on host port": h1 + h2 + `
[[links]]
from = "10:00:00:00:00:01"
to = "10:00:00:00:00:02"
port = 1
`,
		"duplicate link": h1 + h2 + `
[[links]]
from = "10:00:00:00:00:01"
to = "10:00:00:00:00:02"
port = 2

[[links]]
from = "10:00:00:00:00:01"
to = "10:00:00:00:00:02"
port = 3
`,
	}
	for name, raw := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := topology.FromTOML([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "topology.toml")
	require.NoError(t, os.WriteFile(file, []byte(topology.Sample), 0o600))
	d, err := topology.FromFile(file)
	require.NoError(t, err)
	assert.Equal(t, topology.Default().Hosts(), d.Hosts())

	_, err = topology.FromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
