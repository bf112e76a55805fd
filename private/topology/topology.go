// Copyright 2019 ETH Zurich, Anapaya Systems
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

// Package topology holds the static host directory and link map of the
// switch ring. A Directory is built once at startup and is immutable
// afterwards; all accessors return copies.
package topology

import (
	"net/netip"
	"slices"

	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
)

// Host is a host attached to exactly one switch port.
type Host struct {
	Name   string     `json:"name"`
	MAC    addr.MAC   `json:"mac"`
	IP     netip.Addr `json:"ip"`
	Switch addr.DPID  `json:"switch"`
	Port   addr.Port  `json:"port"`
}

// Link is a directed inter-switch link. The switches are identified by the
// MAC of the host attached to them.
type Link struct {
	From addr.MAC  `json:"from"`
	To   addr.MAC  `json:"to"`
	Port addr.Port `json:"port"`
}

type linkKey struct {
	from, to addr.MAC
}

// Directory is the read-only view of the ring topology.
type Directory struct {
	hosts []Host
	byMAC map[addr.MAC]int
	byIP  map[netip.Addr]int
	links map[linkKey]addr.Port
	// linkOrder keeps links in file order for listing.
	linkOrder []Link
}

// FromFile loads and validates the topology file at path.
func FromFile(path string) (*Directory, error) {
	rt, err := RawFromFile(path)
	if err != nil {
		return nil, err
	}
	return FromRaw(rt)
}

// FromTOML builds a directory from the TOML representation.
func FromTOML(b []byte) (*Directory, error) {
	rt, err := RawFromTOML(b)
	if err != nil {
		return nil, err
	}
	return FromRaw(rt)
}

// FromRaw converts the raw topology and checks the cross-entry constraints:
// host names, MACs, IPs and attachment ports are unique, link endpoints are
// known hosts, and every directed link is configured at most once.
func FromRaw(rt *RawTopology) (*Directory, error) {
	if err := validate.Struct(rt); err != nil {
		return nil, serrors.Wrap("validating topology", err)
	}
	d := &Directory{
		byMAC: make(map[addr.MAC]int, len(rt.Hosts)),
		byIP:  make(map[netip.Addr]int, len(rt.Hosts)),
		links: make(map[linkKey]addr.Port, len(rt.Links)),
	}
	names := make(map[string]struct{}, len(rt.Hosts))
	type attachment struct {
		dpid addr.DPID
		port addr.Port
	}
	attached := make(map[attachment]string, len(rt.Hosts))
	for _, rh := range rt.Hosts {
		mac, err := addr.ParseMAC(rh.MAC)
		if err != nil {
			return nil, serrors.Wrap("parsing host MAC", err, "host", rh.Name)
		}
		ip, err := netip.ParseAddr(rh.IP)
		if err != nil {
			return nil, serrors.Wrap("parsing host IP", err, "host", rh.Name)
		}
		h := Host{
			Name:   rh.Name,
			MAC:    mac,
			IP:     ip,
			Switch: addr.DPID(rh.Switch),
			Port:   addr.Port(rh.Port),
		}
		if _, ok := names[h.Name]; ok {
			return nil, serrors.New("duplicate host name", "host", h.Name)
		}
		if _, ok := d.byMAC[h.MAC]; ok {
			return nil, serrors.New("duplicate host MAC", "host", h.Name, "mac", h.MAC)
		}
		if _, ok := d.byIP[h.IP]; ok {
			return nil, serrors.New("duplicate host IP", "host", h.Name, "ip", h.IP)
		}
		at := attachment{dpid: h.Switch, port: h.Port}
		if other, ok := attached[at]; ok {
			return nil, serrors.New("switch port already used by another host",
				"host", h.Name, "other", other, "dpid", h.Switch, "port", h.Port)
		}
		names[h.Name] = struct{}{}
		attached[at] = h.Name
		d.byMAC[h.MAC] = len(d.hosts)
		d.byIP[h.IP] = len(d.hosts)
		d.hosts = append(d.hosts, h)
	}
	for _, rl := range rt.Links {
		from, err := addr.ParseMAC(rl.From)
		if err != nil {
			return nil, serrors.Wrap("parsing link source", err)
		}
		to, err := addr.ParseMAC(rl.To)
		if err != nil {
			return nil, serrors.Wrap("parsing link destination", err)
		}
		l := Link{From: from, To: to, Port: addr.Port(rl.Port)}
		src, ok := d.HostByMAC(l.From)
		if !ok {
			return nil, serrors.New("link source is not a known host", "from", l.From)
		}
		if _, ok := d.HostByMAC(l.To); !ok {
			return nil, serrors.New("link destination is not a known host", "to", l.To)
		}
		if other, ok := attached[attachment{dpid: src.Switch, port: l.Port}]; ok {
			return nil, serrors.New("link port is a host attachment port",
				"from", l.From, "to", l.To, "port", l.Port, "host", other)
		}
		k := linkKey{from: l.From, to: l.To}
		if _, ok := d.links[k]; ok {
			return nil, serrors.New("duplicate link", "from", l.From, "to", l.To)
		}
		d.links[k] = l.Port
		d.linkOrder = append(d.linkOrder, l)
	}
	return d, nil
}

// HostByMAC returns the host with the given MAC.
func (d *Directory) HostByMAC(mac addr.MAC) (Host, bool) {
	i, ok := d.byMAC[mac]
	if !ok {
		return Host{}, false
	}
	return d.hosts[i], true
}

// HostByIP returns the host with the given IPv4 address.
func (d *Directory) HostByIP(ip netip.Addr) (Host, bool) {
	i, ok := d.byIP[ip.Unmap()]
	if !ok {
		return Host{}, false
	}
	return d.hosts[i], true
}

// Link returns the egress port on the switch of from toward the switch of to,
// if such a link is configured. Reverse links are never inferred.
func (d *Directory) Link(from, to addr.MAC) (addr.Port, bool) {
	p, ok := d.links[linkKey{from: from, to: to}]
	return p, ok
}

// Hosts returns all hosts in file order.
func (d *Directory) Hosts() []Host {
	return slices.Clone(d.hosts)
}

// Links returns all links in file order.
func (d *Directory) Links() []Link {
	return slices.Clone(d.linkOrder)
}

// Switches returns the sorted set of switches that have a host attached.
func (d *Directory) Switches() []addr.DPID {
	var out []addr.DPID
	for _, h := range d.hosts {
		out = append(out, h.Switch)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
