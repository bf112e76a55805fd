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

package controller

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/ringsdn/ringsdn/pkg/addr"
)

// DefaultBlockedTCPPort is the TCP destination port blocked for
// TCP-blacklisted sources.
const DefaultBlockedTCPPort uint16 = 80

// Protocol selects a blacklist.
type Protocol uint8

const (
	ProtoTCP Protocol = iota
	ProtoUDP
)

func (p Protocol) String() string {
	switch p {
	case ProtoTCP:
		return "tcp"
	case ProtoUDP:
		return "udp"
	}
	return fmt.Sprintf("unknown(%d)", uint8(p))
}

// Policy is the static access control policy. It is immutable after
// construction and safe for concurrent use.
type Policy struct {
	tcp            map[addr.MAC]struct{}
	udp            map[addr.MAC]struct{}
	blockedTCPPort uint16
}

// NewPolicy creates a policy from the per-protocol blacklists. A zero
// blockedTCPPort selects DefaultBlockedTCPPort.
func NewPolicy(tcp, udp []addr.MAC, blockedTCPPort uint16) *Policy {
	if blockedTCPPort == 0 {
		blockedTCPPort = DefaultBlockedTCPPort
	}
	p := &Policy{
		tcp:            make(map[addr.MAC]struct{}, len(tcp)),
		udp:            make(map[addr.MAC]struct{}, len(udp)),
		blockedTCPPort: blockedTCPPort,
	}
	for _, m := range tcp {
		p.tcp[m] = struct{}{}
	}
	for _, m := range udp {
		p.udp[m] = struct{}{}
	}
	return p
}

// IsBlacklisted reports whether src is on the blacklist of proto.
func (p *Policy) IsBlacklisted(proto Protocol, src addr.MAC) bool {
	var ok bool
	switch proto {
	case ProtoTCP:
		_, ok = p.tcp[src]
	case ProtoUDP:
		_, ok = p.udp[src]
	}
	return ok
}

// BlocksTCP reports whether a TCP segment from src to dstPort is blocked.
func (p *Policy) BlocksTCP(src addr.MAC, dstPort uint16) bool {
	return dstPort == p.blockedTCPPort && p.IsBlacklisted(ProtoTCP, src)
}

// BlocksUDP reports whether UDP datagrams from src are blocked. The
// destination port is irrelevant.
func (p *Policy) BlocksUDP(src addr.MAC) bool {
	return p.IsBlacklisted(ProtoUDP, src)
}

// BlockedTCPPort returns the TCP destination port that is blocked.
func (p *Policy) BlockedTCPPort() uint16 {
	return p.blockedTCPPort
}

// Blacklist returns the sorted blacklist of proto.
func (p *Policy) Blacklist(proto Protocol) []addr.MAC {
	set := p.tcp
	if proto == ProtoUDP {
		set = p.udp
	}
	out := make([]addr.MAC, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b addr.MAC) int {
		return bytes.Compare(a[:], b[:])
	})
	return out
}
