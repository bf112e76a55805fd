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
	"fmt"
	"strings"

	"github.com/gopacket/gopacket/layers"

	"github.com/ringsdn/ringsdn/pkg/addr"
)

// Flow rule priorities. Higher wins.
const (
	PriorityTableMiss uint16 = 0
	PriorityForward   uint16 = 1
	PriorityBlock     uint16 = 100
)

const (
	// NoBuffer marks a packet that is not buffered on the switch.
	NoBuffer uint32 = 0xffffffff
	// MaxLenNoBuffer asks the switch to send the complete frame to the
	// controller instead of buffering it.
	MaxLenNoBuffer uint16 = 0xffff
)

// MatchField is a bit set of the fields a Match constrains.
type MatchField uint16

const (
	FieldInPort MatchField = 1 << iota
	FieldEthType
	FieldIPProto
	FieldEthSrc
	FieldEthDst
	FieldTCPDst
	FieldUDPDst
)

// Match is the predicate of a flow rule. Only the fields named in Fields are
// compared; all others are wildcarded.
type Match struct {
	Fields  MatchField
	InPort  addr.Port
	EthType layers.EthernetType
	IPProto layers.IPProtocol
	EthSrc  addr.MAC
	EthDst  addr.MAC
	TCPDst  uint16
	UDPDst  uint16
}

// Has reports whether f is constrained by the match.
func (m Match) Has(f MatchField) bool {
	return m.Fields&f != 0
}

func (m Match) String() string {
	var parts []string
	if m.Has(FieldInPort) {
		parts = append(parts, fmt.Sprintf("in_port=%s", m.InPort))
	}
	if m.Has(FieldEthType) {
		parts = append(parts, fmt.Sprintf("eth_type=0x%04x", uint16(m.EthType)))
	}
	if m.Has(FieldIPProto) {
		parts = append(parts, fmt.Sprintf("ip_proto=%d", uint8(m.IPProto)))
	}
	if m.Has(FieldEthSrc) {
		parts = append(parts, fmt.Sprintf("eth_src=%s", m.EthSrc))
	}
	if m.Has(FieldEthDst) {
		parts = append(parts, fmt.Sprintf("eth_dst=%s", m.EthDst))
	}
	if m.Has(FieldTCPDst) {
		parts = append(parts, fmt.Sprintf("tcp_dst=%d", m.TCPDst))
	}
	if m.Has(FieldUDPDst) {
		parts = append(parts, fmt.Sprintf("udp_dst=%d", m.UDPDst))
	}
	if len(parts) == 0 {
		return "any"
	}
	return strings.Join(parts, ",")
}

// Action outputs the frame on Port. MaxLen is only meaningful for the
// controller port.
type Action struct {
	Port   addr.Port
	MaxLen uint16
}

// OutputTo returns the action that sends a frame out of port.
func OutputTo(port addr.Port) Action {
	return Action{Port: port}
}

// ToController returns the action that sends the complete frame to the
// controller.
func ToController() Action {
	return Action{Port: addr.PortController, MaxLen: MaxLenNoBuffer}
}

func (a Action) String() string {
	if a.Port == addr.PortController {
		return fmt.Sprintf("output:%s/%d", a.Port, a.MaxLen)
	}
	return fmt.Sprintf("output:%s", a.Port)
}

// FlowRule is a flow table entry to be installed on a switch. A rule with no
// actions drops matching frames.
type FlowRule struct {
	Priority uint16
	Match    Match
	Actions  []Action
	// BufferID references a frame buffered on the switch that the rule is
	// applied to once installed. NoBuffer if unset.
	BufferID uint32
}

// IsDrop reports whether the rule drops matching frames.
func (r FlowRule) IsDrop() bool {
	return len(r.Actions) == 0
}

func (r FlowRule) String() string {
	acts := "drop"
	if !r.IsDrop() {
		s := make([]string, 0, len(r.Actions))
		for _, a := range r.Actions {
			s = append(s, a.String())
		}
		acts = strings.Join(s, ",")
	}
	return fmt.Sprintf("priority=%d,%s actions=%s", r.Priority, r.Match, acts)
}

// PacketKind classifies injected packets.
type PacketKind uint8

const (
	KindFlood PacketKind = iota
	KindForward
	KindARPReply
	KindTCPReset
)

func (k PacketKind) String() string {
	switch k {
	case KindFlood:
		return "flood"
	case KindForward:
		return "forward"
	case KindARPReply:
		return "arp_reply"
	case KindTCPReset:
		return "tcp_reset"
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// PacketOut is a frame injected by the controller, bypassing the flow
// tables. Either BufferID references a frame buffered on the switch, or Data
// holds the frame.
type PacketOut struct {
	Kind     PacketKind
	InPort   addr.Port
	BufferID uint32
	Actions  []Action
	Data     []byte
}

// Southbound is the protocol driver that talks to the switches. Both calls
// are fire-and-forget; delivery failures are the driver's concern.
type Southbound interface {
	InstallFlow(dpid addr.DPID, rule FlowRule)
	SendPacket(dpid addr.DPID, pkt PacketOut)
}

// PacketIn is a frame reported by a switch.
type PacketIn struct {
	DPID   addr.DPID
	InPort addr.Port
	Data   []byte
	// BufferID is the switch buffer holding the frame, NoBuffer if the frame
	// was not buffered.
	BufferID uint32
	// TotalLen is the length of the frame on the wire. It may exceed
	// len(Data) if the switch truncated the frame.
	TotalLen int
}

// Buffered reports whether the switch holds the frame in a buffer.
func (p PacketIn) Buffered() bool {
	return p.BufferID != NoBuffer
}

// BootstrapRules returns the rules installed on every switch when it
// connects: IPv6 is dropped and everything else that misses the flow table
// is sent to the controller.
func BootstrapRules() []FlowRule {
	return []FlowRule{
		{
			Priority: PriorityForward,
			Match:    Match{Fields: FieldEthType, EthType: layers.EthernetTypeIPv6},
			BufferID: NoBuffer,
		},
		{
			Priority: PriorityTableMiss,
			Actions:  []Action{ToController()},
			BufferID: NoBuffer,
		},
	}
}
