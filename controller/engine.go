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

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"

	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/private/topology"
)

// Verdict is the outcome of processing one frame.
type Verdict uint8

const (
	// VerdictDiscard: the frame has no Ethernet header. Nothing is emitted.
	VerdictDiscard Verdict = iota
	// VerdictUnicast: the destination was learned; a rule toward it is
	// installed and the frame is forwarded there.
	VerdictUnicast
	// VerdictFlooded: the destination is unknown and no protocol handler
	// consumed the frame, so it is flooded.
	VerdictFlooded
	// VerdictProxyARP: an ARP request was answered on behalf of the target.
	VerdictProxyARP
	// VerdictRouted: the frame was routed around the ring.
	VerdictRouted
	// VerdictBlocked: UDP from a blacklisted source; a drop rule is installed.
	VerdictBlocked
	// VerdictReset: TCP from a blacklisted source to the blocked port; a
	// reset is injected.
	VerdictReset
)

func (v Verdict) String() string {
	switch v {
	case VerdictDiscard:
		return "discard"
	case VerdictUnicast:
		return "unicast"
	case VerdictFlooded:
		return "flooded"
	case VerdictProxyARP:
		return "proxy_arp"
	case VerdictRouted:
		return "routed"
	case VerdictBlocked:
		return "blocked"
	case VerdictReset:
		return "reset"
	}
	return fmt.Sprintf("unknown(%d)", uint8(v))
}

// Output is one southbound message. Exactly one of Rule and Packet is set.
type Output struct {
	Rule   *FlowRule
	Packet *PacketOut
}

// Decision is the result of processing one frame. Outputs must be sent to
// the switch in order.
type Decision struct {
	Verdict Verdict
	// Learned is set if the frame changed the learning table.
	Learned bool
	Outputs []Output
}

// Rules returns the flow rules of the decision in order.
func (d Decision) Rules() []FlowRule {
	var out []FlowRule
	for _, o := range d.Outputs {
		if o.Rule != nil {
			out = append(out, *o.Rule)
		}
	}
	return out
}

// Packets returns the injected packets of the decision in order.
func (d Decision) Packets() []PacketOut {
	var out []PacketOut
	for _, o := range d.Outputs {
		if o.Packet != nil {
			out = append(out, *o.Packet)
		}
	}
	return out
}

func (d *Decision) install(r FlowRule) {
	d.Outputs = append(d.Outputs, Output{Rule: &r})
}

func (d *Decision) send(p PacketOut) {
	d.Outputs = append(d.Outputs, Output{Packet: &p})
}

// Features are the optional engine behaviors.
type Features struct {
	// ACLBeforeLearning enforces the blacklists before the learned unicast
	// shortcut, so that flows toward learned destinations are checked too.
	ACLBeforeLearning bool `feature:"acl_before_learning"`
}

// Engine decides what happens to frames reported by the switches. It is
// stateless apart from its immutable configuration; per-frame scratch space
// lives in the processors it creates.
type Engine struct {
	router   *RingRouter
	builder  *Builder
	policy   *Policy
	features Features
}

// NewEngine creates an engine for the ring described by dir.
func NewEngine(dir *topology.Directory, policy *Policy, features Features) *Engine {
	return &Engine{
		router:   NewRingRouter(dir),
		builder:  NewBuilder(dir),
		policy:   policy,
		features: features,
	}
}

// Policy returns the access control policy of the engine.
func (e *Engine) Policy() *Policy {
	return e.policy
}

// Process runs a single frame through a fresh processor. Callers that
// process many frames of one switch should keep a processor instead, see
// Controller.
func (e *Engine) Process(table *LearningTable, pin PacketIn) (Decision, error) {
	return e.newPacketProcessor().process(table, pin)
}

// frameClass is the payload variant of a frame. Lower values win when a
// frame could be classified more than one way.
type frameClass uint8

const (
	classOther frameClass = iota
	classARP
	classICMPEcho
	classUDP
	classTCP
)

func (c frameClass) String() string {
	switch c {
	case classARP:
		return "arp"
	case classICMPEcho:
		return "icmp_echo"
	case classUDP:
		return "udp"
	case classTCP:
		return "tcp"
	}
	return "other"
}

// packetProcessor processes the frames of one switch. It holds pre-allocated
// decoding layers and is not safe for concurrent use.
type packetProcessor struct {
	e *Engine

	pin   PacketIn
	table *LearningTable
	dec   Decision

	src, dst addr.MAC
	class    frameClass

	parser  *gopacket.DecodingLayerParser
	decoded []gopacket.LayerType
	eth     layers.Ethernet
	arp     layers.ARP
	ip4     layers.IPv4
	icmp4   layers.ICMPv4
	tcp     layers.TCP
	udp     layers.UDP
	payload gopacket.Payload
}

func (e *Engine) newPacketProcessor() *packetProcessor {
	p := &packetProcessor{e: e}
	p.parser = gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet,
		&p.eth, &p.arp, &p.ip4, &p.icmp4, &p.tcp, &p.udp, &p.payload)
	p.parser.IgnoreUnsupported = true
	p.decoded = make([]gopacket.LayerType, 0, 4)
	return p
}

func (p *packetProcessor) reset() {
	p.pin = PacketIn{}
	p.table = nil
	p.dec = Decision{}
	p.src, p.dst = addr.MAC{}, addr.MAC{}
	p.class = classOther
	p.decoded = p.decoded[:0]
}

func (p *packetProcessor) process(table *LearningTable, pin PacketIn) (Decision, error) {
	p.reset()
	p.pin = pin
	p.table = table

	if !p.parse() {
		return p.dec, nil
	}
	p.dec.Learned = p.table.Observe(p.src, p.pin.InPort)

	if p.e.features.ACLBeforeLearning {
		if done, err := p.enforceACL(); done {
			return p.dec, err
		}
	}
	if port, ok := p.table.Lookup(p.dst); ok {
		p.unicast(port)
		return p.dec, nil
	}

	var err error
	switch p.class {
	case classARP:
		err = p.handleARP()
	case classICMPEcho:
		err = p.handleICMP()
	case classUDP:
		err = p.handleUDP()
	case classTCP:
		err = p.handleTCP()
	}
	// Frames no handler consumed, including those that failed to resolve,
	// are flooded. Blocked, reset, proxied and routed frames never are.
	if p.dec.Verdict == VerdictDiscard {
		p.flood()
	}
	return p.dec, err
}

// parse decodes the frame and classifies its payload. It returns false if
// the frame has no usable Ethernet header.
func (p *packetProcessor) parse() bool {
	// Decoding errors after the Ethernet header only limit classification.
	_ = p.parser.DecodeLayers(p.pin.Data, &p.decoded)
	var haveEth, haveARP, haveIP4, haveICMP, haveTCP, haveUDP bool
	for _, lt := range p.decoded {
		switch lt {
		case layers.LayerTypeEthernet:
			haveEth = true
		case layers.LayerTypeARP:
			haveARP = true
		case layers.LayerTypeIPv4:
			haveIP4 = true
		case layers.LayerTypeICMPv4:
			haveICMP = true
		case layers.LayerTypeTCP:
			haveTCP = true
		case layers.LayerTypeUDP:
			haveUDP = true
		}
	}
	if !haveEth {
		p.dec.Verdict = VerdictDiscard
		return false
	}
	var ok bool
	if p.src, ok = macFromLayer(p.eth.SrcMAC); !ok {
		p.dec.Verdict = VerdictDiscard
		return false
	}
	if p.dst, ok = macFromLayer(p.eth.DstMAC); !ok {
		p.dec.Verdict = VerdictDiscard
		return false
	}
	switch {
	case haveARP:
		p.class = classARP
	case haveIP4 && haveICMP &&
		p.icmp4.TypeCode.Type() == layers.ICMPv4TypeEchoRequest:
		p.class = classICMPEcho
	case haveIP4 && haveUDP:
		p.class = classUDP
	case haveIP4 && haveTCP:
		p.class = classTCP
	default:
		p.class = classOther
	}
	return true
}

func macFromLayer(hw []byte) (addr.MAC, bool) {
	var m addr.MAC
	if len(hw) != len(m) {
		return m, false
	}
	copy(m[:], hw)
	return m, true
}

// enforceACL applies the blacklists ahead of the learned shortcut. It
// returns true if the frame was blocked.
func (p *packetProcessor) enforceACL() (bool, error) {
	switch {
	case p.class == classUDP && p.e.policy.BlocksUDP(p.src):
		p.blockUDP()
		return true, nil
	case p.class == classTCP && p.e.policy.BlocksTCP(p.src, uint16(p.tcp.DstPort)):
		return true, p.resetTCP()
	}
	return false, nil
}

func (p *packetProcessor) unicast(port addr.Port) {
	p.dec.Verdict = VerdictUnicast
	action := OutputTo(port)
	p.dec.install(FlowRule{
		Priority: PriorityForward,
		Match: Match{
			Fields: FieldInPort | FieldEthDst | FieldEthSrc,
			InPort: p.pin.InPort,
			EthDst: p.dst,
			EthSrc: p.src,
		},
		Actions:  []Action{action},
		BufferID: p.pin.BufferID,
	})
	// A buffered frame is released by the rule itself.
	if p.pin.Buffered() {
		return
	}
	p.dec.send(PacketOut{
		Kind:     KindForward,
		InPort:   p.pin.InPort,
		BufferID: NoBuffer,
		Actions:  []Action{action},
		Data:     p.pin.Data,
	})
}

func (p *packetProcessor) flood() {
	pkt := PacketOut{
		Kind:     KindFlood,
		InPort:   p.pin.InPort,
		BufferID: p.pin.BufferID,
		Actions:  []Action{OutputTo(addr.PortFlood)},
	}
	if !p.pin.Buffered() {
		pkt.BufferID = NoBuffer
		pkt.Data = p.pin.Data
	}
	p.dec.Verdict = VerdictFlooded
	p.dec.send(pkt)
}

// forward installs rule and sends the frame out of port. A buffered frame is
// released from the switch buffer instead of being sent again.
func (p *packetProcessor) forward(port addr.Port, match Match) {
	action := OutputTo(port)
	p.dec.install(FlowRule{
		Priority: PriorityForward,
		Match:    match,
		Actions:  []Action{action},
		BufferID: NoBuffer,
	})
	pkt := PacketOut{
		Kind:     KindForward,
		InPort:   addr.PortController,
		BufferID: p.pin.BufferID,
		Actions:  []Action{action},
	}
	if !p.pin.Buffered() {
		pkt.BufferID = NoBuffer
		pkt.Data = p.pin.Data
	}
	p.dec.send(pkt)
	p.dec.Verdict = VerdictRouted
}

// inject sends a synthesized frame out of the ingress port.
func (p *packetProcessor) inject(kind PacketKind, data []byte) {
	p.dec.send(PacketOut{
		Kind:     kind,
		InPort:   addr.PortController,
		BufferID: NoBuffer,
		Actions:  []Action{OutputTo(p.pin.InPort)},
		Data:     data,
	})
}

func (p *packetProcessor) handleARP() error {
	reply, err := p.e.builder.ARPReply(&p.eth, &p.arp)
	if err != nil {
		return err
	}
	if reply == nil {
		return nil
	}
	p.inject(KindARPReply, reply)
	p.dec.Verdict = VerdictProxyARP
	return nil
}

func (p *packetProcessor) handleICMP() error {
	port, err := p.e.router.Route(p.pin.DPID, p.src, p.dst, Clockwise)
	if err != nil {
		return err
	}
	p.forward(port, Match{
		Fields:  FieldEthType | FieldIPProto | FieldEthDst,
		EthType: layers.EthernetTypeIPv4,
		IPProto: layers.IPProtocolICMPv4,
		EthDst:  p.dst,
	})
	return nil
}

func (p *packetProcessor) handleUDP() error {
	if p.e.policy.BlocksUDP(p.src) {
		p.blockUDP()
		return nil
	}
	port, err := p.e.router.Route(p.pin.DPID, p.src, p.dst, CounterClockwise)
	if err != nil {
		return err
	}
	p.forward(port, Match{
		Fields:  FieldEthType | FieldIPProto | FieldEthSrc | FieldEthDst | FieldUDPDst,
		EthType: layers.EthernetTypeIPv4,
		IPProto: layers.IPProtocolUDP,
		EthSrc:  p.src,
		EthDst:  p.dst,
		UDPDst:  uint16(p.udp.DstPort),
	})
	return nil
}

func (p *packetProcessor) blockUDP() {
	p.dec.install(FlowRule{
		Priority: PriorityBlock,
		Match: Match{
			Fields:  FieldEthType | FieldIPProto | FieldEthSrc,
			EthType: layers.EthernetTypeIPv4,
			IPProto: layers.IPProtocolUDP,
			EthSrc:  p.src,
		},
		// The drop rule also discards the buffered frame, if any.
		BufferID: p.pin.BufferID,
	})
	p.dec.Verdict = VerdictBlocked
}

func (p *packetProcessor) handleTCP() error {
	if p.e.policy.BlocksTCP(p.src, uint16(p.tcp.DstPort)) {
		return p.resetTCP()
	}
	port, err := p.e.router.Route(p.pin.DPID, p.src, p.dst, Clockwise)
	if err != nil {
		return err
	}
	p.forward(port, Match{
		Fields:  FieldEthType | FieldIPProto | FieldEthSrc | FieldEthDst | FieldTCPDst,
		EthType: layers.EthernetTypeIPv4,
		IPProto: layers.IPProtocolTCP,
		EthSrc:  p.src,
		EthDst:  p.dst,
		TCPDst:  uint16(p.tcp.DstPort),
	})
	return nil
}

func (p *packetProcessor) resetTCP() error {
	rst, err := p.e.builder.TCPReset(&p.eth, &p.ip4, &p.tcp)
	if err != nil {
		return err
	}
	p.inject(KindTCPReset, rst)
	p.dec.install(FlowRule{
		Priority: PriorityBlock,
		Match: Match{
			Fields:  FieldEthType | FieldIPProto | FieldEthSrc | FieldTCPDst,
			EthType: layers.EthernetTypeIPv4,
			IPProto: layers.IPProtocolTCP,
			EthSrc:  p.src,
			TCPDst:  uint16(p.tcp.DstPort),
		},
		Actions:  []Action{ToController()},
		BufferID: NoBuffer,
	})
	p.dec.Verdict = VerdictReset
	return nil
}
