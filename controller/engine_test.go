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

package controller_test

import (
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsdn/ringsdn/controller"
	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/private/topology"
)

func mac(n byte) addr.MAC {
	return addr.MAC{0x10, 0, 0, 0, 0, n}
}

func ip(n byte) net.IP {
	return net.IP{10, 0, 0, n}
}

var broadcast = addr.MAC{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

func serialize(t *testing.T, ls ...gopacket.SerializableLayer) []byte {
	t.Helper()
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, ls...))
	return buf.Bytes()
}

func ethernet(src, dst addr.MAC, et layers.EthernetType) *layers.Ethernet {
	return &layers.Ethernet{
		SrcMAC:       src.HardwareAddr(),
		DstMAC:       dst.HardwareAddr(),
		EthernetType: et,
	}
}

func ipv4(src, dst byte, proto layers.IPProtocol) *layers.IPv4 {
	return &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: proto,
		SrcIP:    ip(src),
		DstIP:    ip(dst),
	}
}

func arpFrame(t *testing.T, op uint16, src byte, dstMAC addr.MAC, target net.IP) []byte {
	return serialize(t,
		ethernet(mac(src), dstMAC, layers.EthernetTypeARP),
		&layers.ARP{
			AddrType:          layers.LinkTypeEthernet,
			Protocol:          layers.EthernetTypeIPv4,
			HwAddressSize:     6,
			ProtAddressSize:   4,
			Operation:         op,
			SourceHwAddress:   mac(src).HardwareAddr(),
			SourceProtAddress: ip(src),
			DstHwAddress:      make([]byte, 6),
			DstProtAddress:    target,
		},
	)
}

func icmpFrame(t *testing.T, src, dst byte, typ uint8) []byte {
	return serialize(t,
		ethernet(mac(src), mac(dst), layers.EthernetTypeIPv4),
		ipv4(src, dst, layers.IPProtocolICMPv4),
		&layers.ICMPv4{TypeCode: layers.CreateICMPv4TypeCode(typ, 0), Id: 1, Seq: 1},
		gopacket.Payload("ping"),
	)
}

func udpFrame(t *testing.T, src, dst byte, dstPort uint16) []byte {
	ip4 := ipv4(src, dst, layers.IPProtocolUDP)
	udp := &layers.UDP{SrcPort: 40000, DstPort: layers.UDPPort(dstPort)}
	require.NoError(t, udp.SetNetworkLayerForChecksum(ip4))
	return serialize(t,
		ethernet(mac(src), mac(dst), layers.EthernetTypeIPv4),
		ip4, udp, gopacket.Payload("data"),
	)
}

func tcpFrame(t *testing.T, src, dst byte, dstPort uint16, seq uint32) []byte {
	ip4 := ipv4(src, dst, layers.IPProtocolTCP)
	tcp := &layers.TCP{
		SrcPort: 40000,
		DstPort: layers.TCPPort(dstPort),
		Seq:     seq,
		SYN:     true,
		Window:  1024,
	}
	require.NoError(t, tcp.SetNetworkLayerForChecksum(ip4))
	return serialize(t,
		ethernet(mac(src), mac(dst), layers.EthernetTypeIPv4),
		ip4, tcp,
	)
}

func newEngine(features controller.Features) *controller.Engine {
	policy := controller.NewPolicy(
		[]addr.MAC{mac(2), mac(4)},
		[]addr.MAC{mac(1), mac(4)},
		0,
	)
	return controller.NewEngine(topology.Default(), policy, features)
}

func packetIn(dpid addr.DPID, inPort addr.Port, data []byte) controller.PacketIn {
	return controller.PacketIn{
		DPID:     dpid,
		InPort:   inPort,
		Data:     data,
		BufferID: controller.NoBuffer,
		TotalLen: len(data),
	}
}

func packetsOfKind(d controller.Decision, k controller.PacketKind) []controller.PacketOut {
	var out []controller.PacketOut
	for _, p := range d.Packets() {
		if p.Kind == k {
			out = append(out, p)
		}
	}
	return out
}

func TestProcessDiscardsFrameWithoutEthernet(t *testing.T) {
	e := newEngine(controller.Features{})
	table := controller.NewState().Table(1)
	for name, data := range map[string][]byte{
		"empty":     nil,
		"too short": {0x10, 0, 0, 0},
	} {
		t.Run(name, func(t *testing.T) {
			dec, err := e.Process(table, packetIn(1, 1, data))
			require.NoError(t, err)
			assert.Equal(t, controller.VerdictDiscard, dec.Verdict)
			assert.Empty(t, dec.Outputs)
			assert.Zero(t, table.Len())
		})
	}
}

func TestProcessLearnsOnMiss(t *testing.T) {
	e := newEngine(controller.Features{})
	table := controller.NewState().Table(1)
	data := icmpFrame(t, 1, 3, layers.ICMPv4TypeEchoReply)

	dec, err := e.Process(table, packetIn(1, 1, data))
	require.NoError(t, err)
	assert.True(t, dec.Learned)
	port, ok := table.Lookup(mac(1))
	require.True(t, ok)
	assert.Equal(t, addr.Port(1), port)

	assert.Equal(t, controller.VerdictFlooded, dec.Verdict)
	assert.Empty(t, dec.Rules())
	assert.Equal(t, []controller.PacketOut{{
		Kind:     controller.KindFlood,
		InPort:   1,
		BufferID: controller.NoBuffer,
		Actions:  []controller.Action{controller.OutputTo(addr.PortFlood)},
		Data:     data,
	}}, dec.Packets())
}

func TestProcessConsumedFramesAreNotFlooded(t *testing.T) {
	testCases := map[string]struct {
		dpid    addr.DPID
		frame   func(t *testing.T) []byte
		verdict controller.Verdict
		packets []controller.PacketKind
	}{
		"blacklisted udp": {
			dpid:    1,
			frame:   func(t *testing.T) []byte { return udpFrame(t, 4, 2, 5001) },
			verdict: controller.VerdictBlocked,
		},
		"blacklisted tcp to port 80": {
			dpid:    2,
			frame:   func(t *testing.T) []byte { return tcpFrame(t, 2, 1, 80, 7) },
			verdict: controller.VerdictReset,
			packets: []controller.PacketKind{controller.KindTCPReset},
		},
		"arp request": {
			dpid: 1,
			frame: func(t *testing.T) []byte {
				return arpFrame(t, layers.ARPRequest, 1, broadcast, ip(3))
			},
			verdict: controller.VerdictProxyARP,
			packets: []controller.PacketKind{controller.KindARPReply},
		},
		"icmp echo request": {
			dpid:    1,
			frame: func(t *testing.T) []byte {
				return icmpFrame(t, 1, 3, layers.ICMPv4TypeEchoRequest)
			},
			verdict: controller.VerdictRouted,
			packets: []controller.PacketKind{controller.KindForward},
		},
		"udp": {
			dpid:    2,
			frame:   func(t *testing.T) []byte { return udpFrame(t, 2, 4, 5001) },
			verdict: controller.VerdictRouted,
			packets: []controller.PacketKind{controller.KindForward},
		},
		"tcp": {
			dpid:    1,
			frame:   func(t *testing.T) []byte { return tcpFrame(t, 1, 3, 22, 1) },
			verdict: controller.VerdictRouted,
			packets: []controller.PacketKind{controller.KindForward},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			e := newEngine(controller.Features{})
			table := controller.NewState().Table(tc.dpid)
			dec, err := e.Process(table, packetIn(tc.dpid, 1, tc.frame(t)))
			require.NoError(t, err)
			assert.Equal(t, tc.verdict, dec.Verdict)
			var kinds []controller.PacketKind
			for _, p := range dec.Packets() {
				kinds = append(kinds, p.Kind)
			}
			assert.Equal(t, tc.packets, kinds)
		})
	}
}

func TestProcessLearnedDestination(t *testing.T) {
	testCases := map[string]func(t *testing.T) []byte{
		"icmp echo": func(t *testing.T) []byte {
			return icmpFrame(t, 1, 3, layers.ICMPv4TypeEchoRequest)
		},
		"udp from blacklist": func(t *testing.T) []byte {
			return udpFrame(t, 1, 3, 5001)
		},
		"tcp to blocked port": func(t *testing.T) []byte {
			return tcpFrame(t, 1, 3, 80, 7)
		},
		"arp request": func(t *testing.T) []byte {
			return arpFrame(t, layers.ARPRequest, 1, mac(3), ip(3))
		},
		"other": func(t *testing.T) []byte {
			return serialize(t,
				ethernet(mac(1), mac(3), layers.EthernetTypeIPv6),
				gopacket.Payload(make([]byte, 40)),
			)
		},
	}
	for name, build := range testCases {
		t.Run(name, func(t *testing.T) {
			e := newEngine(controller.Features{})
			table := controller.NewState().Table(1)
			table.Observe(mac(3), 2)
			data := build(t)

			dec, err := e.Process(table, packetIn(1, 1, data))
			require.NoError(t, err)
			assert.Equal(t, controller.VerdictUnicast, dec.Verdict)
			assert.Equal(t, []controller.FlowRule{{
				Priority: controller.PriorityForward,
				Match: controller.Match{
					Fields: controller.FieldInPort | controller.FieldEthDst |
						controller.FieldEthSrc,
					InPort: 1,
					EthDst: mac(3),
					EthSrc: mac(1),
				},
				Actions:  []controller.Action{controller.OutputTo(2)},
				BufferID: controller.NoBuffer,
			}}, dec.Rules())
			assert.Equal(t, []controller.PacketOut{{
				Kind:     controller.KindForward,
				InPort:   1,
				BufferID: controller.NoBuffer,
				Actions:  []controller.Action{controller.OutputTo(2)},
				Data:     data,
			}}, dec.Packets())
		})
	}
}

func TestProcessBuffered(t *testing.T) {
	e := newEngine(controller.Features{})
	data := tcpFrame(t, 1, 3, 22, 1)
	pin := packetIn(1, 1, data)
	pin.BufferID = 7

	t.Run("learned destination", func(t *testing.T) {
		table := controller.NewState().Table(1)
		table.Observe(mac(3), 2)
		dec, err := e.Process(table, pin)
		require.NoError(t, err)
		rules := dec.Rules()
		require.Len(t, rules, 1)
		assert.Equal(t, uint32(7), rules[0].BufferID)
		assert.Empty(t, dec.Packets())
	})
	t.Run("routed", func(t *testing.T) {
		table := controller.NewState().Table(1)
		dec, err := e.Process(table, pin)
		require.NoError(t, err)
		assert.Equal(t, controller.VerdictRouted, dec.Verdict)
		pkts := dec.Packets()
		require.Len(t, pkts, 1)
		assert.Equal(t, controller.KindForward, pkts[0].Kind)
		assert.Equal(t, uint32(7), pkts[0].BufferID)
		assert.Nil(t, pkts[0].Data)
	})
	t.Run("flood", func(t *testing.T) {
		table := controller.NewState().Table(1)
		other := packetIn(1, 1, icmpFrame(t, 1, 3, layers.ICMPv4TypeEchoReply))
		other.BufferID = 7
		dec, err := e.Process(table, other)
		require.NoError(t, err)
		pkts := dec.Packets()
		require.Len(t, pkts, 1)
		assert.Equal(t, controller.KindFlood, pkts[0].Kind)
		assert.Equal(t, uint32(7), pkts[0].BufferID)
		assert.Nil(t, pkts[0].Data)
	})
	t.Run("blocked", func(t *testing.T) {
		table := controller.NewState().Table(1)
		blocked := packetIn(1, 1, udpFrame(t, 4, 2, 53))
		blocked.BufferID = 7
		dec, err := e.Process(table, blocked)
		require.NoError(t, err)
		assert.Empty(t, dec.Packets())
		rules := dec.Rules()
		require.Len(t, rules, 1)
		assert.True(t, rules[0].IsDrop())
		assert.Equal(t, uint32(7), rules[0].BufferID)
	})
}

func TestProcessARP(t *testing.T) {
	e := newEngine(controller.Features{})

	t.Run("request is answered", func(t *testing.T) {
		table := controller.NewState().Table(1)
		dec, err := e.Process(table,
			packetIn(1, 1, arpFrame(t, layers.ARPRequest, 1, broadcast, ip(2))))
		require.NoError(t, err)
		assert.Equal(t, controller.VerdictProxyARP, dec.Verdict)
		assert.Empty(t, dec.Rules())

		replies := dec.Packets()
		require.Len(t, replies, 1)
		assert.Equal(t, controller.KindARPReply, replies[0].Kind)
		r := replies[0]
		assert.Equal(t, addr.PortController, r.InPort)
		assert.Equal(t, controller.NoBuffer, r.BufferID)
		assert.Equal(t, []controller.Action{controller.OutputTo(1)}, r.Actions)

		pkt := gopacket.NewPacket(r.Data, layers.LayerTypeEthernet, gopacket.Default)
		eth := pkt.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
		assert.Equal(t, mac(2).HardwareAddr(), eth.SrcMAC)
		assert.Equal(t, mac(1).HardwareAddr(), eth.DstMAC)
		assert.Equal(t, layers.EthernetTypeARP, eth.EthernetType)
		arpL := pkt.Layer(layers.LayerTypeARP)
		require.NotNil(t, arpL)
		reply := arpL.(*layers.ARP)
		assert.Equal(t, uint16(layers.ARPReply), reply.Operation)
		assert.Equal(t, []byte(mac(2).HardwareAddr()), reply.SourceHwAddress)
		assert.Equal(t, []byte(ip(2)), reply.SourceProtAddress)
		assert.Equal(t, []byte(mac(1).HardwareAddr()), reply.DstHwAddress)
		assert.Equal(t, []byte(ip(1)), reply.DstProtAddress)
	})
	t.Run("reply is only flooded", func(t *testing.T) {
		table := controller.NewState().Table(1)
		dec, err := e.Process(table,
			packetIn(1, 1, arpFrame(t, layers.ARPReply, 1, mac(2), ip(2))))
		require.NoError(t, err)
		assert.Equal(t, controller.VerdictFlooded, dec.Verdict)
		assert.Empty(t, dec.Rules())
		assert.Len(t, dec.Packets(), 1)
		assert.Len(t, packetsOfKind(dec, controller.KindFlood), 1)
	})
	t.Run("unknown target", func(t *testing.T) {
		table := controller.NewState().Table(1)
		dec, err := e.Process(table,
			packetIn(1, 1, arpFrame(t, layers.ARPRequest, 1, broadcast, ip(9))))
		assert.ErrorIs(t, err, controller.ErrUnknownHost)
		// The request is flooded so that its owner can answer.
		assert.Equal(t, controller.VerdictFlooded, dec.Verdict)
		assert.Len(t, dec.Packets(), 1)
		assert.Len(t, packetsOfKind(dec, controller.KindFlood), 1)
		assert.Equal(t, 1, table.Len())
	})
}

func TestProcessICMP(t *testing.T) {
	testCases := map[string]struct {
		dpid     addr.DPID
		src, dst byte
		port     addr.Port
	}{
		"default clockwise": {dpid: 1, src: 1, dst: 3, port: 2},
		"explicit link":     {dpid: 1, src: 1, dst: 4, port: 3},
		"local host":        {dpid: 3, src: 1, dst: 3, port: 1},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			e := newEngine(controller.Features{})
			table := controller.NewState().Table(tc.dpid)
			data := icmpFrame(t, tc.src, tc.dst, layers.ICMPv4TypeEchoRequest)
			dec, err := e.Process(table, packetIn(tc.dpid, 2, data))
			require.NoError(t, err)
			assert.Equal(t, controller.VerdictRouted, dec.Verdict)
			assert.Equal(t, []controller.FlowRule{{
				Priority: controller.PriorityForward,
				Match: controller.Match{
					Fields: controller.FieldEthType | controller.FieldIPProto |
						controller.FieldEthDst,
					EthType: layers.EthernetTypeIPv4,
					IPProto: layers.IPProtocolICMPv4,
					EthDst:  mac(tc.dst),
				},
				Actions:  []controller.Action{controller.OutputTo(tc.port)},
				BufferID: controller.NoBuffer,
			}}, dec.Rules())
			fwd := dec.Packets()
			require.Len(t, fwd, 1)
			assert.Equal(t, controller.KindForward, fwd[0].Kind)
			assert.Equal(t, addr.PortController, fwd[0].InPort)
			assert.Equal(t, []controller.Action{controller.OutputTo(tc.port)}, fwd[0].Actions)
			assert.Equal(t, data, fwd[0].Data)
		})
	}

	t.Run("echo reply is only flooded", func(t *testing.T) {
		e := newEngine(controller.Features{})
		table := controller.NewState().Table(1)
		dec, err := e.Process(table,
			packetIn(1, 1, icmpFrame(t, 1, 3, layers.ICMPv4TypeEchoReply)))
		require.NoError(t, err)
		assert.Equal(t, controller.VerdictFlooded, dec.Verdict)
		assert.Empty(t, dec.Rules())
		assert.Len(t, packetsOfKind(dec, controller.KindFlood), 1)
		assert.Len(t, dec.Packets(), 1)
	})
}

func TestProcessUDP(t *testing.T) {
	t.Run("blacklisted source is dropped on any port", func(t *testing.T) {
		for _, port := range []uint16{53, 5001, 65535} {
			e := newEngine(controller.Features{})
			table := controller.NewState().Table(1)
			dec, err := e.Process(table, packetIn(1, 1, udpFrame(t, 4, 2, port)))
			require.NoError(t, err)
			assert.Equal(t, controller.VerdictBlocked, dec.Verdict)
			rules := dec.Rules()
			require.Len(t, rules, 1)
			assert.Equal(t, controller.PriorityBlock, rules[0].Priority)
			assert.True(t, rules[0].IsDrop())
			assert.Equal(t, controller.Match{
				Fields: controller.FieldEthType | controller.FieldIPProto |
					controller.FieldEthSrc,
				EthType: layers.EthernetTypeIPv4,
				IPProto: layers.IPProtocolUDP,
				EthSrc:  mac(4),
			}, rules[0].Match)
			assert.Empty(t, dec.Packets())
		}
	})
	t.Run("other source is routed counter-clockwise", func(t *testing.T) {
		e := newEngine(controller.Features{})
		table := controller.NewState().Table(2)
		data := udpFrame(t, 2, 4, 5001)
		dec, err := e.Process(table, packetIn(2, 1, data))
		require.NoError(t, err)
		assert.Equal(t, controller.VerdictRouted, dec.Verdict)
		assert.Equal(t, []controller.FlowRule{{
			Priority: controller.PriorityForward,
			Match: controller.Match{
				Fields: controller.FieldEthType | controller.FieldIPProto |
					controller.FieldEthSrc | controller.FieldEthDst | controller.FieldUDPDst,
				EthType: layers.EthernetTypeIPv4,
				IPProto: layers.IPProtocolUDP,
				EthSrc:  mac(2),
				EthDst:  mac(4),
				UDPDst:  5001,
			},
			Actions:  []controller.Action{controller.OutputTo(3)},
			BufferID: controller.NoBuffer,
		}}, dec.Rules())
		pkts := dec.Packets()
		require.Len(t, pkts, 1)
		assert.Equal(t, controller.KindForward, pkts[0].Kind)
		assert.Equal(t, []controller.Action{controller.OutputTo(3)}, pkts[0].Actions)
	})
}

func TestProcessTCP(t *testing.T) {
	t.Run("blacklisted source to port 80 is reset", func(t *testing.T) {
		e := newEngine(controller.Features{})
		table := controller.NewState().Table(2)
		dec, err := e.Process(table, packetIn(2, 1, tcpFrame(t, 2, 1, 80, 1000)))
		require.NoError(t, err)
		assert.Equal(t, controller.VerdictReset, dec.Verdict)

		assert.Equal(t, []controller.FlowRule{{
			Priority: controller.PriorityBlock,
			Match: controller.Match{
				Fields: controller.FieldEthType | controller.FieldIPProto |
					controller.FieldEthSrc | controller.FieldTCPDst,
				EthType: layers.EthernetTypeIPv4,
				IPProto: layers.IPProtocolTCP,
				EthSrc:  mac(2),
				TCPDst:  80,
			},
			Actions:  []controller.Action{controller.ToController()},
			BufferID: controller.NoBuffer,
		}}, dec.Rules())

		resets := dec.Packets()
		require.Len(t, resets, 1)
		assert.Equal(t, controller.KindTCPReset, resets[0].Kind)
		assert.Equal(t, []controller.Action{controller.OutputTo(1)}, resets[0].Actions)

		pkt := gopacket.NewPacket(resets[0].Data, layers.LayerTypeEthernet, gopacket.Default)
		require.Nil(t, pkt.ErrorLayer())
		eth := pkt.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
		assert.Equal(t, mac(1).HardwareAddr(), eth.SrcMAC)
		assert.Equal(t, mac(2).HardwareAddr(), eth.DstMAC)
		ip4 := pkt.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
		assert.True(t, ip4.SrcIP.Equal(ip(1)))
		assert.True(t, ip4.DstIP.Equal(ip(2)))
		tcp := pkt.Layer(layers.LayerTypeTCP).(*layers.TCP)
		assert.Equal(t, layers.TCPPort(80), tcp.SrcPort)
		assert.Equal(t, layers.TCPPort(40000), tcp.DstPort)
		assert.Equal(t, uint32(1001), tcp.Ack)
		assert.True(t, tcp.RST)
		assert.True(t, tcp.ACK)
		assert.False(t, tcp.SYN)
		assert.Empty(t, tcp.Payload)
	})
	t.Run("blacklisted source to other port is routed", func(t *testing.T) {
		e := newEngine(controller.Features{})
		table := controller.NewState().Table(2)
		dec, err := e.Process(table, packetIn(2, 1, tcpFrame(t, 2, 1, 443, 1000)))
		require.NoError(t, err)
		assert.Equal(t, controller.VerdictRouted, dec.Verdict)
		pkts := dec.Packets()
		require.Len(t, pkts, 1)
		assert.Equal(t, controller.KindForward, pkts[0].Kind)
		rules := dec.Rules()
		require.Len(t, rules, 1)
		assert.Equal(t, controller.PriorityForward, rules[0].Priority)
		assert.Equal(t, uint16(443), rules[0].Match.TCPDst)
		// The explicit link from h2 toward h1 overrides the clockwise default.
		assert.Equal(t, []controller.Action{controller.OutputTo(3)}, rules[0].Actions)
	})
}

func TestProcessIdempotent(t *testing.T) {
	e := newEngine(controller.Features{})
	table := controller.NewState().Table(1)
	table.Observe(mac(3), 2)
	pin := packetIn(1, 1, icmpFrame(t, 1, 3, layers.ICMPv4TypeEchoRequest))

	first, err := e.Process(table, pin)
	require.NoError(t, err)
	assert.True(t, first.Learned)
	before := table.Snapshot()

	second, err := e.Process(table, pin)
	require.NoError(t, err)
	assert.False(t, second.Learned)
	assert.Equal(t, first.Verdict, second.Verdict)
	assert.Equal(t, first.Outputs, second.Outputs)
	assert.True(t, cmp.Equal(first.Rules(), second.Rules()),
		cmp.Diff(first.Rules(), second.Rules()))
	assert.Equal(t, before, table.Snapshot())
}

func TestProcessACLBeforeLearning(t *testing.T) {
	testCases := map[string]struct {
		features controller.Features
		verdict  controller.Verdict
	}{
		"disabled": {verdict: controller.VerdictUnicast},
		"enabled": {
			features: controller.Features{ACLBeforeLearning: true},
			verdict:  controller.VerdictBlocked,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			e := newEngine(tc.features)
			table := controller.NewState().Table(1)
			table.Observe(mac(3), 2)
			dec, err := e.Process(table, packetIn(1, 1, udpFrame(t, 1, 3, 5001)))
			require.NoError(t, err)
			assert.Equal(t, tc.verdict, dec.Verdict)
		})
	}
}
