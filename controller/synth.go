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
	"net"
	"net/netip"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/mdlayher/arp"
	"github.com/mdlayher/ethernet"

	"github.com/ringsdn/ringsdn/pkg/private/serrors"
	"github.com/ringsdn/ringsdn/private/topology"
)

const resetTTL = 64

// Builder synthesizes the frames the controller injects on its own: proxy
// ARP replies and TCP resets.
type Builder struct {
	dir *topology.Directory
}

// NewBuilder returns a builder that resolves addresses in dir.
func NewBuilder(dir *topology.Directory) *Builder {
	return &Builder{dir: dir}
}

// ARPReply answers the ARP request req, received in eth, on behalf of the
// directory host that owns the requested IP. Requests for unknown IPs fail
// with ErrUnknownHost. Anything but a request yields no frame and no error.
func (b *Builder) ARPReply(eth *layers.Ethernet, req *layers.ARP) ([]byte, error) {
	if req.Operation != layers.ARPRequest {
		return nil, nil
	}
	target, ok := netip.AddrFromSlice(req.DstProtAddress)
	if !ok {
		return nil, serrors.New("malformed ARP target address",
			"len", len(req.DstProtAddress))
	}
	sender, ok := netip.AddrFromSlice(req.SourceProtAddress)
	if !ok {
		return nil, serrors.New("malformed ARP sender address",
			"len", len(req.SourceProtAddress))
	}
	h, ok := b.dir.HostByIP(target)
	if !ok {
		return nil, serrors.JoinNoStack(ErrUnknownHost, nil, "ip", target)
	}
	reply, err := arp.NewPacket(
		arp.OperationReply,
		h.MAC.HardwareAddr(),
		h.IP,
		net.HardwareAddr(req.SourceHwAddress),
		sender,
	)
	if err != nil {
		return nil, serrors.Wrap("creating ARP reply", err, "ip", target)
	}
	pb, err := reply.MarshalBinary()
	if err != nil {
		return nil, serrors.Wrap("marshaling ARP reply", err)
	}
	f := &ethernet.Frame{
		Destination: eth.SrcMAC,
		Source:      reply.SenderHardwareAddr,
		EtherType:   ethernet.EtherType(eth.EthernetType),
		Payload:     pb,
	}
	return f.MarshalBinary()
}

// TCPReset builds a RST|ACK segment that answers tcp, received in eth and ip,
// with the roles of both endpoints swapped at every layer.
func (b *Builder) TCPReset(eth *layers.Ethernet, ip *layers.IPv4,
	tcp *layers.TCP) ([]byte, error) {

	rEth := &layers.Ethernet{
		SrcMAC:       eth.DstMAC,
		DstMAC:       eth.SrcMAC,
		EthernetType: eth.EthernetType,
	}
	rIP := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      resetTTL,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    ip.DstIP,
		DstIP:    ip.SrcIP,
	}
	rTCP := &layers.TCP{
		SrcPort: tcp.DstPort,
		DstPort: tcp.SrcPort,
		Ack:     tcp.Seq + 1,
		RST:     true,
		ACK:     true,
	}
	if err := rTCP.SetNetworkLayerForChecksum(rIP); err != nil {
		return nil, serrors.Wrap("preparing TCP checksum", err)
	}
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, rEth, rIP, rTCP); err != nil {
		return nil, serrors.Wrap("serializing TCP reset", err)
	}
	return buf.Bytes(), nil
}
