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

// Package framegen builds Ethernet frames between the hosts of a ring
// topology and stores them as pcap captures. The captures are meant to be
// replayed against the controller.
package framegen

import (
	"io"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/gopacket/gopacket/pcapgo"
	"github.com/olekukonko/tablewriter"

	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
	"github.com/ringsdn/ringsdn/private/topology"
)

// Kind is the type of frame to generate.
type Kind string

const (
	ARP  Kind = "arp"
	ICMP Kind = "icmp"
	UDP  Kind = "udp"
	TCP  Kind = "tcp"
)

// Kinds lists all supported kinds in generation order.
var Kinds = []Kind{ARP, ICMP, UDP, TCP}

// ParseKinds parses a comma separated list of kinds. "all" selects every kind.
func ParseKinds(s string) ([]Kind, error) {
	if s == "all" {
		return Kinds, nil
	}
	var out []Kind
	for _, k := range strings.Split(s, ",") {
		switch kind := Kind(strings.TrimSpace(k)); kind {
		case ARP, ICMP, UDP, TCP:
			out = append(out, kind)
		default:
			return nil, serrors.New("unknown frame kind", "kind", k)
		}
	}
	return out, nil
}

// Generator builds frames between directory hosts.
type Generator struct {
	Dir *topology.Directory
	// DstPort is the transport destination port of UDP and TCP frames.
	DstPort uint16
	// Interval is the capture time between two consecutive frames.
	Interval time.Duration
}

// Host returns the directory host called name.
func (g *Generator) Host(name string) (topology.Host, error) {
	for _, h := range g.Dir.Hosts() {
		if h.Name == name {
			return h, nil
		}
	}
	return topology.Host{}, serrors.New("host not in topology", "name", name)
}

// Pairs returns every ordered pair of distinct hosts.
func (g *Generator) Pairs() [][2]topology.Host {
	hosts := g.Dir.Hosts()
	var out [][2]topology.Host
	for _, src := range hosts {
		for _, dst := range hosts {
			if src.MAC != dst.MAC {
				out = append(out, [2]topology.Host{src, dst})
			}
		}
	}
	return out
}

// Frame builds a single frame of kind from src to dst. ARP frames are
// broadcast requests for the IP of dst.
func (g *Generator) Frame(kind Kind, src, dst topology.Host) ([]byte, error) {
	eth := &layers.Ethernet{
		SrcMAC:       src.MAC.HardwareAddr(),
		DstMAC:       dst.MAC.HardwareAddr(),
		EthernetType: layers.EthernetTypeIPv4,
	}
	if kind == ARP {
		eth.DstMAC = addr.BroadcastMAC.HardwareAddr()
		eth.EthernetType = layers.EthernetTypeARP
		return serialize(eth, &layers.ARP{
			AddrType:          layers.LinkTypeEthernet,
			Protocol:          layers.EthernetTypeIPv4,
			HwAddressSize:     6,
			ProtAddressSize:   4,
			Operation:         layers.ARPRequest,
			SourceHwAddress:   src.MAC.HardwareAddr(),
			SourceProtAddress: ip4(src.IP),
			DstHwAddress:      make([]byte, 6),
			DstProtAddress:    ip4(dst.IP),
		})
	}
	ip := &layers.IPv4{
		Version: 4,
		IHL:     5,
		TTL:     64,
		SrcIP:   ip4(src.IP),
		DstIP:   ip4(dst.IP),
	}
	payload := gopacket.Payload("ringsdn")
	switch kind {
	case ICMP:
		ip.Protocol = layers.IPProtocolICMPv4
		icmp := &layers.ICMPv4{
			TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
			Id:       1,
			Seq:      1,
		}
		return serialize(eth, ip, icmp, payload)
	case UDP:
		ip.Protocol = layers.IPProtocolUDP
		udp := &layers.UDP{SrcPort: 40000, DstPort: layers.UDPPort(g.DstPort)}
		if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
			return nil, serrors.Wrap("preparing UDP checksum", err)
		}
		return serialize(eth, ip, udp, payload)
	case TCP:
		ip.Protocol = layers.IPProtocolTCP
		tcp := &layers.TCP{
			SrcPort: 40000,
			DstPort: layers.TCPPort(g.DstPort),
			Seq:     1000,
			SYN:     true,
			Window:  65535,
		}
		if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
			return nil, serrors.Wrap("preparing TCP checksum", err)
		}
		return serialize(eth, ip, tcp)
	}
	return nil, serrors.New("unknown frame kind", "kind", kind)
}

// WritePcap writes one frame per kind for every pair to w, in pair order.
// It returns the number of frames written.
func (g *Generator) WritePcap(w io.Writer, kinds []Kind,
	pairs [][2]topology.Host) (int, error) {

	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(65535, layers.LinkTypeEthernet); err != nil {
		return 0, serrors.Wrap("writing header", err)
	}
	ts := time.Unix(0, 0).UTC()
	n := 0
	for _, p := range pairs {
		for _, k := range kinds {
			pkt, err := g.Frame(k, p[0], p[1])
			if err != nil {
				return n, serrors.Wrap("building frame", err,
					"kind", k, "src", p[0].Name, "dst", p[1].Name)
			}
			c := gopacket.CaptureInfo{
				Timestamp:     ts,
				Length:        len(pkt),
				CaptureLength: len(pkt),
			}
			if err := pw.WritePacket(c, pkt); err != nil {
				return n, serrors.Wrap("writing packet", err)
			}
			ts = ts.Add(g.Interval)
			n++
		}
	}
	return n, nil
}

// StorePcap writes the frames to the file, replacing it if it exists.
func (g *Generator) StorePcap(file string, kinds []Kind,
	pairs [][2]topology.Host) (int, error) {

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, serrors.Wrap("creating file", err, "file", file)
	}
	defer f.Close()
	n, err := g.WritePcap(f, kinds, pairs)
	if err != nil {
		return n, serrors.Wrap("storing pcap", err, "file", file)
	}
	return n, f.Close()
}

// WriteSummary prints one row per pair listing the generated kinds.
func WriteSummary(w io.Writer, kinds []Kind, pairs [][2]topology.Host) {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{
			p[0].Name,
			p[1].Name,
			p[0].Switch.String(),
			p[1].Switch.String(),
			strings.Join(names, ","),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"SRC", "DST", "SRC SWITCH", "DST SWITCH", "KINDS"})
	table.AppendBulk(rows)
	table.Render()
}

func ip4(a netip.Addr) []byte {
	b := a.As4()
	return b[:]
}

func serialize(ls ...gopacket.SerializableLayer) ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, ls...); err != nil {
		return nil, serrors.Wrap("serializing", err)
	}
	return buf.Bytes(), nil
}
