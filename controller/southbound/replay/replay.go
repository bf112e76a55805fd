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

// Package replay implements a southbound driver that works on capture files
// instead of live switches. Frames read from a pcap or pcapng file are
// reported as packet-ins of one switch port, flow rules are logged, and
// injected frames are written to a pcap file.
package replay

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/gopacket/gopacket/pcapgo"

	"github.com/ringsdn/ringsdn/controller"
	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/log"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
)

const snapLen = 65535

// Driver is a controller.Southbound that records what the controller sends.
type Driver struct {
	logger log.Logger

	mu      sync.Mutex
	out     *os.File
	w       *pcapgo.Writer
	rules   int
	packets int
}

var _ controller.Southbound = (*Driver)(nil)

// NewDriver creates a driver. If output is not empty, injected frames are
// written to that pcap file.
func NewDriver(output string) (*Driver, error) {
	d := &Driver{logger: log.New("component", "replay")}
	if output == "" {
		return d, nil
	}
	f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, serrors.Wrap("creating file", err, "file", output)
	}
	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(snapLen, layers.LinkTypeEthernet); err != nil {
		f.Close()
		return nil, serrors.Wrap("writing header", err, "file", output)
	}
	d.out, d.w = f, w
	return d, nil
}

// InstallFlow logs the rule.
func (d *Driver) InstallFlow(dpid addr.DPID, rule controller.FlowRule) {
	d.mu.Lock()
	d.rules++
	d.mu.Unlock()
	d.logger.Debug("Flow rule", "dpid", dpid, "rule", rule.String())
}

// SendPacket writes the frame to the output file. Frames that reference a
// switch buffer carry no data and are only counted.
func (d *Driver) SendPacket(dpid addr.DPID, pkt controller.PacketOut) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.packets++
	if d.w == nil || len(pkt.Data) == 0 {
		return
	}
	ci := gopacket.CaptureInfo{
		Timestamp:     time.Now(),
		Length:        len(pkt.Data),
		CaptureLength: len(pkt.Data),
	}
	if err := d.w.WritePacket(ci, pkt.Data); err != nil {
		d.logger.Error("Writing packet", "dpid", dpid, "kind", pkt.Kind, "err", err)
	}
}

// Stats returns the number of rules and packets received so far.
func (d *Driver) Stats() (rules, packets int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rules, d.packets
}

// Close closes the output file.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.out == nil {
		return nil
	}
	err := d.out.Close()
	d.out, d.w = nil, nil
	return err
}

// Sink receives switch events. controller.Dispatcher implements it.
type Sink interface {
	SwitchConnected(dpid addr.DPID) bool
	PacketIn(pin controller.PacketIn) bool
}

// Feeder reports the frames of a capture file as packet-ins.
type Feeder struct {
	// Input is the pcap or pcapng file.
	Input string
	// DPID and InPort identify where the frames enter the ring.
	DPID   addr.DPID
	InPort addr.Port
	// Speed scales the gaps between capture timestamps. Zero replays as
	// fast as possible.
	Speed float64
}

// Stats summarizes a replay.
type Stats struct {
	Frames  int
	Dropped int
}

// DrainingSink is a Sink that can be closed once all events are handled.
// controller.Dispatcher implements it.
type DrainingSink interface {
	Sink
	// Close stops accepting events and returns once the queued events are
	// handled.
	Close()
}

// Report is the outcome of a replay through a driver.
type Report struct {
	Stats
	// Rules and Packets are the messages the driver received in total,
	// including the bootstrap rules.
	Rules   int
	Packets int
}

// packetReader is implemented by the pcap and pcapng readers.
type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
}

// Run connects the switch and then reports every frame of the capture to
// sink. It returns when the capture is exhausted or ctx is done; the latter
// is not an error.
func (f *Feeder) Run(ctx context.Context, sink Sink) (Stats, error) {
	var stats Stats
	file, err := os.Open(f.Input)
	if err != nil {
		return stats, serrors.Wrap("opening capture", err, "file", f.Input)
	}
	defer file.Close()
	r, err := newReader(bufio.NewReader(file))
	if err != nil {
		return stats, serrors.Wrap("reading capture", err, "file", f.Input)
	}

	sink.SwitchConnected(f.DPID)
	var prev time.Time
	for {
		data, ci, err := r.ReadPacketData()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, serrors.Wrap("reading packet", err,
				"file", f.Input, "frame", stats.Frames)
		}
		if f.pace(ctx, prev, ci.Timestamp) != nil {
			return stats, nil
		}
		prev = ci.Timestamp
		stats.Frames++
		pin := controller.PacketIn{
			DPID:     f.DPID,
			InPort:   f.InPort,
			Data:     append([]byte(nil), data...),
			BufferID: controller.NoBuffer,
			TotalLen: ci.Length,
		}
		if !sink.PacketIn(pin) {
			stats.Dropped++
		}
	}
}

// Replay feeds the capture to sink and then closes sink, so that every
// queued frame is handled before the driver counters are read. The sink does
// not accept events afterwards.
func (f *Feeder) Replay(ctx context.Context, sink DrainingSink, drv *Driver) (Report, error) {
	stats, err := f.Run(ctx, sink)
	sink.Close()
	rules, packets := drv.Stats()
	return Report{Stats: stats, Rules: rules, Packets: packets}, err
}

func (f *Feeder) pace(ctx context.Context, prev, cur time.Time) error {
	var wait time.Duration
	if f.Speed > 0 && !prev.IsZero() && cur.After(prev) {
		wait = time.Duration(float64(cur.Sub(prev)) / f.Speed)
	}
	if wait == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// newReader detects the capture format from the magic number.
func newReader(r *bufio.Reader) (packetReader, error) {
	magic, err := r.Peek(4)
	if err != nil {
		return nil, err
	}
	// The pcapng section header block type is a palindrome.
	if magic[0] == 0x0a && magic[1] == 0x0d && magic[2] == 0x0d && magic[3] == 0x0a {
		return pcapgo.NewNgReader(r, pcapgo.DefaultNgReaderOptions)
	}
	return pcapgo.NewReader(r)
}
