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

// Package controller contains the decision core of the ring controller. For
// every frame a switch reports, it learns the source address, then forwards,
// floods, answers or blocks the frame and pushes down flow rules so that
// later frames of the same flow bypass the controller.
//
// The package does not speak OpenFlow. A protocol driver reports frames
// through Controller.HandlePacketIn (or asynchronously through a Dispatcher)
// and receives flow rules and packet-outs through the Southbound interface.
package controller

import (
	"errors"
	"sync"

	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/log"
	"github.com/ringsdn/ringsdn/pkg/private/prom"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
)

// Handler consumes switch events.
type Handler interface {
	SwitchConnected(dpid addr.DPID)
	HandlePacketIn(pin PacketIn) (Decision, error)
}

var _ Handler = (*Controller)(nil)

// Controller applies the decisions of the engine to the switches. Frames of
// one switch are processed one at a time, and the outputs of a frame reach
// the southbound driver before the next frame of that switch is processed.
// Frames of different switches are processed concurrently.
type Controller struct {
	engine  *Engine
	state   *State
	sb      Southbound
	metrics *Metrics
	logger  log.Logger

	mu       sync.Mutex
	switches map[addr.DPID]*switchCtx
}

// switchCtx serializes the processing of one switch.
type switchCtx struct {
	mu    sync.Mutex
	table *LearningTable
	proc  *packetProcessor
}

// New creates a controller. The state holds the learning tables and may be
// shared with read-only consumers such as the management API.
func New(engine *Engine, state *State, sb Southbound, metrics *Metrics) *Controller {
	return &Controller{
		engine:   engine,
		state:    state,
		sb:       sb,
		metrics:  metrics,
		logger:   log.New("component", "controller"),
		switches: make(map[addr.DPID]*switchCtx),
	}
}

func (c *Controller) switchCtx(dpid addr.DPID) *switchCtx {
	c.mu.Lock()
	defer c.mu.Unlock()
	sc, ok := c.switches[dpid]
	if !ok {
		sc = &switchCtx{
			table: c.state.Table(dpid),
			proc:  c.engine.newPacketProcessor(),
		}
		c.switches[dpid] = sc
	}
	return sc
}

// SwitchConnected installs the bootstrap rules on a newly connected switch.
func (c *Controller) SwitchConnected(dpid addr.DPID) {
	sc := c.switchCtx(dpid)
	sc.mu.Lock()
	defer sc.mu.Unlock()

	for _, r := range BootstrapRules() {
		c.installFlow(dpid, r)
	}
	c.metrics.SwitchConnectsTotal.WithLabelValues(dpidLabel(dpid)).Inc()
	c.logger.Info("Switch connected", "dpid", dpid)
}

// HandlePacketIn processes one frame reported by a switch and sends the
// resulting rules and packets. A frame that fails to resolve is still
// flooded; the error only concerns the single frame.
func (c *Controller) HandlePacketIn(pin PacketIn) (Decision, error) {
	label := dpidLabel(pin.DPID)
	c.metrics.PacketInTotal.WithLabelValues(label).Inc()
	if pin.TotalLen > len(pin.Data) {
		c.logger.Debug("Packet truncated",
			"dpid", pin.DPID, "len", len(pin.Data), "total_len", pin.TotalLen)
	}

	sc := c.switchCtx(pin.DPID)
	sc.mu.Lock()
	defer sc.mu.Unlock()

	dec, err := sc.proc.process(sc.table, pin)
	for _, o := range dec.Outputs {
		switch {
		case o.Rule != nil:
			c.installFlow(pin.DPID, *o.Rule)
		case o.Packet != nil:
			c.sendPacket(pin.DPID, *o.Packet)
		}
	}
	c.metrics.DecisionsTotal.WithLabelValues(label, dec.Verdict.String()).Inc()
	if dec.Learned {
		c.metrics.LearnedAddresses.WithLabelValues(label).Set(float64(sc.table.Len()))
	}
	if c.logger.Enabled(log.DebugLevel) && dec.Verdict != VerdictDiscard {
		c.logger.Debug("Packet in", "dpid", pin.DPID, "in_port", pin.InPort,
			"src", sc.proc.src, "dst", sc.proc.dst, "class", sc.proc.class,
			"verdict", dec.Verdict)
	}
	if err != nil {
		reason := prom.ErrInternal
		if errors.Is(err, ErrUnknownHost) {
			reason = prom.ErrNotFound
		}
		c.metrics.ProcessingErrors.WithLabelValues(label, reason).Inc()
		return dec, serrors.WrapNoStack("processing packet", err,
			"dpid", pin.DPID, "in_port", pin.InPort)
	}
	return dec, nil
}

func (c *Controller) installFlow(dpid addr.DPID, r FlowRule) {
	c.sb.InstallFlow(dpid, r)
	c.metrics.FlowModsTotal.WithLabelValues(dpidLabel(dpid), priorityLabel(r.Priority)).Inc()
}

func (c *Controller) sendPacket(dpid addr.DPID, p PacketOut) {
	c.sb.SendPacket(dpid, p)
	c.metrics.PacketOutsTotal.WithLabelValues(dpidLabel(dpid), p.Kind.String()).Inc()
}
