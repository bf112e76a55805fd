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
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gopacket/gopacket/layers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsdn/ringsdn/controller"
	"github.com/ringsdn/ringsdn/controller/mock_controller"
	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/log/testlog"
)

func newController(t *testing.T, sb controller.Southbound,
	features controller.Features) (*controller.Controller, *controller.State, *controller.Metrics) {

	testlog.Setup(t)
	state := controller.NewState()
	metrics := controller.NewMetrics(prometheus.NewRegistry())
	return controller.New(newEngine(features), state, sb, metrics), state, metrics
}

func TestSwitchConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	sb := mock_controller.NewMockSouthbound(ctrl)
	c, _, metrics := newController(t, sb, controller.Features{})

	rules := controller.BootstrapRules()
	gomock.InOrder(
		sb.EXPECT().InstallFlow(addr.DPID(3), rules[0]),
		sb.EXPECT().InstallFlow(addr.DPID(3), rules[1]),
	)
	c.SwitchConnected(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SwitchConnectsTotal.WithLabelValues("3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FlowModsTotal.WithLabelValues("3", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FlowModsTotal.WithLabelValues("3", "1")))
}

func TestBootstrapRules(t *testing.T) {
	rules := controller.BootstrapRules()
	require.Len(t, rules, 2)
	assert.Equal(t, controller.PriorityForward, rules[0].Priority)
	assert.True(t, rules[0].IsDrop())
	assert.Equal(t, layers.EthernetTypeIPv6, rules[0].Match.EthType)
	assert.Equal(t, controller.PriorityTableMiss, rules[1].Priority)
	assert.Equal(t, controller.MatchField(0), rules[1].Match.Fields)
	assert.Equal(t, []controller.Action{controller.ToController()}, rules[1].Actions)
	assert.Equal(t, "priority=0,any actions=output:CONTROLLER/65535", rules[1].String())
}

func TestHandlePacketInEmitsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	sb := mock_controller.NewMockSouthbound(ctrl)
	c, state, metrics := newController(t, sb, controller.Features{})

	data := tcpFrame(t, 2, 1, 80, 41)
	gomock.InOrder(
		sb.EXPECT().SendPacket(addr.DPID(2), gomock.Any()).Do(
			func(_ addr.DPID, p controller.PacketOut) {
				assert.Equal(t, controller.KindTCPReset, p.Kind)
			}),
		sb.EXPECT().InstallFlow(addr.DPID(2), gomock.Any()).Do(
			func(_ addr.DPID, r controller.FlowRule) {
				assert.Equal(t, controller.PriorityBlock, r.Priority)
			}),
	)
	dec, err := c.HandlePacketIn(packetIn(2, 1, data))
	require.NoError(t, err)
	assert.Equal(t, controller.VerdictReset, dec.Verdict)

	tbl, ok := state.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, 1, tbl.Len())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PacketInTotal.WithLabelValues("2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.DecisionsTotal.WithLabelValues("2", "reset")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.PacketOutsTotal.WithLabelValues("2", "tcp_reset")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.FlowModsTotal.WithLabelValues("2", "100")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LearnedAddresses.WithLabelValues("2")))
}

func TestHandlePacketInError(t *testing.T) {
	ctrl := gomock.NewController(t)
	sb := mock_controller.NewMockSouthbound(ctrl)
	c, _, metrics := newController(t, sb, controller.Features{})

	// The unresolved request is flooded.
	sb.EXPECT().SendPacket(addr.DPID(1), gomock.Any()).Do(
		func(_ addr.DPID, p controller.PacketOut) {
			assert.Equal(t, controller.KindFlood, p.Kind)
		})
	_, err := c.HandlePacketIn(
		packetIn(1, 1, arpFrame(t, layers.ARPRequest, 1, broadcast, ip(77))))
	assert.ErrorIs(t, err, controller.ErrUnknownHost)
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.ProcessingErrors.WithLabelValues("1", "err_not_found")))

	// The controller keeps working.
	sb.EXPECT().SendPacket(addr.DPID(1), gomock.Any()).Do(
		func(_ addr.DPID, p controller.PacketOut) {
			assert.Equal(t, controller.KindARPReply, p.Kind)
		})
	_, err = c.HandlePacketIn(
		packetIn(1, 1, arpFrame(t, layers.ARPRequest, 1, broadcast, ip(2))))
	assert.NoError(t, err)
}

func TestHandlePacketInDiscard(t *testing.T) {
	ctrl := gomock.NewController(t)
	sb := mock_controller.NewMockSouthbound(ctrl)
	c, _, metrics := newController(t, sb, controller.Features{})

	dec, err := c.HandlePacketIn(packetIn(4, 1, []byte{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, controller.VerdictDiscard, dec.Verdict)
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.DecisionsTotal.WithLabelValues("4", "discard")))
}

// recorder is a Southbound that keeps everything it is sent.
type recorder struct {
	mu      sync.Mutex
	rules   map[addr.DPID][]controller.FlowRule
	packets map[addr.DPID][]controller.PacketOut
}

func newRecorder() *recorder {
	return &recorder{
		rules:   make(map[addr.DPID][]controller.FlowRule),
		packets: make(map[addr.DPID][]controller.PacketOut),
	}
}

func (r *recorder) InstallFlow(dpid addr.DPID, rule controller.FlowRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[dpid] = append(r.rules[dpid], rule)
}

func (r *recorder) SendPacket(dpid addr.DPID, p controller.PacketOut) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packets[dpid] = append(r.packets[dpid], p)
}

func TestHandlePacketInConcurrentSwitches(t *testing.T) {
	rec := newRecorder()
	c, state, _ := newController(t, rec, controller.Features{})

	frames := make([][]byte, 4)
	for i := range frames {
		frames[i] = icmpFrame(t, byte(i+1), byte((i+1)%4+1), layers.ICMPv4TypeEchoRequest)
	}
	var wg sync.WaitGroup
	for d := addr.DPID(1); d <= 4; d++ {
		wg.Add(1)
		go func(d addr.DPID) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := c.HandlePacketIn(packetIn(d, addr.Port(i%3+1), frames[i%4]))
				assert.NoError(t, err)
			}
		}(d)
	}
	wg.Wait()
	assert.Equal(t, []addr.DPID{1, 2, 3, 4}, state.Switches())
	for d := addr.DPID(1); d <= 4; d++ {
		assert.NotEmpty(t, rec.packets[d])
	}
}
