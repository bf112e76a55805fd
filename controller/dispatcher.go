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
	"context"
	"sync"

	"github.com/ringsdn/ringsdn/controller/priority"
	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/log"
)

// DefaultQueueSize is the per-switch event queue capacity used if none is
// configured.
const DefaultQueueSize = 256

// event is a switch event waiting in a queue. A nil packet-in means that the
// switch connected.
type event struct {
	dpid addr.DPID
	pin  *PacketIn
}

// Dispatcher delivers switch events to a handler asynchronously. Every
// switch gets its own worker and queue, so events of one switch are handled
// in order while switches proceed independently. Connect events are handled
// before any queued packet-in of the same switch.
//
// Enqueueing never blocks. Events that find a full queue are dropped and
// counted, the way a switch drops packet-ins the controller does not read.
type Dispatcher struct {
	handler   Handler
	queueSize int
	metrics   *Metrics
	logger    log.Logger

	mu      sync.Mutex
	closed  bool
	workers map[addr.DPID]priority.Channels[event]
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher. A non-positive queueSize selects
// DefaultQueueSize.
func NewDispatcher(h Handler, queueSize int, metrics *Metrics) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		handler:   h,
		queueSize: queueSize,
		metrics:   metrics,
		logger:    log.New("component", "dispatcher"),
		workers:   make(map[addr.DPID]priority.Channels[event]),
	}
}

// SwitchConnected enqueues a connect event. It returns false if the event
// was dropped.
func (d *Dispatcher) SwitchConnected(dpid addr.DPID) bool {
	return d.push(priority.WithPriority, event{dpid: dpid})
}

// PacketIn enqueues a frame. It returns false if the frame was dropped.
func (d *Dispatcher) PacketIn(pin PacketIn) bool {
	return d.push(priority.WithBestEffort, event{dpid: pin.DPID, pin: &pin})
}

func (d *Dispatcher) push(label priority.PriorityLabel, ev event) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	ch, ok := d.workers[ev.dpid]
	if !ok {
		ch = priority.New[event](d.queueSize)
		d.workers[ev.dpid] = ch
		d.wg.Add(1)
		go func() {
			defer log.HandlePanic()
			defer d.wg.Done()
			d.work(ch.Queue())
		}()
	}
	if !ch.Push(label, ev) {
		d.metrics.DroppedEventsTotal.WithLabelValues(dpidLabel(ev.dpid)).Inc()
		return false
	}
	return true
}

func (d *Dispatcher) work(q priority.Queue[event]) {
	for {
		ev, ok := priority.ReadBlocking(q)
		if !ok {
			return
		}
		if ev.pin == nil {
			d.handler.SwitchConnected(ev.dpid)
			continue
		}
		if _, err := d.handler.HandlePacketIn(*ev.pin); err != nil {
			d.logger.Debug("Dropping packet", "err", err)
		}
	}
}

// Run blocks until ctx is done and then closes the dispatcher.
func (d *Dispatcher) Run(ctx context.Context) error {
	<-ctx.Done()
	d.Close()
	return nil
}

// Close stops accepting events and waits until the workers have handled
// the events already queued. It is safe to call Close more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			ch.Close()
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}
