// Copyright 2020 Anapaya Systems
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
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/private/prom"
)

// Metrics defines the controller metrics.
type Metrics struct {
	PacketInTotal       *prometheus.CounterVec
	DecisionsTotal      *prometheus.CounterVec
	FlowModsTotal       *prometheus.CounterVec
	PacketOutsTotal     *prometheus.CounterVec
	LearnedAddresses    *prometheus.GaugeVec
	ProcessingErrors    *prometheus.CounterVec
	DroppedEventsTotal  *prometheus.CounterVec
	SwitchConnectsTotal *prometheus.CounterVec
}

// NewMetrics initializes the controller metrics and registers them with reg.
// Registering twice with the same registry returns the same collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		PacketInTotal: prom.NewCounterVec(reg, "packet_in_total",
			"Total number of frames reported by the switches.",
			prom.LabelDPID),
		DecisionsTotal: prom.NewCounterVec(reg, "decisions_total",
			"Total number of processed frames, by outcome.",
			prom.LabelDPID, prom.LabelVerdict),
		FlowModsTotal: prom.NewCounterVec(reg, "flow_mods_total",
			"Total number of flow rules sent to the switches.",
			prom.LabelDPID, prom.LabelPriority),
		PacketOutsTotal: prom.NewCounterVec(reg, "packet_outs_total",
			"Total number of frames injected into the switches.",
			prom.LabelDPID, prom.LabelKind),
		LearnedAddresses: prom.NewGaugeVec(reg, "learned_addresses",
			"Number of MAC addresses in the learning table of a switch.",
			prom.LabelDPID),
		ProcessingErrors: prom.NewCounterVec(reg, "processing_errors_total",
			"Total number of frames whose processing failed.",
			prom.LabelDPID, prom.LabelReason),
		DroppedEventsTotal: prom.NewCounterVec(reg, "dropped_events_total",
			"Total number of switch events dropped because the switch queue was full.",
			prom.LabelDPID),
		SwitchConnectsTotal: prom.NewCounterVec(reg, "switch_connects_total",
			"Total number of switch connections.",
			prom.LabelDPID),
	}
}

func dpidLabel(dpid addr.DPID) string {
	return strconv.FormatUint(uint64(dpid), 10)
}

func priorityLabel(p uint16) string {
	return strconv.FormatUint(uint64(p), 10)
}
