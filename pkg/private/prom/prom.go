// Copyright 2017 ETH Zurich
// Copyright 2018 ETH Zurich, Anapaya Systems
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

// Package prom contains some utility functions for dealing with prometheus
// metrics.
package prom

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the metrics namespace of all controller metrics.
const Namespace = "controller"

// Common label names.
const (
	// LabelDPID is the label for the datapath id of a switch.
	LabelDPID = "dpid"
	// LabelVerdict is the label for the decision taken on a frame.
	LabelVerdict = "verdict"
	// LabelPriority is the label for a flow rule priority.
	LabelPriority = "priority"
	// LabelKind is the label for the kind of an injected packet.
	LabelKind = "kind"
	// LabelReason is the label for error classifications.
	LabelReason = "reason"
	// LabelLevel is the label for log levels.
	LabelLevel = "level"
)

// Common reason values.
const (
	// ErrParse failed to parse a frame.
	ErrParse = "err_parse"
	// ErrNotFound is used for errors where a directory lookup failed.
	ErrNotFound = "err_not_found"
	// ErrInternal is an internal error.
	ErrInternal = "err_internal"
)

// SafeRegister registers c with reg and returns the registered collector. If
// c was already registered the already registered collector is returned. In
// case of any other error this method panics (as MustRegister).
func SafeRegister(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

// NewCounterVec creates a counter vec in the controller namespace and
// registers it with reg.
func NewCounterVec(reg prometheus.Registerer, name, help string,
	labelNames ...string) *prometheus.CounterVec {

	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labelNames)
	return SafeRegister(reg, c).(*prometheus.CounterVec)
}

// NewGaugeVec creates a gauge vec in the controller namespace and registers
// it with reg.
func NewGaugeVec(reg prometheus.Registerer, name, help string,
	labelNames ...string) *prometheus.GaugeVec {

	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labelNames)
	return SafeRegister(reg, g).(*prometheus.GaugeVec)
}
