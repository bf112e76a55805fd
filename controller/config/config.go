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

// Package config contains the configuration of the ring controller.
package config

import (
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/ringsdn/ringsdn/controller"
	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/log"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
	"github.com/ringsdn/ringsdn/private/app/feature"
	"github.com/ringsdn/ringsdn/private/config"
	"github.com/ringsdn/ringsdn/private/env"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var _ config.Config = (*Config)(nil)

// Config is the root of the controller configuration file.
type Config struct {
	General    env.General `toml:"general,omitempty"`
	Features   Features    `toml:"features,omitempty"`
	Logging    log.Config  `toml:"log,omitempty"`
	Metrics    env.Metrics `toml:"metrics,omitempty"`
	API        API         `toml:"api,omitempty"`
	Controller Controller  `toml:"controller,omitempty"`
	ACL        ACL         `toml:"acl,omitempty"`
	Replay     Replay      `toml:"replay,omitempty"`
}

func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.General,
		&cfg.Features,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.ACL,
		&cfg.Replay,
	)
	if cfg.Controller.Topology == "" {
		cfg.Controller.Topology = cfg.General.Topology()
	}
	cfg.Controller.InitDefaults()
}

func (cfg *Config) Validate() error {
	return config.ValidateAll(
		&cfg.General,
		&cfg.Features,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Controller,
		&cfg.ACL,
		&cfg.Replay,
	)
}

func (cfg *Config) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteSample(dst, path, ctx,
		&cfg.General,
		&cfg.Features,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.API,
		&cfg.Controller,
		&cfg.ACL,
		&cfg.Replay,
	)
}

var _ config.Config = (*Features)(nil)

// Features lists the enabled feature flags by name.
type Features struct {
	config.NoDefaulter
	Enabled []string `toml:"enabled,omitempty"`
}

// Validate checks that all enabled features are known.
func (cfg *Features) Validate() error {
	_, err := cfg.Parse()
	return err
}

// Parse returns the engine features.
func (cfg *Features) Parse() (controller.Features, error) {
	var f controller.Features
	if err := feature.Parse(cfg.Enabled, &f); err != nil {
		return controller.Features{}, serrors.Wrap("parsing features", err,
			"supported", feature.String(&f, ","))
	}
	return f, nil
}

func (cfg *Features) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, featuresSample)
}

func (cfg *Features) ConfigName() string {
	return "features"
}

var _ config.Config = (*API)(nil)

// API configures the management API.
type API struct {
	config.NoDefaulter
	// Addr is the address the API listens on. If empty, the API is disabled.
	Addr string `toml:"addr,omitempty" validate:"omitempty,hostname_port"`
}

func (cfg *API) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return serrors.Wrap("invalid api block", err)
	}
	return nil
}

func (cfg *API) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, apiSample)
}

func (cfg *API) ConfigName() string {
	return "api"
}

var _ config.Config = (*Controller)(nil)

// Controller configures the decision core.
type Controller struct {
	// Topology is the path of the ring topology file. It defaults to
	// topology.toml in the general config directory.
	Topology string `toml:"topology,omitempty" validate:"required"`
	// QueueSize is the per-switch event queue capacity.
	QueueSize int `toml:"queue_size,omitempty" validate:"gte=1,lte=65536"`
}

func (cfg *Controller) InitDefaults() {
	if cfg.QueueSize == 0 {
		cfg.QueueSize = controller.DefaultQueueSize
	}
}

func (cfg *Controller) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return serrors.Wrap("invalid controller block", err)
	}
	return nil
}

func (cfg *Controller) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, controllerSample)
}

func (cfg *Controller) ConfigName() string {
	return "controller"
}

var _ config.Config = (*ACL)(nil)

// ACL holds the per-protocol blacklists.
type ACL struct {
	TCPBlacklist []addr.MAC `toml:"tcp_blacklist,omitempty"`
	UDPBlacklist []addr.MAC `toml:"udp_blacklist,omitempty"`
	// TCPBlockedPort is the destination port blocked for TCP-blacklisted
	// sources.
	TCPBlockedPort uint16 `toml:"tcp_blocked_port,omitempty"`
}

func (cfg *ACL) InitDefaults() {
	if cfg.TCPBlockedPort == 0 {
		cfg.TCPBlockedPort = controller.DefaultBlockedTCPPort
	}
}

func (cfg *ACL) Validate() error {
	for _, l := range [][]addr.MAC{cfg.TCPBlacklist, cfg.UDPBlacklist} {
		for _, m := range l {
			if m.IsZero() || m.IsBroadcast() {
				return serrors.New("blacklist entry is not a host address", "mac", m)
			}
		}
	}
	return nil
}

// Policy returns the access control policy.
func (cfg *ACL) Policy() *controller.Policy {
	return controller.NewPolicy(cfg.TCPBlacklist, cfg.UDPBlacklist, cfg.TCPBlockedPort)
}

func (cfg *ACL) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, aclSample)
}

func (cfg *ACL) ConfigName() string {
	return "acl"
}

var _ config.Config = (*Replay)(nil)

// Replay configures the capture replay southbound. Without an input file the
// controller waits for the shutdown signal without processing frames.
type Replay struct {
	// Input is a pcap file whose frames are reported as packet-ins.
	Input string `toml:"input,omitempty"`
	// Output is a pcap file receiving the injected frames. Optional.
	Output string `toml:"output,omitempty" validate:"omitempty,nefield=Input"`
	// DPID is the switch the frames are reported on.
	DPID uint64 `toml:"dpid,omitempty" validate:"gte=1"`
	// InPort is the ingress port of the frames.
	InPort uint32 `toml:"in_port,omitempty" validate:"gte=1,lt=4294967040"`
	// Speed scales the gaps between capture timestamps. Zero replays as fast
	// as possible.
	Speed float64 `toml:"speed,omitempty" validate:"gte=0"`
}

func (cfg *Replay) InitDefaults() {
	if cfg.DPID == 0 {
		cfg.DPID = 1
	}
	if cfg.InPort == 0 {
		cfg.InPort = 1
	}
}

func (cfg *Replay) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return serrors.Wrap("invalid replay block", err)
	}
	return nil
}

func (cfg *Replay) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, replaySample)
}

func (cfg *Replay) ConfigName() string {
	return "replay"
}
