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
	"errors"

	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
	"github.com/ringsdn/ringsdn/private/topology"
)

// ErrUnknownHost is returned when an address is not in the host directory.
var ErrUnknownHost = errors.New("host not in directory")

// Direction is the traversal direction around the ring.
type Direction bool

const (
	Clockwise        Direction = true
	CounterClockwise Direction = false
)

// Ports used when no explicit link is configured.
const (
	ClockwisePort        addr.Port = 2
	CounterClockwisePort addr.Port = 3
)

// DefaultPort returns the rotational default egress port of dir.
func (d Direction) DefaultPort() addr.Port {
	if d == Clockwise {
		return ClockwisePort
	}
	return CounterClockwisePort
}

func (d Direction) String() string {
	if d == Clockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}

// RingRouter computes egress ports around the ring.
type RingRouter struct {
	dir *topology.Directory
}

// NewRingRouter returns a router on top of the directory.
func NewRingRouter(dir *topology.Directory) *RingRouter {
	return &RingRouter{dir: dir}
}

// Route returns the egress port on switch current for a frame from src to
// dst. A destination attached to current is delivered on its attachment
// port. Otherwise an explicit link from src toward dst wins over the
// rotational default of dir.
func (r *RingRouter) Route(current addr.DPID, src, dst addr.MAC,
	dir Direction) (addr.Port, error) {

	h, ok := r.dir.HostByMAC(dst)
	if !ok {
		return 0, serrors.JoinNoStack(ErrUnknownHost, nil, "dpid", current, "mac", dst)
	}
	if h.Switch == current {
		return h.Port, nil
	}
	if p, ok := r.dir.Link(src, dst); ok {
		return p, nil
	}
	return dir.DefaultPort(), nil
}
