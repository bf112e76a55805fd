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

package addr

import (
	"strconv"

	"github.com/ringsdn/ringsdn/pkg/private/serrors"
)

// DPID is the datapath identifier of a managed switch.
type DPID uint64

// ParseDPID parses a decimal or 0x-prefixed hexadecimal datapath id.
func ParseDPID(s string) (DPID, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, serrors.Wrap("parsing DPID", err, "raw", s)
	}
	return DPID(v), nil
}

func (d DPID) String() string {
	return strconv.FormatUint(uint64(d), 10)
}

// Port is a switch port number. Values at and above PortMax are reserved
// for the logical ports defined by OpenFlow 1.3.
type Port uint32

// Reserved ports, numbered as in OpenFlow 1.3.
const (
	PortMax        Port = 0xffffff00
	PortInPort     Port = 0xfffffff8
	PortFlood      Port = 0xfffffffb
	PortAll        Port = 0xfffffffc
	PortController Port = 0xfffffffd
	PortAny        Port = 0xffffffff
)

// IsReserved reports whether p is one of the logical OpenFlow ports.
func (p Port) IsReserved() bool {
	return p >= PortMax
}

func (p Port) String() string {
	switch p {
	case PortInPort:
		return "IN_PORT"
	case PortFlood:
		return "FLOOD"
	case PortAll:
		return "ALL"
	case PortController:
		return "CONTROLLER"
	case PortAny:
		return "ANY"
	}
	return strconv.FormatUint(uint64(p), 10)
}
