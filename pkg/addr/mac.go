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
	"net"

	"github.com/ringsdn/ringsdn/pkg/private/serrors"
)

// MAC is a 48-bit Ethernet hardware address.
//
// The zero value is the all-zero address, which is never a valid host address.
type MAC [6]byte

// BroadcastMAC is the Ethernet broadcast address.
var BroadcastMAC = MAC{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// ParseMAC parses s as an EUI-48 address, e.g. "10:00:00:00:00:01".
func ParseMAC(s string) (MAC, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return MAC{}, serrors.Wrap("parsing MAC", err, "raw", s)
	}
	m, ok := MACFrom(hw)
	if !ok {
		return MAC{}, serrors.New("MAC is not 48 bits long", "raw", s)
	}
	return m, nil
}

// MustParseMAC calls ParseMAC(s) and panics on error.
// It is intended for use in tests with hard-coded strings.
func MustParseMAC(s string) MAC {
	m, err := ParseMAC(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MACFrom converts hw to a MAC. It returns false if hw is not 6 bytes long.
func MACFrom(hw net.HardwareAddr) (MAC, bool) {
	var m MAC
	if len(hw) != len(m) {
		return MAC{}, false
	}
	copy(m[:], hw)
	return m, true
}

// HardwareAddr returns a freshly allocated net.HardwareAddr holding m.
func (m MAC) HardwareAddr() net.HardwareAddr {
	hw := make(net.HardwareAddr, len(m))
	copy(hw, m[:])
	return hw
}

// IsZero reports whether m is the all-zero address.
func (m MAC) IsZero() bool {
	return m == MAC{}
}

// IsBroadcast reports whether m is ff:ff:ff:ff:ff:ff.
func (m MAC) IsBroadcast() bool {
	return m == BroadcastMAC
}

func (m MAC) String() string {
	return net.HardwareAddr(m[:]).String()
}

// MarshalText implements encoding.TextMarshaler.
func (m MAC) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MAC) UnmarshalText(b []byte) error {
	p, err := ParseMAC(string(b))
	if err != nil {
		return err
	}
	*m = p
	return nil
}

// Set implements the flag.Value interface.
func (m *MAC) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

// Type implements the pflag.Value interface.
func (m *MAC) Type() string {
	return "mac"
}
