// Copyright 2019 ETH Zurich, Anapaya Systems
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

package topology

import (
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/ringsdn/ringsdn/pkg/private/serrors"
	"github.com/ringsdn/ringsdn/private/config"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RawTopology is the on-disk representation of the ring topology.
type RawTopology struct {
	Hosts []RawHost `toml:"hosts" validate:"required,min=1,dive"`
	Links []RawLink `toml:"links" validate:"dive"`
}

// RawHost is a host entry of the topology file.
type RawHost struct {
	Name   string `toml:"name" validate:"required,max=64"`
	MAC    string `toml:"mac" validate:"required,mac"`
	IP     string `toml:"ip" validate:"required,ipv4"`
	Switch uint64 `toml:"switch" validate:"required,min=1"`
	Port   uint32 `toml:"port" validate:"required,min=1,lt=4294967040"`
}

// RawLink is a directed inter-switch link entry of the topology file. From
// and To are the MACs of the hosts attached to the two switches; Port is the
// egress port on the switch of From.
type RawLink struct {
	From string `toml:"from" validate:"required,mac"`
	To   string `toml:"to" validate:"required,mac,nefield=From"`
	Port uint32 `toml:"port" validate:"required,min=1,lt=4294967040"`
}

// RawFromTOML decodes a topology from its TOML representation and checks the
// per-field constraints. Unknown keys are rejected.
func RawFromTOML(b []byte) (*RawTopology, error) {
	rt := &RawTopology{}
	if err := config.Decode(b, rt); err != nil {
		return nil, serrors.Wrap("decoding topology", err)
	}
	if err := validate.Struct(rt); err != nil {
		return nil, serrors.Wrap("validating topology", err)
	}
	return rt, nil
}

// RawFromFile reads and decodes the topology file at path.
func RawFromFile(path string) (*RawTopology, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.Wrap("reading topology", err, "file", path)
	}
	rt, err := RawFromTOML(b)
	if err != nil {
		return nil, serrors.Wrap("loading topology", err, "file", path)
	}
	return rt, nil
}
