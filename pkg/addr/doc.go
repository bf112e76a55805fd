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

/*
Package addr contains the addressing types shared by the controller packages.

A switch is identified by its datapath identifier (DPID) and exposes numbered
ports. Hosts and switch endpoints are identified by their Ethernet MAC
address. MAC is a comparable value type so that it can be used directly as a
map key; convert to and from net.HardwareAddr at the packet library boundary.
*/
package addr
