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
	"bytes"
	"slices"
	"sync"

	"github.com/ringsdn/ringsdn/pkg/addr"
)

// LearningTable records, for one switch, the last ingress port each source
// MAC was seen on. Entries are never evicted.
type LearningTable struct {
	mu      sync.RWMutex
	entries map[addr.MAC]addr.Port
}

func newLearningTable() *LearningTable {
	return &LearningTable{entries: make(map[addr.MAC]addr.Port)}
}

// Observe records that mac was seen on port, overwriting any previous entry.
// It returns whether the table changed.
func (t *LearningTable) Observe(mac addr.MAC, port addr.Port) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	old, ok := t.entries[mac]
	t.entries[mac] = port
	return !ok || old != port
}

// Lookup returns the port mac was last seen on.
func (t *LearningTable) Lookup(mac addr.MAC) (addr.Port, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.entries[mac]
	return p, ok
}

// Len returns the number of learned addresses.
func (t *LearningTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Entry is a learned address.
type Entry struct {
	MAC  addr.MAC  `json:"mac"`
	Port addr.Port `json:"port"`
}

// Snapshot returns a copy of the table sorted by MAC.
func (t *LearningTable) Snapshot() []Entry {
	t.mu.RLock()
	out := make([]Entry, 0, len(t.entries))
	for m, p := range t.entries {
		out = append(out, Entry{MAC: m, Port: p})
	}
	t.mu.RUnlock()
	slices.SortFunc(out, func(a, b Entry) int {
		return bytes.Compare(a.MAC[:], b.MAC[:])
	})
	return out
}

// State owns the learning tables of all switches seen so far.
type State struct {
	mu     sync.RWMutex
	tables map[addr.DPID]*LearningTable
}

// NewState returns an empty controller state.
func NewState() *State {
	return &State{tables: make(map[addr.DPID]*LearningTable)}
}

// Table returns the learning table of dpid, creating it on first use.
func (s *State) Table(dpid addr.DPID) *LearningTable {
	s.mu.RLock()
	t, ok := s.tables[dpid]
	s.mu.RUnlock()
	if ok {
		return t
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[dpid]; ok {
		return t
	}
	t = newLearningTable()
	s.tables[dpid] = t
	return t
}

// Lookup returns the learning table of dpid if the switch was seen.
func (s *State) Lookup(dpid addr.DPID) (*LearningTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[dpid]
	return t, ok
}

// Switches returns the sorted ids of all switches seen.
func (s *State) Switches() []addr.DPID {
	s.mu.RLock()
	out := make([]addr.DPID, 0, len(s.tables))
	for d := range s.tables {
		out = append(out, d)
	}
	s.mu.RUnlock()
	slices.Sort(out)
	return out
}
