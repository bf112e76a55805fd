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

// Package mgmtapi implements the read-only http management API of the
// controller.
package mgmtapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ringsdn/ringsdn/controller"
	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/log"
	"github.com/ringsdn/ringsdn/private/topology"
)

// Problem types.
const (
	BadRequest    = "/problems/bad-request"
	NotFound      = "/problems/not-found"
	InternalError = "/problems/internal-error"
)

// Problem is an error response as described in RFC 7807.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// LearningState gives read access to the learning tables.
type LearningState interface {
	Switches() []addr.DPID
	Lookup(dpid addr.DPID) (*controller.LearningTable, bool)
}

// LogLevel reads and changes the console log level.
type LogLevel interface {
	String() string
	SetLevel(level string) error
}

// Server implements the management API.
type Server struct {
	ID       string
	Version  string
	Topology *topology.Directory
	Policy   *controller.Policy
	State    LearningState
	LogLevel LogLevel
}

// Handler returns the routes of s.
func Handler(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Get("/info", s.GetInfo)
	r.Get("/topology", s.GetTopology)
	r.Get("/acl", s.GetACL)
	r.Get("/switches", s.GetSwitches)
	r.Get("/switches/{dpid}/macs", s.GetMACs)
	r.Get("/log/level", s.GetLogLevel)
	r.Put("/log/level", s.SetLogLevel)
	return r
}

// Info describes the running controller.
type Info struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// GetInfo returns the controller id and version.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Info{ID: s.ID, Version: s.Version})
}

// TopologyResponse is the static ring topology.
type TopologyResponse struct {
	Hosts    []topology.Host `json:"hosts"`
	Links    []topology.Link `json:"links"`
	Switches []addr.DPID     `json:"switches"`
}

// GetTopology returns the host directory and the configured links.
func (s *Server) GetTopology(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, TopologyResponse{
		Hosts:    s.Topology.Hosts(),
		Links:    s.Topology.Links(),
		Switches: s.Topology.Switches(),
	})
}

// ACLResponse is the access control policy.
type ACLResponse struct {
	TCPBlacklist   []addr.MAC `json:"tcp_blacklist"`
	TCPBlockedPort uint16     `json:"tcp_blocked_port"`
	UDPBlacklist   []addr.MAC `json:"udp_blacklist"`
}

// GetACL returns the blacklists.
func (s *Server) GetACL(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ACLResponse{
		TCPBlacklist:   s.Policy.Blacklist(controller.ProtoTCP),
		TCPBlockedPort: s.Policy.BlockedTCPPort(),
		UDPBlacklist:   s.Policy.Blacklist(controller.ProtoUDP),
	})
}

// Switch summarizes the learning table of a switch.
type Switch struct {
	DPID    addr.DPID `json:"dpid"`
	Learned int       `json:"learned"`
}

// GetSwitches lists the switches the controller has seen.
func (s *Server) GetSwitches(w http.ResponseWriter, r *http.Request) {
	dpids := s.State.Switches()
	rep := make([]Switch, 0, len(dpids))
	for _, d := range dpids {
		t, ok := s.State.Lookup(d)
		if !ok {
			continue
		}
		rep = append(rep, Switch{DPID: d, Learned: t.Len()})
	}
	writeJSON(w, rep)
}

// GetMACs returns the learning table of one switch.
func (s *Server) GetMACs(w http.ResponseWriter, r *http.Request) {
	dpid, err := addr.ParseDPID(chi.URLParam(r, "dpid"))
	if err != nil {
		ErrorResponse(w, Problem{
			Type:   BadRequest,
			Title:  "malformed dpid",
			Status: http.StatusBadRequest,
			Detail: err.Error(),
		})
		return
	}
	t, ok := s.State.Lookup(dpid)
	if !ok {
		ErrorResponse(w, Problem{
			Type:   NotFound,
			Title:  "switch not seen",
			Status: http.StatusNotFound,
			Detail: "dpid " + dpid.String(),
		})
		return
	}
	writeJSON(w, t.Snapshot())
}

// LogLevelBody is the request and response body of the log level endpoints.
type LogLevelBody struct {
	Level string `json:"level"`
}

// GetLogLevel returns the console log level.
func (s *Server) GetLogLevel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, LogLevelBody{Level: s.LogLevel.String()})
}

// SetLogLevel changes the console log level.
func (s *Server) SetLogLevel(w http.ResponseWriter, r *http.Request) {
	var body LogLevelBody
	dec := json.NewDecoder(io.LimitReader(r.Body, 1024))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		ErrorResponse(w, Problem{
			Type:   BadRequest,
			Title:  "malformed body",
			Status: http.StatusBadRequest,
			Detail: err.Error(),
		})
		return
	}
	if err := s.LogLevel.SetLevel(body.Level); err != nil {
		ErrorResponse(w, Problem{
			Type:   BadRequest,
			Title:  "unable to set log level",
			Status: http.StatusBadRequest,
			Detail: err.Error(),
		})
		return
	}
	log.Info("Console log level changed", "level", body.Level)
	writeJSON(w, LogLevelBody{Level: s.LogLevel.String()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		ErrorResponse(w, Problem{
			Type:   InternalError,
			Title:  "unable to marshal response",
			Status: http.StatusInternalServerError,
			Detail: err.Error(),
		})
	}
}

// ErrorResponse writes a problem response.
func ErrorResponse(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	// no point in catching error here, there is nothing we can do about it anymore.
	_ = enc.Encode(p)
}
