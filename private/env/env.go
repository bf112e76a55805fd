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

// Package env contains common configuration blocks and initialization code
// shared by the controller binaries. If something is specific to one app, it
// should go into that app's code and not here.
package env

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ringsdn/ringsdn/pkg/log"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
	"github.com/ringsdn/ringsdn/private/config"
)

const (
	// TopologyFile is the file name of the ring topology inside the config
	// directory.
	TopologyFile = "topology.toml"

	// ShutdownGraceInterval is the time applications wait after issuing a
	// clean shutdown signal, before forcefully tearing down the application.
	ShutdownGraceInterval = 5 * time.Second

	// HandlerTimeout is the time after which the http handler gives up on a request and
	// returns an error instead.
	HandlerTimeout = time.Minute
)

var _ config.Config = (*General)(nil)

type General struct {
	// ID is the identifier of this controller instance. It is exported as
	// a metric label and written to the start and stop log lines.
	ID string `toml:"id,omitempty"`
	// ConfigDir for loading extra files (currently, only topology.toml).
	ConfigDir string `toml:"config_dir,omitempty"`
}

// InitDefaults is a no-op, the ID defaults to the executable name in the
// launcher.
func (cfg *General) InitDefaults() {
}

func (cfg *General) Validate() error {
	if cfg.ID == "" {
		return serrors.New("no element id specified")
	}
	return cfg.checkDir()
}

// checkDir checks that the config dir is a directory.
func (cfg *General) checkDir() error {
	if cfg.ConfigDir != "" {
		info, err := os.Stat(cfg.ConfigDir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return serrors.New("config_dir is not a directory", "dir", cfg.ConfigDir)
		}
	}
	return nil
}

func (cfg *General) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, fmt.Sprintf(generalSample, ctx[config.ID]))
}

func (cfg *General) ConfigName() string {
	return "general"
}

// Topology returns the path to the topology file.
func (cfg *General) Topology() string {
	return filepath.Join(cfg.ConfigDir, TopologyFile)
}

var _ config.Config = (*Metrics)(nil)

type Metrics struct {
	config.NoDefaulter
	config.NoValidator
	// Prometheus contains the address to export prometheus metrics on. If
	// not set, metrics are not exported.
	Prometheus string `toml:"prometheus,omitempty"`
}

func (cfg *Metrics) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteString(dst, metricsSample)
}

func (cfg *Metrics) ConfigName() string {
	return "metrics"
}

// ServePrometheus serves the default prometheus registry on /metrics until
// ctx is canceled. It returns immediately if no address is configured.
func (cfg *Metrics) ServePrometheus(ctx context.Context) error {
	if cfg.Prometheus == "" {
		return nil
	}
	handler := promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(
			prometheus.DefaultGatherer,
			promhttp.HandlerOpts{Timeout: HandlerTimeout},
		),
	)
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	log.Info("Exporting prometheus metrics", "addr", cfg.Prometheus)

	server := &http.Server{Addr: cfg.Prometheus, Handler: mux}
	go func() {
		defer log.HandlePanic()
		<-ctx.Done()
		server.Close()
	}()
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return serrors.Wrap("serving prometheus metrics", err)
	}
	return nil
}
