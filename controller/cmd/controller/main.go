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

package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ringsdn/ringsdn/controller"
	"github.com/ringsdn/ringsdn/controller/config"
	api "github.com/ringsdn/ringsdn/controller/mgmtapi"
	"github.com/ringsdn/ringsdn/controller/southbound/replay"
	"github.com/ringsdn/ringsdn/pkg/addr"
	"github.com/ringsdn/ringsdn/pkg/log"
	"github.com/ringsdn/ringsdn/pkg/private/processmetrics"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
	"github.com/ringsdn/ringsdn/private/app/command"
	"github.com/ringsdn/ringsdn/private/app/launcher"
	"github.com/ringsdn/ringsdn/private/env"
	"github.com/ringsdn/ringsdn/private/topology"
)

var globalCfg config.Config

func main() {
	application := launcher.Application{
		TOMLConfig: &globalCfg,
		ShortName:  "Ring SDN Controller",
		Samplers: []func(command.Pather) *cobra.Command{
			func(command.Pather) *cobra.Command {
				return command.NewSampleFile("topology",
					"Display a sample ring topology file", topology.Sample)
			},
		},
		Main: realMain,
	}
	application.Run()
}

func realMain(ctx context.Context) error {
	dir, err := topology.FromFile(globalCfg.Controller.Topology)
	if err != nil {
		return serrors.Wrap("loading topology", err)
	}
	features, err := globalCfg.Features.Parse()
	if err != nil {
		return err
	}
	policy := globalCfg.ACL.Policy()
	log.Info("Topology loaded", "hosts", len(dir.Hosts()), "links", len(dir.Links()),
		"switches", dir.Switches())

	driver, err := replay.NewDriver(globalCfg.Replay.Output)
	if err != nil {
		return serrors.Wrap("creating southbound driver", err)
	}
	defer driver.Close()

	metrics := controller.NewMetrics(prometheus.DefaultRegisterer)
	if err := processmetrics.Init(prometheus.DefaultRegisterer); err != nil {
		log.Info("Process metrics unavailable", "err", err)
	}
	state := controller.NewState()
	ctrl := controller.New(controller.NewEngine(dir, policy, features), state, driver, metrics)
	disp := controller.NewDispatcher(ctrl, globalCfg.Controller.QueueSize, metrics)

	g, errCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer log.HandlePanic()
		return disp.Run(errCtx)
	})

	// Initialize and start the management API.
	if globalCfg.API.Addr != "" {
		r := chi.NewRouter()
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPut},
		}))
		r.Mount("/api/v1", api.Handler(&api.Server{
			ID:       globalCfg.General.ID,
			Version:  env.Version(),
			Topology: dir,
			Policy:   policy,
			State:    state,
			LogLevel: log.ConsoleLevel,
		}))
		log.Info("Exposing API", "addr", globalCfg.API.Addr)
		mgmtServer := &http.Server{
			Addr:    globalCfg.API.Addr,
			Handler: r,
		}
		g.Go(func() error {
			defer log.HandlePanic()
			<-errCtx.Done()
			return mgmtServer.Close()
		})
		g.Go(func() error {
			defer log.HandlePanic()
			err := mgmtServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return serrors.Wrap("serving management API", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer log.HandlePanic()
		return globalCfg.Metrics.ServePrometheus(errCtx)
	})
	if globalCfg.Replay.Input != "" {
		g.Go(func() error {
			defer log.HandlePanic()
			feeder := replay.Feeder{
				Input:  globalCfg.Replay.Input,
				DPID:   addr.DPID(globalCfg.Replay.DPID),
				InPort: addr.Port(globalCfg.Replay.InPort),
				Speed:  globalCfg.Replay.Speed,
			}
			report, err := feeder.Replay(errCtx, disp, driver)
			if err != nil {
				return serrors.Wrap("replaying capture", err)
			}
			log.Info("Replay finished", "frames", report.Frames, "dropped", report.Dropped,
				"flow_rules", report.Rules, "packet_outs", report.Packets)
			return nil
		})
	}
	return g.Wait()
}
