// Copyright 2020 Anapaya Systems
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

// Package launcher includes the shared application execution boilerplate of
// the controller binaries.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ringsdn/ringsdn/pkg/log"
	"github.com/ringsdn/ringsdn/pkg/private/prom"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
	"github.com/ringsdn/ringsdn/private/app/command"
	libconfig "github.com/ringsdn/ringsdn/private/config"
	"github.com/ringsdn/ringsdn/private/env"
)

// Configuration keys used by the launcher
const (
	cfgLogConsoleLevel           = "log.console.level"
	cfgLogConsoleFormat          = "log.console.format"
	cfgLogConsoleStacktraceLevel = "log.console.stacktrace_level"
	cfgGeneralID                 = "general.id"
	cfgConfigFile                = "config"
)

// Application models a controller application.
type Application struct {
	// TOMLConfig holds the Go data structure for the application-specific
	// TOML configuration.
	TOMLConfig libconfig.Config

	// Samplers contains additional sample sub-commands, for example for
	// files that are not part of the main configuration.
	Samplers []func(command.Pather) *cobra.Command

	// ShortName is the short name of the application. If empty, the executable name is used.
	ShortName string

	// Main is the custom logic of the application. If nil, no custom logic is executed
	// (and only the setup/teardown harness runs). If Main returns an error, the
	// Run method will return a non-zero exit code.
	Main func(ctx context.Context) error

	// ErrorWriter specifies where error output should be printed. If nil, os.Stderr is used.
	ErrorWriter io.Writer

	// config contains the Viper configuration KV store.
	config *viper.Viper
}

// Run sets up the common server harness, and then passes control to the Main
// function (if one exists).
//
// Run uses the following globals:
//
//	os.Args
//
// Run will exit the application if it encounters a fatal error.
func (a *Application) Run() {
	if err := a.run(os.Args[1:]); err != nil {
		fmt.Fprintf(a.getErrorWriter(), "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func (a *Application) run(args []string) error {
	executable := filepath.Base(os.Args[0])
	shortName := a.getShortName(executable)

	cmd := newCommandTemplate(executable, shortName, a.TOMLConfig, a.Samplers...)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.executeCommand(cmd.Context(), shortName)
	}
	cmd.SetArgs(args)
	a.config = viper.New()
	a.config.SetDefault(cfgLogConsoleLevel, log.DefaultConsoleLevel)
	a.config.SetDefault(cfgLogConsoleFormat, "human")
	a.config.SetDefault(cfgLogConsoleStacktraceLevel, log.DefaultStacktraceLevel)
	a.config.SetDefault(cfgGeneralID, executable)
	// The configuration file location is specified through command-line flags.
	// Once the command-line flags are parsed, we register the location of the
	// config file with the viper config.
	if err := a.config.BindPFlag(cfgConfigFile, cmd.Flags().Lookup(cfgConfigFile)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cmd.ExecuteContext(ctx)
}

func (a *Application) getShortName(executable string) string {
	if a.ShortName != "" {
		return a.ShortName
	}
	return executable
}

func (a *Application) executeCommand(ctx context.Context, shortName string) error {
	os.Setenv("TZ", "UTC")

	// Load launcher configurations from the same config file as the custom
	// application configuration.
	a.config.SetConfigType("toml")
	a.config.SetConfigFile(a.config.GetString(cfgConfigFile))
	if err := a.config.ReadInConfig(); err != nil {
		return serrors.Wrap("loading generic server config from file", err,
			"file", a.config.GetString(cfgConfigFile))
	}

	if err := libconfig.LoadFile(a.config.GetString(cfgConfigFile), a.TOMLConfig); err != nil {
		return serrors.Wrap("loading config from file", err,
			"file", a.config.GetString(cfgConfigFile))
	}
	a.TOMLConfig.InitDefaults()

	logEntriesTotal := prom.SafeRegister(prometheus.DefaultRegisterer,
		prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lib_log_emitted_entries_total",
				Help: "Total number of log entries emitted.",
			},
			[]string{prom.LabelLevel},
		),
	).(*prometheus.CounterVec)
	opt := log.WithEntriesCounter(log.EntriesCounter{
		Debug: logEntriesTotal.With(prometheus.Labels{prom.LabelLevel: "debug"}),
		Info:  logEntriesTotal.With(prometheus.Labels{prom.LabelLevel: "info"}),
		Error: logEntriesTotal.With(prometheus.Labels{prom.LabelLevel: "error"}),
	})
	if err := log.Setup(a.getLogging(), opt); err != nil {
		return serrors.Wrap("initialize logging", err)
	}
	defer log.Flush()
	if err := env.LogAppStarted(shortName, a.config.GetString(cfgGeneralID)); err != nil {
		return err
	}
	defer env.LogAppStopped(shortName, a.config.GetString(cfgGeneralID))
	defer log.HandlePanic()

	exportBuildInfo()
	exportElementID(a.config.GetString(cfgGeneralID))
	if err := a.TOMLConfig.Validate(); err != nil {
		return serrors.Wrap("validate config", err)
	}

	if a.Main == nil {
		return nil
	}
	// If Main does not return within the grace interval after the signal,
	// the process is torn down regardless.
	go func() {
		defer log.HandlePanic()
		<-ctx.Done()
		time.AfterFunc(env.ShutdownGraceInterval, func() {
			log.Error("Main did not shut down in time, forcing exit",
				"waited", env.ShutdownGraceInterval)
			log.Flush()
			os.Exit(1)
		})
	}()
	return a.Main(ctx)
}

func (a *Application) getLogging() log.Config {
	return log.Config{
		Console: log.ConsoleConfig{
			Level:           a.config.GetString(cfgLogConsoleLevel),
			Format:          a.config.GetString(cfgLogConsoleFormat),
			StacktraceLevel: a.config.GetString(cfgLogConsoleStacktraceLevel),
		},
	}
}

func (a *Application) getErrorWriter() io.Writer {
	if a.ErrorWriter != nil {
		return a.ErrorWriter
	}
	return os.Stderr
}
