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

package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/ringsdn/ringsdn/pkg/log"
	"github.com/ringsdn/ringsdn/pkg/private/serrors"
)

// LogAppStarted should be called by applications as soon as logging is
// initialized.
func LogAppStarted(svcType, elemID string) error {
	inDocker, err := RunsInDocker()
	if err != nil {
		return serrors.Wrap("unable to determine if running in docker", err)
	}
	info := fmt.Sprintf("=====================> Service started %s %s\n"+
		"%s  %s\n  %s\n  %s\n",
		svcType,
		elemID,
		VersionInfo(),
		fmt.Sprintf("In docker:     %v", inDocker),
		fmt.Sprintf("pid:           %d", os.Getpid()),
		fmt.Sprintf("cmd line:      %q", os.Args),
	)
	log.Info(info)
	return nil
}

// LogAppStopped should be called by applications before they exit.
func LogAppStopped(svcType, elemID string) {
	log.Info(fmt.Sprintf("=====================> Service stopped %s %s", svcType, elemID))
}

// Version returns the module version of the running binary.
func Version() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(unknown)"
}

// VersionInfo returns build version information (module version, go version).
func VersionInfo() string {
	goVersion := "(unknown)"
	if bi, ok := debug.ReadBuildInfo(); ok {
		goVersion = bi.GoVersion
	}
	return fmt.Sprintf("  %s\n  %s\n",
		fmt.Sprintf("Version:       %s", Version()),
		fmt.Sprintf("Go version:    %s", goVersion),
	)
}

// RunsInDocker reports whether the current process runs inside a docker
// container.
func RunsInDocker() (bool, error) {
	_, err := os.Stat("/.dockerenv")
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
