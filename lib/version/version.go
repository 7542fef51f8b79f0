// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// Set via -ldflags at build time.
var (
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"
	Version   = "0.1.0-dev"
)

var fillOnce sync.Once

// fill replaces unset values with the embedded build info.
func fill() {
	fillOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		applyBuildInfo(info)
	})
}

func applyBuildInfo(info *debug.BuildInfo) {
	if Version == "0.1.0-dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if GitCommit == "unknown" && len(setting.Value) >= 7 {
				GitCommit = setting.Value[:7]
			}
		case "vcs.time":
			if BuildTime == "unknown" {
				BuildTime = setting.Value
			}
		case "vcs.modified":
			if setting.Value == "true" {
				GitDirty = "true"
			}
		}
	}
}

// Info returns "version (commit[-dirty], time)" for --version.
func Info() string {
	fill()
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full is Info plus the Go version and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns the version number.
func Short() string {
	fill()
	return Version
}
