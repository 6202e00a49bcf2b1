package app

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/serviceregistry-backend/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// CurrentBuild returns the ldflags values. When they were not set, the commit
// and time fall back to the VCS stamp the toolchain embeds.
func CurrentBuild() BuildInfo {
	b := BuildInfo{Version: Version, Commit: Commit, BuildTime: BuildTime}
	if info, ok := debug.ReadBuildInfo(); ok {
		b = b.withVCS(info.Settings)
	}
	return b
}

func (b BuildInfo) withVCS(settings []debug.BuildSetting) BuildInfo {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "unknown" && s.Value != "" {
				b.Commit = s.Value
				if len(b.Commit) > 12 {
					b.Commit = b.Commit[:12]
				}
			}
		case "vcs.time":
			if b.BuildTime == "unknown" && s.Value != "" {
				b.BuildTime = s.Value
			}
		}
	}
	return b
}

// String formats the build for health endpoints.
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", b.Version, b.Commit, b.BuildTime)
}

// LogValue renders the build as a log group.
func (b BuildInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("version", b.Version),
		slog.String("commit", b.Commit),
		slog.String("built", b.BuildTime),
	)
}
