package common

import "fmt"

// Build metadata, injected at link time:
//
//	go build -ldflags "-X github.com/ternarybob/onetrade/internal/common.Version=1.2.0"
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Build     string `json:"build"`
	GitCommit string `json:"git_commit"`
}

// GetBuildInfo returns the link-time build metadata.
func GetBuildInfo() BuildInfo {
	return BuildInfo{Version: Version, Build: Build, GitCommit: GitCommit}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", b.Version, b.Build, b.GitCommit)
}

// GetVersion returns the version string alone.
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with build and commit.
func GetFullVersion() string {
	return GetBuildInfo().String()
}
