package version

import "fmt"

// These variables are set at build time using -ldflags
// Example: go build -ldflags "-X Armature/internal/version.Version=1.2.0"
var (
	// Version is the semantic version of the application
	Version = "0.3.0"

	// BuildTime is the time the binary was built (set via ldflags)
	BuildTime = "unknown"

	// GitCommit is the git commit hash (set via ldflags)
	GitCommit = "unknown"
)

// Info is the build identity reported by /health and the CLI.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
}

func Current() Info {
	return Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
}

func (i Info) String() string {
	return fmt.Sprintf("v%s (commit %s, built %s)", i.Version, i.GitCommit, i.BuildTime)
}
