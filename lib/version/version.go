package version

import (
	"fmt"
	"runtime"
)

var (
	Version             string = "0.1.0" // Version should be updated by hand at each release. It must follow SemVer (https://semver.org)
	GitCommit, GitState string           // GitCommit will be overwritten automatically by the build system
	BuildDate           string           // BuildDate will be overwritten automatically by the build system
)

func ToDetailVersion() string {
	return fmt.Sprintf("version=%s git=%s build=%s", Version, GitCommit, BuildDate)
}

// Info is shown by `herehere version` and the node api.
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"git-commit": GitCommit,
		"git-state":  GitState,
		"build-date": BuildDate,
		"go-version": runtime.Version(),
	}
}
