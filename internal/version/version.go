// Package version reports which build of arda is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/example/arda/internal/version.Commit=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns "arda <version> (commit: <rev>, built: <time>)". Values not
// stamped by ldflags fall back to the VCS settings `go build` embeds, then
// to "unknown".
func String() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		vcsRev, vcsTime := vcsInfo()
		if commit == "" {
			commit = vcsRev
		}
		if built == "" {
			built = vcsTime
		}
	}
	return fmt.Sprintf("arda %s (commit: %s, built: %s)", Version, orUnknown(short(commit)), orUnknown(built))
}

func vcsInfo() (rev, at string) {
	info, ok := readBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return rev, at
}

func short(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
