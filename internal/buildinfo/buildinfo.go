package buildinfo

import "golang.org/x/mod/semver"

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for UI/logging.
//
// A semver Version is shown in canonical form ("1.2" becomes "v1.2.0").
func Short() string {
	if v := semver.Canonical(Version); v != "" {
		return v
	}
	if v := semver.Canonical("v" + Version); v != "" {
		return v
	}
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}
