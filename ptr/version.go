package ptr

import (
	"golang.org/x/mod/semver"

	"github.com/kolkov/refptr/internal/ptr/leakcheck"
)

// Version information for refptr.
const (
	// Version is the current version of the module.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about refptr.
type Info struct {
	// Version is the canonical semantic version, e.g. "v0.1.0".
	Version string

	// Major is the major version prefix, e.g. "v0".
	Major string

	// LeakCheck indicates whether new handles are being tracked.
	LeakCheck bool
}

// GetInfo returns information about the refptr runtime.
//
// Example:
//
//	info := ptr.GetInfo()
//	fmt.Printf("refptr %s (leakcheck=%t)\n", info.Version, info.LeakCheck)
func GetInfo() Info {
	v := semver.Canonical("v" + Version)
	return Info{
		Version:   v,
		Major:     semver.Major(v),
		LeakCheck: leakcheck.Enabled(),
	}
}

// Compatible reports whether a caller built against version want can use
// this module: both must be valid semantic versions with the same major
// version, and want must not be newer.
func Compatible(want string) bool {
	if !semver.IsValid(want) {
		return false
	}
	have := semver.Canonical("v" + Version)
	return semver.Major(want) == semver.Major(have) && semver.Compare(want, have) <= 0
}
