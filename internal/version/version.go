/*
Package version holds build-time identity information for polybar.

Variables are injected at build time via ldflags:

	go build -ldflags "-X .../version.Version=3.7.2-33 -X .../version.Commit=a5dfcfb6 -X .../version.Release=false"

When Commit is not injected, the VCS revision embedded by the Go toolchain
is used instead.
*/
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// These variables are set at build time via -ldflags.
var (
	// Name is the application identifier.
	Name = "polybar"
	// Version is the base version, either semantic ("3.7.2") or a
	// git-describe prefix ("3.7.2-33").
	Version = "dev"
	// Commit is the git commit hash.
	Commit = ""
	// Date is the build timestamp in ISO 8601 format. Logged with the
	// build report.
	Date = "unknown"
	// Release is "true" for release builds. Anything else marks a dev build.
	Release = "false"
)

// Identity is the name and rendered version of the running binary.
type Identity struct {
	Name    string
	Version string
}

// String returns "<name> <version>".
func (id Identity) String() string {
	return id.Name + " " + id.Version
}

// Current returns the identity of the running binary.
func Current() Identity {
	info, _ := debug.ReadBuildInfo()
	return resolve(Name, Version, Commit, Release, info)
}

// Full returns a human-readable identity string.
func Full() string {
	return Current().String()
}

// Short returns just the rendered version.
func Short() string {
	return Current().Version
}

// IsRelease reports whether this is a release build.
func IsRelease() bool {
	return Release == "true"
}

// resolve fills gaps in the ldflags values from the embedded build info
// and renders the version as <base>[-g<commit>][-dev].
func resolve(name, base, commit, release string, info *debug.BuildInfo) Identity {
	if info != nil {
		if base == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			base = strings.TrimPrefix(info.Main.Version, "v")
		}
		if commit == "" {
			commit = setting(info, "vcs.revision")
		}
	}

	v := base
	if c := short(commit); c != "" && !strings.Contains(v, c) {
		v = fmt.Sprintf("%s-g%s", v, c)
	}
	if release != "true" && base != "dev" && !strings.HasSuffix(v, "-dev") {
		v += "-dev"
	}

	return Identity{Name: name, Version: v}
}

// setting returns the value of a build setting, or "" if absent.
func setting(info *debug.BuildInfo, key string) string {
	for _, kv := range info.Settings {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

// short truncates a commit hash to 8 characters.
func short(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
