package features

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ushineko/polybar/internal/version"
)

// Toolchain literals, set via -ldflags. Empty values are filled from the
// build info embedded by the Go toolchain.
var (
	BuildType     = ""
	Compiler      = ""
	CompilerFlags = ""
	LinkerFlags   = ""
)

// Toolchain describes the build environment. The values are opaque.
type Toolchain struct {
	BuildType     string
	Compiler      string
	CompilerFlags string
	LinkerFlags   string
}

// CurrentToolchain returns the toolchain literals for the running binary.
func CurrentToolchain() Toolchain {
	var settings []debug.BuildSetting
	if info, ok := debug.ReadBuildInfo(); ok {
		settings = info.Settings
	}
	return toolchainFrom(Toolchain{
		BuildType:     BuildType,
		Compiler:      Compiler,
		CompilerFlags: CompilerFlags,
		LinkerFlags:   LinkerFlags,
	}, version.IsRelease(), settings)
}

func toolchainFrom(tc Toolchain, release bool, settings []debug.BuildSetting) Toolchain {
	get := func(key string) string {
		for _, kv := range settings {
			if kv.Key == key {
				return kv.Value
			}
		}
		return ""
	}

	if tc.BuildType == "" {
		tc.BuildType = "Debug"
		if release {
			tc.BuildType = "Release"
		}
	}
	if tc.Compiler == "" {
		tc.Compiler = runtime.Compiler + " " + runtime.Version()
	}
	if tc.CompilerFlags == "" {
		var parts []string
		if v := get("-gcflags"); v != "" {
			parts = append(parts, "-gcflags="+v)
		}
		if v := get("-tags"); v != "" {
			parts = append(parts, "-tags="+v)
		}
		tc.CompilerFlags = strings.Join(parts, " ")
	}
	if tc.LinkerFlags == "" {
		tc.LinkerFlags = get("-ldflags")
	}
	return tc
}
