/*
Package features holds the build-time capability registry for polybar.

Each optional subsystem is selected with a Go build tag:

	go build -tags "alsa curl network pulseaudio xrandr xrandr_monitors xkb"

Tag files register their flag from init(), before any caller can reach
Compiled. The wireless backend name and toolchain literals are injected via
ldflags:

	go build -ldflags "-X .../features.WirelessLib=libnl -X .../features.BuildType=Release"

The registry is read-only once built.
*/
package features

import (
	"fmt"
	"strings"

	"github.com/ushineko/polybar/internal/version"
)

// Flag names.
const (
	ALSA          = "alsa"
	Curl          = "curl"
	I3            = "i3"
	MPD           = "mpd"
	Network       = "network"
	PulseAudio    = "pulseaudio"
	XKeyboard     = "xkeyboard"
	RandR         = "randr"
	RandRMonitors = "randr-monitors"
	Composite     = "composite"
	XKB           = "xkb"
	XRM           = "xrm"
	XCursor       = "xcursor"
)

// Group titles.
const (
	FeaturesTitle   = "Features"
	ExtensionsTitle = "X extensions"
)

// WirelessLib is the linked wireless backend. Set via -ldflags or the
// libnl build tag.
var WirelessLib = "wireless-tools"

// compiled records the flags enabled by build tags.
var compiled = map[string]bool{}

// Flag is a named build-time capability.
type Flag struct {
	// Name is the registry identifier.
	Name string
	// Label is the rendered text. Empty means Name.
	Label   string
	Enabled bool
	// Detail is an optional backend annotation, e.g. the wireless library.
	Detail string
	// Nested flags are reported in parentheses after this one.
	Nested []Flag
}

// DisplayName returns the label used in reports.
func (f Flag) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Marker returns '+' for enabled flags and '-' otherwise.
func (f Flag) Marker() byte {
	if f.Enabled {
		return '+'
	}
	return '-'
}

// Group is an ordered set of flags reported on one line.
type Group struct {
	Title string
	Flags []Flag
}

// Registry is the full build-time configuration of the binary.
type Registry struct {
	Identity   version.Identity
	Features   Group
	Extensions Group
	Toolchain  Toolchain
}

// Compiled returns the registry for the running binary.
func Compiled() *Registry {
	return New(version.Current(), compiled, WirelessLib, CurrentToolchain())
}

// New builds a registry in declaration order. Flags missing from enabled
// are disabled.
func New(id version.Identity, enabled map[string]bool, wirelessLib string, tc Toolchain) *Registry {
	flag := func(name string) Flag {
		return Flag{Name: name, Enabled: enabled[name]}
	}

	network := flag(Network)
	network.Detail = wirelessLib

	randr := flag(RandR)
	monitors := flag(RandRMonitors)
	monitors.Label = "monitors"
	randr.Nested = []Flag{monitors}

	return &Registry{
		Identity: id,
		Features: Group{
			Title: FeaturesTitle,
			Flags: []Flag{
				flag(ALSA),
				flag(Curl),
				flag(I3),
				flag(MPD),
				network,
				flag(PulseAudio),
				flag(XKeyboard),
			},
		},
		Extensions: Group{
			Title: ExtensionsTitle,
			Flags: []Flag{
				randr,
				flag(Composite),
				flag(XKB),
				flag(XRM),
				flag(XCursor),
			},
		},
		Toolchain: tc,
	}
}

// Groups returns the flag groups in report order.
func (r *Registry) Groups() []Group {
	return []Group{r.Features, r.Extensions}
}

// Lookup finds a flag by name, including nested flags.
func (r *Registry) Lookup(name string) (Flag, bool) {
	var found Flag
	ok := false
	r.walk(func(f Flag) bool {
		if f.Name == name {
			found, ok = f, true
			return false
		}
		return true
	})
	return found, ok
}

// Enabled reports whether the named flag exists and is enabled.
func (r *Registry) Enabled(name string) bool {
	f, ok := r.Lookup(name)
	return ok && f.Enabled
}

// Names returns every flag name in declaration order, nested flags
// directly after their parent.
func (r *Registry) Names() []string {
	var names []string
	r.walk(func(f Flag) bool {
		names = append(names, f.Name)
		return true
	})
	return names
}

// Validate checks that every known flag is declared exactly once.
func (r *Registry) Validate() error {
	seen := make(map[string]int)
	for _, n := range r.Names() {
		seen[n]++
	}

	var errs []string
	for _, n := range Known() {
		switch seen[n] {
		case 0:
			errs = append(errs, fmt.Sprintf("flag %q: missing", n))
		case 1:
		default:
			errs = append(errs, fmt.Sprintf("flag %q: declared %d times", n, seen[n]))
		}
		delete(seen, n)
	}
	for n := range seen {
		errs = append(errs, fmt.Sprintf("flag %q: unknown", n))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Known returns every flag name the registry declares, in order.
func Known() []string {
	return []string{
		ALSA, Curl, I3, MPD, Network, PulseAudio, XKeyboard,
		RandR, RandRMonitors, Composite, XKB, XRM, XCursor,
	}
}

// walk visits flags depth-first in declaration order until fn returns false.
func (r *Registry) walk(fn func(Flag) bool) {
	var visit func([]Flag) bool
	visit = func(flags []Flag) bool {
		for _, f := range flags {
			if !fn(f) || !visit(f.Nested) {
				return false
			}
		}
		return true
	}
	for _, g := range r.Groups() {
		if !visit(g.Flags) {
			return
		}
	}
}
