/*
Package report renders the build-info report printed by polybar --version.

The brief report shows the identity and the primary feature group. The
extended report, requested with any argument starting with "-vv", adds the
X extension group and the toolchain literals.
*/
package report

import (
	"io"
	"strings"

	"github.com/ushineko/polybar/internal/features"
)

// ExtendedPrefix selects the extended report when any argument starts with it.
const ExtendedPrefix = "-vv"

// Extended reports whether args request the extended report. args excludes
// the program name. The match is a raw prefix test, so "-vvx" and "-vv=foo"
// count too.
func Extended(args []string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, ExtendedPrefix) {
			return true
		}
	}
	return false
}

// Render returns the report text for reg.
func Render(reg *features.Registry, extended bool) string {
	var b strings.Builder

	b.WriteString(reg.Identity.String())
	b.WriteString("\n\n")
	b.WriteString(Line(reg.Features))
	b.WriteByte('\n')

	if extended {
		b.WriteByte('\n')
		b.WriteString(Line(reg.Extensions))
		b.WriteString("\n\n")

		tc := reg.Toolchain
		b.WriteString("Build type: " + tc.BuildType + "\n")
		b.WriteString("Compiler: " + tc.Compiler + "\n")
		b.WriteString("Compiler flags:  " + tc.CompilerFlags + "\n")
		b.WriteString("Linker flags:  " + tc.LinkerFlags + "\n")
	}

	return b.String()
}

// Print writes the report to w in a single write.
func Print(w io.Writer, reg *features.Registry, extended bool) error {
	_, err := io.WriteString(w, Render(reg, extended))
	return err
}

// Line renders a group as "<title>: <entry> <entry> ...".
func Line(g features.Group) string {
	entries := make([]string, 0, len(g.Flags))
	for _, f := range g.Flags {
		entries = append(entries, entry(f))
	}
	return g.Title + ": " + strings.Join(entries, " ")
}

// entry renders one flag: marker and label, the detail in parentheses
// directly after, then each nested flag as " (<marker><label>)".
func entry(f features.Flag) string {
	s := string(f.Marker()) + f.DisplayName()
	if f.Detail != "" {
		s += "(" + f.Detail + ")"
	}
	for _, n := range f.Nested {
		s += " (" + string(n.Marker()) + n.DisplayName() + ")"
	}
	return s
}
