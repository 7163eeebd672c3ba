//go:build i3

package features

func init() { compiled[I3] = true }
