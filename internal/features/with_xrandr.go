//go:build xrandr

package features

func init() { compiled[RandR] = true }
