//go:build xrandr_monitors

package features

func init() { compiled[RandRMonitors] = true }
