//go:build xkb

package features

func init() { compiled[XKB] = true }
