//go:build alsa

package features

func init() { compiled[ALSA] = true }
