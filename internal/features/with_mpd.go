//go:build mpd

package features

func init() { compiled[MPD] = true }
