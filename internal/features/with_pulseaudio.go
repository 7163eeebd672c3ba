//go:build pulseaudio

package features

func init() { compiled[PulseAudio] = true }
