//go:build xkeyboard

package features

func init() { compiled[XKeyboard] = true }
