//go:build network

package features

func init() { compiled[Network] = true }
