//go:build curl

package features

func init() { compiled[Curl] = true }
