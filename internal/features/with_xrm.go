//go:build xrm

package features

func init() { compiled[XRM] = true }
