//go:build xcomposite

package features

func init() { compiled[Composite] = true }
