//go:build xcursor

package features

func init() { compiled[XCursor] = true }
