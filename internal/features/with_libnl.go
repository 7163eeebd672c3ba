//go:build libnl

package features

func init() { WirelessLib = "libnl" }
