/*
Package config handles YAML configuration loading, validation, and
CLI flag merging for polybar.

The built-in defaults are the status bar's compiled-in settings: device
paths, sockets, and sink priorities. Configuration is resolved in this order
(highest priority first):
 1. CLI flags (explicitly passed)
 2. Config file values
 3. Built-in defaults
*/
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for polybar.
type Config struct {
	LogDir         string         `yaml:"log_dir"`
	Verbose        bool           `yaml:"verbose"`
	ALSA           ALSA           `yaml:"alsa"`
	BSPWM          BSPWM          `yaml:"bspwm"`
	Network        Network        `yaml:"network"`
	Paths          Paths          `yaml:"paths"`
	SinkPriorities SinkPriorities `yaml:"sink_priorities"`
}

// ALSA holds mixer defaults.
type ALSA struct {
	Soundcard string `yaml:"soundcard"`
}

// BSPWM holds bspwm window manager integration defaults.
type BSPWM struct {
	SocketPath   string `yaml:"socket_path"`
	StatusPrefix string `yaml:"status_prefix"`
}

// Network holds network module defaults.
type Network struct {
	ConnectionTestIP string `yaml:"connection_test_ip"`
}

// Paths holds system file locations. Some are templates with a %token%
// placeholder filled in by Expand.
type Paths struct {
	Adapter             string `yaml:"adapter"`
	Backlight           string `yaml:"backlight"`
	Battery             string `yaml:"battery"`
	CPUInfo             string `yaml:"cpu_info"`
	MemoryInfo          string `yaml:"memory_info"`
	MessagingFIFO       string `yaml:"messaging_fifo"`
	TemperatureInfo     string `yaml:"temperature_info"`
	ThermalZoneWildcard string `yaml:"thermal_zone_wildcard"`
}

// SinkPriorities orders the bar, screen, tray and module event sinks.
// Lower values are served first.
type SinkPriorities struct {
	Bar    int `yaml:"bar"`
	Screen int `yaml:"screen"`
	Tray   int `yaml:"tray"`
	Module int `yaml:"module"`
}

// Path template tokens.
const (
	TokenAdapter = "adapter"
	TokenCard    = "card"
	TokenBattery = "battery"
	TokenPID     = "pid"
	TokenZone    = "zone"
)

// Default returns a Config populated with built-in defaults.
func Default() Config {
	return Config{
		LogDir:  "",
		Verbose: false,
		ALSA: ALSA{
			Soundcard: "default",
		},
		BSPWM: BSPWM{
			SocketPath:   "/tmp/bspwm_0_0-socket",
			StatusPrefix: "W",
		},
		Network: Network{
			ConnectionTestIP: "8.8.8.8",
		},
		Paths: Paths{
			Adapter:             "/sys/class/power_supply/%adapter%",
			Backlight:           "/sys/class/backlight/%card%",
			Battery:             "/sys/class/power_supply/%battery%",
			CPUInfo:             "/proc/stat",
			MemoryInfo:          "/proc/meminfo",
			MessagingFIFO:       "/tmp/polybar_mqueue.%pid%",
			TemperatureInfo:     "/sys/class/thermal/thermal_zone%zone%/temp",
			ThermalZoneWildcard: "/sys/class/thermal/thermal_zone*",
		},
		SinkPriorities: SinkPriorities{
			Bar:    1,
			Screen: 2,
			Tray:   3,
			Module: 4,
		},
	}
}

// Load reads a config file from disk and parses it. If path is empty,
// it searches for polybar.yml or polybar.yaml in the working directory.
// Returns the parsed config and the path that was loaded (empty if none found).
func Load(path string) (Config, string, error) {
	cfg := Default()

	if path == "" {
		path = discover()
		if path == "" {
			return cfg, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, path, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, path, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, path, nil
}

// discover searches for a config file in the working directory.
func discover() string {
	for _, name := range []string{"polybar.yml", "polybar.yaml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// CLIOverrides holds values from CLI flags that should override config file values.
// A nil value means the flag was not explicitly set.
type CLIOverrides struct {
	LogDir  *string
	Verbose *bool
}

// Merge applies CLI flag overrides to a loaded config. Only explicitly-set
// flags override config file values.
func (c *Config) Merge(o CLIOverrides) {
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
	if o.Verbose != nil {
		c.Verbose = *o.Verbose
	}
}

// Validate checks the config for invalid values and returns an error
// describing all problems found.
func (c *Config) Validate() error {
	var errs []string

	if c.ALSA.Soundcard == "" {
		errs = append(errs, "alsa.soundcard: must not be empty")
	}

	if c.BSPWM.SocketPath == "" {
		errs = append(errs, "bspwm.socket_path: must not be empty")
	}

	if net.ParseIP(c.Network.ConnectionTestIP) == nil {
		errs = append(errs, fmt.Sprintf("network.connection_test_ip: invalid IP %q", c.Network.ConnectionTestIP))
	}

	errs = append(errs, validatePaths(c.Paths)...)
	errs = append(errs, validateSinkPriorities(c.SinkPriorities)...)

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	return nil
}

// validatePaths checks that paths are absolute and templates keep their token.
func validatePaths(p Paths) []string {
	checks := []struct {
		key   string
		value string
		token string
	}{
		{"paths.adapter", p.Adapter, TokenAdapter},
		{"paths.backlight", p.Backlight, TokenCard},
		{"paths.battery", p.Battery, TokenBattery},
		{"paths.cpu_info", p.CPUInfo, ""},
		{"paths.memory_info", p.MemoryInfo, ""},
		{"paths.messaging_fifo", p.MessagingFIFO, TokenPID},
		{"paths.temperature_info", p.TemperatureInfo, TokenZone},
		{"paths.thermal_zone_wildcard", p.ThermalZoneWildcard, ""},
	}

	var errs []string
	for _, ck := range checks {
		if !filepath.IsAbs(ck.value) {
			errs = append(errs, fmt.Sprintf("%s: must be an absolute path, got %q", ck.key, ck.value))
			continue
		}
		if ck.token != "" && !strings.Contains(ck.value, placeholder(ck.token)) {
			errs = append(errs, fmt.Sprintf("%s: must contain %s, got %q", ck.key, placeholder(ck.token), ck.value))
		}
	}
	return errs
}

// validateSinkPriorities checks that priorities are positive and distinct.
func validateSinkPriorities(s SinkPriorities) []string {
	var errs []string
	seen := make(map[int]string)
	for _, p := range []struct {
		key   string
		value int
	}{
		{"sink_priorities.bar", s.Bar},
		{"sink_priorities.screen", s.Screen},
		{"sink_priorities.tray", s.Tray},
		{"sink_priorities.module", s.Module},
	} {
		if p.value <= 0 {
			errs = append(errs, fmt.Sprintf("%s: must be positive, got %d", p.key, p.value))
			continue
		}
		if other, dup := seen[p.value]; dup {
			errs = append(errs, fmt.Sprintf("%s: duplicates %s (%d)", p.key, other, p.value))
			continue
		}
		seen[p.value] = p.key
	}
	return errs
}

// Expand replaces the %token% placeholder in template with value.
func Expand(template, token, value string) string {
	return strings.ReplaceAll(template, placeholder(token), value)
}

func placeholder(token string) string {
	return "%" + token + "%"
}

// Dump serializes the config to YAML.
func (c *Config) Dump() ([]byte, error) {
	return yaml.Marshal(c)
}
