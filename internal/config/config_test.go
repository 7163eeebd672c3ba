package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Empty(t, cfg.LogDir)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "default", cfg.ALSA.Soundcard)
	assert.Equal(t, "/tmp/bspwm_0_0-socket", cfg.BSPWM.SocketPath)
	assert.Equal(t, "W", cfg.BSPWM.StatusPrefix)
	assert.Equal(t, "8.8.8.8", cfg.Network.ConnectionTestIP)
	assert.Equal(t, "/sys/class/power_supply/%adapter%", cfg.Paths.Adapter)
	assert.Equal(t, "/sys/class/backlight/%card%", cfg.Paths.Backlight)
	assert.Equal(t, "/sys/class/power_supply/%battery%", cfg.Paths.Battery)
	assert.Equal(t, "/proc/stat", cfg.Paths.CPUInfo)
	assert.Equal(t, "/proc/meminfo", cfg.Paths.MemoryInfo)
	assert.Equal(t, "/tmp/polybar_mqueue.%pid%", cfg.Paths.MessagingFIFO)
	assert.Equal(t, "/sys/class/thermal/thermal_zone%zone%/temp", cfg.Paths.TemperatureInfo)
	assert.Equal(t, "/sys/class/thermal/thermal_zone*", cfg.Paths.ThermalZoneWildcard)
	assert.Equal(t, SinkPriorities{Bar: 1, Screen: 2, Tray: 3, Module: 4}, cfg.SinkPriorities)
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "test.yml")
	content := `
log_dir: "/var/log/polybar"
verbose: true
alsa:
  soundcard: "hw:1"
bspwm:
  socket_path: "/run/bspwm.sock"
network:
  connection_test_ip: "1.1.1.1"
paths:
  battery: "/sys/class/power_supply/%battery%/uevent"
sink_priorities:
  module: 9
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, loaded, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, loaded)

	assert.Equal(t, "/var/log/polybar", cfg.LogDir)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "hw:1", cfg.ALSA.Soundcard)
	assert.Equal(t, "/run/bspwm.sock", cfg.BSPWM.SocketPath)
	assert.Equal(t, "1.1.1.1", cfg.Network.ConnectionTestIP)
	assert.Equal(t, "/sys/class/power_supply/%battery%/uevent", cfg.Paths.Battery)
	assert.Equal(t, 9, cfg.SinkPriorities.Module)
}

func TestLoad_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "partial.yml")
	content := `
bspwm:
  status_prefix: "X"
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, _, err := Load(cfgPath)
	require.NoError(t, err)

	// Overridden value.
	assert.Equal(t, "X", cfg.BSPWM.StatusPrefix)

	// Defaults preserved for unspecified fields, including siblings.
	assert.Equal(t, "/tmp/bspwm_0_0-socket", cfg.BSPWM.SocketPath)
	assert.Equal(t, "default", cfg.ALSA.Soundcard)
	assert.Equal(t, "/proc/stat", cfg.Paths.CPUInfo)
	assert.Equal(t, 1, cfg.SinkPriorities.Bar)
}

func TestLoad_AutoDiscover(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	require.NoError(t, os.Chdir(dir))

	content := `verbose: true`
	require.NoError(t, os.WriteFile("polybar.yml", []byte(content), 0o600))

	cfg, loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "polybar.yml", loaded)
	assert.True(t, cfg.Verbose)
}

func TestLoad_AutoDiscoverYAMLExtension(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	require.NoError(t, os.Chdir(dir))

	content := `log_dir: "logs"`
	require.NoError(t, os.WriteFile("polybar.yaml", []byte(content), 0o600))

	cfg, loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "polybar.yaml", loaded)
	assert.Equal(t, "logs", cfg.LogDir)
}

func TestLoad_NoConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	require.NoError(t, os.Chdir(dir))

	cfg, loaded, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, _, err := Load("/nonexistent/polybar.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("alsa: [invalid"), 0o600))

	_, _, err := Load(cfgPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestMerge(t *testing.T) {
	cfg := Default()

	logDir := "/tmp/logs"
	verbose := true

	cfg.Merge(CLIOverrides{
		LogDir:  &logDir,
		Verbose: &verbose,
	})

	assert.Equal(t, "/tmp/logs", cfg.LogDir)
	assert.True(t, cfg.Verbose)
}

func TestMerge_EmptyOverrides(t *testing.T) {
	cfg := Default()
	cfg.LogDir = "from-file"
	cfg.Merge(CLIOverrides{})
	assert.Equal(t, "from-file", cfg.LogDir)
	assert.False(t, cfg.Verbose)
}

func TestValidate_Valid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "empty soundcard",
			mutate: func(c *Config) { c.ALSA.Soundcard = "" },
			want:   "alsa.soundcard:",
		},
		{
			name:   "empty bspwm socket",
			mutate: func(c *Config) { c.BSPWM.SocketPath = "" },
			want:   "bspwm.socket_path:",
		},
		{
			name:   "bad test ip",
			mutate: func(c *Config) { c.Network.ConnectionTestIP = "google.com" },
			want:   "network.connection_test_ip: invalid IP",
		},
		{
			name:   "relative path",
			mutate: func(c *Config) { c.Paths.CPUInfo = "proc/stat" },
			want:   "paths.cpu_info: must be an absolute path",
		},
		{
			name:   "template without token",
			mutate: func(c *Config) { c.Paths.TemperatureInfo = "/sys/class/thermal/thermal_zone0/temp" },
			want:   "paths.temperature_info: must contain %zone%",
		},
		{
			name:   "zero priority",
			mutate: func(c *Config) { c.SinkPriorities.Tray = 0 },
			want:   "sink_priorities.tray: must be positive",
		},
		{
			name:   "duplicate priority",
			mutate: func(c *Config) { c.SinkPriorities.Module = 1 },
			want:   "sink_priorities.module: duplicates sink_priorities.bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Network.ConnectionTestIP = "bad"
	cfg.Paths.MessagingFIFO = "/tmp/polybar_mqueue"
	cfg.SinkPriorities.Bar = -1
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "network.connection_test_ip:")
	assert.Contains(t, err.Error(), "paths.messaging_fifo:")
	assert.Contains(t, err.Error(), "sink_priorities.bar:")
}

func TestExpand(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "/sys/class/power_supply/BAT0", Expand(cfg.Paths.Battery, TokenBattery, "BAT0"))
	assert.Equal(t, "/tmp/polybar_mqueue.4242", Expand(cfg.Paths.MessagingFIFO, TokenPID, "4242"))
	assert.Equal(t, "/sys/class/thermal/thermal_zone3/temp", Expand(cfg.Paths.TemperatureInfo, TokenZone, "3"))
	// Other tokens are left alone.
	assert.Equal(t, cfg.Paths.Backlight, Expand(cfg.Paths.Backlight, TokenAdapter, "AC"))
}

func TestDump(t *testing.T) {
	cfg := Default()
	cfg.ALSA.Soundcard = "hw:0"

	out, err := cfg.Dump()
	require.NoError(t, err)
	assert.Contains(t, string(out), "soundcard: hw:0")

	var parsed Config
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, cfg, parsed)
}
