/*
Polybar - build identity and feature report for the status bar.

Usage:

	polybar -v | --version     brief build report
	polybar -vv                extended build report
	polybar version [-vv]
	polybar config dump [flags]
	polybar config validate [flags]
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ushineko/polybar/internal/config"
	"github.com/ushineko/polybar/internal/features"
	"github.com/ushineko/polybar/internal/logging"
	"github.com/ushineko/polybar/internal/report"
	"github.com/ushineko/polybar/internal/version"
)

var (
	// CLI flags — these override config file values when explicitly set.
	flagVersion    int
	flagConfigPath string
	flagLogDir     string
	flagDebug      bool
)

// rawArgs are the process arguments without the program name. The
// extended report is selected from these, not from parsed flags.
var rawArgs = os.Args[1:]

// registry is built once at startup and only read afterwards.
var registry = features.Compiled()

var rootCmd = &cobra.Command{
	Use:           "polybar",
	Short:         "Polybar - a fast and easy-to-use status bar",
	SilenceUsage:  true,
	SilenceErrors: true,
	// Tolerate unknown flags next to a version request, e.g. "--foo -vv".
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runRoot,
}

var versionCmd = &cobra.Command{
	Use:                "version [-vv]",
	Short:              "Print build information",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printReport(cmd, args)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the resolved configuration as YAML",
	RunE:  runConfigDump,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and exit",
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "", "config file path (default: polybar.yml in current directory)")
	rootCmd.PersistentFlags().StringVar(&flagLogDir, "log-dir", "", "directory for log files (empty to disable file logging)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable DEBUG logging")

	rootCmd.Flags().CountVarP(&flagVersion, "version", "v", "print build information (-vv for details)")

	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	rootCmd.SetArgs(cobraArgs(rawArgs))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "polybar: %v\n", err)
		os.Exit(1)
	}
}

// cobraArgs replaces every "-vv" prefixed argument with "-v" when args
// resolve to the root command, so pflag accepts every form report.Extended
// does ("-vv=foo", "-vv-anything"). rawArgs keeps the originals.
func cobraArgs(args []string) []string {
	if !report.Extended(args) {
		return args
	}
	if cmd, _, err := rootCmd.Find(args); err != nil || cmd != rootCmd {
		return args
	}

	out := make([]string, len(args))
	for i, arg := range args {
		if strings.HasPrefix(arg, report.ExtendedPrefix) {
			arg = "-v"
		}
		out[i] = arg
	}
	return out
}

func runRoot(cmd *cobra.Command, args []string) error {
	if flagVersion > 0 {
		return printReport(cmd, rawArgs)
	}
	return cmd.Help()
}

// printReport writes the build report, extended if any of args starts
// with "-vv".
func printReport(cmd *cobra.Command, args []string) error {
	logger, cleanup := logging.Setup(logging.Config{
		LogDir:  flagLogDir,
		Verbose: flagDebug,
		Stderr:  cmd.ErrOrStderr(),
	})
	defer cleanup()

	extended := report.Extended(args)
	logger.Debug("printing build report",
		"extended", extended,
		"identity", registry.Identity.String(),
		"built", version.Date,
		"build_type", registry.Toolchain.BuildType,
	)

	if err := report.Print(cmd.OutOrStdout(), registry, extended); err != nil {
		return fmt.Errorf("print report: %w", err)
	}
	return nil
}

// loadConfig loads and merges configuration from file and CLI flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, cfgPath, err := config.Load(flagConfigPath)
	if err != nil {
		return cfg, err
	}

	if cfgPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "config: loaded %s\n", cfgPath)
	}

	// Build CLI overrides — only include flags that were explicitly set.
	overrides := config.CLIOverrides{}

	if cmd.Flags().Changed("log-dir") {
		overrides.LogDir = &flagLogDir
	}
	if cmd.Flags().Changed("debug") {
		overrides.Verbose = &flagDebug
	}

	cfg.Merge(overrides)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func runConfigDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out, err := cfg.Dump()
	if err != nil {
		return fmt.Errorf("dump config: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, cleanup := logging.Setup(logging.Config{
		LogDir:  cfg.LogDir,
		Verbose: cfg.Verbose,
		Stderr:  cmd.ErrOrStderr(),
	})
	defer cleanup()

	logger.Debug("config validated",
		"soundcard", cfg.ALSA.Soundcard,
		"bspwm_socket", cfg.BSPWM.SocketPath,
		"messaging_fifo", config.Expand(cfg.Paths.MessagingFIFO, config.TokenPID, fmt.Sprint(os.Getpid())),
	)

	fmt.Fprintln(cmd.OutOrStdout(), "config: valid")
	return nil
}
