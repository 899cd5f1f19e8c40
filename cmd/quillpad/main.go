// Package main is the quillpad command line tool. It converts between plain
// text and the RTF subset quillpad stores, and inspects crash-recovery data.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/quillpad/internal/config"
	"github.com/dshills/quillpad/internal/logger"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	// Flags
	configPath string
	debug      bool
)

var (
	errorFormat = color.New(color.FgHiRed, color.Bold).SprintFunc()
	mutedFormat = color.New(color.FgHiBlack).SprintFunc()
	titleFormat = color.New(color.FgHiWhite).SprintFunc()
	goodFormat  = color.New(color.FgGreen).SprintFunc()
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorFormat("error:"), err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quillpad",
		Short: "quillpad note tools",
		Long: `quillpad converts notes between plain text and its rich text format
and inspects documents saved by crash recovery.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newDecodeCmd(),
		newStripCmd(),
		newEncodeCmd(),
		newRecoverCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quillpad %s (%s)\n", version, commit)
		},
	}
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.LoadAll(path)
}

func newLogger(cfg *config.Config) *logger.Logger {
	lc := logger.Config{
		Level:      cfg.Log.Level,
		Path:       cfg.Log.Path,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	if debug {
		lc.Level = "debug"
		lc.Stderr = lc.Path != ""
	}
	return logger.New(lc)
}
