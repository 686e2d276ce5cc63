// Package cli implements the txlens command-line interface: loading the
// three Elliptic-style tables, printing graph statistics, and exporting
// snapshots for the rendering collaborator.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes.
const (
	exitSuccess  = 0
	exitUserErr  = 1
	exitSysError = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	jsonMode  bool
	verbose   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "txlens" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "txlens",
		Short: "Assemble and inspect labeled transaction graphs",
		Long: "Txlens ingests the Elliptic-style feature, class, and edgelist tables,\n" +
			"assembles them into a consistent transaction graph, and reports or\n" +
			"exports the result for compliance review.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .txlens)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log pipeline progress and row anomalies")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newLoadCmd())
	root.AddCommand(newExportCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserErr)
	}
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if flags.configDir != "" {
		return flags.configDir
	}
	if v := os.Getenv("TXLENS_CONFIG_DIR"); v != "" {
		return v
	}
	return ".txlens"
}

// newLogger builds the pipeline logger: a development-config zap logger
// in verbose mode, otherwise nil (logging disabled).
func newLogger() (*zap.Logger, error) {
	if !flags.verbose {
		return nil, nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
