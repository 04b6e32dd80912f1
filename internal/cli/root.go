// Package cli wires the weave command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wesen/weave/internal/config"
	"github.com/wesen/weave/internal/project"
)

var version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:     "weave",
	Short:   "weave — terminal canvas for AI agent workflows",
	Long:    "weave is a terminal editor for assembling AI agent workflow graphs\nand running them against an execution backend.",
	Version: version,
}

func init() {
	rootCmd.SetVersionTemplate("weave {{ .Version }}\n")

	rootCmd.AddCommand(
		editCmd(),
		projectsCmd(),
		exportCmd(),
		runCmd(),
		versionCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the weave version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("weave %s\n", version)
		},
	}
}

// openStore opens the project store in the configured data dir.
func openStore(cfg *config.Config, logger *zap.Logger) (*project.Store, error) {
	store, err := project.Open(cfg.Data.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("open project store: %w", err)
	}
	return store, nil
}

// newLogger builds the diagnostic logger. The TUI owns the terminal, so
// logs only go anywhere when a log file is configured.
func newLogger(cfg *config.Config) *zap.Logger {
	if cfg.Log.File == "" {
		return zap.NewNop()
	}
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.Log.File}
	zcfg.ErrorOutputPaths = []string{cfg.Log.File}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
