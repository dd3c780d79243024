package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/internal/config"
	"github.com/fastygo/taskmaster/pkg/logger"
)

var Version = "dev"

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "taskmaster",
		Short:         "Task Master GraphQL API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(migrateCmd(a))
	rootCmd.AddCommand(seedStatusesCmd(a))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.cfg = cfg
	a.logger = zapLogger
	return nil
}
