package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskmaster/assets"
	"github.com/fastygo/taskmaster/internal/services/lifecycle"
	statusUC "github.com/fastygo/taskmaster/usecase/taskstatus"
)

func seedStatusesCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed-statuses",
		Short: "Create the default task statuses",
		Long: `Create task statuses that do not exist yet. Without --file the built-in
To Do, In Progress and Done statuses are used.

Examples:
  taskmaster seed-statuses
  taskmaster seed-statuses --file ./statuses.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			manager := lifecycle.New(a.cfg.Context.ShutdownTimeout, a.logger)
			defer func() { _ = manager.Shutdown(context.Background()) }()

			docs, err := openStores(ctx, a.cfg, manager, a.logger)
			if err != nil {
				return err
			}
			return seedDefaultStatuses(ctx, statusUC.New(docs.statuses, a.logger), file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a statuses list")
	return cmd
}

func seedDefaultStatuses(ctx context.Context, uc *statusUC.UseCase, file string) error {
	data := assets.DefaultStatuses
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
		data = raw
	}

	statuses, err := statusUC.ParseSeed(data)
	if err != nil {
		return err
	}
	_, err = uc.Seed(ctx, statuses)
	return err
}
