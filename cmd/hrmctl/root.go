package main

import (
	"context"

	"go-hrm/internal/app"
	"go-hrm/internal/backup"
	"go-hrm/internal/config"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/database"
	applogger "go-hrm/internal/shared/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logger     *zap.Logger
	cfg        *config.Config
)

// cliActor is attributed in activity logs and as the backup's GeneratedBy.
var cliActor = contextutil.Actor{Name: contextutil.SystemActorName, Role: "ADMIN"}

var rootCmd = &cobra.Command{
	Use:           "hrmctl",
	Short:         "Operator tooling for go-hrm",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if logger == nil {
			l, err := applogger.New(cfg.Log)
			if err != nil {
				return err
			}
			logger = l
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default ./config/config.yaml)")

	backupCmd.Flags().StringVar(&backupDir, "dir", "", "target directory (default backup.dir from config)")
	restoreCmd.Flags().StringVar(&restoreFile, "file", "", "backup file to restore")
	restoreCmd.Flags().BoolVar(&restoreOverwrite, "overwrite", false, "overwrite employees that already exist")
	_ = restoreCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(backupCmd, restoreCmd, migrateCmd)
}

// openBackupService connects to the database and returns the backup engine
// plus a cleanup func. Tests replace it.
var openBackupService = func(ctx context.Context) (backup.Service, func(), error) {
	infra, err := app.Connect(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	modules, err := app.NewModules(cfg, infra, logger)
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	return modules.Backup, func() { _ = infra.Close() }, nil
}

var runMigrations = func(ctx context.Context) error {
	infra, err := app.Connect(cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	return database.RunMigrations(infra.DB, logger)
}

func actorContext(cmd *cobra.Command) context.Context {
	ctx := contextutil.WithActor(cmd.Context(), cliActor)
	return contextutil.WithLogger(ctx, logger)
}
