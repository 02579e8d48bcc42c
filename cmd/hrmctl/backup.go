package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	backupDir        string
	restoreFile      string
	restoreOverwrite bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export all employees to a JSON backup file",
	RunE:  runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore employees from a JSON backup file",
	Long: `Restore employees from a backup file in a single transaction.

Records are matched by full name and date of birth. Existing employees are
skipped unless --overwrite is given. Missing departments are created.`,
	RunE: runRestore,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runMigrations(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

func runBackup(cmd *cobra.Command, args []string) error {
	ctx := actorContext(cmd)

	svc, cleanup, err := openBackupService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.Export(ctx, backupDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d employees to %s\n", res.EmployeeCount, res.FilePath)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := actorContext(cmd)

	svc, cleanup, err := openBackupService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.Restore(ctx, restoreFile, restoreOverwrite)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "restore complete: created %d, updated %d, skipped %d\n",
		res.Created, res.Updated, res.Skipped)
	return nil
}
