package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"go-hrm/internal/backup"
	backuperrors "go-hrm/internal/backup/errors"
	"go-hrm/internal/shared/contextutil"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackupService struct {
	exportDir     string
	restorePath   string
	overwrite     bool
	actor         contextutil.Actor
	restoreResult backup.RestoreResult
	err           error
}

func (f *fakeBackupService) Export(ctx context.Context, dir string) (backup.ExportResult, error) {
	f.actor = contextutil.GetActor(ctx)
	f.exportDir = dir
	if f.err != nil {
		return backup.ExportResult{}, f.err
	}
	return backup.ExportResult{FilePath: "/tmp/employees_backup_20240315_103000.json", EmployeeCount: 3}, nil
}

func (f *fakeBackupService) Restore(ctx context.Context, path string, overwrite bool) (backup.RestoreResult, error) {
	f.actor = contextutil.GetActor(ctx)
	f.restorePath = path
	f.overwrite = overwrite
	return f.restoreResult, f.err
}

func (f *fakeBackupService) RestoreStored(context.Context, string, bool) (backup.RestoreResult, error) {
	return backup.RestoreResult{}, errors.New("not used")
}

func (f *fakeBackupService) RestoreFrom(context.Context, io.Reader, string, bool) (backup.RestoreResult, error) {
	return backup.RestoreResult{}, errors.New("not used")
}

func runCLI(t *testing.T, svc *fakeBackupService, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HRM_AUTH_JWT_SECRET", "0123456789abcdef")

	logger = zap.NewNop()
	for _, c := range []*cobra.Command{backupCmd, restoreCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	prev := openBackupService
	openBackupService = func(context.Context) (backup.Service, func(), error) {
		return svc, func() {}, nil
	}
	t.Cleanup(func() { openBackupService = prev })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBackupCommand(t *testing.T) {
	svc := &fakeBackupService{}

	out, err := runCLI(t, svc, "backup", "--dir", "/srv/backups")

	require.NoError(t, err)
	assert.Equal(t, "/srv/backups", svc.exportDir)
	assert.Equal(t, contextutil.SystemActorName, svc.actor.DisplayName())
	assert.Contains(t, out, "exported 3 employees")
}

func TestBackupCommand_NothingToExport(t *testing.T) {
	svc := &fakeBackupService{err: backuperrors.ErrNothingToExport}

	_, err := runCLI(t, svc, "backup")

	assert.ErrorIs(t, err, backuperrors.ErrNothingToExport)
	assert.Empty(t, svc.exportDir)
}

func TestRestoreCommand(t *testing.T) {
	svc := &fakeBackupService{restoreResult: backup.RestoreResult{Created: 2, Updated: 1, Skipped: 4}}

	out, err := runCLI(t, svc, "restore", "--file", "backup.json", "--overwrite")

	require.NoError(t, err)
	assert.Equal(t, "backup.json", svc.restorePath)
	assert.True(t, svc.overwrite)
	assert.Equal(t, "restore complete: created 2, updated 1, skipped 4\n", out)
}

func TestRestoreCommand_RequiresFile(t *testing.T) {
	svc := &fakeBackupService{}

	_, err := runCLI(t, svc, "restore")

	assert.Error(t, err)
	assert.Empty(t, svc.restorePath)
}
