package backuperrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrNothingToExport = apperror.New(
		apperror.CodeInvalidState,
		"There are no employees to back up",
		http.StatusUnprocessableEntity,
	)
	ErrBackupPathRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Backup file path is required",
		http.StatusBadRequest,
	)
	ErrBackupPathOutsideDir = apperror.New(
		apperror.CodeInvalidInput,
		"Backup file must be inside the backup directory",
		http.StatusBadRequest,
	)
	ErrBackupFileNotFound = apperror.New(
		apperror.CodeIOError,
		"Backup file not found",
		http.StatusNotFound,
	)
	ErrBackupIO = apperror.New(
		apperror.CodeIOError,
		"Backup file could not be read or written",
		http.StatusInternalServerError,
	)
	ErrCorruptBackup = apperror.New(
		apperror.CodeCorruptData,
		"Backup file is invalid or corrupted",
		http.StatusUnprocessableEntity,
	)
	ErrUnsupportedSchemaVersion = apperror.New(
		apperror.CodeCorruptData,
		"Backup schema version is not supported",
		http.StatusUnprocessableEntity,
	)
)
