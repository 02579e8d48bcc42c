package backup

import (
	"net/http"
	"strings"

	backuperrors "go-hrm/internal/backup/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 32 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("backup.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("backup.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("backup request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Any("details", httpErr.Details),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Export writes a snapshot into the configured backup directory.
func (h *Handler) Export(c *gin.Context) {
	resp, err := h.service.Export(c.Request.Context(), "")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// Restore accepts either a JSON body naming a file in the backup directory
// or a multipart upload in the "file" field.
func (h *Handler) Restore(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.restoreUpload(c)
		return
	}

	var req RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RestoreStored(c.Request.Context(), req.FilePath, req.Overwrite)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) restoreUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	var req RestoreRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, backuperrors.ErrBackupPathRequired)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.writeServiceError(c, backuperrors.ErrBackupIO.WithErr(err))
		return
	}
	defer f.Close()

	resp, err := h.service.RestoreFrom(c.Request.Context(), f, fh.Filename, req.Overwrite)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
