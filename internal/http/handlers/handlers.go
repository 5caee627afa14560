package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/db"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/extractor"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/ingest"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Store     Pinger
	Clients   *service.ClientService
	Templates *service.TemplateService
	Importer  *service.ImportService
	Parser    *extractor.Parser
	Files     *ingest.Registry
	Validator *validator.Validate
	Logger    zerolog.Logger

	MaxPasteBytes  int
	MaxUploadBytes int64
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bind decodes the JSON body into req and runs the struct validator.
func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return false
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationDetails(err))
		return false
	}
	return true
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// readUpload returns the bytes of the multipart field, refusing files larger
// than the configured limit.
func (h *Handler) readUpload(c *gin.Context, field string) (*multipart.FileHeader, []byte, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", field+" file required", nil)
		return nil, nil, false
	}
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		writeError(c, http.StatusRequestEntityTooLarge, "INVALID_REQUEST", "File too large",
			fmt.Sprintf("limit is %d bytes", h.MaxUploadBytes))
		return nil, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "UNREADABLE_FILE", "Cannot open upload", err.Error())
		return nil, nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(c, http.StatusBadRequest, "UNREADABLE_FILE", "Cannot read upload", err.Error())
		return nil, nil, false
	}
	return fh, data, true
}

// fail maps domain errors onto the API error envelope.
func (h *Handler) fail(c *gin.Context, err error, message string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verr.Fields)
	case errors.Is(err, service.ErrValidation):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
	case errors.Is(err, db.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Not found", err.Error())
	case errors.Is(err, db.ErrConflict):
		writeError(c, http.StatusConflict, "CONFLICT", "Already exists", err.Error())
	case errors.Is(err, ingest.ErrUnsupported):
		writeError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", "Unsupported file format", err.Error())
	case errors.Is(err, ingest.ErrUnreadable), errors.Is(err, ingest.ErrEmpty):
		writeError(c, http.StatusUnprocessableEntity, "UNREADABLE_FILE", "Could not read text from file", err.Error())
	default:
		h.Logger.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		writeError(c, http.StatusInternalServerError, "DB_ERROR", message, err.Error())
	}
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
