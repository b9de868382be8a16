package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cemuzun/pagelens/internal/domain/insight"
	apperrors "github.com/cemuzun/pagelens/pkg/errors"
)

// Handler wires the HTTP transport to the insight domain.
type Handler struct {
	insightSvc insight.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(insightSvc insight.Service, logger *slog.Logger) *Handler {
	return &Handler{
		insightSvc: insightSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Health reports that the service is up.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "PageLens API is running")
}

// GetPageSpeedData runs a PageSpeed audit and returns the raw report.
func (h *Handler) GetPageSpeedData(c *gin.Context) {
	var req insight.AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	raw, err := h.insightSvc.Audit(c.Request.Context(), req)
	if err != nil {
		status, code := statusForError(err)
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	// Payload passthrough: the report is returned exactly as fetched.
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// GetAnalysis turns a fetched PageSpeed payload into a prose report.
func (h *Handler) GetAnalysis(c *gin.Context) {
	var req insight.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.insightSvc.Analyze(c.Request.Context(), req)
	if err != nil {
		status, code := statusForError(err)
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func statusForError(err error) (int, string) {
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		return http.StatusBadRequest, "invalid_request"
	case apperrors.IsCode(err, "pagespeed_error"):
		return http.StatusInternalServerError, "pagespeed_error"
	case apperrors.IsCode(err, "llm_error"):
		return http.StatusInternalServerError, "llm_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
