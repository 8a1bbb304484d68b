package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kiranraj/surgesight/internal/domain/alerting"
	"github.com/kiranraj/surgesight/internal/domain/assessment"
	"github.com/kiranraj/surgesight/internal/domain/monitor"
	apperrors "github.com/kiranraj/surgesight/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	assessSvc   assessment.Service
	alertEngine *alerting.Engine
	mon         *monitor.Monitor
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(assessSvc assessment.Service, alertEngine *alerting.Engine, mon *monitor.Monitor, logger *slog.Logger) *Handler {
	return &Handler{
		assessSvc:   assessSvc,
		alertEngine: alertEngine,
		mon:         mon,
		logger:      logger.With("component", "http.handler"),
	}
}

// LatestAssessment serves the last known good refresh cycle.
func (h *Handler) LatestAssessment(c *gin.Context) {
	record, stale, err := h.mon.Latest(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "store_error", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cycleId":     record.ID,
		"generatedAt": record.GeneratedAt,
		"stale":       stale,
		"assessment":  record.Assessment,
		"alerts":      record.Alerts,
		"state":       record.State,
	})
}

// Alerts serves the current alert list plus the surface state.
func (h *Handler) Alerts(c *gin.Context) {
	record, stale, err := h.mon.Latest(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "store_error", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"generatedAt": record.GeneratedAt,
		"stale":       stale,
		"state":       record.State,
		"alerts":      record.Alerts,
	})
}

// Evaluate runs the engine over a caller supplied snapshot without storing
// the result. It exposes the pure decision artifact for tooling and what-if
// analysis.
func (h *Handler) Evaluate(c *gin.Context) {
	var req assessment.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.assessSvc.Assess(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
		}
		abortWithError(c, NewHTTPError(status, "assessment_failed", errMessage(err), err))
		return
	}

	alerts := h.alertEngine.Derive(result.Level, req.Snapshot)
	c.JSON(http.StatusOK, gin.H{
		"assessment": result,
		"alerts":     alerts,
		"state":      alerting.StateOf(alerts),
	})
}

// History lists recent refresh cycles, newest first.
func (h *Handler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}

	records, err := h.mon.History(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "store_error", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycles": records})
}

// Refresh triggers one refresh cycle outside the ticker cadence. It backs
// the dashboard's manual retry action; a collaborator failure is reported
// but the last known good cycle stays in place.
func (h *Handler) Refresh(c *gin.Context) {
	record, err := h.mon.RefreshNow(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadGateway, "refresh_failed", "unable to refresh, showing last known data", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cycleId":     record.ID,
		"generatedAt": record.GeneratedAt,
		"assessment":  record.Assessment,
		"alerts":      record.Alerts,
		"state":       record.State,
	})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
