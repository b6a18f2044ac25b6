package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/altruvo/fundledger/internal/apperrors"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
	"github.com/altruvo/fundledger/internal/dto"
	"github.com/altruvo/fundledger/internal/middleware"
)

// periodHandler handles HTTP requests related to accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

// RegisterPeriodRoutes registers routes related to accounting periods.
func RegisterPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodService: periodService}

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/current", h.getCurrentPeriod)
		periods.GET("/:period_id", h.getPeriod)
		periods.POST("/:period_id/close", h.closePeriod)
	}
}

// createPeriod godoc
// @Summary Create an accounting period
// @Description Creates a new open period; windows never overlap within an organization
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or overlapping window"
// @Failure 500 {object} map[string]string "Failed to create period"
// @Router /organizations/{organization_id}/periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Actor not identified"})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), organizationID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create period"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List accounting periods
// @Description Lists the organization's periods ordered by start date
// @Tags periods
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {array} dto.PeriodResponse
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Router /organizations/{organization_id}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	periods, err := h.periodService.ListPeriods(c.Request.Context(), organizationID)
	if err != nil {
		logger.Error("Failed to list periods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// getCurrentPeriod godoc
// @Summary Get the current open period
// @Description Returns the open period containing today (or the given date)
// @Tags periods
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   at query string false "Date to resolve (RFC 3339 or YYYY-MM-DD), defaults to now"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "No open period covers the date"
// @Failure 409 {object} map[string]string "Covering period is closed"
// @Failure 500 {object} map[string]string "Failed to resolve period"
// @Router /organizations/{organization_id}/periods/current [get]
func (h *periodHandler) getCurrentPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	at := time.Now().UTC()
	if raw := c.Query("at"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' date: " + err.Error()})
			return
		}
		at = parsed
	}

	period, err := h.periodService.GetCurrentPeriod(c.Request.Context(), organizationID, at)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoOpenPeriod) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrImmutablePeriod) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to resolve current period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve current period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// getPeriod godoc
// @Summary Get a period by ID
// @Description Retrieves one accounting period of the organization
// @Tags periods
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve period"
// @Router /organizations/{organization_id}/periods/{period_id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), organizationID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to get period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Transitions an open period to closed; the transition is terminal
// @Tags periods
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period_id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period already closed"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Router /organizations/{organization_id}/periods/{period_id}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	periodID := c.Param("period_id")

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Actor not identified"})
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), organizationID, periodID, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else if errors.Is(err, apperrors.ErrImmutablePeriod) {
			c.JSON(http.StatusConflict, gin.H{"error": "Period is already closed"})
		} else {
			logger.Error("Failed to close period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// parseDateParam accepts either RFC 3339 timestamps or plain dates.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
