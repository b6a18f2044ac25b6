package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/altruvo/fundledger/internal/apperrors"
	"github.com/altruvo/fundledger/internal/core/domain"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
	"github.com/altruvo/fundledger/internal/dto"
	"github.com/altruvo/fundledger/internal/middleware"
)

// statementHandler handles HTTP requests related to financial statements.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

// RegisterStatementRoutes registers routes related to financial statements.
func RegisterStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade) {
	h := &statementHandler{statementService: statementService}

	statements := rg.Group("/statements")
	{
		statements.GET("/trial-balance", h.trialBalance)
		statements.GET("/activity", h.statementOfActivity)
		statements.GET("/position", h.statementOfPosition)
		statements.GET("/history", h.listSnapshots)
		statements.GET("/templates", h.listTemplates)
	}
}

// trialBalance godoc
// @Summary Trial balance
// @Description Lists each account's net balance on its normal side as of a date; pass save=true to persist a snapshot
// @Tags statements
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   asOf query string false "As-of date (RFC 3339 or YYYY-MM-DD), defaults to now"
// @Param   save query bool false "Persist an audit snapshot"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to compute trial balance"
// @Router /organizations/{organization_id}/statements/trial-balance [get]
func (h *statementHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	asOf, ok := h.asOfParam(c)
	if !ok {
		return
	}

	tb, err := h.statementService.TrialBalance(c.Request.Context(), organizationID, asOf)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		return
	}

	if c.Query("save") == "true" {
		h.saveSnapshot(c, organizationID, domain.GeneratedTrialBalance, asOf, asOf, tb)
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// statementOfActivity godoc
// @Summary Statement of activity
// @Description Revenue and support versus expenses over a date range; pass save=true to persist a snapshot
// @Tags statements
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   fromDate query string true "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param   toDate query string true "Range end (RFC 3339 or YYYY-MM-DD)"
// @Param   save query bool false "Persist an audit snapshot"
// @Success 200 {object} dto.ActivityStatementResponse
// @Failure 400 {object} map[string]string "Invalid or missing range"
// @Failure 500 {object} map[string]string "Failed to compute statement"
// @Router /organizations/{organization_id}/statements/activity [get]
func (h *statementHandler) statementOfActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	from, err := parseDateParam(c.Query("fromDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'fromDate': " + err.Error()})
		return
	}
	to, err := parseDateParam(c.Query("toDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'toDate': " + err.Error()})
		return
	}

	stmt, err := h.statementService.StatementOfActivity(c.Request.Context(), organizationID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute statement of activity", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statement of activity"})
		}
		return
	}

	if c.Query("save") == "true" {
		h.saveSnapshot(c, organizationID, domain.GeneratedActivity, from, to, stmt)
	}

	c.JSON(http.StatusOK, dto.ToActivityStatementResponse(stmt))
}

// statementOfPosition godoc
// @Summary Statement of position
// @Description Assets, liabilities and net assets as of a date; pass save=true to persist a snapshot
// @Tags statements
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   asOf query string false "As-of date (RFC 3339 or YYYY-MM-DD), defaults to now"
// @Param   save query bool false "Persist an audit snapshot"
// @Success 200 {object} dto.PositionStatementResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to compute statement"
// @Router /organizations/{organization_id}/statements/position [get]
func (h *statementHandler) statementOfPosition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	asOf, ok := h.asOfParam(c)
	if !ok {
		return
	}

	stmt, err := h.statementService.StatementOfPosition(c.Request.Context(), organizationID, asOf)
	if err != nil {
		logger.Error("Failed to compute statement of position", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statement of position"})
		return
	}

	if c.Query("save") == "true" {
		h.saveSnapshot(c, organizationID, domain.GeneratedPosition, asOf, asOf, stmt)
	}

	c.JSON(http.StatusOK, dto.ToPositionStatementResponse(stmt))
}

// listSnapshots godoc
// @Summary List statement snapshots
// @Description Lists persisted statement snapshots, newest first
// @Tags statements
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {array} dto.GeneratedStatementResponse
// @Failure 500 {object} map[string]string "Failed to list snapshots"
// @Router /organizations/{organization_id}/statements/history [get]
func (h *statementHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	stmts, err := h.statementService.ListGeneratedStatements(c.Request.Context(), organizationID)
	if err != nil {
		logger.Error("Failed to list statement snapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list statement snapshots"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGeneratedStatementResponses(stmts))
}

// listTemplates godoc
// @Summary List statement templates
// @Description Lists the organization's statement layouts plus the global defaults
// @Tags statements
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {array} domain.StatementTemplate
// @Failure 500 {object} map[string]string "Failed to list templates"
// @Router /organizations/{organization_id}/statements/templates [get]
func (h *statementHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	templates, err := h.statementService.ListTemplates(c.Request.Context(), organizationID)
	if err != nil {
		logger.Error("Failed to list statement templates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list statement templates"})
		return
	}

	c.JSON(http.StatusOK, templates)
}

// asOfParam resolves the optional asOf query parameter, writing the error
// response itself when parsing fails.
func (h *statementHandler) asOfParam(c *gin.Context) (time.Time, bool) {
	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'asOf' date: " + err.Error()})
			return time.Time{}, false
		}
		asOf = parsed
	}
	return asOf, true
}

// saveSnapshot persists an audit snapshot of a computed statement. Snapshot
// failure does not fail the read; the statement itself was still computed.
func (h *statementHandler) saveSnapshot(c *gin.Context, organizationID string, stmtType domain.GeneratedStatementType, periodStart, periodEnd time.Time, body any) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		actorID = "system"
	}

	if _, err := h.statementService.SaveGeneratedStatement(c.Request.Context(), organizationID, stmtType, periodStart, periodEnd, body, actorID); err != nil {
		logger.Warn("Failed to save statement snapshot",
			slog.String("statement_type", string(stmtType)),
			slog.String("error", err.Error()))
	}
}
