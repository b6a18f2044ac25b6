package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altruvo/fundledger/internal/apperrors"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
	"github.com/altruvo/fundledger/internal/dto"
	"github.com/altruvo/fundledger/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a balanced draft entry in the period covering its date
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input, unbalanced lines or inactive account"
// @Failure 404 {object} map[string]string "No period covers the entry date"
// @Failure 409 {object} map[string]string "Covering period is closed"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /organizations/{organization_id}/entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Actor not identified"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), organizationID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrNoOpenPeriod) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrImmutablePeriod) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first, filterable by period, status and source type
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   periodID query string false "Filter by period"
// @Param   status query string false "Filter by status (DRAFT, POSTED)"
// @Param   sourceType query string false "Filter by source type (MANUAL, DONATION, OTHER)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filter or cursor"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /organizations/{organization_id}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), organizationID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines in line-number order
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /organizations/{organization_id}/entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), organizationID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to get entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft entry
// @Description Transitions a draft to posted while its period is still open
// @Tags entries
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or its period closed"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /organizations/{organization_id}/entries/{entry_id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Actor not identified"})
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), organizationID, entryID, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrImmutablePeriod) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to post entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Creates and posts the mirror entry in the current open period
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Param   request body dto.ReverseEntryRequest true "Reversal reason"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry not found or no open period"
// @Failure 409 {object} map[string]string "Entry not posted, already reversed, or is a reversal"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Router /organizations/{organization_id}/entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Actor not identified"})
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), organizationID, entryID, actorID, req.Reason)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrNoOpenPeriod) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) ||
			errors.Is(err, apperrors.ErrAlreadyReversed) ||
			errors.Is(err, apperrors.ErrImmutablePeriod) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to reverse entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}
