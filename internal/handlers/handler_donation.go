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

// donationHandler handles HTTP requests related to donation facts and
// auto-posting runs.
type donationHandler struct {
	donationService portssvc.DonationSvcFacade
}

// RegisterDonationRoutes registers routes related to donations.
func RegisterDonationRoutes(rg *gin.RouterGroup, donationService portssvc.DonationSvcFacade) {
	h := &donationHandler{donationService: donationService}

	donations := rg.Group("/donations")
	{
		donations.POST("", h.ingestDonation)
		donations.POST("/autopost", h.autoPost)
	}
}

// ingestDonation godoc
// @Summary Ingest a donation fact
// @Description Records a settled donation; replaying the same donation ID is a no-op
// @Tags donations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   donation body dto.IngestDonationRequest true "Donation fact"
// @Success 202 {object} map[string]string "Donation recorded"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to record donation"
// @Router /organizations/{organization_id}/donations [post]
func (h *donationHandler) ingestDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.IngestDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	donation := domain.Donation{
		DonationID:     req.DonationID,
		OrganizationID: organizationID,
		Amount:         req.Amount,
		FeeAmount:      req.FeeAmount,
		OccurredAt:     req.OccurredAt,
		ReceivedAt:     time.Now().UTC(),
	}

	if err := h.donationService.IngestDonation(c.Request.Context(), donation); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to ingest donation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record donation"})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"donationID": req.DonationID})
}

// autoPost godoc
// @Summary Auto-post settled donations
// @Description Posts each unposted donation in scope as its own journal entry; individual failures are reported in the summary
// @Tags donations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   request body dto.AutoPostRequest true "Run scope"
// @Success 200 {object} dto.AutoPostSummary
// @Failure 400 {object} map[string]string "Invalid scope"
// @Failure 404 {object} map[string]string "No target period"
// @Failure 409 {object} map[string]string "Target period is closed"
// @Failure 422 {object} map[string]string "Default posting accounts missing"
// @Failure 500 {object} map[string]string "Run failed"
// @Router /organizations/{organization_id}/donations/autopost [post]
func (h *donationHandler) autoPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	var req dto.AutoPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Actor not identified"})
		return
	}

	summary, err := h.donationService.AutoPostDonations(c.Request.Context(), organizationID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrNoOpenPeriod) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrImmutablePeriod) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConfiguration) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Donation auto-posting run failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Auto-posting run failed"})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}
