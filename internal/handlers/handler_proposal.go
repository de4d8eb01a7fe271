package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
	"github.com/autonomoapp/autonomo_backend/internal/middleware"
)

// proposalHandler handles HTTP requests related to proposals.
type proposalHandler struct {
	proposalService portssvc.ProposalSvcFacade
}

func newProposalHandler(ps portssvc.ProposalSvcFacade) *proposalHandler {
	return &proposalHandler{proposalService: ps}
}

// registerProposalRoutes registers routes related to proposals.
func registerProposalRoutes(rg *gin.RouterGroup, proposalService portssvc.ProposalSvcFacade) {
	h := newProposalHandler(proposalService)

	proposals := rg.Group("/proposals")
	{
		proposals.GET("", h.listProposals)
		proposals.POST("", h.createProposal)
		proposals.GET("/summary", h.proposalSummary)
		proposals.GET("/:id", h.getProposal)
		proposals.PUT("/:id", h.updateProposal)
		proposals.PATCH("/:id/status", h.updateProposalStatus)
		proposals.POST("/:id/duplicate", h.duplicateProposal)
		proposals.POST("/:id/send", h.sendProposal)
		proposals.DELETE("/:id", h.deleteProposal)
	}
}

// listProposals godoc
// @Summary List proposals
// @Tags proposals
// @Produce json
// @Param search query string false "Case-insensitive substring match on title and client name"
// @Param status query string false "Exact status match (draft, sent, accepted, rejected, expired)"
// @Success 200 {object} dto.ListProposalsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /proposals [get]
func (h *proposalHandler) listProposals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	proposals, err := h.proposalService.ListProposals(c.Request.Context(), userID, params.Search, params.Status)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list proposals")
		return
	}

	c.JSON(http.StatusOK, dto.ListProposalsResponse{Proposals: proposals})
}

// proposalSummary godoc
// @Summary Proposal metrics
// @Tags proposals
// @Produce json
// @Success 200 {object} domain.ProposalMetrics
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /proposals/summary [get]
func (h *proposalHandler) proposalSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	metrics, err := h.proposalService.ProposalMetrics(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute proposal metrics")
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// createProposal godoc
// @Summary Create a proposal
// @Tags proposals
// @Accept json
// @Produce json
// @Param proposal body dto.CreateProposalRequest true "Proposal details"
// @Success 201 {object} domain.Proposal
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /proposals [post]
func (h *proposalHandler) createProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProposal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create proposal")
		return
	}

	logger.Info("Proposal created", slog.String("proposal_id", proposal.ProposalID))
	c.JSON(http.StatusCreated, proposal)
}

// getProposal godoc
// @Summary Get a proposal by ID
// @Tags proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} domain.Proposal
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Security BearerAuth
// @Router /proposals/{id} [get]
func (h *proposalHandler) getProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	proposal, err := h.proposalService.GetProposalByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve proposal")
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// updateProposal godoc
// @Summary Update a proposal
// @Tags proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param proposal body dto.UpdateProposalRequest true "Fields to update"
// @Success 200 {object} domain.Proposal
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Security BearerAuth
// @Router /proposals/{id} [put]
func (h *proposalHandler) updateProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProposal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	proposal, err := h.proposalService.UpdateProposal(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update proposal")
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// updateProposalStatus godoc
// @Summary Change a proposal's status
// @Tags proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param status body dto.UpdateStatusRequest true "Target status"
// @Success 200 {object} domain.Proposal
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /proposals/{id}/status [patch]
func (h *proposalHandler) updateProposalStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProposalStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	proposal, err := h.proposalService.UpdateProposalStatus(c.Request.Context(), userID, c.Param("id"), domain.ProposalStatus(req.Status))
	if err != nil {
		respondWithError(c, logger, err, "Failed to update proposal status")
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// duplicateProposal godoc
// @Summary Duplicate a proposal
// @Tags proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 201 {object} domain.Proposal
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Security BearerAuth
// @Router /proposals/{id}/duplicate [post]
func (h *proposalHandler) duplicateProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	proposal, err := h.proposalService.DuplicateProposal(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to duplicate proposal")
		return
	}

	logger.Info("Proposal duplicated", slog.String("proposal_id", proposal.ProposalID))
	c.JSON(http.StatusCreated, proposal)
}

// sendProposal godoc
// @Summary Send a proposal to its client
// @Description Emails the proposal; on delivery success the proposal moves to sent
// @Tags proposals
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} domain.Proposal
// @Failure 400 {object} map[string]string "Proposal has no client"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Failure 409 {object} map[string]string "Proposal cannot be sent from its current status"
// @Security BearerAuth
// @Router /proposals/{id}/send [post]
func (h *proposalHandler) sendProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	proposal, err := h.proposalService.SendProposal(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to send proposal")
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// deleteProposal godoc
// @Summary Delete a proposal
// @Tags proposals
// @Param id path string true "Proposal ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Proposal not found"
// @Security BearerAuth
// @Router /proposals/{id} [delete]
func (h *proposalHandler) deleteProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.proposalService.DeleteProposal(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, logger, err, "Failed to delete proposal")
		return
	}

	c.Status(http.StatusNoContent)
}
