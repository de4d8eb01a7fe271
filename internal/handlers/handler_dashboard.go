package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/middleware"
)

// dashboardHandler serves the aggregated dashboard summary.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers the dashboard route.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Aggregates metrics over every entity the caller owns; served from cache when fresh
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.DashboardSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute dashboard summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
