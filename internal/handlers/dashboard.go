// internal/handlers/dashboard.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

type DashboardHandler struct {
	dashboardService    *services.DashboardService
	notificationService *services.NotificationService
}

func NewDashboardHandler(dashboardService *services.DashboardService, notificationService *services.NotificationService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:    dashboardService,
		notificationService: notificationService,
	}
}

// GET /dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.ForUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, dashboard)
}

// GET /stats/landing
func (h *DashboardHandler) LandingStats(c *gin.Context) {
	stats, err := h.dashboardService.LandingStats(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /notifications?unread=true
func (h *DashboardHandler) Notifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.List(c.Request.Context(), userID, c.Query("unread") == "true")
	if err != nil {
		utils.HandleServiceError(c, err, "notification")
		return
	}

	utils.SuccessResponse(c, notifications)
}

// POST /notifications/:id/read
func (h *DashboardHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	notificationID, ok := pathID(c, "id", "notification")
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), userID, notificationID)
	if err != nil {
		utils.HandleServiceError(c, err, "notification")
		return
	}

	utils.MessageResponse(c, http.StatusOK, notification, i18n.KeyNotificationRead)
}
