// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

type AdminHandler struct {
	auditService *services.AuditService
}

func NewAdminHandler(auditService *services.AuditService) *AdminHandler {
	return &AdminHandler{
		auditService: auditService,
	}
}

// GET /admin/audit-logs?user_id=&resource_type=
func (h *AdminHandler) AuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := services.AuditFilter{
		UserID:       queryUUID(c, "user_id"),
		ResourceType: c.Query("resource_type"),
	}

	logs, total, err := h.auditService.List(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(logs, total, params))
}
