// internal/handlers/collaboration.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

type CollaborationHandler struct {
	collaborationService *services.CollaborationService
}

// CollaborationRequest carries the optional deadline as a YYYY-MM-DD string.
type CollaborationRequest struct {
	services.CollaborationInput
	Deadline string `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (r *CollaborationRequest) toInput() (*services.CollaborationInput, error) {
	deadline, err := parseOptionalDate("deadline", r.Deadline)
	if err != nil {
		return nil, err
	}
	input := r.CollaborationInput
	input.Deadline = deadline
	return &input, nil
}

func NewCollaborationHandler(collaborationService *services.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{
		collaborationService: collaborationService,
	}
}

// GET /collaborations?status=&overdue=true
func (h *CollaborationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	role, _ := utils.GetRoleFromContext(c)

	filter := services.CollaborationFilter{
		Status:  domain.CollaborationStatus(c.Query("status")),
		Overdue: c.Query("overdue") == "true",
	}

	collaborations, err := h.collaborationService.List(c.Request.Context(), userID, role, filter)
	if err != nil {
		utils.HandleServiceError(c, err, "collaboration")
		return
	}

	utils.SuccessResponse(c, collaborations)
}

// GET /collaborations/:id
func (h *CollaborationHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	collaborationID, ok := pathID(c, "id", "collaboration")
	if !ok {
		return
	}

	collaboration, err := h.collaborationService.Get(c.Request.Context(), userID, collaborationID)
	if err != nil {
		utils.HandleServiceError(c, err, "collaboration")
		return
	}

	utils.SuccessResponse(c, collaboration)
}

// POST /collaborations
func (h *CollaborationHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CollaborationRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		utils.HandleServiceError(c, err, "collaboration")
		return
	}

	collaboration, err := h.collaborationService.Create(c.Request.Context(), userID, input)
	if err != nil {
		utils.HandleServiceError(c, err, "collaboration")
		return
	}

	utils.MessageResponse(c, http.StatusCreated, collaboration, i18n.KeyCollaborationCreated)
}

// PUT /collaborations/:id
func (h *CollaborationHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	collaborationID, ok := pathID(c, "id", "collaboration")
	if !ok {
		return
	}

	var req CollaborationRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		utils.HandleServiceError(c, err, "collaboration")
		return
	}

	collaboration, err := h.collaborationService.Update(c.Request.Context(), userID, collaborationID, input)
	if err != nil {
		utils.HandleServiceError(c, err, "collaboration")
		return
	}

	utils.MessageResponse(c, http.StatusOK, collaboration, i18n.KeyCollaborationUpdated)
}

// DELETE /collaborations/:id
func (h *CollaborationHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	collaborationID, ok := pathID(c, "id", "collaboration")
	if !ok {
		return
	}

	if err := h.collaborationService.Delete(c.Request.Context(), userID, collaborationID); err != nil {
		utils.HandleServiceError(c, err, "collaboration")
		return
	}

	utils.MessageResponse(c, http.StatusOK, nil, i18n.KeyCollaborationDeleted)
}
