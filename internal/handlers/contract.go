// internal/handlers/contract.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

type ContractHandler struct {
	contractService *services.ContractService
}

// ContractRequest carries the start date as a YYYY-MM-DD string.
type ContractRequest struct {
	services.ContractInput
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

func (r *ContractRequest) toInput() (*services.ContractInput, error) {
	startDate, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return nil, err
	}
	input := r.ContractInput
	input.StartDate = startDate
	return &input, nil
}

func NewContractHandler(contractService *services.ContractService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
	}
}

// GET /contracts?status=&sort=
func (h *ContractHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := services.ContractFilter{
		Status: domain.ContractStatus(c.Query("status")),
		Sort:   c.Query("sort"),
	}

	contracts, err := h.contractService.List(c.Request.Context(), userID, filter)
	if err != nil {
		utils.HandleServiceError(c, err, "contract")
		return
	}

	utils.SuccessResponse(c, contracts)
}

// GET /contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contractID, ok := pathID(c, "id", "contract")
	if !ok {
		return
	}

	contract, err := h.contractService.Get(c.Request.Context(), userID, contractID)
	if err != nil {
		utils.HandleServiceError(c, err, "contract")
		return
	}

	utils.SuccessResponse(c, contract)
}

// POST /contracts
func (h *ContractHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ContractRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		utils.HandleServiceError(c, err, "contract")
		return
	}

	contract, err := h.contractService.Create(c.Request.Context(), userID, input)
	if err != nil {
		utils.HandleServiceError(c, err, "contract")
		return
	}

	utils.MessageResponse(c, http.StatusCreated, contract, i18n.KeyContractCreated)
}

// PUT /contracts/:id
func (h *ContractHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contractID, ok := pathID(c, "id", "contract")
	if !ok {
		return
	}

	var req ContractRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		utils.HandleServiceError(c, err, "contract")
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), userID, contractID, input)
	if err != nil {
		utils.HandleServiceError(c, err, "contract")
		return
	}

	utils.MessageResponse(c, http.StatusOK, contract, i18n.KeyContractUpdated)
}

// DELETE /contracts/:id
func (h *ContractHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	contractID, ok := pathID(c, "id", "contract")
	if !ok {
		return
	}

	if err := h.contractService.Delete(c.Request.Context(), userID, contractID); err != nil {
		utils.HandleServiceError(c, err, "contract")
		return
	}

	utils.MessageResponse(c, http.StatusOK, nil, i18n.KeyContractDeleted)
}

// GET /artists/search?q=
func (h *ContractHandler) ArtistSearch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.contractService.ArtistSearch(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, result)
}
