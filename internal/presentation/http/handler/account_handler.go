package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/techfix/workshop-api/internal/application/service"
	"github.com/techfix/workshop-api/internal/presentation/http/dto/response"
)

// AccountHandler handles shop profile HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Get returns the shop profile of the authenticated account
func (h *AccountHandler) Get(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account retrieved successfully", account)
}

// Update handles updating the shop profile
func (h *AccountHandler) Update(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Document *string `json:"document"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		Address  *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), *accountID, &service.UpdateAccountInput{
		Name:     req.Name,
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account updated successfully", account)
}
