package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/techfix/workshop-api/internal/application/service"
	"github.com/techfix/workshop-api/internal/domain/enum"
	"github.com/techfix/workshop-api/internal/domain/repository"
	"github.com/techfix/workshop-api/internal/presentation/http/dto/request"
	"github.com/techfix/workshop-api/internal/presentation/http/dto/response"
	"github.com/techfix/workshop-api/pkg/pagination"
)

// FinanceHandler handles financial entry HTTP requests
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// List handles listing financial entries with filters
func (h *FinanceHandler) List(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.EntryFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		entryType, ok := enum.ParseEntryType(typeStr)
		if !ok {
			response.BadRequest(c, "Invalid type filter")
			return
		}
		params.Type = &entryType
	}

	if statusStr := c.Query("payment_status"); statusStr != "" {
		status, ok := enum.ParsePaymentStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid payment status filter")
			return
		}
		params.PaymentStatus = &status
	}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start date")
			return
		}
		params.StartDate = &start
	}

	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end date")
			return
		}
		// End date is inclusive, the repository bound is not.
		upper := end.AddDate(0, 0, 1)
		params.EndDate = &upper
	}

	result, err := h.financeService.ListEntries(c.Request.Context(), *accountID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Financial entries retrieved successfully", result)
}

// Create handles creating a financial entry
func (h *FinanceHandler) Create(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.financeService.CreateEntry(c.Request.Context(), *accountID, &service.CreateEntryInput{
		Type:           req.Type,
		Description:    req.Description,
		Amount:         req.Amount,
		DueDate:        req.DueDate,
		PaymentStatus:  req.PaymentStatus,
		ServiceOrderID: req.ServiceOrderID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Financial entry created successfully", entry)
}

// Get handles getting a single financial entry
func (h *FinanceHandler) Get(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.financeService.GetEntry(c.Request.Context(), *accountID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financial entry retrieved successfully", entry)
}

// Update handles a partial financial entry update
func (h *FinanceHandler) Update(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	var req request.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.financeService.UpdateEntry(c.Request.Context(), *accountID, id, &service.UpdateEntryInput{
		Type:          req.Type,
		Description:   req.Description,
		Amount:        req.Amount,
		DueDate:       req.DueDate,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financial entry updated successfully", entry)
}

// Pay marks a financial entry as paid
func (h *FinanceHandler) Pay(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.financeService.MarkPaid(c.Request.Context(), *accountID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financial entry marked as paid", entry)
}

// Delete handles deleting a financial entry
func (h *FinanceHandler) Delete(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.financeService.DeleteEntry(c.Request.Context(), *accountID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Summary aggregates income, expense and balance over a period. Defaults to
// the current month when no range is given.
func (h *FinanceHandler) Summary(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start date")
			return
		}
		from = start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end date")
			return
		}
		to = end.AddDate(0, 0, 1)
	}

	summary, err := h.financeService.Summarize(c.Request.Context(), *accountID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}
