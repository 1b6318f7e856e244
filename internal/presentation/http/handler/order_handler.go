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

// OrderHandler handles service order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	printService *service.PrintService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, printService *service.PrintService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		printService: printService,
	}
}

// List handles listing orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseOrderStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID filter")
			return
		}
		params.CustomerID = &customerID
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

	result, err := h.orderService.ListOrders(c.Request.Context(), *accountID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Create handles creating a service order
func (h *OrderHandler) Create(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateOrderInput{
		CustomerID:         req.CustomerID,
		Equipment:          req.Equipment,
		Brand:              req.Brand,
		Model:              req.Model,
		SerialNumber:       req.SerialNumber,
		Accessories:        req.Accessories,
		ProblemDescription: req.ProblemDescription,
		LaborFee:           req.LaborFee,
		Discount:           req.Discount,
		Surcharge:          req.Surcharge,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), *accountID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order with its line items
func (h *OrderHandler) Get(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), *accountID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Update handles a partial order update, including status transitions
func (h *OrderHandler) Update(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), *accountID, id, &service.UpdateOrderInput{
		CustomerID:         req.CustomerID,
		Equipment:          req.Equipment,
		Brand:              req.Brand,
		Model:              req.Model,
		SerialNumber:       req.SerialNumber,
		Accessories:        req.Accessories,
		ProblemDescription: req.ProblemDescription,
		TechnicalReport:    req.TechnicalReport,
		Status:             req.Status,
		LaborFee:           req.LaborFee,
		Discount:           req.Discount,
		Surcharge:          req.Surcharge,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", order)
}

// Delete handles deleting an order. Linked financial entries block deletion
// unless the financial_entries query parameter selects detach or delete.
func (h *OrderHandler) Delete(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	entryMode := c.Query("financial_entries")

	if err := h.orderService.DeleteOrder(c.Request.Context(), *accountID, id, entryMode); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Print renders the order as a PDF document
func (h *OrderHandler) Print(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	doc, err := h.printService.PrintOrder(c.Request.Context(), *accountID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="order.pdf"`)
	c.Data(200, "application/pdf", doc)
}

// AddLineItem handles appending a line item to an order
func (h *OrderHandler) AddLineItem(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.AddLineItem(c.Request.Context(), *accountID, orderID, &service.OrderItemInput{
		ProductID:   req.ProductID,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Line item added successfully", order)
}

// UpdateLineItem handles editing a line item
func (h *OrderHandler) UpdateLineItem(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid line item ID")
		return
	}

	var req request.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateLineItem(c.Request.Context(), *accountID, itemID, &service.UpdateLineItemInput{
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item updated successfully", order)
}

// RemoveLineItem handles removing a line item
func (h *OrderHandler) RemoveLineItem(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid line item ID")
		return
	}

	order, err := h.orderService.RemoveLineItem(c.Request.Context(), *accountID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line item removed successfully", order)
}
