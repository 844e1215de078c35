package handler

import (
	"context"
	"net/http"

	"github.com/crmdesk/backend/internal/application/sales"
	"github.com/crmdesk/backend/internal/domain/printing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ArchiveURLHeader carries the presigned link of an archived PDF
const ArchiveURLHeader = "X-Archive-URL"

// QuotationHandler serves quotations
type QuotationHandler struct {
	BaseHandler
	quotationService *sales.QuotationService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *sales.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// Create godoc
// @Summary      Create quotation
// @Description  Lines are priced with CGST/SGST; empty-description lines are dropped
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        request body sales.QuotationRequest true "Quotation"
// @Success      201 {object} APIResponse[sales.QuotationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req sales.QuotationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.quotationService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get quotation
// @Tags         quotations
// @Produce      json
// @Param        id path string true "Quotation ID"
// @Success      200 {object} APIResponse[sales.QuotationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.quotationService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update quotation
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        id path string true "Quotation ID"
// @Param        request body sales.QuotationRequest true "Quotation"
// @Success      200 {object} APIResponse[sales.QuotationResponse]
// @Security     BearerAuth
// @Router       /quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req sales.QuotationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.quotationService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete quotation
// @Tags         quotations
// @Param        id path string true "Quotation ID"
// @Success      204
// @Security     BearerAuth
// @Router       /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.quotationService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List quotations
// @Tags         quotations
// @Produce      json
// @Param        status query string false "Status"
// @Param        customer_id query string false "Customer ID"
// @Success      200 {object} APIResponse[[]sales.QuotationResponse]
// @Security     BearerAuth
// @Router       /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter sales.QuotationListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.quotationService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// ReplaceItems godoc
// @Summary      Replace quotation lines
// @Description  Lines are recalculated with the header CGST/SGST percents
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        id path string true "Quotation ID"
// @Param        request body sales.ReplaceItemsRequest true "Lines"
// @Success      200 {object} APIResponse[sales.QuotationResponse]
// @Security     BearerAuth
// @Router       /quotations/{id}/items [put]
func (h *QuotationHandler) ReplaceItems(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req sales.ReplaceItemsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.quotationService.ReplaceItems(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// UpdateStatus godoc
// @Summary      Change quotation status
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        id path string true "Quotation ID"
// @Param        request body sales.UpdateQuotationStatusRequest true "Status"
// @Success      200 {object} APIResponse[sales.QuotationResponse]
// @Security     BearerAuth
// @Router       /quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req sales.UpdateQuotationStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.quotationService.UpdateStatus(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Convert godoc
// @Summary      Convert quotation to sales order
// @Tags         quotations
// @Produce      json
// @Param        id path string true "Quotation ID"
// @Success      201 {object} APIResponse[sales.ConvertQuotationResult]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /quotations/{id}/convert [post]
func (h *QuotationHandler) Convert(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.quotationService.ConvertToSalesOrder(c.Request.Context(), userID, id)
	respondCreated(&h.BaseHandler, c, result, err)
}

// SalesOrderHandler serves sales orders
type SalesOrderHandler struct {
	BaseHandler
	orderService *sales.SalesOrderService
}

// NewSalesOrderHandler creates a new sales order handler
func NewSalesOrderHandler(orderService *sales.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Create sales order
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        request body sales.SalesOrderRequest true "Sales order"
// @Success      201 {object} APIResponse[sales.SalesOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales-orders [post]
func (h *SalesOrderHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req sales.SalesOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orderService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get sales order
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Sales order ID"
// @Success      200 {object} APIResponse[sales.SalesOrderResponse]
// @Security     BearerAuth
// @Router       /sales-orders/{id} [get]
func (h *SalesOrderHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.orderService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update sales order
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Sales order ID"
// @Param        request body sales.SalesOrderRequest true "Sales order"
// @Success      200 {object} APIResponse[sales.SalesOrderResponse]
// @Security     BearerAuth
// @Router       /sales-orders/{id} [put]
func (h *SalesOrderHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req sales.SalesOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orderService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete sales order
// @Tags         sales-orders
// @Param        id path string true "Sales order ID"
// @Success      204
// @Security     BearerAuth
// @Router       /sales-orders/{id} [delete]
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.orderService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List sales orders
// @Tags         sales-orders
// @Produce      json
// @Param        status query string false "Status"
// @Param        payment_status query string false "Payment status"
// @Success      200 {object} APIResponse[[]sales.SalesOrderResponse]
// @Security     BearerAuth
// @Router       /sales-orders [get]
func (h *SalesOrderHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter sales.SalesOrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.orderService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// ReplaceItems godoc
// @Summary      Replace sales order lines
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Sales order ID"
// @Param        request body sales.ReplaceItemsRequest true "Lines"
// @Success      200 {object} APIResponse[sales.SalesOrderResponse]
// @Security     BearerAuth
// @Router       /sales-orders/{id}/items [put]
func (h *SalesOrderHandler) ReplaceItems(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req sales.ReplaceItemsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orderService.ReplaceItems(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// UpdateStatus godoc
// @Summary      Change sales order status
// @Description  Confirming an order opens a pending stock approval
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Sales order ID"
// @Param        request body sales.UpdateOrderStatusRequest true "Status"
// @Success      200 {object} APIResponse[sales.SalesOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales-orders/{id}/status [patch]
func (h *SalesOrderHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req sales.UpdateOrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orderService.UpdateStatus(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// UpdatePaymentStatus godoc
// @Summary      Change payment status
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Sales order ID"
// @Param        request body sales.UpdatePaymentStatusRequest true "Payment status"
// @Success      200 {object} APIResponse[sales.SalesOrderResponse]
// @Security     BearerAuth
// @Router       /sales-orders/{id}/payment-status [patch]
func (h *SalesOrderHandler) UpdatePaymentStatus(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req sales.UpdatePaymentStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orderService.UpdatePaymentStatus(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// ApprovalHandler serves stock approvals of confirmed orders
type ApprovalHandler struct {
	BaseHandler
	approvalService *sales.StockApprovalService
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(approvalService *sales.StockApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// ListPending godoc
// @Summary      Pending stock approvals
// @Tags         approvals
// @Produce      json
// @Success      200 {object} APIResponse[[]sales.StockApprovalResponse]
// @Security     BearerAuth
// @Router       /approvals/pending [get]
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	approvals, err := h.approvalService.ListPending(c.Request.Context(), userID)
	respond(&h.BaseHandler, c, approvals, err)
}

// Approve godoc
// @Summary      Approve stock release
// @Description  Deducts stock for every product line and ships the order
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id path string true "Approval ID"
// @Param        request body sales.ApprovalDecisionRequest false "Notes"
// @Success      200 {object} APIResponse[sales.ApprovalDecisionResult]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals/{id}/approve [post]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	h.decide(c, h.approvalService.Approve)
}

// Reject godoc
// @Summary      Reject stock release
// @Description  Cancels the order
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id path string true "Approval ID"
// @Param        request body sales.ApprovalDecisionRequest false "Notes"
// @Success      200 {object} APIResponse[sales.ApprovalDecisionResult]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals/{id}/reject [post]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	h.decide(c, h.approvalService.Reject)
}

type decisionFunc func(ctx context.Context, userID, id uuid.UUID, req sales.ApprovalDecisionRequest) (*sales.ApprovalDecisionResult, error)

func (h *ApprovalHandler) decide(c *gin.Context, fn decisionFunc) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req sales.ApprovalDecisionRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	result, err := fn(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, result, err)
}

// InvoiceHandler renders sales orders and quotations as documents
type InvoiceHandler struct {
	BaseHandler
	invoiceService *sales.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *sales.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// View godoc
// @Summary      Invoice view model
// @Description  The data the invoice editor and templates work from
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Sales order or quotation ID"
// @Param        kind query string false "invoice (default) or quotation"
// @Success      200 {object} APIResponse[printing.InvoiceView]
// @Security     BearerAuth
// @Router       /invoices/{id}/view [get]
func (h *InvoiceHandler) View(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	kind, err := printing.ParseKind(c.Query("kind"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	view, err := h.invoiceService.View(c.Request.Context(), userID, kind, id)
	respond(&h.BaseHandler, c, view, err)
}

// Render godoc
// @Summary      Render invoice
// @Description  HTML by default; format=pdf needs headless Chrome, archive=true also needs object storage
// @Tags         invoices
// @Produce      html
// @Produce      application/pdf
// @Param        id path string true "Sales order or quotation ID"
// @Param        kind query string false "invoice (default) or quotation"
// @Param        template query string false "t1..t5; defaults to the company setting"
// @Param        format query string false "html (default) or pdf"
// @Param        archive query bool false "Store the PDF and return its link in X-Archive-URL"
// @Success      200 {file} file
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) Render(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req sales.RenderInvoiceRequest
	if !h.bindQuery(c, &req) {
		return
	}
	doc, err := h.invoiceService.RenderInvoice(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if doc.ArchiveURL != "" {
		c.Header(ArchiveURLHeader, doc.ArchiveURL)
	}
	disposition := "inline"
	if req.Format == sales.FormatPDF {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
