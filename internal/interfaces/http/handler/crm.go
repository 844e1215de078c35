package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/crmdesk/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// LeadHandler serves leads
type LeadHandler struct {
	BaseHandler
	leadService *crm.LeadService
	now         func() time.Time
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *crm.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService, now: time.Now}
}

// Create godoc
// @Summary      Create lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body crm.LeadRequest true "Lead"
// @Success      201 {object} APIResponse[crm.LeadResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req crm.LeadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.leadService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get lead
// @Tags         leads
// @Produce      json
// @Param        id path string true "Lead ID"
// @Success      200 {object} APIResponse[crm.LeadResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{id} [get]
func (h *LeadHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.leadService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id path string true "Lead ID"
// @Param        request body crm.LeadRequest true "Lead"
// @Success      200 {object} APIResponse[crm.LeadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req crm.LeadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.leadService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete lead
// @Tags         leads
// @Param        id path string true "Lead ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.leadService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List leads
// @Description  search matches name, email or company
// @Tags         leads
// @Produce      json
// @Param        search query string false "Search"
// @Param        source query string false "Source"
// @Param        status query string false "Status"
// @Param        interest_level query int false "Interest level 1-5"
// @Param        date_from query string false "Created from (YYYY-MM-DD)"
// @Param        date_to query string false "Created to (YYYY-MM-DD)"
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]crm.LeadResponse]
// @Security     BearerAuth
// @Router       /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter crm.LeadListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.leadService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// Convert godoc
// @Summary      Convert lead to customer
// @Description  Creates a customer from the lead and marks the lead qualified
// @Tags         leads
// @Produce      json
// @Param        id path string true "Lead ID"
// @Success      201 {object} APIResponse[crm.ConvertLeadResult]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{id}/convert [post]
func (h *LeadHandler) Convert(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.leadService.ConvertToCustomer(c.Request.Context(), userID, id)
	respondCreated(&h.BaseHandler, c, result, err)
}

// Export godoc
// @Summary      Export leads as CSV
// @Description  Takes the list filters; paging is ignored
// @Tags         leads
// @Produce      text/csv
// @Success      200 {file} file
// @Security     BearerAuth
// @Router       /leads/export [get]
func (h *LeadHandler) Export(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter crm.LeadListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	var buf bytes.Buffer
	if err := h.leadService.ExportCSV(c.Request.Context(), userID, filter, &buf); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+crm.ExportFilename(h.now())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// CustomerHandler serves customers
type CustomerHandler struct {
	BaseHandler
	customerService *crm.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *crm.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create godoc
// @Summary      Create customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body crm.CustomerRequest true "Customer"
// @Success      201 {object} APIResponse[crm.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req crm.CustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.customerService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get customer
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      200 {object} APIResponse[crm.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.customerService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        request body crm.CustomerRequest true "Customer"
// @Success      200 {object} APIResponse[crm.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req crm.CustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.customerService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete customer
// @Tags         customers
// @Param        id path string true "Customer ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.customerService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List customers
// @Description  search matches name, email, phone or company
// @Tags         customers
// @Produce      json
// @Param        search query string false "Search"
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]crm.CustomerResponse]
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter crm.CustomerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.customerService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// DealHandler serves deals
type DealHandler struct {
	BaseHandler
	dealService *crm.DealService
}

// NewDealHandler creates a new deal handler
func NewDealHandler(dealService *crm.DealService) *DealHandler {
	return &DealHandler{dealService: dealService}
}

// Create godoc
// @Summary      Create deal
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        request body crm.DealRequest true "Deal"
// @Success      201 {object} APIResponse[crm.DealResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /deals [post]
func (h *DealHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req crm.DealRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.dealService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get deal
// @Tags         deals
// @Produce      json
// @Param        id path string true "Deal ID"
// @Success      200 {object} APIResponse[crm.DealResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /deals/{id} [get]
func (h *DealHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.dealService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update deal
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID"
// @Param        request body crm.DealRequest true "Deal"
// @Success      200 {object} APIResponse[crm.DealResponse]
// @Security     BearerAuth
// @Router       /deals/{id} [put]
func (h *DealHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req crm.DealRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.dealService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete deal
// @Tags         deals
// @Param        id path string true "Deal ID"
// @Success      204
// @Security     BearerAuth
// @Router       /deals/{id} [delete]
func (h *DealHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.dealService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List deals
// @Tags         deals
// @Produce      json
// @Param        stage query string false "Stage"
// @Param        customer_id query string false "Customer ID"
// @Success      200 {object} APIResponse[[]crm.DealResponse]
// @Security     BearerAuth
// @Router       /deals [get]
func (h *DealHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter crm.DealListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.dealService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// CallHandler serves calls and meetings
type CallHandler struct {
	BaseHandler
	callService *crm.CallService
}

// NewCallHandler creates a new call handler
func NewCallHandler(callService *crm.CallService) *CallHandler {
	return &CallHandler{callService: callService}
}

// Create godoc
// @Summary      Schedule call
// @Tags         calls
// @Accept       json
// @Produce      json
// @Param        request body crm.CallRequest true "Call"
// @Success      201 {object} APIResponse[crm.CallResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /calls [post]
func (h *CallHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req crm.CallRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.callService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get call
// @Tags         calls
// @Produce      json
// @Param        id path string true "Call ID"
// @Success      200 {object} APIResponse[crm.CallResponse]
// @Security     BearerAuth
// @Router       /calls/{id} [get]
func (h *CallHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.callService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update call
// @Tags         calls
// @Accept       json
// @Produce      json
// @Param        id path string true "Call ID"
// @Param        request body crm.CallRequest true "Call"
// @Success      200 {object} APIResponse[crm.CallResponse]
// @Security     BearerAuth
// @Router       /calls/{id} [put]
func (h *CallHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req crm.CallRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.callService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete call
// @Tags         calls
// @Param        id path string true "Call ID"
// @Success      204
// @Security     BearerAuth
// @Router       /calls/{id} [delete]
func (h *CallHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.callService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List calls
// @Tags         calls
// @Produce      json
// @Param        status query string false "Status"
// @Param        customer_id query string false "Customer ID"
// @Success      200 {object} APIResponse[[]crm.CallResponse]
// @Security     BearerAuth
// @Router       /calls [get]
func (h *CallHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter crm.CallListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.callService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}
