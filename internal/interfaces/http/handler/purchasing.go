package handler

import (
	"github.com/crmdesk/backend/internal/application/purchasing"
	"github.com/gin-gonic/gin"
)

// VendorHandler serves vendors
type VendorHandler struct {
	BaseHandler
	vendorService *purchasing.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *purchasing.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// Create godoc
// @Summary      Create vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        request body purchasing.VendorRequest true "Vendor"
// @Success      201 {object} APIResponse[purchasing.VendorResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendors [post]
func (h *VendorHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req purchasing.VendorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.vendorService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get vendor
// @Tags         vendors
// @Produce      json
// @Param        id path string true "Vendor ID"
// @Success      200 {object} APIResponse[purchasing.VendorResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/{id} [get]
func (h *VendorHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.vendorService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id path string true "Vendor ID"
// @Param        request body purchasing.VendorRequest true "Vendor"
// @Success      200 {object} APIResponse[purchasing.VendorResponse]
// @Security     BearerAuth
// @Router       /vendors/{id} [put]
func (h *VendorHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req purchasing.VendorRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.vendorService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete vendor
// @Tags         vendors
// @Param        id path string true "Vendor ID"
// @Success      204
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/{id} [delete]
func (h *VendorHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.vendorService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List vendors
// @Tags         vendors
// @Produce      json
// @Param        search query string false "Search"
// @Success      200 {object} APIResponse[[]purchasing.VendorResponse]
// @Security     BearerAuth
// @Router       /vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter purchasing.VendorListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.vendorService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// PurchaseOrderHandler serves purchase orders
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *purchasing.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(orderService *purchasing.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Create purchase order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        request body purchasing.PurchaseOrderRequest true "Purchase order"
// @Success      201 {object} APIResponse[purchasing.PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req purchasing.PurchaseOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orderService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Success      200 {object} APIResponse[purchasing.PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
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
// @Summary      Update purchase order
// @Description  Replaces header and items while the order is still a draft
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Param        request body purchasing.PurchaseOrderRequest true "Purchase order"
// @Success      200 {object} APIResponse[purchasing.PurchaseOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req purchasing.PurchaseOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orderService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// UpdateStatus godoc
// @Summary      Change purchase order status
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Param        request body purchasing.UpdatePOStatusRequest true "Status"
// @Success      200 {object} APIResponse[purchasing.PurchaseOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/status [patch]
func (h *PurchaseOrderHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req purchasing.UpdatePOStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orderService.UpdateStatus(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Receive godoc
// @Summary      Receive purchase order
// @Description  Adds every line quantity to product stock and marks the order received
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Success      200 {object} APIResponse[purchasing.PurchaseOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.orderService.Receive(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete purchase order
// @Tags         purchase-orders
// @Param        id path string true "Purchase order ID"
// @Success      204
// @Security     BearerAuth
// @Router       /purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
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
// @Summary      List purchase orders
// @Tags         purchase-orders
// @Produce      json
// @Param        status query string false "Status"
// @Param        vendor_id query string false "Vendor ID"
// @Success      200 {object} APIResponse[[]purchasing.PurchaseOrderResponse]
// @Security     BearerAuth
// @Router       /purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter purchasing.PurchaseOrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.orderService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}
