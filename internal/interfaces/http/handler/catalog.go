package handler

import (
	"github.com/crmdesk/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler serves products
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalog.ProductRequest true "Product"
// @Success      201 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req catalog.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.productService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.productService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body catalog.ProductRequest true "Product"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.productService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete product
// @Description  Fails while quotations, orders or price books reference the product
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.productService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List products
// @Description  search matches name, sku or catalogue
// @Tags         products
// @Produce      json
// @Param        search query string false "Search"
// @Param        category_id query string false "Category ID"
// @Param        catalogue query string false "Catalogue"
// @Success      200 {object} APIResponse[[]catalog.ProductResponse]
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter catalog.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.productService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// CategoryHandler serves product categories
type CategoryHandler struct {
	BaseHandler
	categoryService *catalog.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *catalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create godoc
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalog.CategoryRequest true "Category"
// @Success      201 {object} APIResponse[catalog.CategoryResponse]
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req catalog.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.categoryService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} APIResponse[catalog.CategoryResponse]
// @Security     BearerAuth
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.categoryService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID"
// @Param        request body catalog.CategoryRequest true "Category"
// @Success      200 {object} APIResponse[catalog.CategoryResponse]
// @Security     BearerAuth
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.categoryService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete category
// @Tags         categories
// @Param        id path string true "Category ID"
// @Success      204
// @Security     BearerAuth
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.categoryService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.CategoryResponse]
// @Security     BearerAuth
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter catalog.CategoryListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.categoryService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// PriceBookHandler serves price books and their product prices
type PriceBookHandler struct {
	BaseHandler
	priceBookService *catalog.PriceBookService
}

// NewPriceBookHandler creates a new price book handler
func NewPriceBookHandler(priceBookService *catalog.PriceBookService) *PriceBookHandler {
	return &PriceBookHandler{priceBookService: priceBookService}
}

// Create godoc
// @Summary      Create price book
// @Tags         price-books
// @Accept       json
// @Produce      json
// @Param        request body catalog.PriceBookRequest true "Price book"
// @Success      201 {object} APIResponse[catalog.PriceBookResponse]
// @Security     BearerAuth
// @Router       /price-books [post]
func (h *PriceBookHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req catalog.PriceBookRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.priceBookService.Create(c.Request.Context(), userID, req)
	respondCreated(&h.BaseHandler, c, resp, err)
}

// Get godoc
// @Summary      Get price book
// @Tags         price-books
// @Produce      json
// @Param        id path string true "Price book ID"
// @Success      200 {object} APIResponse[catalog.PriceBookResponse]
// @Security     BearerAuth
// @Router       /price-books/{id} [get]
func (h *PriceBookHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.priceBookService.GetByID(c.Request.Context(), userID, id)
	respond(&h.BaseHandler, c, resp, err)
}

// Update godoc
// @Summary      Update price book
// @Tags         price-books
// @Accept       json
// @Produce      json
// @Param        id path string true "Price book ID"
// @Param        request body catalog.PriceBookRequest true "Price book"
// @Success      200 {object} APIResponse[catalog.PriceBookResponse]
// @Security     BearerAuth
// @Router       /price-books/{id} [put]
func (h *PriceBookHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.PriceBookRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.priceBookService.Update(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// Delete godoc
// @Summary      Delete price book
// @Tags         price-books
// @Param        id path string true "Price book ID"
// @Success      204
// @Security     BearerAuth
// @Router       /price-books/{id} [delete]
func (h *PriceBookHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	respondNoContent(&h.BaseHandler, c, h.priceBookService.Delete(c.Request.Context(), userID, id))
}

// List godoc
// @Summary      List price books
// @Tags         price-books
// @Produce      json
// @Param        is_active query bool false "Active only"
// @Success      200 {object} APIResponse[[]catalog.PriceBookResponse]
// @Security     BearerAuth
// @Router       /price-books [get]
func (h *PriceBookHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var filter catalog.PriceBookListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.priceBookService.List(c.Request.Context(), userID, filter)
	respondPage(&h.BaseHandler, c, page, err)
}

// ListActive godoc
// @Summary      Active price books
// @Tags         price-books
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.PriceBookResponse]
// @Security     BearerAuth
// @Router       /price-books/active [get]
func (h *PriceBookHandler) ListActive(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	books, err := h.priceBookService.ListActive(c.Request.Context(), userID)
	respond(&h.BaseHandler, c, books, err)
}

// AddProduct godoc
// @Summary      Add product to price book
// @Tags         price-books
// @Accept       json
// @Produce      json
// @Param        id path string true "Price book ID"
// @Param        request body catalog.PriceBookItemRequest true "Product price"
// @Success      200 {object} APIResponse[catalog.PriceBookResponse]
// @Security     BearerAuth
// @Router       /price-books/{id}/products [post]
func (h *PriceBookHandler) AddProduct(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalog.PriceBookItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.priceBookService.AddProduct(c.Request.Context(), userID, id, req)
	respond(&h.BaseHandler, c, resp, err)
}

// RemoveProduct godoc
// @Summary      Remove product from price book
// @Tags         price-books
// @Produce      json
// @Param        id path string true "Price book ID"
// @Param        productId path string true "Product ID"
// @Success      200 {object} APIResponse[catalog.PriceBookResponse]
// @Security     BearerAuth
// @Router       /price-books/{id}/products/{productId} [delete]
func (h *PriceBookHandler) RemoveProduct(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := h.pathID(c, "productId")
	if !ok {
		return
	}
	resp, err := h.priceBookService.RemoveProduct(c.Request.Context(), userID, id, productID)
	respond(&h.BaseHandler, c, resp, err)
}
