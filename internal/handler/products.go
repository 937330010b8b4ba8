package handler

import (
	"net/http"
	"strconv"

	"smartpos/internal/apierror"
	"smartpos/internal/dto"
	"smartpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// Add godoc
// @Summary Add a product to the business stock
// @Tags products
// @Accept json
// @Produce json
// @Param body body dto.AddProductRequest true "Product"
// @Success 201 {object} dto.ProductResponse
// @Failure 409 {object} apierror.APIError
// @Router /products [post]
func (h *ProductsHandler) Add(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	var req dto.AddProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Add(c.Request.Context(), businessID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateStock applies a partial patch to quantity and prices.
func (h *ProductsHandler) UpdateStock(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}

	var req dto.UpdateStockRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, svcErr := h.svc.UpdateStock(c.Request.Context(), businessID, uint(productID), req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) List(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	resp, err := h.svc.List(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
