package handler

import (
	"net/http"

	"smartpos/internal/dto"
	"smartpos/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// Record godoc
// @Summary Record a sale of one or more products
// @Tags sales
// @Accept json
// @Produce json
// @Param source query string false "Set to 'onboarding' for walkthrough sales"
// @Param body body dto.RecordSaleRequest true "Sale"
// @Success 201 {object} dto.RecordSaleResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /sales [post]
func (h *SalesHandler) Record(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}

	fromOnboarding := c.Query("source") == "onboarding"

	resp, err := h.svc.RecordSale(c.Request.Context(), businessID, req, fromOnboarding)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns the flattened sales report, newest first.
func (h *SalesHandler) List(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	resp, err := h.svc.ListSalesLines(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
