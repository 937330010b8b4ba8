package handler

import (
	"net/http"

	"smartpos/internal/dto"
	"smartpos/internal/service"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct{ svc service.OnboardingService }

func NewOnboardingHandler(svc service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{svc: svc}
}

// RecordEvent logs a view_stock or view_report checklist event. Idempotent.
func (h *OnboardingHandler) RecordEvent(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	var req dto.RecordEventRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.RecordEvent(c.Request.Context(), businessID, req.Event); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Event recorded"})
}

// Status returns the four-step checklist with overall progress.
func (h *OnboardingHandler) Status(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}

	resp, err := h.svc.Status(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
