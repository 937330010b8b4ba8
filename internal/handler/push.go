package handler

import (
	"net/http"

	"smartpos/internal/dto"
	"smartpos/internal/middleware"
	"smartpos/internal/service"

	"github.com/gin-gonic/gin"
)

type PushHandler struct{ svc service.PushService }

func NewPushHandler(svc service.PushService) *PushHandler { return &PushHandler{svc: svc} }

// Subscribe stores (or refreshes) the caller's browser push subscription.
func (h *PushHandler) Subscribe(c *gin.Context) {
	businessID, ok := requireBusiness(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)

	var req dto.PushSubscribeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.Subscribe(c.Request.Context(), claims.UserID, businessID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"detail": "Subscribed"})
}

// VAPIDKey exposes the public key the browser needs to subscribe.
func (h *PushHandler) VAPIDKey(c *gin.Context) {
	c.JSON(http.StatusOK, dto.VAPIDKeyResponse{PublicKey: h.svc.PublicKey()})
}
