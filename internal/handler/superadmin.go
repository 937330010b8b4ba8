package handler

import (
	"context"
	"net/http"
	"strconv"

	"smartpos/internal/apierror"
	"smartpos/internal/dto"
	"smartpos/internal/service"

	"github.com/gin-gonic/gin"
)

// PushReminderEnqueuer hands the reminder off to the async worker pool. The
// HTTP request returns as soon as the job is queued.
type PushReminderEnqueuer interface {
	EnqueuePushReminder(ctx context.Context, businessID uint, title, body string) error
}

type SuperadminHandler struct {
	svc        service.SubscriptionService
	dispatcher PushReminderEnqueuer
}

func NewSuperadminHandler(svc service.SubscriptionService, dispatcher PushReminderEnqueuer) *SuperadminHandler {
	return &SuperadminHandler{svc: svc, dispatcher: dispatcher}
}

// ListClients godoc
// @Summary List all registered businesses with subscription state
// @Tags superadmin
// @Produce json
// @Success 200 {array} dto.ClientSummary
// @Router /superadmin/clients [get]
func (h *SuperadminHandler) ListClients(c *gin.Context) {
	resp, err := h.svc.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuperadminHandler) Activate(c *gin.Context) {
	h.subscriptionAction(c, h.svc.Activate)
}

func (h *SuperadminHandler) Renew(c *gin.Context) {
	h.subscriptionAction(c, h.svc.Renew)
}

func (h *SuperadminHandler) Suspend(c *gin.Context) {
	h.subscriptionAction(c, h.svc.Suspend)
}

func (h *SuperadminHandler) Reactivate(c *gin.Context) {
	h.subscriptionAction(c, h.svc.Reactivate)
}

func (h *SuperadminHandler) subscriptionAction(c *gin.Context, action func(context.Context, uint) (*dto.SubscriptionActionResponse, error)) {
	businessID, ok := parseBusinessID(c)
	if !ok {
		return
	}

	resp, err := action(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PushReminder queues a renewal notification for every subscribed device of
// the business. Delivery happens asynchronously in the worker pool.
func (h *SuperadminHandler) PushReminder(c *gin.Context) {
	businessID, ok := parseBusinessID(c)
	if !ok {
		return
	}

	var req dto.PushReminderRequest
	if !bindAndValidate(c, &req) {
		return
	}

	title := req.Title
	if title == "" {
		title = "Subscription reminder"
	}
	body := req.Body
	if body == "" {
		body = "Your subscription needs attention. Please renew to keep using the service."
	}

	if err := h.dispatcher.EnqueuePushReminder(c.Request.Context(), businessID, title, body); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "Reminder queued"})
}

func parseBusinessID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("business_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid business id"))
		return 0, false
	}
	return uint(id), true
}
