package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/noticehub/domain"
	"github.com/you/noticehub/internal/http/middleware"
	"github.com/you/noticehub/internal/http/response"
)

// NotificationHandlers handles the user-facing notification endpoints
type NotificationHandlers struct {
	notifSvc domain.NotificationService
}

// NewNotificationHandlers creates new notification handlers
func NewNotificationHandlers(notifSvc domain.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notifSvc: notifSvc}
}

// MarkReadRequest identifies one notification to acknowledge
type MarkReadRequest struct {
	ID string `json:"id" binding:"required"`
}

// MarkAllReadRequest optionally narrows bulk acknowledgement by type
type MarkAllReadRequest struct {
	Type string `json:"type"`
}

// List handles GET /notifications. Anonymous callers get system notices
// with every entry unread.
func (h *NotificationHandlers) List(c *gin.Context) {
	openID := c.GetString(middleware.CtxOpenID)
	isLoggedIn := c.GetBool(middleware.CtxIsLoggedIn)

	feed, err := h.notifSvc.VisibleFor(c.Request.Context(), openID, isLoggedIn)
	if err != nil {
		response.FailErr(c, err)
		return
	}

	response.OK(c, "notifications fetched", feed)
}

// MarkRead handles POST /notifications/mark_read
func (h *NotificationHandlers) MarkRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.CodeInvalidParams, "missing notification id")
		return
	}

	openID := c.GetString(middleware.CtxOpenID)
	if err := h.notifSvc.MarkRead(c.Request.Context(), openID, req.ID); err != nil {
		response.FailErr(c, err)
		return
	}

	response.OK(c, "marked read", nil)
}

// MarkAllRead handles POST /notifications/mark_all_read. The updated flag
// tells the client whether anything was newly marked.
func (h *NotificationHandlers) MarkAllRead(c *gin.Context) {
	var req MarkAllReadRequest
	// Body is optional; an empty body means "all types".
	_ = c.ShouldBindJSON(&req)

	if req.Type != "" &&
		domain.NotificationType(req.Type) != domain.NotificationSystem &&
		domain.NotificationType(req.Type) != domain.NotificationActivity {
		response.Fail(c, http.StatusBadRequest, response.CodeInvalidParams, "unknown notification type")
		return
	}

	openID := c.GetString(middleware.CtxOpenID)
	updated, err := h.notifSvc.MarkAllRead(c.Request.Context(), openID, domain.NotificationType(req.Type))
	if err != nil {
		response.FailErr(c, err)
		return
	}

	response.OK(c, "all marked read", gin.H{"updated": updated})
}
