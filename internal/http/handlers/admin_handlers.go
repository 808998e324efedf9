package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/noticehub/domain"
	"github.com/you/noticehub/internal/http/response"
)

// AdminHandlers manages notification records. Routes are guarded by the
// Casbin middleware; only admin-role users reach these.
type AdminHandlers struct {
	notifSvc domain.NotificationService
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(notifSvc domain.NotificationService) *AdminHandlers {
	return &AdminHandlers{notifSvc: notifSvc}
}

// CreateNotificationRequest describes an admin-created notice
type CreateNotificationRequest struct {
	Type        string   `json:"type" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content"`
	TargetUsers []string `json:"targetUsers"`
}

// adminNotificationView includes the target list, which the user-facing
// feed strips.
type adminNotificationView struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Time        string   `json:"time"`
	TargetUsers []string `json:"targetUsers"`
}

// Create handles POST /admin/notifications
func (h *AdminHandlers) Create(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.CodeInvalidParams, "missing type or title")
		return
	}

	notif, err := h.notifSvc.Create(c.Request.Context(), domain.NotificationType(req.Type), req.Title, req.Content, req.TargetUsers)
	if err != nil {
		response.FailErr(c, err)
		return
	}

	response.OK(c, "notification created", toAdminView(notif))
}

// List handles GET /admin/notifications
func (h *AdminHandlers) List(c *gin.Context) {
	all, err := h.notifSvc.ListAll(c.Request.Context())
	if err != nil {
		response.FailErr(c, err)
		return
	}

	views := make([]adminNotificationView, 0, len(all))
	for i := range all {
		views = append(views, *toAdminView(&all[i]))
	}

	response.OK(c, "notifications listed", gin.H{"notifications": views})
}

// DeleteOne handles DELETE /admin/notifications/:id
func (h *AdminHandlers) DeleteOne(c *gin.Context) {
	removed, err := h.notifSvc.DeleteOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailErr(c, err)
		return
	}
	if !removed {
		response.Fail(c, http.StatusNotFound, response.CodeNotFound, "notification not found")
		return
	}

	response.OK(c, "notification deleted", nil)
}

// DeleteAll handles DELETE /admin/notifications
func (h *AdminHandlers) DeleteAll(c *gin.Context) {
	if err := h.notifSvc.DeleteAll(c.Request.Context()); err != nil {
		response.FailErr(c, err)
		return
	}
	response.OK(c, "all notifications deleted", nil)
}

func toAdminView(n *domain.Notification) *adminNotificationView {
	return &adminNotificationView{
		ID:          n.ID,
		Type:        string(n.Type),
		Title:       n.Title,
		Content:     n.Content,
		Time:        n.CreatedAt.Format(domain.TimeLayout),
		TargetUsers: n.TargetUsers,
	}
}
