package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/noticehub/internal/http/handlers"
	"github.com/you/noticehub/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, nh *handlers.NotificationHandlers, adh *handlers.AdminHandlers, authmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(middleware.JSONRecovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	r.POST("/login", ah.Login)

	sess := r.Group("/").Use(authmw.Required())
	sess.GET("/session/status", ah.Status)
	sess.POST("/phone/bind", ah.BindPhone)
	sess.POST("/logout", ah.Logout)

	// The feed is readable anonymously; mark operations require a session.
	r.GET("/notifications", authmw.Optional(), nh.List)
	marks := r.Group("/notifications").Use(authmw.Required())
	marks.POST("/mark_read", nh.MarkRead)
	marks.POST("/mark_all_read", nh.MarkAllRead)

	adm := r.Group("/admin").Use(authmw.Required(), cb.Enforce())
	adm.POST("/notifications", adh.Create)
	adm.GET("/notifications", adh.List)
	adm.DELETE("/notifications/:id", adh.DeleteOne)
	adm.DELETE("/notifications", adh.DeleteAll)

	return r
}
