package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/noticehub/internal/config"
	httpx "github.com/you/noticehub/internal/http"
	"github.com/you/noticehub/internal/http/handlers"
	"github.com/you/noticehub/internal/http/middleware"
	"github.com/you/noticehub/internal/infrastructure/auth"
	"github.com/you/noticehub/internal/infrastructure/database"
	"github.com/you/noticehub/internal/infrastructure/notifications"
	"github.com/you/noticehub/internal/infrastructure/repositories"
	"github.com/you/noticehub/internal/infrastructure/wechat"
	"github.com/you/noticehub/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}

	// Infrastructure services
	tokenSvc := auth.NewTokenService(32)
	platform := wechat.NewGateway(cfg.WechatAppID, cfg.WechatAppSecret, cfg.WechatAPIBase)
	smsSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(rdb.Client, tokenSvc, cfg.SessionTTL)
	notifRepo := repositories.NewNotificationRepository(gdb)
	readRepo := repositories.NewReadStateRepository(gdb)

	// Services
	authSvc := services.NewAuthService(userRepo, sessionRepo, platform, smsSvc)
	notifSvc := services.NewNotificationService(notifRepo, readRepo)

	// Handlers
	authH := handlers.NewAuthHandlers(authSvc)
	notifH := handlers.NewNotificationHandlers(notifSvc)
	adminH := handlers.NewAdminHandlers(notifSvc)

	// Middleware
	authMW := middleware.NewAuthMW(sessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E, userRepo)

	r := httpx.BuildRouter(authH, notifH, adminH, authMW, casbinMW)

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|DELETE)")
		_ = cas.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
