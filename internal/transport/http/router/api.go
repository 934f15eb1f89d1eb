package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/will-terra/teste-time-register/internal/core/auth"
	"github.com/will-terra/teste-time-register/internal/transport/http/handler"
	mdw "github.com/will-terra/teste-time-register/internal/transport/http/middleware"
)

type Deps struct {
	Log     *zap.Logger
	JWTer   *auth.JWTer
	Users   *handler.UserHandler
	TimeReg *handler.TimeRegisterHandler
	Reports *handler.ReportHandler
	Admin   *handler.AdminHandler
}

// NewEngine builds the single engine serving /api/v1, /admin/v1,
// /health and /metrics.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	d.Users.Mount(api)
	d.TimeReg.Mount(api)
	d.Reports.Mount(api)

	if d.Admin != nil {
		admin := r.Group("/admin/v1")
		d.Admin.MountLogin(admin)
		authed := admin.Group("")
		authed.Use(mdw.AuthJWT(d.JWTer, "admin"))
		d.Admin.Mount(authed)
	}

	return r
}
