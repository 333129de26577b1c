package api

import (
	"github.com/gin-gonic/gin"

	"github.com/sumanurawat/phoenix-sub003/internal/app"
)

/*
SetupRouter wires every HTTP endpoint, using thin closure wrappers
so each handler receives the running *app.App instance.
*/
func SetupRouter(a *app.App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(accessLog(a.Logger()), recovery(a.Logger()), corsMiddleware(a.GetConfig().AllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) { handleHealth(c) })

	/* ---------- public endpoints ---------- */
	api := r.Group("/api")
	{
		api.POST("/contact", func(c *gin.Context) { handleContactSubmission(a, c) })
	}

	return r
}
