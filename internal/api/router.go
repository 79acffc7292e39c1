package api

import (
	"github.com/gin-gonic/gin"
	"github.com/victorsuarez3/hangovershield-sub001/internal/auth"
	"github.com/victorsuarez3/hangovershield-sub001/internal/config"
)

// NewRouter wires middleware and routes. The Stripe webhook stays outside the
// auth group; its trust comes from the signature header.
func NewRouter(app App, cfg *config.Config, provider auth.Provider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLogMiddleware(app.Logger()))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.POST("/webhooks/stripe", StripeWebhook(app))

	api := r.Group("/api", auth.Middleware(provider, cfg))
	{
		api.POST("/checkins", PostCheckIn(app))
		api.GET("/checkins", GetHistory(app))
		api.GET("/checkins/today", GetToday(app))
		api.GET("/checkins/today/progress", GetTodayProgress(app))
		api.PATCH("/checkins/:day/steps/:stepID", PatchStep(app))
		api.POST("/checkins/:day/complete", PostComplete(app))
		api.POST("/plan/preview", PostPlanPreview(app))

		api.GET("/access", GetAccess(app))
		api.GET("/access/sections", GetAccessSections(app))

		api.POST("/billing/checkout", PostCheckout(app))
		api.POST("/billing/restore", PostRestore(app))
	}

	return r
}
