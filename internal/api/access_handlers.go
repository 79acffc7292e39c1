package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/gating"
)

// GetAccess returns the caller's current access tier. Recomputed per request
// from subscription state and the first-seen anchor, so the welcome grant
// decays without any stored expiry.
func GetAccess(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		active := app.Billing().SubscriptionActive(c.Request.Context(), user.ID)
		status := app.Access().AccessStatus(active, user.FirstSeenAt, time.Now())
		HandleSuccess(c, app.Logger(), status, nil)
	}
}

// GetAccessSections returns the per-feature visibility map alongside the tier,
// so a screen can resolve all of its gated sections in one round trip.
func GetAccessSections(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		active := app.Billing().SubscriptionActive(c.Request.Context(), user.ID)
		status := app.Access().AccessStatus(active, user.FirstSeenAt, time.Now())
		HandleSuccess(c, app.Logger(), gin.H{
			"access":   status,
			"sections": gating.Sections(status),
		}, nil)
	}
}
