package api

import (
	"github.com/gin-gonic/gin"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/service"
)

// PostCheckout creates a hosted checkout session for the subscription.
func PostCheckout(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCheckoutRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		sessionID, url, err := app.Billing().Checkout(c.Request.Context(), user.ID, req.SuccessURL, req.CancelURL)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to create checkout session")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"session_id": sessionID, "url": url}, nil)
	}
}

// PostRestore re-reads stored subscription state after a client restore flow.
func PostRestore(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		active, err := app.Billing().Restore(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to restore purchases")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"subscription_active": active}, nil)
	}
}

// StripeWebhook receives Stripe events. Unauthenticated; trust comes from the
// signature header, not a bearer token.
func StripeWebhook(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Failed to read webhook payload")
			return
		}
		signature := c.GetHeader("Stripe-Signature")
		if err := app.Billing().HandleWebhook(c.Request.Context(), payload, signature); err != nil {
			HandleError(c, app.Logger(), err, 400, "Webhook rejected")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"received": true}, nil)
	}
}
