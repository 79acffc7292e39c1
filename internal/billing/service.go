// Package billing is the purchase-management collaborator: it mirrors
// subscription state from Stripe and answers the single question the
// entitlement engine asks — is this user's subscription active right now.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/storage"
)

type Service struct {
	client *StripeClient // nil when Stripe is not configured
	subs   storage.SubscriptionRepository
	logger internal.Logger
	now    func() time.Time
}

func NewService(client *StripeClient, subs storage.SubscriptionRepository, logger internal.Logger) *Service {
	return &Service{client: client, subs: subs, logger: logger, now: time.Now}
}

// SubscriptionActive fails closed: any error or missing record reads as
// inactive, so an outage degrades users to free instead of handing out
// premium.
func (s *Service) SubscriptionActive(ctx context.Context, userID string) bool {
	sub, err := s.subs.GetSubscription(ctx, userID)
	if err != nil {
		if !errors.Is(err, internal.ErrNotFound) {
			s.logger.Warnf("billing: subscription lookup failed for %s: %v", userID, err)
		}
		return false
	}
	return sub.Active
}

// Checkout starts a subscription purchase and returns the hosted URL.
func (s *Service) Checkout(ctx context.Context, userID, successURL, cancelURL string) (string, string, error) {
	if s.client == nil {
		return "", "", errors.New("billing: stripe is not configured")
	}
	return s.client.CreateCheckoutSession(userID, successURL, cancelURL)
}

// HandleWebhook verifies and applies a Stripe event. Unrecognized events are
// logged and acknowledged.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.client == nil {
		return errors.New("billing: stripe is not configured")
	}
	event, err := s.client.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return err
		}
		if sess.ClientReferenceID == "" {
			s.logger.Warnf("billing: checkout session %s has no client reference", sess.ID)
			return nil
		}
		sub := &internal.Subscription{
			UserID:    sess.ClientReferenceID,
			Active:    true,
			UpdatedAt: s.now(),
		}
		if sess.Customer != nil {
			sub.StripeCustomerID = sess.Customer.ID
		}
		if sess.Subscription != nil {
			sub.StripeSubscriptionID = sess.Subscription.ID
		}
		return s.subs.PutSubscription(ctx, sub)

	case "customer.subscription.deleted":
		var stripeSub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
			return err
		}
		userID := stripeSub.Metadata["user_id"]
		if userID == "" {
			s.logger.Warnf("billing: subscription %s deleted without user metadata", stripeSub.ID)
			return nil
		}
		sub := &internal.Subscription{
			UserID:               userID,
			Active:               false,
			StripeSubscriptionID: stripeSub.ID,
			UpdatedAt:            s.now(),
		}
		return s.subs.PutSubscription(ctx, sub)

	default:
		s.logger.Debugf("billing: ignoring event %s", event.Type)
		return nil
	}
}

// Restore re-reads the stored subscription state after a client-side restore
// flow; the next entitlement evaluation picks the result up automatically.
func (s *Service) Restore(ctx context.Context, userID string) (bool, error) {
	sub, err := s.subs.GetSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, internal.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.Active, nil
}
