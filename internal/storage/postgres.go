package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// PostgresStorage keeps check-in records as JSONB documents keyed by
// (user_id, day_id), matching the local cache's one-record-per-day shape.
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() {
	p.pool.Close()
}

// --- CheckInRepository ---

func (p *PostgresStorage) GetCheckIn(ctx context.Context, userID, dayID string) (*internal.CheckIn, error) {
	row := p.pool.QueryRow(ctx, `SELECT record FROM check_ins WHERE user_id = $1 AND day_id = $2`, userID, dayID)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrNotFound
		}
		p.logger.Errorf("failed to query check-in %s/%s: %v", userID, dayID, err)
		return nil, err
	}
	var c internal.CheckIn
	if err := json.Unmarshal(raw, &c); err != nil {
		p.logger.Errorf("corrupt check-in record %s/%s: %v", userID, dayID, err)
		return nil, err
	}
	return &c, nil
}

func (p *PostgresStorage) PutCheckIn(ctx context.Context, c *internal.CheckIn) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO check_ins (user_id, day_id, record, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, day_id) DO UPDATE SET record = EXCLUDED.record, updated_at = EXCLUDED.updated_at`,
		c.UserID, c.ID, raw, c.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert check-in %s/%s: %v", c.UserID, c.ID, err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListCheckIns(ctx context.Context, userID string) ([]internal.CheckIn, error) {
	rows, err := p.pool.Query(ctx, `SELECT record FROM check_ins WHERE user_id = $1 ORDER BY day_id DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to list check-ins for %s: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var out []internal.CheckIn
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			p.logger.Errorf("failed to scan check-in row: %v", err)
			return nil, err
		}
		var c internal.CheckIn
		if err := json.Unmarshal(raw, &c); err != nil {
			p.logger.Errorf("corrupt check-in record for %s: %v", userID, err)
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// --- SubscriptionRepository ---

func (p *PostgresStorage) GetSubscription(ctx context.Context, userID string) (*internal.Subscription, error) {
	row := p.pool.QueryRow(ctx, `SELECT user_id, active, stripe_customer_id, stripe_subscription_id, updated_at, current_period_end
		FROM subscriptions WHERE user_id = $1`, userID)
	var s internal.Subscription
	if err := row.Scan(&s.UserID, &s.Active, &s.StripeCustomerID, &s.StripeSubscriptionID, &s.UpdatedAt, &s.CurrentPeriodEnd); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrNotFound
		}
		p.logger.Errorf("failed to query subscription for %s: %v", userID, err)
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStorage) PutSubscription(ctx context.Context, sub *internal.Subscription) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO subscriptions (user_id, active, stripe_customer_id, stripe_subscription_id, updated_at, current_period_end)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET active = EXCLUDED.active, stripe_customer_id = EXCLUDED.stripe_customer_id,
			stripe_subscription_id = EXCLUDED.stripe_subscription_id, updated_at = EXCLUDED.updated_at,
			current_period_end = EXCLUDED.current_period_end`,
		sub.UserID, sub.Active, sub.StripeCustomerID, sub.StripeSubscriptionID, sub.UpdatedAt, sub.CurrentPeriodEnd)
	if err != nil {
		p.logger.Errorf("failed to upsert subscription for %s: %v", sub.UserID, err)
		return err
	}
	return nil
}

// --- Compile-time assertions ---
var _ CheckInRepository = (*PostgresStorage)(nil)
var _ SubscriptionRepository = (*PostgresStorage)(nil)
