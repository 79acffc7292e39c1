package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/victorsuarez3/hangovershield-sub001/internal"
)

// RedisStorage is the alternative remote mirror: JSON documents under
// checkin:<user>:<day>, with a per-user set of day ids for listing.
type RedisStorage struct {
	client *redis.Client
	logger internal.Logger
}

func NewRedisStorage(addr, password string, db int, logger internal.Logger) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Errorf("failed to connect to redis: %v", err)
		return nil, err
	}
	return &RedisStorage{client: client, logger: logger}, nil
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}

func checkinKey(userID, dayID string) string { return "checkin:" + userID + ":" + dayID }
func daysKey(userID string) string           { return "checkin_days:" + userID }
func subscriptionKey(userID string) string   { return "subscription:" + userID }

// --- CheckInRepository ---

func (r *RedisStorage) GetCheckIn(ctx context.Context, userID, dayID string) (*internal.CheckIn, error) {
	raw, err := r.client.Get(ctx, checkinKey(userID, dayID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, internal.ErrNotFound
		}
		r.logger.Errorf("failed to get check-in %s/%s: %v", userID, dayID, err)
		return nil, err
	}
	var c internal.CheckIn
	if err := json.Unmarshal(raw, &c); err != nil {
		r.logger.Errorf("corrupt check-in record %s/%s: %v", userID, dayID, err)
		return nil, err
	}
	return &c, nil
}

func (r *RedisStorage) PutCheckIn(ctx context.Context, c *internal.CheckIn) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, checkinKey(c.UserID, c.ID), raw, 0)
	pipe.SAdd(ctx, daysKey(c.UserID), c.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Errorf("failed to put check-in %s/%s: %v", c.UserID, c.ID, err)
		return err
	}
	return nil
}

func (r *RedisStorage) ListCheckIns(ctx context.Context, userID string) ([]internal.CheckIn, error) {
	days, err := r.client.SMembers(ctx, daysKey(userID)).Result()
	if err != nil {
		r.logger.Errorf("failed to list check-in days for %s: %v", userID, err)
		return nil, err
	}
	// Day ids sort lexically as dates; newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	out := make([]internal.CheckIn, 0, len(days))
	for _, day := range days {
		c, err := r.GetCheckIn(ctx, userID, day)
		if err != nil {
			if errors.Is(err, internal.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// --- SubscriptionRepository ---

func (r *RedisStorage) GetSubscription(ctx context.Context, userID string) (*internal.Subscription, error) {
	raw, err := r.client.Get(ctx, subscriptionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, internal.ErrNotFound
		}
		r.logger.Errorf("failed to get subscription for %s: %v", userID, err)
		return nil, err
	}
	var s internal.Subscription
	if err := json.Unmarshal(raw, &s); err != nil {
		r.logger.Errorf("corrupt subscription record for %s: %v", userID, err)
		return nil, err
	}
	return &s, nil
}

func (r *RedisStorage) PutSubscription(ctx context.Context, sub *internal.Subscription) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, subscriptionKey(sub.UserID), raw, 0).Err(); err != nil {
		r.logger.Errorf("failed to put subscription for %s: %v", sub.UserID, err)
		return err
	}
	return nil
}

// --- Compile-time assertions ---
var _ CheckInRepository = (*RedisStorage)(nil)
var _ SubscriptionRepository = (*RedisStorage)(nil)
