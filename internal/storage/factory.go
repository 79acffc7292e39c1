package storage

import (
	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/config"
)

// NewRemoteRepositories builds the remote mirror for the configured backend.
// In local-only mode (REMOTE_BACKEND=none) the check-in repository is nil and
// subscription state falls back to the file store.
func NewRemoteRepositories(cfg *config.Config, logger internal.Logger) (CheckInRepository, SubscriptionRepository, error) {
	switch cfg.RemoteBackend {
	case "postgres":
		s, err := NewPostgresStorage(cfg.PostgresDSN, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case "redis":
		s, err := NewRedisStorage(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		subs, err := NewFileSubscriptionStore(cfg.SubscriptionsFile, logger)
		if err != nil {
			return nil, nil, err
		}
		return nil, subs, nil
	}
}
