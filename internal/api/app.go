package api

import (
	"time"

	"github.com/victorsuarez3/hangovershield-sub001/internal"
	"github.com/victorsuarez3/hangovershield-sub001/internal/billing"
	"github.com/victorsuarez3/hangovershield-sub001/internal/checkin"
	"github.com/victorsuarez3/hangovershield-sub001/internal/config"
	"github.com/victorsuarez3/hangovershield-sub001/internal/entitlement"
)

// App is the dependency surface handlers pull from.
type App interface {
	Logger() internal.Logger
	Store() *checkin.Store
	Billing() *billing.Service
	Access() *entitlement.Memo
	Location() *time.Location
}

// Application is the concrete wiring built in cmd/server and in tests.
type Application struct {
	logger   internal.Logger
	store    *checkin.Store
	billing  *billing.Service
	access   *entitlement.Memo
	location *time.Location
}

func NewApplication(cfg *config.Config, logger internal.Logger, store *checkin.Store, billingSvc *billing.Service) *Application {
	loc, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		logger.Warnf("invalid DEFAULT_TIMEZONE %q, falling back to UTC", cfg.DefaultTimezone)
		loc = time.UTC
	}
	return &Application{
		logger:   logger,
		store:    store,
		billing:  billingSvc,
		access:   entitlement.NewMemo(cfg.WelcomeWindow),
		location: loc,
	}
}

func (a *Application) Logger() internal.Logger   { return a.logger }
func (a *Application) Store() *checkin.Store     { return a.store }
func (a *Application) Billing() *billing.Service { return a.billing }
func (a *Application) Access() *entitlement.Memo { return a.access }
func (a *Application) Location() *time.Location  { return a.location }

var _ App = (*Application)(nil)
