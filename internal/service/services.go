package service

import (
	"github.com/studiodesk/studiodesk/internal/notify"
	postgres "github.com/studiodesk/studiodesk/internal/repository/postgres"
	redis "github.com/studiodesk/studiodesk/internal/repository/redis"
	"github.com/studiodesk/studiodesk/internal/service/bookings"
	"github.com/studiodesk/studiodesk/internal/service/clients"
	"github.com/studiodesk/studiodesk/internal/service/finance"
	"github.com/studiodesk/studiodesk/internal/service/quotations"
	"github.com/studiodesk/studiodesk/internal/service/settings"
	"github.com/studiodesk/studiodesk/internal/service/studio"
	"github.com/studiodesk/studiodesk/internal/service/team"
)

type Services struct {
	Clients    *clients.Service
	Team       *team.Service
	Bookings   *bookings.Service
	Finance    *finance.Service
	Quotations *quotations.Service
	Settings   *settings.Service
	Studio     *studio.Service
}

type Config struct {
	Clients clients.Config
	Finance finance.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	notifier notify.Notifier,
	limiter *redis.SlidingWindowLimiter,
	quotRepo *redis.QuotationRepo,
	prefs *redis.PreferenceStore,
	cfg Config,
) *Services {
	return &Services{
		Clients:    clients.New(store, cache, notifier, cfg.Clients),
		Team:       team.New(store, notifier),
		Bookings:   bookings.New(bookings.NewPgStore(store), cache, notifier, limiter),
		Finance:    finance.New(store, cache, notifier, cfg.Finance),
		Quotations: quotations.New(quotRepo, notifier),
		Settings:   settings.New(prefs),
		Studio:     studio.New(store),
	}
}
