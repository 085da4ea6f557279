package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studiodesk/studiodesk/internal/domain"
	"github.com/studiodesk/studiodesk/internal/notify"
	"github.com/studiodesk/studiodesk/internal/repository"
	postgresrepo "github.com/studiodesk/studiodesk/internal/repository/postgres"
	redisrepo "github.com/studiodesk/studiodesk/internal/repository/redis"
)

type Config struct {
	SummaryTTL time.Duration
}

type Service struct {
	store    *postgresrepo.Store
	cache    *redisrepo.Cache
	notifier notify.Notifier
	cfg      Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, notifier notify.Notifier, cfg Config) *Service {
	if cfg.SummaryTTL <= 0 {
		cfg.SummaryTTL = 30 * time.Second
	}

	return &Service{
		store:    store,
		cache:    cache,
		notifier: notifier,
		cfg:      cfg,
	}
}

// List returns the user's clients, newest first, with their derived
// booking aggregates. The aggregates are cached briefly and recomputed
// from the bookings table, never read from a stale denormalized column.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.ClientSummary, error) {
	const op = "service.clients.List"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	key := redisrepo.KeyClientList(userID)

	out, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.SummaryTTL,
		func(ctx context.Context) ([]domain.ClientSummary, error) {
			return s.store.Clients().List(ctx, userID)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Get returns one client with its derived aggregates.
//
// Returns clients.ErrClientNotFound if the client does not exist.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.ClientSummary, error) {
	const op = "service.clients.Get"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	key := redisrepo.KeyClientSummary(userID, id)

	cs, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.SummaryTTL,
		func(ctx context.Context) (domain.ClientSummary, error) {
			c, err := s.store.Clients().Get(ctx, userID, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.ClientSummary{}, ErrClientNotFound
				}
				return domain.ClientSummary{}, err
			}
			return *c, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cs, nil
}

// Create inserts a client for the user and returns the canonical row.
// Mutations with no authenticated user never reach the store.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, c domain.Client) (*domain.Client, error) {
	const op = "service.clients.Create"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	c.UserID = userID

	out, err := s.store.Clients().Create(ctx, c)
	if err != nil {
		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Error",
			Description: "Failed to add client. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = s.cache.Del(ctx, redisrepo.KeyClientList(userID))

	s.notifier.Notify(ctx, userID, notify.Notification{
		Title:       "Client added",
		Description: fmt.Sprintf("%s has been added to your clients.", out.Name),
		Severity:    notify.SeveritySuccess,
	})

	return out, nil
}

// Update applies a partial update and returns the canonical row.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, p postgresrepo.ClientPatch) (*domain.Client, error) {
	const op = "service.clients.Update"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	out, err := s.store.Clients().Update(ctx, userID, id, p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrClientNotFound)
		}

		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Error",
			Description: "Failed to update client. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = s.cache.InvalidateClient(ctx, userID, id)

	s.notifier.Notify(ctx, userID, notify.Notification{
		Title:       "Client updated",
		Description: fmt.Sprintf("%s has been updated.", out.Name),
		Severity:    notify.SeveritySuccess,
	})

	return out, nil
}
