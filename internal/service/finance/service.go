package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studiodesk/studiodesk/internal/domain"
	"github.com/studiodesk/studiodesk/internal/notify"
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

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.FinancialRecord, error) {
	const op = "service.finance.List"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	out, err := s.store.Finance().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, rec domain.FinancialRecord) (*domain.FinancialRecord, error) {
	const op = "service.finance.Create"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if !rec.Type.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidType)
	}

	rec.UserID = userID
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}

	out, err := s.store.Finance().Create(ctx, rec)
	if err != nil {
		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Error",
			Description: "Failed to add financial record. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = s.cache.Del(ctx,
		redisrepo.KeyFinanceSummary(userID, 0, 0),
		redisrepo.KeyFinanceSummary(userID, int(out.Date.Month()), out.Date.Year()),
		redisrepo.KeyFinanceSummary(userID, 0, out.Date.Year()),
	)

	s.notifier.Notify(ctx, userID, notify.Notification{
		Title:       "Record added",
		Description: fmt.Sprintf("%s of %.2f recorded.", out.Type, out.Amount),
		Severity:    notify.SeveritySuccess,
	})

	return out, nil
}

// Summary aggregates the ledger, optionally scoped to a month+year or
// a year. The result is cached briefly per scope.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, month, year int) (*domain.FinanceSummary, error) {
	const op = "service.finance.Summary"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	// month without year imposes no constraint, same as the booking
	// date filter.
	if year == 0 {
		month = 0
	}

	key := redisrepo.KeyFinanceSummary(userID, month, year)

	fs, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.SummaryTTL,
		func(ctx context.Context) (domain.FinanceSummary, error) {
			out, err := s.store.Finance().Summary(ctx, userID, month, year)
			if err != nil {
				return domain.FinanceSummary{}, err
			}
			return *out, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &fs, nil
}
