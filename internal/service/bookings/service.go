package bookings

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
)

// Store is the persistence boundary for bookings. The production
// implementation wraps the Postgres store and its unit of work; tests
// use an in-memory fake.
type Store interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, userID, id uuid.UUID, p postgresrepo.BookingPatch) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, next domain.BookingStatus) (*domain.Booking, error)
	// Create persists the booking, first creating the inline client in
	// the same transaction when one is given. after runs only once the
	// transaction has committed.
	Create(ctx context.Context, b domain.Booking, inline *domain.Client, after func(ctx context.Context, created domain.Booking)) (*domain.Booking, error)
}

// Limiter throttles booking creation per caller key.
type Limiter interface {
	Allow(ctx context.Context, suffix string) (allowed bool, current int64, retryAfter time.Duration, err error)
}

// CacheInvalidator drops cached client aggregates after a booking
// mutation.
type CacheInvalidator interface {
	InvalidateClient(ctx context.Context, userID, clientID uuid.UUID) error
}

type Service struct {
	store    Store
	cache    CacheInvalidator
	notifier notify.Notifier
	limiter  Limiter
}

func New(
	store Store,
	cache CacheInvalidator,
	notifier notify.Notifier,
	limiter Limiter,
) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		notifier: notifier,
		limiter:  limiter,
	}
}

// InlineClient is a client created together with a booking, in the
// same transaction.
type InlineClient struct {
	Name  string
	Email string
	Phone string
}

// List returns the user's bookings narrowed by the filter
// specification, newest first. The view is recomputed from the
// canonical rows on every call.
func (s *Service) List(ctx context.Context, userID uuid.UUID, f domain.BookingFilter) ([]domain.Booking, error) {
	const op = "service.bookings.List"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	list, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return domain.FilterBookings(list, f), nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Booking, error) {
	const op = "service.bookings.Get"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	b, err := s.store.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

// Create validates the draft and persists a pending booking. With an
// inline client, the client row and the booking are written in one
// transaction so a failed booking never leaves an orphan client.
//
// Field errors are returned alongside ErrValidation; no persistence
// call is made for an invalid draft.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	draft domain.BookingDraft,
	inline *InlineClient,
	rlKey string,
) (*domain.Booking, domain.FieldErrors, error) {
	const op = "service.bookings.Create"

	if userID == uuid.Nil {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			return nil, nil, fmt.Errorf("%s: %w (retry in %s)", op, ErrRateLimited, retry)
		}
	}

	fieldErrs := draft.Validate()
	if inline != nil && inline.Name != "" {
		// The client is being created inline; the draft legitimately
		// has no client_id yet.
		delete(fieldErrs, "client_id")
	}
	if len(fieldErrs) > 0 {
		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Check the form",
			Description: "Some booking fields are missing or invalid.",
			Severity:    notify.SeverityError,
		})
		return nil, fieldErrs, fmt.Errorf("%s: %w", op, ErrValidation)
	}

	b, err := draft.ToBooking()
	if err != nil {
		return nil, domain.FieldErrors{"client_id": "invalid client"}, fmt.Errorf("%s: %w", op, ErrValidation)
	}
	b.UserID = userID

	var inlineClient *domain.Client
	if inline != nil && inline.Name != "" {
		inlineClient = &domain.Client{
			UserID: userID,
			Name:   inline.Name,
			Email:  inline.Email,
			Phone:  inline.Phone,
		}
	}

	out, err := s.store.Create(ctx, b, inlineClient, func(ctx context.Context, created domain.Booking) {
		_ = s.cache.InvalidateClient(ctx, userID, created.ClientID)
		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Booking created",
			Description: fmt.Sprintf("%s has been scheduled.", created.Name),
			Severity:    notify.SeveritySuccess,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", op, ErrClientNotFound)
		}

		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Error",
			Description: "Failed to create booking. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil, nil
}

// UpdateDetails applies a partial edit to a non-terminal booking.
//
// Returns bookings.ErrBookingFinalized for completed or cancelled
// bookings and bookings.ErrInvalidTimeRange when the effective time
// window would be empty or inverted.
func (s *Service) UpdateDetails(ctx context.Context, userID, id uuid.UUID, p postgresrepo.BookingPatch) (*domain.Booking, error) {
	const op = "service.bookings.UpdateDetails"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	cur, err := s.store.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cur.Status.Terminal() {
		return nil, fmt.Errorf("%s: %w", op, ErrBookingFinalized)
	}

	start, end := cur.StartTime, cur.EndTime
	if p.StartTime != nil {
		start = *p.StartTime
	}
	if p.EndTime != nil {
		end = *p.EndTime
	}
	if start >= end {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidTimeRange)
	}

	if p.PaymentStatus != nil && !p.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%s: invalid payment status %q", op, *p.PaymentStatus)
	}

	out, err := s.store.Update(ctx, userID, id, p)
	if err != nil {
		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Error",
			Description: "Failed to update booking. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = s.cache.InvalidateClient(ctx, userID, out.ClientID)

	s.notifier.Notify(ctx, userID, notify.Notification{
		Title:       "Booking updated",
		Description: fmt.Sprintf("%s has been updated.", out.Name),
		Severity:    notify.SeveritySuccess,
	})

	return out, nil
}

// Transition moves a booking to the next status. Completed and
// cancelled are terminal; the repository guard makes the check hold
// under concurrent updates too.
func (s *Service) Transition(ctx context.Context, userID, id uuid.UUID, next domain.BookingStatus) (*domain.Booking, error) {
	const op = "service.bookings.Transition"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	cur, err := s.store.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cur.Status.Terminal() {
		return nil, fmt.Errorf("%s: %w", op, ErrBookingFinalized)
	}

	if !cur.Status.CanTransition(next) {
		return nil, fmt.Errorf("%s: %w: %s -> %s", op, ErrInvalidTransition, cur.Status, next)
	}

	out, err := s.store.UpdateStatus(ctx, userID, id, next)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Lost the race against another terminal transition.
			return nil, fmt.Errorf("%s: %w", op, ErrBookingFinalized)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = s.cache.InvalidateClient(ctx, userID, out.ClientID)

	s.notifier.Notify(ctx, userID, notify.Notification{
		Title:       "Booking " + string(next),
		Description: fmt.Sprintf("%s is now %s.", out.Name, next),
		Severity:    notify.SeveritySuccess,
	})

	return out, nil
}
