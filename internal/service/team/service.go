package team

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

type Service struct {
	store    *postgresrepo.Store
	notifier notify.Notifier
}

func New(store *postgresrepo.Store, notifier notify.Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.TeamMember, error) {
	const op = "service.team.List"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	out, err := s.store.Team().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.TeamMember, error) {
	const op = "service.team.Get"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	m, err := s.store.Team().Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// Create adds a team member. With invite set, the member starts
// inactive pending the invitation; otherwise it starts active.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, m domain.TeamMember, invite bool) (*domain.TeamMember, error) {
	const op = "service.team.Create"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	m.UserID = userID
	if m.Status == "" {
		m.Status = domain.MemberActive
		if invite {
			m.Status = domain.MemberInactive
		}
	}
	if !m.Status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	out, err := s.store.Team().Create(ctx, m)
	if err != nil {
		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Error",
			Description: "Failed to add team member. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifier.Notify(ctx, userID, notify.Notification{
		Title:       "Team member added",
		Description: fmt.Sprintf("%s has joined your team.", out.Name),
		Severity:    notify.SeveritySuccess,
	})

	return out, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, p postgresrepo.TeamMemberPatch) (*domain.TeamMember, error) {
	const op = "service.team.Update"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if p.Status != nil && !p.Status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	out, err := s.store.Team().Update(ctx, userID, id, p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}

		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Error",
			Description: "Failed to update team member. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifier.Notify(ctx, userID, notify.Notification{
		Title:       "Team member updated",
		Description: fmt.Sprintf("%s has been updated.", out.Name),
		Severity:    notify.SeveritySuccess,
	})

	return out, nil
}

// Schedule returns the bookings a member is assigned to within
// [from, to]. Inactive members have no viewable schedule.
//
// Returns team.ErrMemberInactive for inactive members.
func (s *Service) Schedule(ctx context.Context, userID, memberID uuid.UUID, from, to time.Time) ([]domain.Booking, error) {
	const op = "service.team.Schedule"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	m, err := s.store.Team().Get(ctx, userID, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if m.Status == domain.MemberInactive {
		return nil, fmt.Errorf("%s: %w", op, ErrMemberInactive)
	}

	out, err := s.store.Bookings().ListForMember(ctx, userID, memberID.String(), from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
