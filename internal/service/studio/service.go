package studio

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/studiodesk/studiodesk/internal/domain"
	"github.com/studiodesk/studiodesk/internal/repository"
	postgresrepo "github.com/studiodesk/studiodesk/internal/repository/postgres"
)

// Service covers the studio's service catalog and profile.
type Service struct {
	store *postgresrepo.Store
}

func New(store *postgresrepo.Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListServices(ctx context.Context, userID uuid.UUID) ([]domain.ServiceOffering, error) {
	const op = "service.studio.ListServices"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	out, err := s.store.Catalog().ListServices(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Service) CreateService(ctx context.Context, userID uuid.UUID, svc domain.ServiceOffering) (*domain.ServiceOffering, error) {
	const op = "service.studio.CreateService"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	svc.UserID = userID

	out, err := s.store.Catalog().CreateService(ctx, svc)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, ErrServiceConflict)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	const op = "service.studio.GetProfile"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	p, err := s.store.Catalog().GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (s *Service) SaveProfile(ctx context.Context, userID uuid.UUID, p domain.Profile) (*domain.Profile, error) {
	const op = "service.studio.SaveProfile"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	p.UserID = userID

	out, err := s.store.Catalog().UpsertProfile(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
