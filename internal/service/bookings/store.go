package bookings

import (
	"context"

	"github.com/google/uuid"
	"github.com/studiodesk/studiodesk/internal/domain"
	postgresrepo "github.com/studiodesk/studiodesk/internal/repository/postgres"
	"github.com/studiodesk/studiodesk/internal/uow"
)

// PgStore adapts the Postgres store and its unit of work to the Store
// interface.
type PgStore struct {
	store *postgresrepo.Store
	uow   *uow.UoW
}

func NewPgStore(store *postgresrepo.Store) *PgStore {
	return &PgStore{
		store: store,
		uow:   uow.NewUoW(store),
	}
}

func (s *PgStore) List(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	return s.store.Bookings().List(ctx, userID)
}

func (s *PgStore) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Booking, error) {
	return s.store.Bookings().Get(ctx, userID, id)
}

func (s *PgStore) Update(ctx context.Context, userID, id uuid.UUID, p postgresrepo.BookingPatch) (*domain.Booking, error) {
	return s.store.Bookings().Update(ctx, userID, id, p)
}

func (s *PgStore) UpdateStatus(ctx context.Context, userID, id uuid.UUID, next domain.BookingStatus) (*domain.Booking, error) {
	return s.store.Bookings().UpdateStatus(ctx, userID, id, next)
}

// Create writes the booking, creating the inline client first when one
// is given, inside a single transaction. The after callback is
// registered as an after-commit hook, so it never fires for a rolled
// back write.
func (s *PgStore) Create(
	ctx context.Context,
	b domain.Booking,
	inline *domain.Client,
	after func(ctx context.Context, created domain.Booking),
) (*domain.Booking, error) {
	var out *domain.Booking

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, hook func(uow.AfterCommit)) error {
		if inline != nil {
			c, err := s.store.Clients().With(tx).Create(ctx, *inline)
			if err != nil {
				return err
			}
			b.ClientID = c.ID
		}

		created, err := s.store.Bookings().With(tx).Create(ctx, b)
		if err != nil {
			return err
		}
		out = created

		if after != nil {
			hook(func(ctx context.Context) {
				after(ctx, *created)
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
