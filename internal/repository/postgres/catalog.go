package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiodesk/studiodesk/internal/domain"
)

// CatalogRepo covers the service catalog and the studio profile.
type CatalogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *CatalogRepo) ListServices(ctx context.Context, userID uuid.UUID) ([]domain.ServiceOffering, error) {
	const op = "postgres.CatalogRepo.ListServices"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, user_id, name, description, base_price, created_at
		 FROM services
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.ServiceOffering
	for rows.Next() {
		var s domain.ServiceOffering
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &s.BasePrice, &s.CreatedAt); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) CreateService(ctx context.Context, s domain.ServiceOffering) (*domain.ServiceOffering, error) {
	const op = "postgres.CatalogRepo.CreateService"

	db := r.handle()

	var out domain.ServiceOffering
	err := db.QueryRow(ctx,
		`INSERT INTO services (user_id, name, description, base_price)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, name, description, base_price, created_at`,
		s.UserID, s.Name, s.Description, s.BasePrice,
	).Scan(&out.ID, &out.UserID, &out.Name, &out.Description, &out.BasePrice, &out.CreatedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &out, nil
}

func (r *CatalogRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	const op = "postgres.CatalogRepo.GetProfile"

	db := r.handle()

	var p domain.Profile
	err := db.QueryRow(ctx,
		`SELECT user_id, studio_name, email, phone, address, updated_at
		 FROM profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.StudioName, &p.Email, &p.Phone, &p.Address, &p.UpdatedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &p, nil
}

func (r *CatalogRepo) UpsertProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	const op = "postgres.CatalogRepo.UpsertProfile"

	db := r.handle()

	var out domain.Profile
	err := db.QueryRow(ctx,
		`INSERT INTO profiles (user_id, studio_name, email, phone, address, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (user_id) DO UPDATE SET
			studio_name = EXCLUDED.studio_name,
			email       = EXCLUDED.email,
			phone       = EXCLUDED.phone,
			address     = EXCLUDED.address,
			updated_at  = now()
		 RETURNING user_id, studio_name, email, phone, address, updated_at`,
		p.UserID, p.StudioName, p.Email, p.Phone, p.Address,
	).Scan(&out.UserID, &out.StudioName, &out.Email, &out.Phone, &out.Address, &out.UpdatedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &out, nil
}
