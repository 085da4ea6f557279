package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiodesk/studiodesk/internal/domain"
)

type TeamRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TeamRepo) With(db DB) *TeamRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TeamRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

type TeamMemberPatch struct {
	Name       *string
	Role       *string
	Email      *string
	Phone      *string
	HourlyRate *float64
	Status     *domain.MemberStatus
}

func (r *TeamRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.TeamMember, error) {
	const op = "postgres.TeamRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, user_id, name, role, email, phone, hourly_rate, status, created_at
		 FROM team_members
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Name, &m.Role, &m.Email, &m.Phone,
			&m.HourlyRate, &m.Status, &m.CreatedAt,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *TeamRepo) Get(ctx context.Context, userID, id uuid.UUID) (*domain.TeamMember, error) {
	const op = "postgres.TeamRepo.Get"

	db := r.handle()

	var m domain.TeamMember
	err := db.QueryRow(ctx,
		`SELECT id, user_id, name, role, email, phone, hourly_rate, status, created_at
		 FROM team_members
		 WHERE user_id = $1 AND id = $2`,
		userID, id,
	).Scan(
		&m.ID, &m.UserID, &m.Name, &m.Role, &m.Email, &m.Phone,
		&m.HourlyRate, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &m, nil
}

func (r *TeamRepo) Create(ctx context.Context, m domain.TeamMember) (*domain.TeamMember, error) {
	const op = "postgres.TeamRepo.Create"

	db := r.handle()

	var out domain.TeamMember
	err := db.QueryRow(ctx,
		`INSERT INTO team_members (user_id, name, role, email, phone, hourly_rate, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, user_id, name, role, email, phone, hourly_rate, status, created_at`,
		m.UserID, m.Name, m.Role, m.Email, m.Phone, m.HourlyRate, m.Status,
	).Scan(
		&out.ID, &out.UserID, &out.Name, &out.Role, &out.Email, &out.Phone,
		&out.HourlyRate, &out.Status, &out.CreatedAt,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &out, nil
}

func (r *TeamRepo) Update(ctx context.Context, userID, id uuid.UUID, p TeamMemberPatch) (*domain.TeamMember, error) {
	const op = "postgres.TeamRepo.Update"

	db := r.handle()

	var out domain.TeamMember
	err := db.QueryRow(ctx,
		`UPDATE team_members SET
			name        = COALESCE($3, name),
			role        = COALESCE($4, role),
			email       = COALESCE($5, email),
			phone       = COALESCE($6, phone),
			hourly_rate = COALESCE($7, hourly_rate),
			status      = COALESCE($8, status)
		 WHERE user_id = $1 AND id = $2
		 RETURNING id, user_id, name, role, email, phone, hourly_rate, status, created_at`,
		userID, id, p.Name, p.Role, p.Email, p.Phone, p.HourlyRate, p.Status,
	).Scan(
		&out.ID, &out.UserID, &out.Name, &out.Role, &out.Email, &out.Phone,
		&out.HourlyRate, &out.Status, &out.CreatedAt,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &out, nil
}
