package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiodesk/studiodesk/internal/domain"
)

type ClientRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ClientRepo) With(db DB) *ClientRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ClientRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// ClientPatch carries the fields of a partial client update. Nil
// pointers leave the column untouched.
type ClientPatch struct {
	Name  *string
	Email *string
	Phone *string
	Notes *string
}

const clientSummaryCols = `
	c.id, c.user_id, c.name, c.email, c.phone, c.notes, c.created_at,
	COUNT(b.id),
	COALESCE(SUM(b.amount), 0),
	MAX(b.date)`

// List returns every client of the user, newest first, with booking
// aggregates (total bookings, total spent, last booked) computed from
// the bookings table. Cancelled bookings do not count.
func (r *ClientRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.ClientSummary, error) {
	const op = "postgres.ClientRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT`+clientSummaryCols+`
		 FROM clients c
		 LEFT JOIN bookings b ON b.client_id = c.id AND b.status <> 'cancelled'
		 WHERE c.user_id = $1
		 GROUP BY c.id
		 ORDER BY c.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.ClientSummary
	for rows.Next() {
		var cs domain.ClientSummary
		if err := rows.Scan(
			&cs.ID, &cs.UserID, &cs.Name, &cs.Email, &cs.Phone, &cs.Notes, &cs.CreatedAt,
			&cs.TotalBookings, &cs.TotalSpent, &cs.LastBooked,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Get returns one client of the user with its booking aggregates.
//
// Returns repository.ErrNotFound if the client does not exist or
// belongs to another user.
func (r *ClientRepo) Get(ctx context.Context, userID, id uuid.UUID) (*domain.ClientSummary, error) {
	const op = "postgres.ClientRepo.Get"

	db := r.handle()

	var cs domain.ClientSummary
	err := db.QueryRow(ctx,
		`SELECT`+clientSummaryCols+`
		 FROM clients c
		 LEFT JOIN bookings b ON b.client_id = c.id AND b.status <> 'cancelled'
		 WHERE c.user_id = $1 AND c.id = $2
		 GROUP BY c.id`,
		userID, id,
	).Scan(
		&cs.ID, &cs.UserID, &cs.Name, &cs.Email, &cs.Phone, &cs.Notes, &cs.CreatedAt,
		&cs.TotalBookings, &cs.TotalSpent, &cs.LastBooked,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &cs, nil
}

// Create inserts a client tagged with the user and returns the
// canonical row including the server-assigned ID.
func (r *ClientRepo) Create(ctx context.Context, c domain.Client) (*domain.Client, error) {
	const op = "postgres.ClientRepo.Create"

	db := r.handle()

	var out domain.Client
	err := db.QueryRow(ctx,
		`INSERT INTO clients (user_id, name, email, phone, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, name, email, phone, notes, created_at`,
		c.UserID, c.Name, c.Email, c.Phone, c.Notes,
	).Scan(&out.ID, &out.UserID, &out.Name, &out.Email, &out.Phone, &out.Notes, &out.CreatedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &out, nil
}

// Update applies a partial update and returns the canonical row.
func (r *ClientRepo) Update(ctx context.Context, userID, id uuid.UUID, p ClientPatch) (*domain.Client, error) {
	const op = "postgres.ClientRepo.Update"

	db := r.handle()

	var out domain.Client
	err := db.QueryRow(ctx,
		`UPDATE clients SET
			name  = COALESCE($3, name),
			email = COALESCE($4, email),
			phone = COALESCE($5, phone),
			notes = COALESCE($6, notes)
		 WHERE user_id = $1 AND id = $2
		 RETURNING id, user_id, name, email, phone, notes, created_at`,
		userID, id, p.Name, p.Email, p.Phone, p.Notes,
	).Scan(&out.ID, &out.UserID, &out.Name, &out.Email, &out.Phone, &out.Notes, &out.CreatedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &out, nil
}
