package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiodesk/studiodesk/internal/domain"
)

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// BookingPatch carries the editable fields of a booking. Status is
// not part of it; transitions go through UpdateStatus.
type BookingPatch struct {
	Name                  *string
	ServiceIDs            *[]string
	Date                  *time.Time
	StartTime             *string
	EndTime               *string
	Location              *string
	AssignedTeamMemberIDs *[]string
	Amount                *float64
	Expenses              *float64
	PaymentStatus         *domain.PaymentStatus
	Notes                 *string
}

const bookingCols = `
	b.id, b.user_id, b.name, b.client_id, c.name,
	b.service_ids, b.date, b.start_time, b.end_time, b.location,
	b.team_member_ids, b.status, b.amount, b.expenses, b.payment_status,
	b.notes, b.created_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.Name, &b.ClientID, &b.ClientName,
		&b.ServiceIDs, &b.Date, &b.StartTime, &b.EndTime, &b.Location,
		&b.AssignedTeamMemberIDs, &b.Status, &b.Amount, &b.Expenses, &b.PaymentStatus,
		&b.Notes, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns every booking of the user, newest first, embedding the
// client's name.
func (r *BookingRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	const op = "postgres.BookingRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT`+bookingCols+`
		 FROM bookings b
		 JOIN clients c ON c.id = b.client_id
		 WHERE b.user_id = $1
		 ORDER BY b.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// ListForMember returns the user's bookings a team member is assigned
// to within [from, to], ordered by date then start time. Bookings
// without a date are excluded.
func (r *BookingRepo) ListForMember(
	ctx context.Context,
	userID uuid.UUID,
	memberID string,
	from, to time.Time,
) ([]domain.Booking, error) {
	const op = "postgres.BookingRepo.ListForMember"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT`+bookingCols+`
		 FROM bookings b
		 JOIN clients c ON c.id = b.client_id
		 WHERE b.user_id = $1
		   AND $2 = ANY(b.team_member_ids)
		   AND b.date IS NOT NULL
		   AND b.date BETWEEN $3 AND $4
		 ORDER BY b.date, b.start_time`,
		userID, memberID, from, to,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *BookingRepo) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Get"

	db := r.handle()

	b, err := scanBooking(db.QueryRow(ctx,
		`SELECT`+bookingCols+`
		 FROM bookings b
		 JOIN clients c ON c.id = b.client_id
		 WHERE b.user_id = $1 AND b.id = $2`,
		userID, id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return b, nil
}

// Create inserts a booking and returns the canonical row. The client
// must exist; a dangling client_id surfaces as ErrNotFound via the
// foreign key.
func (r *BookingRepo) Create(ctx context.Context, b domain.Booking) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Create"

	db := r.handle()

	var id uuid.UUID
	err := db.QueryRow(ctx,
		`INSERT INTO bookings (
			user_id, name, client_id, service_ids, date, start_time, end_time,
			location, team_member_ids, status, amount, expenses, payment_status, notes
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id`,
		b.UserID, b.Name, b.ClientID, b.ServiceIDs, b.Date, b.StartTime, b.EndTime,
		b.Location, b.AssignedTeamMemberIDs, b.Status, b.Amount, b.Expenses,
		b.PaymentStatus, b.Notes,
	).Scan(&id)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := r.Get(ctx, b.UserID, id)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Update applies a partial update to a booking and returns the
// canonical row.
func (r *BookingRepo) Update(ctx context.Context, userID, id uuid.UUID, p BookingPatch) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Update"

	db := r.handle()

	_, err := db.Exec(ctx,
		`UPDATE bookings SET
			name            = COALESCE($3, name),
			service_ids     = COALESCE($4, service_ids),
			date            = COALESCE($5, date),
			start_time      = COALESCE($6, start_time),
			end_time        = COALESCE($7, end_time),
			location        = COALESCE($8, location),
			team_member_ids = COALESCE($9, team_member_ids),
			amount          = COALESCE($10, amount),
			expenses        = COALESCE($11, expenses),
			payment_status  = COALESCE($12, payment_status),
			notes           = COALESCE($13, notes)
		 WHERE user_id = $1 AND id = $2`,
		userID, id, p.Name, p.ServiceIDs, p.Date, p.StartTime, p.EndTime,
		p.Location, p.AssignedTeamMemberIDs, p.Amount, p.Expenses,
		p.PaymentStatus, p.Notes,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// UpdateStatus moves a booking to the given status, guarded so a
// terminal row is never overwritten even under concurrent updates.
//
// Returns repository.ErrNotFound if no matching non-terminal booking
// exists.
func (r *BookingRepo) UpdateStatus(
	ctx context.Context,
	userID, id uuid.UUID,
	status domain.BookingStatus,
) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.UpdateStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE bookings SET status = $3
		 WHERE user_id = $1 AND id = $2
		   AND status NOT IN ('completed', 'cancelled')`,
		userID, id, status,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return nil, wrapDBErr(op, pgx.ErrNoRows)
	}

	out, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
