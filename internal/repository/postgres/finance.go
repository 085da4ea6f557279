package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studiodesk/studiodesk/internal/domain"
)

type FinanceRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *FinanceRepo) With(db DB) *FinanceRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *FinanceRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *FinanceRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.FinancialRecord, error) {
	const op = "postgres.FinanceRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, user_id, type, description, amount, date, category,
		        booking_id, team_member_id, created_at
		 FROM financial_records
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.FinancialRecord
	for rows.Next() {
		var rec domain.FinancialRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Type, &rec.Description, &rec.Amount,
			&rec.Date, &rec.Category, &rec.BookingID, &rec.TeamMemberID, &rec.CreatedAt,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *FinanceRepo) Create(ctx context.Context, rec domain.FinancialRecord) (*domain.FinancialRecord, error) {
	const op = "postgres.FinanceRepo.Create"

	db := r.handle()

	var out domain.FinancialRecord
	err := db.QueryRow(ctx,
		`INSERT INTO financial_records (
			user_id, type, description, amount, date, category, booking_id, team_member_id
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, user_id, type, description, amount, date, category,
		           booking_id, team_member_id, created_at`,
		rec.UserID, rec.Type, rec.Description, rec.Amount, rec.Date,
		rec.Category, rec.BookingID, rec.TeamMemberID,
	).Scan(
		&out.ID, &out.UserID, &out.Type, &out.Description, &out.Amount,
		&out.Date, &out.Category, &out.BookingID, &out.TeamMemberID, &out.CreatedAt,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &out, nil
}

// Summary aggregates income and expenses for the user. month (1-12)
// is honored only together with year; year alone scopes the calendar
// year; zero values mean no date constraint.
func (r *FinanceRepo) Summary(ctx context.Context, userID uuid.UUID, month, year int) (*domain.FinanceSummary, error) {
	const op = "postgres.FinanceRepo.Summary"

	db := r.handle()

	q := `SELECT
			COALESCE(SUM(CASE WHEN type = 'income'  THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		  FROM financial_records
		  WHERE user_id = $1`

	args := []any{userID}

	switch {
	case month != 0 && year != 0:
		q += ` AND EXTRACT(MONTH FROM date) = $2 AND EXTRACT(YEAR FROM date) = $3`
		args = append(args, month, year)
	case year != 0:
		q += ` AND EXTRACT(YEAR FROM date) = $2`
		args = append(args, year)
	}

	var fs domain.FinanceSummary
	if err := db.QueryRow(ctx, q, args...).Scan(&fs.TotalIncome, &fs.TotalExpenses); err != nil {
		return nil, wrapDBErr(op, err)
	}

	fs.Net = fs.TotalIncome - fs.TotalExpenses

	return &fs, nil
}
