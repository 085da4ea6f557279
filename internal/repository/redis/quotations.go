package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/studiodesk/studiodesk/internal/domain"
	"github.com/studiodesk/studiodesk/internal/repository"
)

// QuotationRepo keeps each user's quotations in a hash keyed by
// quotation ID, with JSON values, plus an atomic per-day sequence for
// document numbering.
type QuotationRepo struct {
	rdb *redis.Client
}

func NewQuotationRepo(rdb *redis.Client) *QuotationRepo {
	return &QuotationRepo{rdb: rdb}
}

// NextSeq atomically increments and returns the numbering sequence for
// the given issue day. A quotation issued on another day never shares
// a sequence with it.
func (r *QuotationRepo) NextSeq(ctx context.Context, userID uuid.UUID, day time.Time) (int64, error) {
	const op = "redis.QuotationRepo.NextSeq"

	key := KeyQuotationSeq(userID, day.Format("2006-01-02"))

	n, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// The counter is only needed while its day can still issue
	// documents; keep it for a couple of days past that.
	_ = r.rdb.Expire(ctx, key, 72*time.Hour).Err()

	return n, nil
}

func (r *QuotationRepo) Save(ctx context.Context, q domain.Quotation) error {
	const op = "redis.QuotationRepo.Save"

	b, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.rdb.HSet(ctx, KeyQuotations(q.UserID), q.ID.String(), string(b)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *QuotationRepo) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Quotation, error) {
	const op = "redis.QuotationRepo.Get"

	v, err := r.rdb.HGet(ctx, KeyQuotations(userID), id.String()).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var q domain.Quotation
	if err := json.Unmarshal([]byte(v), &q); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &q, nil
}

// List returns the user's quotations, newest first.
func (r *QuotationRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.Quotation, error) {
	const op = "redis.QuotationRepo.List"

	vals, err := r.rdb.HGetAll(ctx, KeyQuotations(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]domain.Quotation, 0, len(vals))
	for _, v := range vals {
		var q domain.Quotation
		if err := json.Unmarshal([]byte(v), &q); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, q)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *QuotationRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const op = "redis.QuotationRepo.Delete"

	n, err := r.rdb.HDel(ctx, KeyQuotations(userID), id.String()).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}
