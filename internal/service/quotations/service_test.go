package quotations

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/studiodesk/studiodesk/internal/domain"
	"github.com/studiodesk/studiodesk/internal/notify"
	"github.com/studiodesk/studiodesk/internal/repository"
)

// fakeStore is an in-memory Store with per-user-per-day counters, the
// same numbering contract the Redis repository provides.
type fakeStore struct {
	seqs    map[string]int64
	docs    map[uuid.UUID]domain.Quotation
	saveErr error
	seqErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seqs: make(map[string]int64),
		docs: make(map[uuid.UUID]domain.Quotation),
	}
}

func (f *fakeStore) NextSeq(_ context.Context, userID uuid.UUID, day time.Time) (int64, error) {
	if f.seqErr != nil {
		return 0, f.seqErr
	}
	k := userID.String() + ":" + day.Format("2006-01-02")
	f.seqs[k]++
	return f.seqs[k], nil
}

func (f *fakeStore) Save(_ context.Context, q domain.Quotation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.docs[q.ID] = q
	return nil
}

func (f *fakeStore) Get(_ context.Context, userID, id uuid.UUID) (*domain.Quotation, error) {
	q, ok := f.docs[id]
	if !ok || q.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := q
	return &out, nil
}

func (f *fakeStore) List(_ context.Context, userID uuid.UUID) ([]domain.Quotation, error) {
	var out []domain.Quotation
	for _, q := range f.docs {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) Delete(_ context.Context, userID, id uuid.UUID) error {
	q, ok := f.docs[id]
	if !ok || q.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func testService(store Store) *Service {
	svc := New(store, notify.NewLogNotifier(slog.New(slog.NewTextHandler(io.Discard, nil))))
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func validQuotationDraft() Draft {
	return Draft{
		BillTo: domain.BillTo{Name: "Garcia Family"},
		Items: []domain.QuotationItem{
			{Description: "Wedding coverage", Quantity: 1, UnitPrice: 1200},
			{Description: "Edited prints", Quantity: 21, UnitPrice: 150},
		},
	}
}

func TestCreate_NumbersAndTotals(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)
	userID := uuid.New()

	q, err := svc.Create(context.Background(), userID, validQuotationDraft())

	assert.NoError(t, err)
	assert.Equal(t, "05/03/2026/1", q.Number)
	assert.Equal(t, domain.QuotationDraft, q.Status)
	assert.Equal(t, 4350.0, q.Total)
	assert.Contains(t, store.docs, q.ID)
}

func TestCreate_SequenceIsPerUserPerDay(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)
	alice := uuid.New()
	bob := uuid.New()

	q1, err := svc.Create(context.Background(), alice, validQuotationDraft())
	assert.NoError(t, err)
	q2, err := svc.Create(context.Background(), alice, validQuotationDraft())
	assert.NoError(t, err)
	q3, err := svc.Create(context.Background(), bob, validQuotationDraft())
	assert.NoError(t, err)

	assert.Equal(t, "05/03/2026/1", q1.Number)
	assert.Equal(t, "05/03/2026/2", q2.Number)
	// Another user's counter starts fresh.
	assert.Equal(t, "05/03/2026/1", q3.Number)
}

func TestCreate_ExplicitIssueDateDrivesNumber(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)
	userID := uuid.New()

	d := validQuotationDraft()
	d.IssueDate = time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	q, err := svc.Create(context.Background(), userID, d)

	assert.NoError(t, err)
	assert.Equal(t, "01/04/2026/1", q.Number)
}

func TestCreate_Unauthenticated(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)

	_, err := svc.Create(context.Background(), uuid.Nil, validQuotationDraft())

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, store.seqs)
	assert.Empty(t, store.docs)
}

func TestCreate_DraftChecks(t *testing.T) {
	svc := testService(newFakeStore())
	userID := uuid.New()

	d := validQuotationDraft()
	d.Items = nil
	_, err := svc.Create(context.Background(), userID, d)
	assert.ErrorIs(t, err, ErrNoItems)

	d = validQuotationDraft()
	d.BillTo.Name = ""
	_, err = svc.Create(context.Background(), userID, d)
	assert.ErrorIs(t, err, ErrMissingBillToName)
}

func TestCreate_SaveFailureLeavesNothingListed(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("redis down")
	svc := testService(store)

	_, err := svc.Create(context.Background(), uuid.New(), validQuotationDraft())

	assert.Error(t, err)
	assert.Empty(t, store.docs)
}

func TestUpdate_RecomputesAndMovesStatus(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)
	userID := uuid.New()

	q, err := svc.Create(context.Background(), userID, validQuotationDraft())
	assert.NoError(t, err)

	d := validQuotationDraft()
	d.Items = []domain.QuotationItem{{Description: "Session", Quantity: 10, UnitPrice: 150}}

	out, err := svc.Update(context.Background(), userID, q.ID, d, domain.QuotationSent)

	assert.NoError(t, err)
	assert.Equal(t, 1500.0, out.Total)
	assert.Equal(t, domain.QuotationSent, out.Status)
	// Number and issue date are immutable after creation.
	assert.Equal(t, q.Number, out.Number)
	assert.Equal(t, q.IssueDate, out.IssueDate)
}

func TestUpdate_CannotSetConvertedDirectly(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)
	userID := uuid.New()

	q, err := svc.Create(context.Background(), userID, validQuotationDraft())
	assert.NoError(t, err)

	out, err := svc.Update(context.Background(), userID, q.ID, validQuotationDraft(), domain.QuotationConverted)

	assert.NoError(t, err)
	assert.Equal(t, domain.QuotationDraft, out.Status)
}

func TestConvert_TerminalFlip(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)
	userID := uuid.New()

	q, err := svc.Create(context.Background(), userID, validQuotationDraft())
	assert.NoError(t, err)

	out, err := svc.Convert(context.Background(), userID, q.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.QuotationConverted, out.Status)

	// Converted is terminal for both edit and re-convert.
	_, err = svc.Convert(context.Background(), userID, q.ID)
	assert.ErrorIs(t, err, ErrAlreadyConverted)

	_, err = svc.Update(context.Background(), userID, q.ID, validQuotationDraft(), "")
	assert.ErrorIs(t, err, ErrAlreadyConverted)
}

func TestGetAndDelete_NotFound(t *testing.T) {
	svc := testService(newFakeStore())
	userID := uuid.New()

	_, err := svc.Get(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, ErrQuotationNotFound)

	err = svc.Delete(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, ErrQuotationNotFound)
}

func TestGet_ScopedToOwner(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)
	owner := uuid.New()

	q, err := svc.Create(context.Background(), owner, validQuotationDraft())
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), q.ID)
	assert.ErrorIs(t, err, ErrQuotationNotFound)
}
