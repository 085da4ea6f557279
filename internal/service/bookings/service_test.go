package bookings

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/studiodesk/studiodesk/internal/domain"
	"github.com/studiodesk/studiodesk/internal/notify"
	"github.com/studiodesk/studiodesk/internal/repository"
	postgresrepo "github.com/studiodesk/studiodesk/internal/repository/postgres"
)

// fakeBookingStore records every call so tests can assert that guard
// failures never reach persistence.
type fakeBookingStore struct {
	bookings map[uuid.UUID]domain.Booking
	calls    []string
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[uuid.UUID]domain.Booking)}
}

func (f *fakeBookingStore) List(_ context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	f.calls = append(f.calls, "List")
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) Get(_ context.Context, userID, id uuid.UUID) (*domain.Booking, error) {
	f.calls = append(f.calls, "Get")
	b, ok := f.bookings[id]
	if !ok || b.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := b
	return &out, nil
}

func (f *fakeBookingStore) Update(_ context.Context, userID, id uuid.UUID, p postgresrepo.BookingPatch) (*domain.Booking, error) {
	f.calls = append(f.calls, "Update")
	b, ok := f.bookings[id]
	if !ok || b.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.StartTime != nil {
		b.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		b.EndTime = *p.EndTime
	}
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
	f.bookings[id] = b
	out := b
	return &out, nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, userID, id uuid.UUID, next domain.BookingStatus) (*domain.Booking, error) {
	f.calls = append(f.calls, "UpdateStatus")
	b, ok := f.bookings[id]
	if !ok || b.UserID != userID || b.Status.Terminal() {
		return nil, repository.ErrNotFound
	}
	b.Status = next
	f.bookings[id] = b
	out := b
	return &out, nil
}

func (f *fakeBookingStore) Create(
	ctx context.Context,
	b domain.Booking,
	inline *domain.Client,
	after func(ctx context.Context, created domain.Booking),
) (*domain.Booking, error) {
	f.calls = append(f.calls, "Create")
	if inline != nil {
		b.ClientID = uuid.New()
	}
	b.ID = uuid.New()
	f.bookings[b.ID] = b
	if after != nil {
		after(ctx, b)
	}
	out := b
	return &out, nil
}

type fakeInvalidator struct {
	invalidated []uuid.UUID
}

func (f *fakeInvalidator) InvalidateClient(_ context.Context, _ uuid.UUID, clientID uuid.UUID) error {
	f.invalidated = append(f.invalidated, clientID)
	return nil
}

type fakeLimiter struct {
	allowed bool
	calls   int
}

func (f *fakeLimiter) Allow(_ context.Context, _ string) (bool, int64, time.Duration, error) {
	f.calls++
	return f.allowed, 0, time.Minute, nil
}

func newTestService(store *fakeBookingStore, cache *fakeInvalidator, limiter Limiter) *Service {
	return New(store, cache, notify.NewLogNotifier(slog.New(slog.NewTextHandler(io.Discard, nil))), limiter)
}

func validBookingDraft() domain.BookingDraft {
	return domain.BookingDraft{
		Name:                  "Garcia Wedding",
		ClientID:              "11111111-1111-1111-1111-111111111111",
		ServiceIDs:            []string{"svc-1"},
		Date:                  "2026-06-14",
		StartTime:             "10:00",
		EndTime:               "14:00",
		AssignedTeamMemberIDs: []string{"m1"},
		Amount:                "1500",
	}
}

func TestCreate_Unauthenticated_NoStoreCall(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, &fakeInvalidator{}, nil)

	_, _, err := svc.Create(context.Background(), uuid.Nil, validBookingDraft(), nil, "")

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, store.calls)
}

func TestCreate_InvalidDraft_NoStoreCall(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, &fakeInvalidator{}, nil)

	_, fieldErrs, err := svc.Create(context.Background(), uuid.New(), domain.BookingDraft{}, nil, "")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, fieldErrs, "name")
	assert.Contains(t, fieldErrs, "client_id")
	assert.Empty(t, store.calls)
}

func TestCreate_RateLimited_NoStoreCall(t *testing.T) {
	store := newFakeBookingStore()
	limiter := &fakeLimiter{allowed: false}
	svc := newTestService(store, &fakeInvalidator{}, limiter)

	_, _, err := svc.Create(context.Background(), uuid.New(), validBookingDraft(), nil, "ip:10.0.0.1")

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, limiter.calls)
	assert.Empty(t, store.calls)
}

func TestCreate_PersistsPendingAndInvalidates(t *testing.T) {
	store := newFakeBookingStore()
	cache := &fakeInvalidator{}
	svc := newTestService(store, cache, &fakeLimiter{allowed: true})
	userID := uuid.New()

	out, fieldErrs, err := svc.Create(context.Background(), userID, validBookingDraft(), nil, "ip:10.0.0.1")

	assert.NoError(t, err)
	assert.Empty(t, fieldErrs)
	assert.Equal(t, domain.BookingPending, out.Status)
	assert.Equal(t, userID, out.UserID)
	assert.Equal(t, []string{"Create"}, store.calls)
	// The after-commit callback dropped the client's cached aggregates.
	assert.Equal(t, []uuid.UUID{out.ClientID}, cache.invalidated)
}

func TestCreate_InlineClient(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, &fakeInvalidator{}, nil)

	d := validBookingDraft()
	d.ClientID = ""

	out, fieldErrs, err := svc.Create(context.Background(), uuid.New(), d, &InlineClient{Name: "Ana Garcia"}, "")

	assert.NoError(t, err)
	assert.Empty(t, fieldErrs)
	assert.NotEqual(t, uuid.Nil, out.ClientID)
}

func TestCreate_MissingClientWithoutInline(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, &fakeInvalidator{}, nil)

	d := validBookingDraft()
	d.ClientID = ""

	_, fieldErrs, err := svc.Create(context.Background(), uuid.New(), d, nil, "")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, fieldErrs, "client_id")
	assert.Empty(t, store.calls)
}

func TestUpdateDetails_TerminalRejected(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, &fakeInvalidator{}, nil)
	userID := uuid.New()

	id := uuid.New()
	store.bookings[id] = domain.Booking{
		ID: id, UserID: userID, Name: "Done Shoot",
		Status: domain.BookingCompleted, StartTime: "10:00", EndTime: "12:00",
	}

	name := "Renamed"
	_, err := svc.UpdateDetails(context.Background(), userID, id, postgresrepo.BookingPatch{Name: &name})

	assert.ErrorIs(t, err, ErrBookingFinalized)
	assert.NotContains(t, store.calls, "Update")
}

func TestUpdateDetails_InvertedTimeRange(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, &fakeInvalidator{}, nil)
	userID := uuid.New()

	id := uuid.New()
	store.bookings[id] = domain.Booking{
		ID: id, UserID: userID, Name: "Morning Shoot",
		Status: domain.BookingConfirmed, StartTime: "10:00", EndTime: "12:00",
	}

	// Patching only the end time still has to respect the existing
	// start time.
	end := "09:00"
	_, err := svc.UpdateDetails(context.Background(), userID, id, postgresrepo.BookingPatch{EndTime: &end})

	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.NotContains(t, store.calls, "Update")
}

func TestTransition_InvalidRejected(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, &fakeInvalidator{}, nil)
	userID := uuid.New()

	id := uuid.New()
	store.bookings[id] = domain.Booking{
		ID: id, UserID: userID, Name: "Shoot", Status: domain.BookingConfirmed,
	}

	_, err := svc.Transition(context.Background(), userID, id, domain.BookingPending)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NotContains(t, store.calls, "UpdateStatus")
}

func TestTransition_TerminalRejected(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, &fakeInvalidator{}, nil)
	userID := uuid.New()

	id := uuid.New()
	store.bookings[id] = domain.Booking{
		ID: id, UserID: userID, Name: "Shoot", Status: domain.BookingCancelled,
	}

	_, err := svc.Transition(context.Background(), userID, id, domain.BookingConfirmed)

	assert.ErrorIs(t, err, ErrBookingFinalized)
	assert.NotContains(t, store.calls, "UpdateStatus")
}

func TestTransition_HappyPath(t *testing.T) {
	store := newFakeBookingStore()
	cache := &fakeInvalidator{}
	svc := newTestService(store, cache, nil)
	userID := uuid.New()
	clientID := uuid.New()

	id := uuid.New()
	store.bookings[id] = domain.Booking{
		ID: id, UserID: userID, ClientID: clientID, Name: "Shoot",
		Status: domain.BookingPending,
	}

	out, err := svc.Transition(context.Background(), userID, id, domain.BookingConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, out.Status)
	assert.Equal(t, []uuid.UUID{clientID}, cache.invalidated)
}

func TestList_AppliesFilter(t *testing.T) {
	store := newFakeBookingStore()
	svc := newTestService(store, &fakeInvalidator{}, nil)
	userID := uuid.New()

	a, b := uuid.New(), uuid.New()
	store.bookings[a] = domain.Booking{ID: a, UserID: userID, Name: "A", Status: domain.BookingPending}
	store.bookings[b] = domain.Booking{ID: b, UserID: userID, Name: "B", Status: domain.BookingConfirmed}

	out, err := svc.List(context.Background(), userID, domain.BookingFilter{Status: domain.BookingConfirmed})

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "B", out[0].Name)
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingStore(), &fakeInvalidator{}, nil)

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
