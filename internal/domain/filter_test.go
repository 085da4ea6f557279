package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleBookings() []Booking {
	clientA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	clientB := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	return []Booking{
		{
			ID:                    uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
			Name:                  "Garcia Wedding",
			ClientID:              clientA,
			Status:                BookingConfirmed,
			AssignedTeamMemberIDs: []string{"m1", "m2"},
			Date:                  datePtr(2026, time.June, 14),
		},
		{
			ID:                    uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002"),
			Name:                  "Product Shoot",
			ClientID:              clientB,
			Status:                BookingPending,
			AssignedTeamMemberIDs: []string{"m2"},
			Date:                  datePtr(2026, time.July, 2),
		},
		{
			ID:       uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000003"),
			Name:     "Undated Session",
			ClientID: clientA,
			Status:   BookingPending,
			Date:     nil,
		},
		{
			ID:                    uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000004"),
			Name:                  "Graduation",
			ClientID:              clientB,
			Status:                BookingCompleted,
			AssignedTeamMemberIDs: []string{"m1"},
			Date:                  datePtr(2025, time.June, 20),
		},
	}
}

func TestFilterBookings_EmptyFilterKeepsOrder(t *testing.T) {
	list := sampleBookings()

	out := FilterBookings(list, BookingFilter{})

	assert.Equal(t, list, out)
}

func TestFilterBookings_ByClient(t *testing.T) {
	list := sampleBookings()

	out := FilterBookings(list, BookingFilter{ClientID: "11111111-1111-1111-1111-111111111111"})

	assert.Len(t, out, 2)
	assert.Equal(t, "Garcia Wedding", out[0].Name)
	assert.Equal(t, "Undated Session", out[1].Name)
}

func TestFilterBookings_ByClientIgnoresCasing(t *testing.T) {
	cid := uuid.MustParse("deadbeef-cafe-4d00-8d00-0123456789ab")
	list := []Booking{{ID: uuid.New(), Name: "Letterhead Shoot", ClientID: cid}}

	for _, q := range []string{
		"deadbeef-cafe-4d00-8d00-0123456789ab",
		"DEADBEEF-CAFE-4D00-8D00-0123456789AB",
		"urn:uuid:deadbeef-cafe-4d00-8d00-0123456789ab",
	} {
		out := FilterBookings(list, BookingFilter{ClientID: q})
		assert.Len(t, out, 1, q)
	}
}

func TestFilterBookings_UnparseableClientMatchesNothing(t *testing.T) {
	out := FilterBookings(sampleBookings(), BookingFilter{ClientID: "not-a-uuid"})

	assert.Empty(t, out)
}

func TestFilterBookings_ByStatus(t *testing.T) {
	out := FilterBookings(sampleBookings(), BookingFilter{Status: BookingPending})

	assert.Len(t, out, 2)
	for _, b := range out {
		assert.Equal(t, BookingPending, b.Status)
	}
}

func TestFilterBookings_ByTeamMember(t *testing.T) {
	out := FilterBookings(sampleBookings(), BookingFilter{TeamMemberID: "m1"})

	assert.Len(t, out, 2)
	assert.Equal(t, "Garcia Wedding", out[0].Name)
	assert.Equal(t, "Graduation", out[1].Name)
}

func TestFilterBookings_MonthRequiresYear(t *testing.T) {
	// Month alone imposes no constraint.
	out := FilterBookings(sampleBookings(), BookingFilter{Month: 6})

	assert.Len(t, out, 4)
}

func TestFilterBookings_MonthAndYear(t *testing.T) {
	out := FilterBookings(sampleBookings(), BookingFilter{Month: 6, Year: 2026})

	assert.Len(t, out, 1)
	assert.Equal(t, "Garcia Wedding", out[0].Name)
}

func TestFilterBookings_YearOnlyExcludesUndated(t *testing.T) {
	out := FilterBookings(sampleBookings(), BookingFilter{Year: 2026})

	assert.Len(t, out, 2)
	for _, b := range out {
		assert.NotNil(t, b.Date)
		assert.Equal(t, 2026, b.Date.Year())
	}
}

func TestFilterBookings_Conjunction(t *testing.T) {
	f := BookingFilter{
		ClientID:     "22222222-2222-2222-2222-222222222222",
		Status:       BookingPending,
		TeamMemberID: "m2",
	}

	out := FilterBookings(sampleBookings(), f)

	assert.Len(t, out, 1)
	assert.Equal(t, "Product Shoot", out[0].Name)
}

func TestFilterBookings_NoMatch(t *testing.T) {
	f := BookingFilter{Status: BookingCancelled}

	out := FilterBookings(sampleBookings(), f)

	assert.Empty(t, out)
}

func TestBookingFilter_ActiveAndClear(t *testing.T) {
	assert.False(t, BookingFilter{}.Active())

	f := BookingFilter{Status: BookingConfirmed, Year: 2026}
	assert.True(t, f.Active())

	cleared := f.Clear()
	assert.False(t, cleared.Active())
	assert.Equal(t, BookingFilter{}, cleared)
}
