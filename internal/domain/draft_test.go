package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validDraft() BookingDraft {
	return BookingDraft{
		Name:                  "Garcia Wedding",
		ClientID:              "11111111-1111-1111-1111-111111111111",
		ServiceIDs:            []string{"svc-1"},
		Date:                  "2026-06-14",
		StartTime:             "10:00",
		EndTime:               "14:00",
		AssignedTeamMemberIDs: []string{"m1"},
		Amount:                "1500",
		Expenses:              "200.50",
	}
}

func TestBookingDraft_Validate_OK(t *testing.T) {
	errs := validDraft().Validate()

	assert.Empty(t, errs)
}

func TestBookingDraft_Validate_MissingFields(t *testing.T) {
	errs := BookingDraft{}.Validate()

	for _, field := range []string{
		"name", "client_id", "service_ids", "date",
		"start_time", "end_time", "assigned_team_member_ids",
	} {
		assert.Contains(t, errs, field)
	}
}

func TestBookingDraft_Validate_EachTimeReportedIndependently(t *testing.T) {
	d := validDraft()
	d.StartTime = ""

	errs := d.Validate()

	assert.Contains(t, errs, "start_time")
	assert.NotContains(t, errs, "end_time")

	d = validDraft()
	d.EndTime = ""

	errs = d.Validate()

	assert.Contains(t, errs, "end_time")
	assert.NotContains(t, errs, "start_time")
}

func TestBookingDraft_Validate_BlankNameRejected(t *testing.T) {
	d := validDraft()
	d.Name = "   "

	errs := d.Validate()

	assert.Contains(t, errs, "name")
}

func TestBookingDraft_Validate_EndBeforeStart(t *testing.T) {
	d := validDraft()
	d.StartTime = "14:00"
	d.EndTime = "13:00"

	errs := d.Validate()

	assert.Contains(t, errs, "end_time")
	assert.NotContains(t, errs, "start_time")
}

func TestBookingDraft_Validate_EqualTimesRejected(t *testing.T) {
	d := validDraft()
	d.StartTime = "10:00"
	d.EndTime = "10:00"

	errs := d.Validate()

	assert.Contains(t, errs, "end_time")
}

func TestBookingDraft_Validate_NonNumericAmounts(t *testing.T) {
	d := validDraft()
	d.Amount = "lots"
	d.Expenses = "12,50"

	errs := d.Validate()

	assert.Contains(t, errs, "amount")
	assert.Contains(t, errs, "expenses")
}

func TestBookingDraft_ToBooking(t *testing.T) {
	b, err := validDraft().ToBooking()

	assert.NoError(t, err)
	assert.Equal(t, BookingPending, b.Status)
	assert.Equal(t, uuid.MustParse("11111111-1111-1111-1111-111111111111"), b.ClientID)
	assert.Equal(t, 1500.0, b.Amount)
	assert.Equal(t, 200.50, b.Expenses)
	assert.Equal(t, PaymentUnpaid, b.PaymentStatus)
	if assert.NotNil(t, b.Date) {
		assert.Equal(t, "2026-06-14", b.Date.Format("2006-01-02"))
	}
}

func TestBookingDraft_ToBooking_EmptyClientYieldsNil(t *testing.T) {
	d := validDraft()
	d.ClientID = ""

	b, err := d.ToBooking()

	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, b.ClientID)
}

func TestBookingStatus_CanTransition(t *testing.T) {
	assert.True(t, BookingPending.CanTransition(BookingConfirmed))
	assert.True(t, BookingPending.CanTransition(BookingCancelled))
	assert.True(t, BookingConfirmed.CanTransition(BookingCompleted))
	assert.True(t, BookingConfirmed.CanTransition(BookingCancelled))

	assert.False(t, BookingConfirmed.CanTransition(BookingPending))
	assert.False(t, BookingCompleted.CanTransition(BookingCancelled))
	assert.False(t, BookingCancelled.CanTransition(BookingPending))
	assert.False(t, BookingPending.CanTransition("archived"))
}
