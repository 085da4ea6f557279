package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingDraft is an unvalidated booking form as submitted. Numeric
// fields arrive as strings; empty means zero.
type BookingDraft struct {
	Name                  string
	ClientID              string
	ServiceIDs            []string
	Date                  string // YYYY-MM-DD
	StartTime             string // HH:MM
	EndTime               string // HH:MM
	Location              string
	AssignedTeamMemberIDs []string
	Amount                string
	Expenses              string
	PaymentStatus         PaymentStatus
	Notes                 string
}

// FieldErrors maps a form field name to a human-readable message.
type FieldErrors map[string]string

// Validate checks the draft and returns one message per violated
// field. An empty map means the draft is valid.
func (d BookingDraft) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "booking name is required"
	}

	if d.ClientID == "" {
		errs["client_id"] = "please select or create a client"
	}

	if len(d.ServiceIDs) == 0 {
		errs["service_ids"] = "select at least one service"
	}

	if d.Date == "" {
		errs["date"] = "date is required"
	}

	if d.StartTime == "" {
		errs["start_time"] = "start time is required"
	}

	if d.EndTime == "" {
		errs["end_time"] = "end time is required"
	}

	if d.StartTime != "" && d.EndTime != "" && d.StartTime >= d.EndTime {
		errs["end_time"] = "end time must be after start time"
	}

	if len(d.AssignedTeamMemberIDs) == 0 {
		errs["assigned_team_member_ids"] = "assign at least one team member"
	}

	if d.Amount != "" {
		if _, err := strconv.ParseFloat(d.Amount, 64); err != nil {
			errs["amount"] = "amount must be a number"
		}
	}

	if d.Expenses != "" {
		if _, err := strconv.ParseFloat(d.Expenses, 64); err != nil {
			errs["expenses"] = "expenses must be a number"
		}
	}

	return errs
}

// ToBooking coerces a valid draft into a Booking with status pending.
// Call Validate first; ToBooking assumes the draft passed. An empty
// ClientID yields uuid.Nil so an inline-created client can be attached
// afterwards.
func (d BookingDraft) ToBooking() (Booking, error) {
	var clientID uuid.UUID
	if d.ClientID != "" {
		var err error
		clientID, err = uuid.Parse(d.ClientID)
		if err != nil {
			return Booking{}, err
		}
	}

	var date *time.Time
	if d.Date != "" {
		t, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return Booking{}, err
		}
		date = &t
	}

	payment := d.PaymentStatus
	if payment == "" {
		payment = PaymentUnpaid
	}

	return Booking{
		Name:                  strings.TrimSpace(d.Name),
		ClientID:              clientID,
		ServiceIDs:            d.ServiceIDs,
		Date:                  date,
		StartTime:             d.StartTime,
		EndTime:               d.EndTime,
		Location:              d.Location,
		AssignedTeamMemberIDs: d.AssignedTeamMemberIDs,
		Status:                BookingPending,
		Amount:                parseFloatDefault(d.Amount),
		Expenses:              parseFloatDefault(d.Expenses),
		PaymentStatus:         payment,
		Notes:                 d.Notes,
	}, nil
}

func parseFloatDefault(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
