package domain

import "github.com/google/uuid"

// BookingFilter is the set of optional criteria narrowing a booking
// list. Zero-valued fields impose no constraint; all set fields must
// hold at once.
type BookingFilter struct {
	ClientID     string
	Status       BookingStatus
	TeamMemberID string
	Month        int // 1-12, only honored together with Year
	Year         int
}

// Active reports whether any criterion is set. Display concern only:
// it drives the "clear all" affordance, never the filtering itself.
func (f BookingFilter) Active() bool {
	return f.ClientID != "" || f.Status != "" || f.TeamMemberID != "" || f.Month != 0 || f.Year != 0
}

// Clear returns the empty specification.
func (f BookingFilter) Clear() BookingFilter {
	return BookingFilter{}
}

// Matches reports whether b satisfies every set criterion of f.
// Date-scoped criteria exclude bookings without a date. The client
// criterion is parsed as a UUID so casing and formatting variants of
// the same ID still match; an unparseable value matches nothing.
func (f BookingFilter) Matches(b Booking) bool {
	if f.ClientID != "" {
		cid, err := uuid.Parse(f.ClientID)
		if err != nil || b.ClientID != cid {
			return false
		}
	}

	if f.Status != "" && b.Status != f.Status {
		return false
	}

	if f.TeamMemberID != "" && !containsID(b.AssignedTeamMemberIDs, f.TeamMemberID) {
		return false
	}

	if f.Month != 0 && f.Year != 0 {
		if b.Date == nil {
			return false
		}
		if int(b.Date.Month()) != f.Month || b.Date.Year() != f.Year {
			return false
		}
	} else if f.Year != 0 {
		if b.Date == nil || b.Date.Year() != f.Year {
			return false
		}
	}

	return true
}

// FilterBookings returns the bookings of list satisfying f, in the
// original order. An empty specification returns a copy of list.
func FilterBookings(list []Booking, f BookingFilter) []Booking {
	out := make([]Booking, 0, len(list))
	for _, b := range list {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
