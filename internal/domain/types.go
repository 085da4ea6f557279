package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Terminal reports whether the status permits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from s to next.
// Terminal statuses accept no transition.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}

	switch next {
	case BookingConfirmed:
		return s == BookingPending
	case BookingCompleted, BookingCancelled:
		return s == BookingPending || s == BookingConfirmed
	}

	return false
}

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
	MemberBusy     MemberStatus = "busy"
	MemberOffline  MemberStatus = "offline"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberActive, MemberInactive, MemberBusy, MemberOffline:
		return true
	}
	return false
}

type RecordType string

const (
	RecordIncome  RecordType = "income"
	RecordExpense RecordType = "expense"
)

func (t RecordType) Valid() bool {
	return t == RecordIncome || t == RecordExpense
}

type Client struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Email     string
	Phone     string
	Notes     string
	CreatedAt time.Time
}

// ClientSummary carries a client together with aggregates derived from
// the client's bookings. The aggregates are computed on read, never
// stored on the clients row.
type ClientSummary struct {
	Client
	TotalBookings int64
	TotalSpent    float64
	LastBooked    *time.Time
}

type TeamMember struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Role       string
	Email      string
	Phone      string
	HourlyRate float64
	Status     MemberStatus
	CreatedAt  time.Time
}

type Booking struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Name                  string
	ClientID              uuid.UUID
	ClientName            string // embedded from the clients row on read
	ServiceIDs            []string
	Date                  *time.Time
	StartTime             string // HH:MM
	EndTime               string // HH:MM
	Location              string
	AssignedTeamMemberIDs []string
	Status                BookingStatus
	Amount                float64
	Expenses              float64
	PaymentStatus         PaymentStatus
	Notes                 string
	CreatedAt             time.Time
}

type FinancialRecord struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Type         RecordType
	Description  string
	Amount       float64
	Date         time.Time
	Category     string
	BookingID    *uuid.UUID
	TeamMemberID *uuid.UUID
	CreatedAt    time.Time
}

// FinanceSummary aggregates the ledger for one user, optionally scoped
// to a calendar month or year.
type FinanceSummary struct {
	TotalIncome   float64
	TotalExpenses float64
	Net           float64
}

type ServiceOffering struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	BasePrice   float64
	CreatedAt   time.Time
}

type Profile struct {
	UserID     uuid.UUID
	StudioName string
	Email      string
	Phone      string
	Address    string
	UpdatedAt  time.Time
}
