package httpgin

import (
	"time"

	"github.com/studiodesk/studiodesk/internal/domain"
)

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

type CreateTeamMemberRequest struct {
	Name       string  `json:"name" binding:"required"`
	Role       string  `json:"role"`
	Email      string  `json:"email" binding:"omitempty,email"`
	Phone      string  `json:"phone"`
	HourlyRate float64 `json:"hourly_rate" binding:"gte=0"`
	Status     string  `json:"status"`
	Invite     bool    `json:"invite"`
}

type UpdateTeamMemberRequest struct {
	Name       *string  `json:"name"`
	Role       *string  `json:"role"`
	Email      *string  `json:"email" binding:"omitempty,email"`
	Phone      *string  `json:"phone"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Status     *string  `json:"status"`
}

// InlineClientInput creates a client together with the booking, in
// the same transaction.
type InlineClientInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateBookingRequest carries the raw booking form. Field-level rules
// live in the domain validator, not in binding tags, so violations
// come back as a field->message map the form can render inline.
type CreateBookingRequest struct {
	Name          string             `json:"name"`
	ClientID      string             `json:"client_id"`
	NewClient     *InlineClientInput `json:"new_client"`
	ServiceIDs    []string           `json:"service_ids"`
	Date          string             `json:"date"`
	StartTime     string             `json:"start_time"`
	EndTime       string             `json:"end_time"`
	Location      string             `json:"location"`
	TeamMemberIDs []string           `json:"team_member_ids"`
	Amount        string             `json:"amount"`
	Expenses      string             `json:"expenses"`
	PaymentStatus string             `json:"payment_status"`
	Notes         string             `json:"notes"`
}

func (r CreateBookingRequest) draft() domain.BookingDraft {
	return domain.BookingDraft{
		Name:                  r.Name,
		ClientID:              r.ClientID,
		ServiceIDs:            r.ServiceIDs,
		Date:                  r.Date,
		StartTime:             r.StartTime,
		EndTime:               r.EndTime,
		Location:              r.Location,
		AssignedTeamMemberIDs: r.TeamMemberIDs,
		Amount:                r.Amount,
		Expenses:              r.Expenses,
		PaymentStatus:         domain.PaymentStatus(r.PaymentStatus),
		Notes:                 r.Notes,
	}
}

type UpdateBookingRequest struct {
	Name          *string   `json:"name"`
	ServiceIDs    *[]string `json:"service_ids"`
	Date          *string   `json:"date"`
	StartTime     *string   `json:"start_time"`
	EndTime       *string   `json:"end_time"`
	Location      *string   `json:"location"`
	TeamMemberIDs *[]string `json:"team_member_ids"`
	Amount        *float64  `json:"amount" binding:"omitempty,gte=0"`
	Expenses      *float64  `json:"expenses" binding:"omitempty,gte=0"`
	PaymentStatus *string   `json:"payment_status"`
	Notes         *string   `json:"notes"`
}

type TransitionBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateRecordRequest struct {
	Type         string  `json:"type" binding:"required,oneof=income expense"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount" binding:"required,gte=0"`
	Date         string  `json:"date"`
	Category     string  `json:"category"`
	BookingID    string  `json:"booking_id"`
	TeamMemberID string  `json:"team_member_id"`
}

type QuotationItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

type BillToInput struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	RTNNumber string `json:"rtn_number"`
}

type QuotationRequest struct {
	IssueDate          string               `json:"issue_date"`
	ShootingDate       string               `json:"shooting_date"`
	BillTo             BillToInput          `json:"bill_to" binding:"required"`
	Items              []QuotationItemInput `json:"items" binding:"required,min=1,dive"`
	Deliverables       string               `json:"deliverables"`
	PaymentTerms       string               `json:"payment_terms"`
	BankDetails        string               `json:"bank_details"`
	TermsAndConditions string               `json:"terms_and_conditions"`
	Status             string               `json:"status"` // honored on update only
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price" binding:"gte=0"`
}

type ProfileRequest struct {
	StudioName string `json:"studio_name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
