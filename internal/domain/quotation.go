package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type QuotationStatus string

const (
	QuotationDraft     QuotationStatus = "draft"
	QuotationSent      QuotationStatus = "sent"
	QuotationAccepted  QuotationStatus = "accepted"
	QuotationConverted QuotationStatus = "converted"
)

func (s QuotationStatus) Valid() bool {
	switch s {
	case QuotationDraft, QuotationSent, QuotationAccepted, QuotationConverted:
		return true
	}
	return false
}

type QuotationItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type BillTo struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	RTNNumber string `json:"rtn_number"`
}

type Quotation struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	Number             string          `json:"number"`
	IssueDate          time.Time       `json:"issue_date"`
	ShootingDate       *time.Time      `json:"shooting_date,omitempty"`
	BillTo             BillTo          `json:"bill_to"`
	Items              []QuotationItem `json:"items"`
	Deliverables       string          `json:"deliverables"`
	PaymentTerms       string          `json:"payment_terms"`
	BankDetails        string          `json:"bank_details"`
	TermsAndConditions string          `json:"terms_and_conditions"`
	Subtotal           float64         `json:"subtotal"`
	Total              float64         `json:"total"`
	Status             QuotationStatus `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
}

// QuotationNumber formats the document number for the given issue day
// and per-day sequence value: DD/MM/YYYY/{seq}.
func QuotationNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("%s/%d", day.Format("02/01/2006"), seq)
}

// RecomputeTotals recalculates each line total (quantity × unit price)
// and the document subtotal/total. No tax or discount is modeled, so
// subtotal equals total.
func (q *Quotation) RecomputeTotals() {
	var sum float64
	for i := range q.Items {
		q.Items[i].Total = q.Items[i].Quantity * q.Items[i].UnitPrice
		sum += q.Items[i].Total
	}
	q.Subtotal = sum
	q.Total = sum
}
