package quotations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studiodesk/studiodesk/internal/domain"
	"github.com/studiodesk/studiodesk/internal/notify"
	"github.com/studiodesk/studiodesk/internal/repository"
)

// Store is the persistence boundary for quotations. The production
// implementation lives in the Redis repository; tests use an in-memory
// fake.
type Store interface {
	// NextSeq returns the next numbering sequence for the issue day,
	// atomically, so two racing creations never share a number.
	NextSeq(ctx context.Context, userID uuid.UUID, day time.Time) (int64, error)
	Save(ctx context.Context, q domain.Quotation) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Quotation, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	store    Store
	notifier notify.Notifier
	now      func() time.Time
}

func New(store Store, notifier notify.Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// Draft carries the editable quotation fields as submitted.
type Draft struct {
	IssueDate          time.Time
	ShootingDate       *time.Time
	BillTo             domain.BillTo
	Items              []domain.QuotationItem
	Deliverables       string
	PaymentTerms       string
	BankDetails        string
	TermsAndConditions string
}

func (d Draft) check() error {
	if len(d.Items) == 0 {
		return ErrNoItems
	}
	if d.BillTo.Name == "" {
		return ErrMissingBillToName
	}
	return nil
}

// Create assigns the next per-day document number, computes line and
// document totals and persists the quotation as a draft.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, d Draft) (*domain.Quotation, error) {
	const op = "service.quotations.Create"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if err := d.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	issue := d.IssueDate
	if issue.IsZero() {
		issue = now
	}

	seq, err := s.store.NextSeq(ctx, userID, issue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q := domain.Quotation{
		ID:                 uuid.New(),
		UserID:             userID,
		Number:             domain.QuotationNumber(issue, seq),
		IssueDate:          issue,
		ShootingDate:       d.ShootingDate,
		BillTo:             d.BillTo,
		Items:              d.Items,
		Deliverables:       d.Deliverables,
		PaymentTerms:       d.PaymentTerms,
		BankDetails:        d.BankDetails,
		TermsAndConditions: d.TermsAndConditions,
		Status:             domain.QuotationDraft,
		CreatedAt:          now,
	}
	q.RecomputeTotals()

	if err := s.store.Save(ctx, q); err != nil {
		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Error",
			Description: "Failed to save quotation. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifier.Notify(ctx, userID, notify.Notification{
		Title:       "Quotation created",
		Description: fmt.Sprintf("Quotation %s saved.", q.Number),
		Severity:    notify.SeveritySuccess,
	})

	return &q, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.Quotation, error) {
	const op = "service.quotations.List"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	out, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Quotation, error) {
	const op = "service.quotations.Get"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	q, err := s.store.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrQuotationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return q, nil
}

// Update replaces the editable fields of a quotation, recomputes
// totals and may move the status between draft, sent and accepted.
// The number and issue date never change after creation; a converted
// quotation cannot be edited.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, d Draft, status domain.QuotationStatus) (*domain.Quotation, error) {
	const op = "service.quotations.Update"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if err := d.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q, err := s.store.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrQuotationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if q.Status == domain.QuotationConverted {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyConverted)
	}

	q.ShootingDate = d.ShootingDate
	q.BillTo = d.BillTo
	q.Items = d.Items
	q.Deliverables = d.Deliverables
	q.PaymentTerms = d.PaymentTerms
	q.BankDetails = d.BankDetails
	q.TermsAndConditions = d.TermsAndConditions
	if status != "" && status != domain.QuotationConverted && status.Valid() {
		q.Status = status
	}
	q.RecomputeTotals()

	if err := s.store.Save(ctx, *q); err != nil {
		s.notifier.Notify(ctx, userID, notify.Notification{
			Title:       "Error",
			Description: "Failed to save quotation. Please try again.",
			Severity:    notify.SeverityError,
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return q, nil
}

// Convert flips a quotation to its terminal converted status. No
// invoice entity is materialized; the status flip is the whole
// operation.
func (s *Service) Convert(ctx context.Context, userID, id uuid.UUID) (*domain.Quotation, error) {
	const op = "service.quotations.Convert"

	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	q, err := s.store.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrQuotationNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if q.Status == domain.QuotationConverted {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyConverted)
	}

	q.Status = domain.QuotationConverted

	if err := s.store.Save(ctx, *q); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifier.Notify(ctx, userID, notify.Notification{
		Title:       "Quotation converted",
		Description: fmt.Sprintf("Quotation %s marked as converted.", q.Number),
		Severity:    notify.SeveritySuccess,
	})

	return q, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const op = "service.quotations.Delete"

	if userID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if err := s.store.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrQuotationNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
