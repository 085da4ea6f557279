package quotations

import "errors"

var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrQuotationNotFound = errors.New("quotation not found")
	ErrAlreadyConverted  = errors.New("quotation already converted")
	ErrNoItems           = errors.New("quotation needs at least one item")
	ErrMissingBillToName = errors.New("bill-to name is required")
)
