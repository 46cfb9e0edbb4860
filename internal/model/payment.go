package model

import "time"

// PaymentStatusSucceeded is the gateway status required before an analysis
// may run or a payment row may be recorded.
const PaymentStatusSucceeded = "succeeded"

// Payment is an immutable record of a settled charge for one analysis.
// It is created only after the gateway reports the intent as succeeded and
// always references an existing Document.
type Payment struct {
	ID              string    `json:"id"`
	StripePaymentID string    `json:"stripe_payment_id"`
	Amount          int64     `json:"amount"` // minor currency units
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	DocumentID      string    `json:"document_id"`
	CreatedAt       time.Time `json:"created_at"`
}
