package repository

import (
	"context"

	"docanalyzer/internal/model"
)

// PaymentRepository defines data access for payment records.
type PaymentRepository interface {
	// FindByStripePaymentID returns the payment recorded for the given
	// gateway intent id, or sql.ErrNoRows if none exists.
	FindByStripePaymentID(ctx context.Context, stripePaymentID string) (*model.Payment, error)

	// CreateWithSummary inserts the payment row and writes the document's
	// analysis summary in a single transaction. The insert is idempotent on
	// stripe_payment_id: a concurrent duplicate leaves exactly one row.
	CreateWithSummary(ctx context.Context, p *model.Payment, summary string) (*model.Payment, error)
}
