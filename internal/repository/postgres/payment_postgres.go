package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docanalyzer/internal/model"
	"docanalyzer/internal/repository"
)

// PaymentPostgres is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentPostgres struct {
	db *sql.DB
}

// NewPaymentPostgres creates a new PaymentPostgres repository.
func NewPaymentPostgres(db *sql.DB) *PaymentPostgres {
	return &PaymentPostgres{db: db}
}

var _ repository.PaymentRepository = (*PaymentPostgres)(nil)

const paymentColumns = `id, stripe_payment_id, amount, currency, status, document_id, created_at`

// FindByStripePaymentID returns the payment recorded for a gateway intent.
func (r *PaymentPostgres) FindByStripePaymentID(ctx context.Context, stripePaymentID string) (*model.Payment, error) {
	const q = `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE stripe_payment_id = $1
	`
	return scanPayment(r.db.QueryRowContext(ctx, q, stripePaymentID))
}

// CreateWithSummary writes the document's analysis summary and inserts the
// payment row in one transaction. The insert dedupes on stripe_payment_id so
// confirming the same intent twice never produces two rows.
func (r *PaymentPostgres) CreateWithSummary(ctx context.Context, p *model.Payment, summary string) (*model.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const qUpdate = `UPDATE documents SET analysis_summary = $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, qUpdate, summary, p.DocumentID); err != nil {
		return nil, fmt.Errorf("update analysis summary: %w", err)
	}

	const qInsert = `
		INSERT INTO payments (id, stripe_payment_id, amount, currency, status, document_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (stripe_payment_id) DO NOTHING
		RETURNING ` + paymentColumns

	stored, err := scanPayment(tx.QueryRowContext(ctx, qInsert,
		p.ID,
		p.StripePaymentID,
		p.Amount,
		p.Currency,
		p.Status,
		p.DocumentID,
		p.CreatedAt,
	))
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the race to a concurrent confirmation; the existing row wins.
		const qExisting = `SELECT ` + paymentColumns + ` FROM payments WHERE stripe_payment_id = $1`
		stored, err = scanPayment(tx.QueryRowContext(ctx, qExisting, p.StripePaymentID))
	}
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return stored, nil
}

func scanPayment(row rowScanner) (*model.Payment, error) {
	var p model.Payment
	if err := row.Scan(
		&p.ID,
		&p.StripePaymentID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.DocumentID,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
