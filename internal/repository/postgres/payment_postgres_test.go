package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docanalyzer/internal/model"
)

var paymentRows = []string{"id", "stripe_payment_id", "amount", "currency", "status", "document_id", "created_at"}

func testPayment() *model.Payment {
	return &model.Payment{
		ID:              "pay-uuid",
		StripePaymentID: "pi_123",
		Amount:          300,
		Currency:        "cny",
		Status:          "succeeded",
		DocumentID:      "doc-uuid",
		CreatedAt:       time.Now().UTC(),
	}
}

func TestPaymentPostgres_FindByStripePaymentID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPaymentPostgres(db)

	t.Run("found", func(t *testing.T) {
		p := testPayment()
		rows := sqlmock.NewRows(paymentRows).
			AddRow(p.ID, p.StripePaymentID, p.Amount, p.Currency, p.Status, p.DocumentID, p.CreatedAt)

		mock.ExpectQuery("SELECT (.+) FROM payments WHERE stripe_payment_id = ?").
			WithArgs("pi_123").
			WillReturnRows(rows)

		got, err := repo.FindByStripePaymentID(context.Background(), "pi_123")
		require.NoError(t, err)
		assert.Equal(t, "pi_123", got.StripePaymentID)
		assert.Equal(t, int64(300), got.Amount)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE stripe_payment_id = ?").
			WithArgs("pi_missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByStripePaymentID(context.Background(), "pi_missing")
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestPaymentPostgres_CreateWithSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPaymentPostgres(db)
	p := testPayment()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documents SET analysis_summary").
		WithArgs("the summary", p.DocumentID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(p.ID, p.StripePaymentID, p.Amount, p.Currency, p.Status, p.DocumentID, p.CreatedAt).
		WillReturnRows(sqlmock.NewRows(paymentRows).
			AddRow(p.ID, p.StripePaymentID, p.Amount, p.Currency, p.Status, p.DocumentID, p.CreatedAt))
	mock.ExpectCommit()

	stored, err := repo.CreateWithSummary(context.Background(), p, "the summary")

	require.NoError(t, err)
	assert.Equal(t, p.StripePaymentID, stored.StripePaymentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentPostgres_CreateWithSummaryDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPaymentPostgres(db)
	p := testPayment()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documents SET analysis_summary").
		WithArgs("the summary", p.DocumentID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// ON CONFLICT DO NOTHING yields no row for a duplicate intent id.
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT (.+) FROM payments WHERE stripe_payment_id = ?").
		WithArgs(p.StripePaymentID).
		WillReturnRows(sqlmock.NewRows(paymentRows).
			AddRow("earlier-id", p.StripePaymentID, p.Amount, p.Currency, p.Status, p.DocumentID, p.CreatedAt))
	mock.ExpectCommit()

	stored, err := repo.CreateWithSummary(context.Background(), p, "the summary")

	require.NoError(t, err)
	assert.Equal(t, "earlier-id", stored.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentPostgres_CreateWithSummaryUpdateFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPaymentPostgres(db)
	p := testPayment()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documents SET analysis_summary").
		WillReturnError(errors.New("update fail"))
	mock.ExpectRollback()

	_, err = repo.CreateWithSummary(context.Background(), p, "the summary")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
