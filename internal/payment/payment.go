// Package payment wraps the payment gateway used to charge the fixed
// analysis fee.
package payment

import "context"

// Intent is the gateway's handle for an authorized-but-not-yet-settled
// charge. ClientSecret is only populated on creation.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Gateway creates and inspects payment intents. Confirmation is read-only:
// RetrieveIntent reports the current settlement status, actual capture
// happens client-side. Errors propagate without retries.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
}
