package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config for the Stripe gateway client.
type Config struct {
	SecretKey           string        // required
	BaseURL             string        // default https://api.stripe.com/v1
	PaymentMethodConfig string        // Stripe payment method configuration id
	Timeout             time.Duration // http client timeout
}

// StripeClient talks to the Stripe PaymentIntents REST API. Requests are
// form-encoded per the Stripe wire protocol; each call is attempted once.
type StripeClient struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

var _ Gateway = (*StripeClient)(nil)

// NewStripeClient constructs the gateway client, applying defaults for
// unset fields.
func NewStripeClient(cfg Config, logger *slog.Logger) *StripeClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.stripe.com/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StripeClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// CreateIntent creates a payment intent for the analysis fee with automatic
// payment methods enabled.
func (c *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	rid := uuid.New().String()
	start := time.Now()

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("metadata[service]", "document_analysis")
	if c.cfg.PaymentMethodConfig != "" {
		form.Set("payment_method_configuration", c.cfg.PaymentMethodConfig)
	}

	c.log.Info("stripe.create_intent.start",
		"req_id", rid, "amount", amount, "currency", currency)

	intent, err := c.do(ctx, http.MethodPost, "/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		c.log.Error("stripe.create_intent.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	c.log.Info("stripe.create_intent.ok",
		"req_id", rid, "intent_id", intent.ID, "status", intent.Status,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return intent, nil
}

// RetrieveIntent fetches the current status of an existing intent.
func (c *StripeClient) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	rid := uuid.New().String()
	start := time.Now()

	if intentID == "" {
		return nil, fmt.Errorf("intent id is required")
	}

	intent, err := c.do(ctx, http.MethodGet, "/payment_intents/"+url.PathEscape(intentID), nil)
	if err != nil {
		c.log.Error("stripe.retrieve_intent.error",
			"req_id", rid, "intent_id", intentID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	c.log.Info("stripe.retrieve_intent.ok",
		"req_id", rid, "intent_id", intent.ID, "status", intent.Status,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return intent, nil
}

func (c *StripeClient) do(ctx context.Context, method, path string, body io.Reader) (*Intent, error) {
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.cfg.BaseURL, "/")+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe http error: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe status %d: %s", resp.StatusCode, stripeErrorMessage(raw))
	}

	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}
	return &intent, nil
}

// stripeErrorMessage pulls the human-readable message out of a Stripe error
// envelope, falling back to the raw body.
func stripeErrorMessage(raw []byte) string {
	var env struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return string(raw)
}
