package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeCreateIntent(t *testing.T) {
	var capturedForm url.Values
	var capturedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payment_intents", r.URL.Path)
		capturedAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		capturedForm = r.PostForm
		_, _ = w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret","status":"requires_payment_method","amount":300,"currency":"cny"}`))
	}))
	defer server.Close()

	client := NewStripeClient(Config{
		SecretKey:           "sk_test_abc",
		BaseURL:             server.URL,
		PaymentMethodConfig: "pmc_test",
	}, nil)

	intent, err := client.CreateIntent(context.Background(), 300, "cny")
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.Equal(t, int64(300), intent.Amount)
	assert.Equal(t, "cny", intent.Currency)

	assert.Equal(t, "Bearer sk_test_abc", capturedAuth)
	assert.Equal(t, "300", capturedForm.Get("amount"))
	assert.Equal(t, "cny", capturedForm.Get("currency"))
	assert.Equal(t, "true", capturedForm.Get("automatic_payment_methods[enabled]"))
	assert.Equal(t, "document_analysis", capturedForm.Get("metadata[service]"))
	assert.Equal(t, "pmc_test", capturedForm.Get("payment_method_configuration"))
}

func TestStripeRetrieveIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/payment_intents/pi_123", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"pi_123","status":"succeeded","amount":300,"currency":"cny"}`))
	}))
	defer server.Close()

	client := NewStripeClient(Config{SecretKey: "sk_test_abc", BaseURL: server.URL}, nil)

	intent, err := client.RetrieveIntent(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", intent.Status)
	assert.Equal(t, int64(300), intent.Amount)
}

func TestStripeRetrieveIntentRequiresID(t *testing.T) {
	client := NewStripeClient(Config{SecretKey: "sk"}, nil)
	_, err := client.RetrieveIntent(context.Background(), "")
	assert.Error(t, err)
}

func TestStripeGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer server.Close()

	client := NewStripeClient(Config{SecretKey: "sk", BaseURL: server.URL}, nil)
	_, err := client.CreateIntent(context.Background(), 300, "cny")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}
