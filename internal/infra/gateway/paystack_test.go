//go:build unit

package gateway_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-services/internal/infra/gateway"
	"portfolio-services/internal/pkg/clock"
	"portfolio-services/internal/pkg/config"
	"portfolio-services/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "sk_test_secret"

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(baseURL string) *gateway.PaystackClient {
	return gateway.NewPaystackClient(config.PaystackConfig{
		BaseURL:     baseURL,
		SecretKey:   testSecretKey,
		PublicKey:   "pk_test_public",
		CallbackURL: "https://example.com/payment/callback",
		Timeout:     5 * time.Second,
	}, clock.NewMockClock(testTime))
}

func sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testSecretKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestInitializeCheckout(t *testing.T) {
	orderID := uuid.New()
	input := commands.InitializeCheckoutInput{
		OrderID:     orderID,
		Email:       "ada@example.com",
		AmountUnits: 225000,
	}

	t.Run("sends minor units and order metadata", func(t *testing.T) {
		var captured struct {
			Email       string `json:"email"`
			Amount      int64  `json:"amount"`
			Reference   string `json:"reference"`
			CallbackURL string `json:"callback_url"`
			Metadata    struct {
				OrderID string `json:"order_id"`
			} `json:"metadata"`
		}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			assert.Equal(t, "Bearer "+testSecretKey, r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"status": true,
				"message": "Authorization URL created",
				"data": {
					"authorization_url": "https://checkout.paystack.com/abc123",
					"access_code": "abc123",
					"reference": "` + captured.Reference + `"
				}
			}`))
		}))
		defer srv.Close()

		session, err := newTestClient(srv.URL).InitializeCheckout(context.Background(), input)
		require.NoError(t, err)

		// 225000 naira becomes 22500000 kobo
		assert.Equal(t, int64(22500000), captured.Amount)
		assert.Equal(t, "ada@example.com", captured.Email)
		assert.Equal(t, orderID.String(), captured.Metadata.OrderID)
		assert.Equal(t, "https://example.com/payment/callback", captured.CallbackURL)
		assert.True(t, strings.HasPrefix(captured.Reference, "PSK_"))

		assert.Equal(t, "https://checkout.paystack.com/abc123", session.AuthorizationURL)
		assert.Equal(t, "abc123", session.AccessCode)
		assert.Equal(t, captured.Reference, session.Reference)
	})

	t.Run("non-2xx response fails the checkout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		session, err := newTestClient(srv.URL).InitializeCheckout(context.Background(), input)
		assert.Nil(t, session)
		assert.ErrorIs(t, err, gateway.ErrGatewayRequestFailed)
	})

	t.Run("status false in the body fails the checkout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
		}))
		defer srv.Close()

		session, err := newTestClient(srv.URL).InitializeCheckout(context.Background(), input)
		assert.Nil(t, session)
		assert.ErrorIs(t, err, gateway.ErrGatewayRequestFailed)
	})

	t.Run("unreachable gateway fails the checkout", func(t *testing.T) {
		session, err := newTestClient("http://127.0.0.1:1").InitializeCheckout(context.Background(), input)
		assert.Nil(t, session)
		assert.ErrorIs(t, err, gateway.ErrGatewayRequestFailed)
	})
}

func TestDecodeWebhook(t *testing.T) {
	client := newTestClient("http://unused")
	orderID := uuid.New()

	t.Run("valid signature with string reference", func(t *testing.T) {
		body := []byte(`{"event":"charge.success","data":{"reference":"PSK_REF_1","metadata":{"order_id":"` + orderID.String() + `"}}}`)

		event, err := client.DecodeWebhook(body, sign(body))
		require.NoError(t, err)
		assert.Equal(t, "charge.success", event.Event)
		assert.Equal(t, orderID, event.OrderID)
		assert.Equal(t, "PSK_REF_1", event.Reference)
	})

	t.Run("valid signature with object reference", func(t *testing.T) {
		body := []byte(`{"event":"charge.success","data":{"reference":{"reference":"PSK_REF_2"},"metadata":{"order_id":"` + orderID.String() + `"}}}`)

		event, err := client.DecodeWebhook(body, sign(body))
		require.NoError(t, err)
		assert.Equal(t, "PSK_REF_2", event.Reference)
	})

	t.Run("tampered body is rejected", func(t *testing.T) {
		body := []byte(`{"event":"charge.success","data":{"reference":"PSK_REF_1","metadata":{"order_id":"` + orderID.String() + `"}}}`)
		signature := sign(body)
		tampered := []byte(strings.Replace(string(body), "PSK_REF_1", "PSK_REF_X", 1))

		event, err := client.DecodeWebhook(tampered, signature)
		assert.Nil(t, event)
		assert.ErrorIs(t, err, gateway.ErrInvalidSignature)
	})

	t.Run("missing signature is rejected", func(t *testing.T) {
		body := []byte(`{"event":"charge.success"}`)

		event, err := client.DecodeWebhook(body, "")
		assert.Nil(t, event)
		assert.ErrorIs(t, err, gateway.ErrInvalidSignature)
	})

	t.Run("unparseable payload is malformed", func(t *testing.T) {
		body := []byte(`{"event":`)

		event, err := client.DecodeWebhook(body, sign(body))
		assert.Nil(t, event)
		assert.ErrorIs(t, err, gateway.ErrMalformedWebhook)
	})

	t.Run("missing reference is malformed", func(t *testing.T) {
		body := []byte(`{"event":"charge.success","data":{"metadata":{"order_id":"` + orderID.String() + `"}}}`)

		event, err := client.DecodeWebhook(body, sign(body))
		assert.Nil(t, event)
		assert.ErrorIs(t, err, gateway.ErrMalformedWebhook)
	})

	t.Run("missing order_id is malformed", func(t *testing.T) {
		body := []byte(`{"event":"charge.success","data":{"reference":"PSK_REF_1","metadata":{}}}`)

		event, err := client.DecodeWebhook(body, sign(body))
		assert.Nil(t, event)
		assert.ErrorIs(t, err, gateway.ErrMalformedWebhook)
	})
}

func TestReadWebhookBody(t *testing.T) {
	t.Run("reads the full body", func(t *testing.T) {
		body, err := gateway.ReadWebhookBody(strings.NewReader(`{"event":"charge.success"}`))
		require.NoError(t, err)
		assert.Equal(t, `{"event":"charge.success"}`, string(body))
	})

	t.Run("truncates past the read ceiling", func(t *testing.T) {
		body, err := gateway.ReadWebhookBody(strings.NewReader(strings.Repeat("a", 1<<21)))
		require.NoError(t, err)
		assert.Len(t, body, 1<<20)
	})
}
