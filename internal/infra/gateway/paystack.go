package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"portfolio-services/internal/pkg/clock"
	"portfolio-services/internal/pkg/config"
	"portfolio-services/internal/pkg/errs"
	"portfolio-services/internal/usecase/commands"

	"github.com/google/uuid"
)

var (
	ErrGatewayRequestFailed = errs.New("payment gateway request failed")
	ErrInvalidSignature     = errs.New("webhook signature verification failed")
	ErrMalformedWebhook     = errs.New("malformed webhook payload")
)

const referenceAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// PaystackClient talks to the Paystack REST API. Amount scaling to kobo
// (minor units, x100) happens here and nowhere else.
type PaystackClient struct {
	baseURL     string
	secretKey   string
	callbackURL string
	httpClient  *http.Client
	clock       clock.Clock
}

func NewPaystackClient(cfg config.PaystackConfig, clk clock.Clock) *PaystackClient {
	return &PaystackClient{
		baseURL:     cfg.BaseURL,
		secretKey:   cfg.SecretKey,
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		clock:       clk,
	}
}

type initializeRequest struct {
	Email       string             `json:"email"`
	Amount      int64              `json:"amount"`
	Reference   string             `json:"reference"`
	CallbackURL string             `json:"callback_url,omitempty"`
	Metadata    initializeMetadata `json:"metadata"`
}

type initializeMetadata struct {
	OrderID string `json:"order_id"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

func (c *PaystackClient) InitializeCheckout(ctx context.Context, in commands.InitializeCheckoutInput) (*commands.CheckoutSession, error) {
	body, err := json.Marshal(initializeRequest{
		Email:       in.Email,
		Amount:      in.AmountUnits * 100, // kobo
		Reference:   c.newReference(),
		CallbackURL: c.callbackURL,
		Metadata:    initializeMetadata{OrderID: in.OrderID.String()},
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode initialize request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build initialize request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "initialize request failed"), ErrGatewayRequestFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("initialize returned status %d", resp.StatusCode)),
			ErrGatewayRequestFailed,
		)
	}

	var out initializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to decode initialize response"), ErrGatewayRequestFailed)
	}
	if !out.Status {
		return nil, errs.Mark(errs.New("initialize rejected: "+out.Message), ErrGatewayRequestFailed)
	}

	return &commands.CheckoutSession{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

// newReference seeds a locally unique reference; the value Paystack echoes
// back is stored verbatim and never parsed.
func (c *PaystackClient) newReference() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}
	return fmt.Sprintf("PSK_%d_%s", c.clock.Now().UnixMilli(), suffix)
}

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference json.RawMessage `json:"reference"`
		Metadata  struct {
			OrderID string `json:"order_id"`
		} `json:"metadata"`
	} `json:"data"`
}

// VerifySignature checks the x-paystack-signature header: an HMAC-SHA512 of
// the raw body keyed with the secret key, hex encoded.
func (c *PaystackClient) VerifySignature(body []byte, signature string) error {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// DecodeWebhook verifies the signature, then decodes and normalizes the
// payload. The raw payload carries the reference either as a bare string or
// as an object; both collapse to a single reference string.
func (c *PaystackClient) DecodeWebhook(body []byte, signature string) (*commands.WebhookEvent, error) {
	if err := c.VerifySignature(body, signature); err != nil {
		return nil, err
	}
	return c.parseWebhook(body)
}

func (c *PaystackClient) parseWebhook(body []byte) (*commands.WebhookEvent, error) {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to decode webhook"), ErrMalformedWebhook)
	}

	reference, err := normalizeReference(payload.Data.Reference)
	if err != nil {
		return nil, errs.Mark(err, ErrMalformedWebhook)
	}

	orderID, err := uuid.Parse(payload.Data.Metadata.OrderID)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "webhook metadata missing order_id"), ErrMalformedWebhook)
	}

	return &commands.WebhookEvent{
		Event:     payload.Event,
		OrderID:   orderID,
		Reference: reference,
	}, nil
}

// normalizeReference accepts the two shapes Paystack has shipped over time:
// a bare string, or an object whose "reference" field holds the string.
func normalizeReference(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errs.New("webhook missing reference")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var obj struct {
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.Reference == "" {
		return "", errs.New("webhook reference has unrecognized shape")
	}
	return obj.Reference, nil
}

// ReadWebhookBody bounds the body read so a hostile peer cannot stream
// unbounded data into memory.
func ReadWebhookBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return nil, errs.Wrap(err, "failed to read webhook body")
	}
	return body, nil
}
