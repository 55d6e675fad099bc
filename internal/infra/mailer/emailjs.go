package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"portfolio-services/internal/pkg/config"
	"portfolio-services/internal/pkg/errs"
	"portfolio-services/internal/usecase/commands"
)

var ErrSendFailed = errs.New("email send failed")

// EmailJSDispatcher forwards order notifications through the EmailJS REST
// API. The template consumes a flat parameter map; nesting is not supported.
type EmailJSDispatcher struct {
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	httpClient *http.Client
}

func NewEmailJSDispatcher(cfg config.MailerConfig) *EmailJSDispatcher {
	return &EmailJSDispatcher{
		baseURL:    cfg.BaseURL,
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (d *EmailJSDispatcher) Notify(ctx context.Context, n commands.Notification) error {
	params := map[string]string{
		"user_name":         n.CustomerName,
		"user_email":        n.CustomerEmail,
		"user_phone":        n.CustomerPhone,
		"service_name":      n.ServiceTitle,
		"service_category":  n.ServiceCategory,
		"base_price":        strconv.FormatInt(n.BaseAmount, 10),
		"urgency":           n.Urgency,
		"final_price":       strconv.FormatInt(n.FinalAmount, 10),
		"payment_method":    n.PaymentMethod,
		"payment_reference": n.PaymentReference,
		"notes":             n.Notes,
		"order_date":        n.OrderDate.Format("2006-01-02 15:04:05"),
	}
	if a := n.Attachment; a != nil {
		params["attachment_name"] = a.Filename
		params["attachment_type"] = a.MimeType
		params["attachment_content"] = base64.StdEncoding.EncodeToString(a.Content)
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      d.serviceID,
		TemplateID:     d.templateID,
		UserID:         d.publicKey,
		AccessToken:    d.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode send request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build send request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "send request failed"), ErrSendFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Mark(errs.New(fmt.Sprintf("send returned status %d", resp.StatusCode)), ErrSendFailed)
	}
	return nil
}
