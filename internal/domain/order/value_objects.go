package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	MinNameLength  = 2
	MinPhoneLength = 10

	// MaxProofSizeBytes is the payment proof ceiling (5 MiB).
	MaxProofSizeBytes = 5 * 1024 * 1024
)

var (
	ErrProofMissing  = errors.New("payment proof is required")
	ErrProofTooLarge = errors.New("payment proof exceeds size limit")
	ErrProofBadType  = errors.New("payment proof type not allowed")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var allowedProofMimeTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"application/pdf": {},
}

// FormPolicy is passed in by the caller; which fields are required is order
// configuration, not a rule of the state machine itself.
type FormPolicy struct {
	PhoneRequired bool
}

// FieldError reports a single failing form field with its reason.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrors collects every failing field; submission validation never
// stops at the first failure.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// CustomerDetails holds the order form input. Values are trimmed on
// construction; validation is deferred to Submit so a draft can hold
// incomplete input.
type CustomerDetails struct {
	name  string
	email string
	phone string
	notes string
}

func NewCustomerDetails(name, email, phone, notes string) CustomerDetails {
	return CustomerDetails{
		name:  strings.TrimSpace(name),
		email: strings.TrimSpace(email),
		phone: strings.TrimSpace(phone),
		notes: strings.TrimSpace(notes),
	}
}

func (c CustomerDetails) Name() string  { return c.name }
func (c CustomerDetails) Email() string { return c.email }
func (c CustomerDetails) Phone() string { return c.phone }
func (c CustomerDetails) Notes() string { return c.notes }

// Validate batch-checks all fields against the policy and reports every
// failure at once.
func (c CustomerDetails) Validate(policy FormPolicy) ValidationErrors {
	var errs ValidationErrors

	if len(c.name) < MinNameLength {
		errs = append(errs, FieldError{
			Field:  "name",
			Reason: fmt.Sprintf("must be at least %d characters", MinNameLength),
		})
	}
	if !emailPattern.MatchString(c.email) {
		errs = append(errs, FieldError{
			Field:  "email",
			Reason: "must be a valid email address",
		})
	}
	if policy.PhoneRequired && len(c.phone) < MinPhoneLength {
		errs = append(errs, FieldError{
			Field:  "phone",
			Reason: fmt.Sprintf("must be at least %d characters", MinPhoneLength),
		})
	}

	return errs
}

// PaymentProof is the customer-supplied evidence of a manual payment.
type PaymentProof struct {
	data     []byte
	mimeType string
}

func NewPaymentProof(data []byte, mimeType string) (*PaymentProof, error) {
	if len(data) == 0 {
		return nil, ErrProofMissing
	}
	if len(data) > MaxProofSizeBytes {
		return nil, ErrProofTooLarge
	}
	if _, ok := allowedProofMimeTypes[mimeType]; !ok {
		return nil, ErrProofBadType
	}
	return &PaymentProof{data: data, mimeType: mimeType}, nil
}

func (p *PaymentProof) Data() []byte     { return p.data }
func (p *PaymentProof) MimeType() string { return p.mimeType }
func (p *PaymentProof) SizeBytes() int   { return len(p.data) }

func IsAllowedProofType(mimeType string) bool {
	_, ok := allowedProofMimeTypes[mimeType]
	return ok
}
