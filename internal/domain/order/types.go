package order

import "errors"

var (
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Status is the lifecycle state of a single order attempt. Exactly one of the
// two awaiting states can be active at a time; succeeded is reachable only
// through GatewaySuccess or AttachProof, which both require their artifact.
type Status string

const (
	StatusDraft                  Status = "draft"
	StatusAwaitingGatewayPayment Status = "awaiting_gateway_payment"
	StatusAwaitingManualProof    Status = "awaiting_manual_proof"
	StatusSucceeded              Status = "succeeded"
	StatusCancelled              Status = "cancelled"
	StatusFailed                 Status = "failed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusAwaitingGatewayPayment, StatusAwaitingManualProof,
		StatusSucceeded, StatusCancelled, StatusFailed:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusCancelled || s == StatusFailed
}

type PaymentMethod string

const (
	PaymentGateway PaymentMethod = "gateway"
	PaymentManual  PaymentMethod = "manual"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentGateway, PaymentManual:
		return PaymentMethod(s), nil
	}
	return "", ErrInvalidPaymentMethod
}

func (m PaymentMethod) String() string {
	return string(m)
}
