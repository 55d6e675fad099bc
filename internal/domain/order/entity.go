package order

import (
	"errors"
	"time"

	"portfolio-services/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition     = errors.New("invalid order state transition")
	ErrEmptyGatewayReference = errors.New("gateway reference cannot be empty")
	ErrNotSucceeded          = errors.New("order has not succeeded")
)

type Services struct {
	Clock clock.Clock
}

// Order is a single order attempt over one catalog offering. It owns the
// payment lifecycle: draft, exactly one awaiting branch, then a terminal
// state. Every transition either succeeds cleanly or leaves the order in its
// prior state with a typed reason.
type Order struct {
	id              uuid.UUID
	serviceID       uuid.UUID
	serviceTitle    string
	serviceCategory string

	customer CustomerDetails
	tier     UrgencyTier
	method   PaymentMethod

	baseAmount  int64
	finalAmount int64

	status             Status
	gatewayReference   string
	proof              *PaymentProof
	notificationFailed bool

	createdAt time.Time
	updatedAt time.Time
}

// NewOrder builds a draft order with pricing locked in from the offering's
// display price and the selected urgency tier. Pricing is recomputed by
// constructing a fresh order; a draft is superseded, never mutated in place.
func NewOrder(
	services *Services,
	serviceID uuid.UUID,
	serviceTitle, serviceCategory, displayPrice string,
	customer CustomerDetails,
	tier UrgencyTier,
	method PaymentMethod,
) (*Order, error) {
	baseAmount, err := ExtractBaseAmount(displayPrice)
	if err != nil {
		return nil, err
	}
	finalAmount, err := ComputeFinalAmount(displayPrice, tier)
	if err != nil {
		return nil, err
	}

	now := services.Clock.Now()
	return &Order{
		id:              uuid.New(),
		serviceID:       serviceID,
		serviceTitle:    serviceTitle,
		serviceCategory: serviceCategory,
		customer:        customer,
		tier:            tier,
		method:          method,
		baseAmount:      baseAmount,
		finalAmount:     finalAmount,
		status:          StatusDraft,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructOrder(
	id, serviceID uuid.UUID,
	serviceTitle, serviceCategory string,
	customer CustomerDetails,
	tier UrgencyTier,
	method PaymentMethod,
	baseAmount, finalAmount int64,
	status Status,
	gatewayReference string,
	proof *PaymentProof,
	notificationFailed bool,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:                 id,
		serviceID:          serviceID,
		serviceTitle:       serviceTitle,
		serviceCategory:    serviceCategory,
		customer:           customer,
		tier:               tier,
		method:             method,
		baseAmount:         baseAmount,
		finalAmount:        finalAmount,
		status:             status,
		gatewayReference:   gatewayReference,
		proof:              proof,
		notificationFailed: notificationFailed,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Submit moves a draft into exactly one awaiting state, chosen by the payment
// method. All failing form fields are reported together; on any failure the
// order stays in draft.
func (o *Order) Submit(policy FormPolicy, now time.Time) error {
	if o.status != StatusDraft {
		return ErrInvalidTransition
	}

	if verrs := o.customer.Validate(policy); len(verrs) > 0 {
		return verrs
	}

	switch o.method {
	case PaymentGateway:
		o.status = StatusAwaitingGatewayPayment
	case PaymentManual:
		o.status = StatusAwaitingManualProof
	default:
		return ErrInvalidPaymentMethod
	}
	o.updatedAt = now
	return nil
}

// GatewaySuccess records the opaque reference returned by the payment
// processor verbatim. The reference is never regenerated or normalized here.
func (o *Order) GatewaySuccess(reference string, now time.Time) error {
	if o.status != StatusAwaitingGatewayPayment {
		return ErrInvalidTransition
	}
	if reference == "" {
		return ErrEmptyGatewayReference
	}
	o.gatewayReference = reference
	o.status = StatusSucceeded
	o.updatedAt = now
	return nil
}

// GatewayCancelled returns the order to draft with all form fields intact so
// the customer can resubmit without retyping.
func (o *Order) GatewayCancelled(now time.Time) error {
	if o.status != StatusAwaitingGatewayPayment {
		return ErrInvalidTransition
	}
	o.status = StatusDraft
	o.updatedAt = now
	return nil
}

// AttachProof completes the manual path. A refused proof leaves the order
// awaiting; this is recoverable, not a failure.
func (o *Order) AttachProof(proof *PaymentProof, now time.Time) error {
	if o.status != StatusAwaitingManualProof {
		return ErrInvalidTransition
	}
	if proof == nil {
		return ErrProofMissing
	}
	if proof.SizeBytes() > MaxProofSizeBytes {
		return ErrProofTooLarge
	}
	o.proof = proof
	o.status = StatusSucceeded
	o.updatedAt = now
	return nil
}

// Fail marks a terminal failure, e.g. the gateway refused to open a checkout.
func (o *Order) Fail(now time.Time) error {
	if o.status.IsTerminal() {
		return ErrInvalidTransition
	}
	o.status = StatusFailed
	o.updatedAt = now
	return nil
}

// Abandon closes the flow from any non-terminal state.
func (o *Order) Abandon(now time.Time) error {
	if o.status.IsTerminal() {
		return ErrInvalidTransition
	}
	o.status = StatusCancelled
	o.updatedAt = now
	return nil
}

// MarkNotificationFailed flags a failed confirmation email. The order stays
// succeeded; the flag is a secondary warning only.
func (o *Order) MarkNotificationFailed(now time.Time) error {
	if o.status != StatusSucceeded {
		return ErrNotSucceeded
	}
	o.notificationFailed = true
	o.updatedAt = now
	return nil
}

func (o *Order) ClearNotificationFailure(now time.Time) error {
	if o.status != StatusSucceeded {
		return ErrNotSucceeded
	}
	o.notificationFailed = false
	o.updatedAt = now
	return nil
}

func (o *Order) ID() uuid.UUID             { return o.id }
func (o *Order) ServiceID() uuid.UUID      { return o.serviceID }
func (o *Order) ServiceTitle() string      { return o.serviceTitle }
func (o *Order) ServiceCategory() string   { return o.serviceCategory }
func (o *Order) Customer() CustomerDetails { return o.customer }
func (o *Order) Tier() UrgencyTier         { return o.tier }
func (o *Order) Method() PaymentMethod     { return o.method }
func (o *Order) BaseAmount() int64         { return o.baseAmount }
func (o *Order) FinalAmount() int64        { return o.finalAmount }
func (o *Order) Status() Status            { return o.status }
func (o *Order) GatewayReference() string  { return o.gatewayReference }
func (o *Order) Proof() *PaymentProof      { return o.proof }
func (o *Order) NotificationFailed() bool  { return o.notificationFailed }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }
