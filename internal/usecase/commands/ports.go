package commands

import (
	"context"
	"time"

	"portfolio-services/internal/domain/catalog"
	"portfolio-services/internal/domain/order"
	"portfolio-services/internal/infra/db"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports.go -package=commandsmock

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) error
	Update(ctx context.Context, tx db.DBTX, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	FindProof(ctx context.Context, id uuid.UUID) (*order.PaymentProof, error)
}

type ServiceReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	Upsert(ctx context.Context, email, passwordHash string) error
}

type AdminUser struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

// CheckoutSession is what the payment gateway hands back when a hosted
// checkout is initialized.
type CheckoutSession struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type InitializeCheckoutInput struct {
	OrderID uuid.UUID
	Email   string
	// AmountUnits is in whole currency units; the adapter scales to the
	// gateway's minor units at its own boundary.
	AmountUnits int64
}

type PaymentGateway interface {
	InitializeCheckout(ctx context.Context, in InitializeCheckoutInput) (*CheckoutSession, error)
}

// WebhookEvent is a gateway callback normalized by the adapter. Reference is
// opaque; OrderID comes from the metadata the checkout was initialized with.
type WebhookEvent struct {
	Event     string
	OrderID   uuid.UUID
	Reference string
}

type WebhookDecoder interface {
	DecodeWebhook(body []byte, signature string) (*WebhookEvent, error)
}

type NotificationAttachment struct {
	Filename string
	MimeType string
	Content  []byte
}

// Notification is the flat payload forwarded to the email service once per
// succeeded order.
type Notification struct {
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	ServiceTitle     string
	ServiceCategory  string
	BaseAmount       int64
	FinalAmount      int64
	Urgency          string
	PaymentMethod    string
	PaymentReference string
	Notes            string
	OrderDate        time.Time
	Attachment       *NotificationAttachment
}

type NotificationDispatcher interface {
	Notify(ctx context.Context, n Notification) error
}

// ManualInstructions are the out-of-band payment rails shown to customers on
// the manual branch.
type ManualInstructions struct {
	BTCAddress      string
	USDTAddress     string
	USDTNetwork     string
	BankName        string
	BankAccountName string
	BankAccountNo   string
}
