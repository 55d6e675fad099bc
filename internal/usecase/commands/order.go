package commands

import (
	"context"
	"errors"
	"log/slog"

	"portfolio-services/internal/domain/order"
	"portfolio-services/internal/infra"
	"portfolio-services/internal/pkg/clock"
	"portfolio-services/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrServiceNotFound    = errors.New("service not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrNotificationFailed = errors.New("notification delivery failed")

	// Error markers for categorization
	ErrDomainValidationFailed  = errors.New("domain validation failed")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

type PlaceOrderInput struct {
	ServiceID     uuid.UUID
	Name          string
	Email         string
	Phone         string
	Notes         string
	Urgency       string
	PaymentMethod string
}

type PlaceOrderResult struct {
	OrderID     uuid.UUID
	Status      order.Status
	BaseAmount  int64
	FinalAmount int64
	// Checkout is set on the gateway branch, Instructions on the manual one.
	Checkout     *CheckoutSession
	Instructions *ManualInstructions
}

type PaymentResult struct {
	OrderID            uuid.UUID
	Status             order.Status
	GatewayReference   string
	NotificationFailed bool
}

type OrderCommands interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error)
	ConfirmGatewayPayment(ctx context.Context, orderID uuid.UUID, reference string) (*PaymentResult, error)
	CancelGatewayPayment(ctx context.Context, orderID uuid.UUID) error
	SubmitPaymentProof(ctx context.Context, orderID uuid.UUID, data []byte, mimeType string) (*PaymentResult, error)
	RetryNotification(ctx context.Context, orderID uuid.UUID) error
	AbandonOrder(ctx context.Context, orderID uuid.UUID) error
}

type orderUseCaseImpl struct {
	orders       OrderRepository
	services     ServiceReader
	gateway      PaymentGateway
	dispatcher   NotificationDispatcher
	instructions ManualInstructions
	policy       order.FormPolicy
	db           *pgxpool.Pool
	clock        clock.Clock
}

func NewOrderCommands(
	orders OrderRepository,
	services ServiceReader,
	gateway PaymentGateway,
	dispatcher NotificationDispatcher,
	instructions ManualInstructions,
	policy order.FormPolicy,
	db *pgxpool.Pool,
	clk clock.Clock,
) OrderCommands {
	return &orderUseCaseImpl{
		orders:       orders,
		services:     services,
		gateway:      gateway,
		dispatcher:   dispatcher,
		instructions: instructions,
		policy:       policy,
		db:           db,
		clock:        clk,
	}
}

func (uc *orderUseCaseImpl) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	svc, err := uc.services.FindByID(ctx, in.ServiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Wrap(err, "failed to find service")
	}

	tier, err := order.ParseTier(in.Urgency)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}
	method, err := order.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	customer := order.NewCustomerDetails(in.Name, in.Email, in.Phone, in.Notes)

	services := &order.Services{Clock: uc.clock}
	ord, err := order.NewOrder(services, svc.ID(), svc.Title(), svc.Category(), svc.Price(), customer, tier, method)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	if err := ord.Submit(uc.policy, uc.clock.Now()); err != nil {
		var verrs order.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, verrs
		}
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	if err := uc.orders.Create(ctx, uc.db, ord); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	result := &PlaceOrderResult{
		OrderID:     ord.ID(),
		Status:      ord.Status(),
		BaseAmount:  ord.BaseAmount(),
		FinalAmount: ord.FinalAmount(),
	}

	switch method {
	case order.PaymentGateway:
		session, gerr := uc.gateway.InitializeCheckout(ctx, InitializeCheckoutInput{
			OrderID:     ord.ID(),
			Email:       customer.Email(),
			AmountUnits: ord.FinalAmount(),
		})
		if gerr != nil {
			slog.Error("gateway checkout initialization failed", "order_id", ord.ID(), "error", gerr.Error())
			uc.markFailed(ctx, ord)
			return nil, errs.Mark(gerr, ErrGatewayUnavailable)
		}
		result.Checkout = session
	case order.PaymentManual:
		instructions := uc.instructions
		result.Instructions = &instructions
	}

	return result, nil
}

func (uc *orderUseCaseImpl) ConfirmGatewayPayment(ctx context.Context, orderID uuid.UUID, reference string) (*PaymentResult, error) {
	ord, err := uc.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := ord.GatewaySuccess(reference, uc.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	if err := uc.orders.Update(ctx, uc.db, ord); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	notificationFailed := uc.dispatchNotification(ctx, ord, nil)

	return &PaymentResult{
		OrderID:            ord.ID(),
		Status:             ord.Status(),
		GatewayReference:   ord.GatewayReference(),
		NotificationFailed: notificationFailed,
	}, nil
}

func (uc *orderUseCaseImpl) CancelGatewayPayment(ctx context.Context, orderID uuid.UUID) error {
	ord, err := uc.findOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := ord.GatewayCancelled(uc.clock.Now()); err != nil {
		return errs.Mark(err, ErrDomainValidationFailed)
	}

	if err := uc.orders.Update(ctx, uc.db, ord); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (uc *orderUseCaseImpl) SubmitPaymentProof(ctx context.Context, orderID uuid.UUID, data []byte, mimeType string) (*PaymentResult, error) {
	proof, err := order.NewPaymentProof(data, mimeType)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	ord, err := uc.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := ord.AttachProof(proof, uc.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	if err := uc.orders.Update(ctx, uc.db, ord); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	attachment := &NotificationAttachment{
		Filename: "payment-proof",
		MimeType: proof.MimeType(),
		Content:  proof.Data(),
	}
	notificationFailed := uc.dispatchNotification(ctx, ord, attachment)

	return &PaymentResult{
		OrderID:            ord.ID(),
		Status:             ord.Status(),
		NotificationFailed: notificationFailed,
	}, nil
}

// RetryNotification is the explicit, user-triggered resend. The core never
// retries on its own.
func (uc *orderUseCaseImpl) RetryNotification(ctx context.Context, orderID uuid.UUID) error {
	ord, err := uc.findOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if ord.Status() != order.StatusSucceeded {
		return errs.Mark(order.ErrNotSucceeded, ErrDomainValidationFailed)
	}

	var attachment *NotificationAttachment
	if ord.Method() == order.PaymentManual {
		proof, perr := uc.orders.FindProof(ctx, orderID)
		if perr != nil && !infra.IsKind(perr, infra.KindNotFound) {
			return errs.Mark(perr, ErrDatabaseOperationFailed)
		}
		if proof != nil {
			attachment = &NotificationAttachment{
				Filename: "payment-proof",
				MimeType: proof.MimeType(),
				Content:  proof.Data(),
			}
		}
	}

	if err := uc.dispatcher.Notify(ctx, uc.buildNotification(ord, attachment)); err != nil {
		slog.Warn("notification retry failed", "order_id", ord.ID(), "error", err.Error())
		return errs.Mark(err, ErrNotificationFailed)
	}

	if err := ord.ClearNotificationFailure(uc.clock.Now()); err == nil {
		if uerr := uc.orders.Update(ctx, uc.db, ord); uerr != nil {
			return errs.Mark(uerr, ErrDatabaseOperationFailed)
		}
	}
	return nil
}

func (uc *orderUseCaseImpl) AbandonOrder(ctx context.Context, orderID uuid.UUID) error {
	ord, err := uc.findOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := ord.Abandon(uc.clock.Now()); err != nil {
		return errs.Mark(err, ErrDomainValidationFailed)
	}

	if err := uc.orders.Update(ctx, uc.db, ord); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (uc *orderUseCaseImpl) findOrder(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	ord, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Wrap(err, "failed to find order")
	}
	return ord, nil
}

// dispatchNotification sends the confirmation email after the succeeded
// transition has been recorded. Delivery failure never reverts the order; it
// only sets the warning flag.
func (uc *orderUseCaseImpl) dispatchNotification(ctx context.Context, ord *order.Order, attachment *NotificationAttachment) bool {
	if err := uc.dispatcher.Notify(ctx, uc.buildNotification(ord, attachment)); err != nil {
		slog.Warn("order notification failed", "order_id", ord.ID(), "error", err.Error())
		if merr := ord.MarkNotificationFailed(uc.clock.Now()); merr == nil {
			if uerr := uc.orders.Update(ctx, uc.db, ord); uerr != nil {
				slog.Error("failed to record notification failure", "order_id", ord.ID(), "error", uerr.Error())
			}
		}
		return true
	}
	return false
}

func (uc *orderUseCaseImpl) buildNotification(ord *order.Order, attachment *NotificationAttachment) Notification {
	reference := ord.GatewayReference()
	if reference == "" {
		reference = "Manual Payment"
	}

	return Notification{
		CustomerName:     ord.Customer().Name(),
		CustomerEmail:    ord.Customer().Email(),
		CustomerPhone:    ord.Customer().Phone(),
		ServiceTitle:     ord.ServiceTitle(),
		ServiceCategory:  ord.ServiceCategory(),
		BaseAmount:       ord.BaseAmount(),
		FinalAmount:      ord.FinalAmount(),
		Urgency:          ord.Tier().String(),
		PaymentMethod:    ord.Method().String(),
		PaymentReference: reference,
		Notes:            ord.Customer().Notes(),
		OrderDate:        ord.CreatedAt(),
		Attachment:       attachment,
	}
}

func (uc *orderUseCaseImpl) markFailed(ctx context.Context, ord *order.Order) {
	if err := ord.Fail(uc.clock.Now()); err != nil {
		return
	}
	if err := uc.orders.Update(ctx, uc.db, ord); err != nil {
		slog.Error("failed to mark order as failed", "order_id", ord.ID(), "error", err.Error())
	}
}
