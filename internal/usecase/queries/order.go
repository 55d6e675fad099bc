package queries

import (
	"context"
	"errors"
	"time"

	"portfolio-services/internal/infra"
	"portfolio-services/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrOrderNotFound = errors.New("order not found")

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/order.go -package=queriesmock

// Read models (DTO for read side)
type OrderView struct {
	ID                 uuid.UUID `json:"id"`
	ServiceID          uuid.UUID `json:"service_id"`
	ServiceTitle       string    `json:"service_title"`
	ServiceCategory    string    `json:"service_category"`
	CustomerName       string    `json:"customer_name"`
	CustomerEmail      string    `json:"customer_email"`
	CustomerPhone      *string   `json:"customer_phone,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	Urgency            string    `json:"urgency"`
	PaymentMethod      string    `json:"payment_method"`
	BaseAmount         int64     `json:"base_amount"`
	FinalAmount        int64     `json:"final_amount"`
	Status             string    `json:"status"`
	GatewayReference   *string   `json:"gateway_reference,omitempty"`
	HasProof           bool      `json:"has_proof"`
	ProofMimeType      *string   `json:"proof_mime_type,omitempty"`
	ProofSizeBytes     *int32    `json:"proof_size_bytes,omitempty"`
	NotificationFailed bool      `json:"notification_failed"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type OrderListItem struct {
	ID            uuid.UUID `json:"id"`
	ServiceTitle  string    `json:"service_title"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	PaymentMethod string    `json:"payment_method"`
	FinalAmount   int64     `json:"final_amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// DashboardView aggregates order counts for the admin landing view.
type DashboardView struct {
	TotalOrders     int64 `json:"total_orders"`
	Succeeded       int64 `json:"succeeded"`
	AwaitingPayment int64 `json:"awaiting_payment"`
	AwaitingProof   int64 `json:"awaiting_proof"`
	FailedEmails    int64 `json:"failed_emails"`
}

type OrderReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListViews(ctx context.Context, limit int32) ([]*OrderListItem, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountNotificationFailures(ctx context.Context) (int64, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	List(ctx context.Context, limit int32) ([]*OrderListItem, error)
	Dashboard(ctx context.Context) (*DashboardView, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Wrap(err, "failed to find order")
	}
	return view, nil
}

func (q *orderQueriesImpl) List(ctx context.Context, limit int32) ([]*OrderListItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	items, err := q.store.ListViews(ctx, limit)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list orders")
	}
	return items, nil
}

// Dashboard fans the independent count queries out concurrently; each one is
// a single-row aggregate, so per-connection ordering does not matter.
func (q *orderQueriesImpl) Dashboard(ctx context.Context) (*DashboardView, error) {
	var view DashboardView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := q.store.CountAll(gctx)
		view.TotalOrders = n
		return err
	})
	g.Go(func() error {
		n, err := q.store.CountByStatus(gctx, "succeeded")
		view.Succeeded = n
		return err
	})
	g.Go(func() error {
		n, err := q.store.CountByStatus(gctx, "awaiting_gateway_payment")
		view.AwaitingPayment = n
		return err
	})
	g.Go(func() error {
		n, err := q.store.CountByStatus(gctx, "awaiting_manual_proof")
		view.AwaitingProof = n
		return err
	})
	g.Go(func() error {
		n, err := q.store.CountNotificationFailures(gctx)
		view.FailedEmails = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, errs.Wrap(err, "failed to build dashboard")
	}
	return &view, nil
}
