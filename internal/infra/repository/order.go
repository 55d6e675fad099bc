package repository

import (
	"context"
	"errors"

	"portfolio-services/internal/domain/order"
	"portfolio-services/internal/infra"
	"portfolio-services/internal/infra/db"
	"portfolio-services/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) error {
	const sql = `
		INSERT INTO orders (
			id, service_id, service_title, service_category,
			customer_name, customer_email, customer_phone, notes,
			urgency, payment_method, base_amount, final_amount,
			status, gateway_reference, notification_failed,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`

	_, err := tx.Exec(ctx, sql,
		o.ID(), o.ServiceID(), o.ServiceTitle(), o.ServiceCategory(),
		o.Customer().Name(), o.Customer().Email(),
		textOrNull(o.Customer().Phone()), textOrNull(o.Customer().Notes()),
		o.Tier().String(), o.Method().String(), o.BaseAmount(), o.FinalAmount(),
		o.Status().String(), textOrNull(o.GatewayReference()), o.NotificationFailed(),
		o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

// Update persists the mutable lifecycle state. Form fields are immutable once
// the order exists; a resubmission supersedes the order with a new row.
func (r *OrderRepository) Update(ctx context.Context, tx db.DBTX, o *order.Order) error {
	var tag int64
	if p := o.Proof(); p != nil {
		const sql = `
			UPDATE orders
			SET status = $2,
			    gateway_reference = $3,
			    notification_failed = $4,
			    proof = $5,
			    proof_mime_type = $6,
			    updated_at = $7
			WHERE id = $1`
		ct, err := tx.Exec(ctx, sql,
			o.ID(), o.Status().String(), textOrNull(o.GatewayReference()),
			o.NotificationFailed(), p.Data(), p.MimeType(), o.UpdatedAt())
		if err != nil {
			return infra.WrapRepoErr("failed to update order", err)
		}
		tag = ct.RowsAffected()
	} else {
		const sql = `
			UPDATE orders
			SET status = $2,
			    gateway_reference = $3,
			    notification_failed = $4,
			    updated_at = $5
			WHERE id = $1`
		ct, err := tx.Exec(ctx, sql,
			o.ID(), o.Status().String(), textOrNull(o.GatewayReference()),
			o.NotificationFailed(), o.UpdatedAt())
		if err != nil {
			return infra.WrapRepoErr("failed to update order", err)
		}
		tag = ct.RowsAffected()
	}

	if tag == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

// FindByID rehydrates the aggregate without the proof blob; callers that need
// the stored proof bytes use FindProof.
func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	const sql = `
		SELECT id, service_id, service_title, service_category,
		       customer_name, customer_email, customer_phone, notes,
		       urgency, payment_method, base_amount, final_amount,
		       status, gateway_reference, notification_failed,
		       created_at, updated_at
		FROM orders
		WHERE id = $1`

	var (
		orderID, serviceID             uuid.UUID
		serviceTitle, serviceCategory  string
		customerName, customerEmail    string
		customerPhone, notes           pgtype.Text
		urgency, paymentMethod         string
		baseAmount, finalAmount        int64
		status                         string
		gatewayReference               pgtype.Text
		notificationFailed             bool
		createdAt, updatedAt           pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&orderID, &serviceID, &serviceTitle, &serviceCategory,
		&customerName, &customerEmail, &customerPhone, &notes,
		&urgency, &paymentMethod, &baseAmount, &finalAmount,
		&status, &gatewayReference, &notificationFailed,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	parsedStatus, err := order.ParseStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid order status in storage", err)
	}
	tier, err := order.ParseTier(urgency)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid urgency tier in storage", err)
	}
	method, err := order.ParsePaymentMethod(paymentMethod)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid payment method in storage", err)
	}

	customer := order.NewCustomerDetails(customerName, customerEmail, customerPhone.String, notes.String)

	return order.ReconstructOrder(
		orderID, serviceID, serviceTitle, serviceCategory,
		customer, tier, method,
		baseAmount, finalAmount,
		parsedStatus, gatewayReference.String, nil, notificationFailed,
		createdAt.Time, updatedAt.Time,
	), nil
}

func (r *OrderRepository) FindProof(ctx context.Context, id uuid.UUID) (*order.PaymentProof, error) {
	const sql = `SELECT proof, proof_mime_type FROM orders WHERE id = $1`

	var (
		data     []byte
		mimeType pgtype.Text
	)
	err := r.db.QueryRow(ctx, sql, id).Scan(&data, &mimeType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment proof", err)
	}
	if len(data) == 0 {
		return nil, infra.WrapRepoErr("payment proof not found", nil, infra.KindNotFound)
	}

	proof, err := order.NewPaymentProof(data, mimeType.String)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid payment proof in storage", err)
	}
	return proof, nil
}

func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return ptr.TextToPgtype(&s)
}
