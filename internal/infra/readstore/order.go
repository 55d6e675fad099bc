package readstore

import (
	"context"
	"errors"

	"portfolio-services/internal/infra"
	"portfolio-services/internal/infra/db"
	"portfolio-services/internal/pkg/ptr"
	"portfolio-services/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (s *OrderReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const sql = `
		SELECT id, service_id, service_title, service_category,
		       customer_name, customer_email, customer_phone, notes,
		       urgency, payment_method, base_amount, final_amount,
		       status, gateway_reference,
		       proof IS NOT NULL AS has_proof,
		       proof_mime_type, octet_length(proof) AS proof_size_bytes,
		       notification_failed, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var (
		view                              queries.OrderView
		phone, notes, gatewayRef, mime    pgtype.Text
		proofSize                         pgtype.Int4
		createdAt, updatedAt              pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, sql, id).Scan(
		&view.ID, &view.ServiceID, &view.ServiceTitle, &view.ServiceCategory,
		&view.CustomerName, &view.CustomerEmail, &phone, &notes,
		&view.Urgency, &view.PaymentMethod, &view.BaseAmount, &view.FinalAmount,
		&view.Status, &gatewayRef,
		&view.HasProof, &mime, &proofSize,
		&view.NotificationFailed, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order view", err)
	}

	view.CustomerPhone = ptr.StringFromPgtype(phone)
	view.Notes = ptr.StringFromPgtype(notes)
	view.GatewayReference = ptr.StringFromPgtype(gatewayRef)
	view.ProofMimeType = ptr.StringFromPgtype(mime)
	view.ProofSizeBytes = ptr.Int32FromPgtype(proofSize)
	view.CreatedAt = createdAt.Time
	view.UpdatedAt = updatedAt.Time
	return &view, nil
}

func (s *OrderReadStore) ListViews(ctx context.Context, limit int32) ([]*queries.OrderListItem, error) {
	const sql = `
		SELECT id, service_title, customer_name, customer_email,
		       payment_method, final_amount, status, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	items := make([]*queries.OrderListItem, 0, limit)
	for rows.Next() {
		var (
			item      queries.OrderListItem
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.ServiceTitle, &item.CustomerName, &item.CustomerEmail,
			&item.PaymentMethod, &item.FinalAmount, &item.Status, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		item.CreatedAt = createdAt.Time
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order rows", err)
	}
	return items, nil
}

func (s *OrderReadStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count orders by status", err)
	}
	return n, nil
}

func (s *OrderReadStore) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count orders", err)
	}
	return n, nil
}

func (s *OrderReadStore) CountNotificationFailures(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE notification_failed`).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count notification failures", err)
	}
	return n, nil
}
