package readstore

import (
	"context"
	"errors"

	"portfolio-services/internal/infra"
	"portfolio-services/internal/infra/db"
	"portfolio-services/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ServiceReadStore struct {
	db db.DBTX
}

func NewServiceReadStore(dbtx db.DBTX) *ServiceReadStore {
	return &ServiceReadStore{db: dbtx}
}

func (s *ServiceReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	const sql = `
		SELECT id, title, category, description, price, subtopics, created_at
		FROM services
		WHERE id = $1`

	view, err := scanServiceView(s.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service view", err)
	}
	return view, nil
}

func (s *ServiceReadStore) ListViews(ctx context.Context) ([]*queries.ServiceView, error) {
	const sql = `
		SELECT id, title, category, description, price, subtopics, created_at
		FROM services
		ORDER BY category, title`

	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	var views []*queries.ServiceView
	for rows.Next() {
		view, err := scanServiceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan service row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate service rows", err)
	}
	return views, nil
}

func scanServiceView(row pgx.Row) (*queries.ServiceView, error) {
	var (
		view        queries.ServiceView
		description pgtype.Text
		createdAt   pgtype.Timestamptz
	)
	if err := row.Scan(
		&view.ID, &view.Title, &view.Category, &description,
		&view.Price, &view.Subtopics, &createdAt,
	); err != nil {
		return nil, err
	}
	view.Description = description.String
	view.CreatedAt = createdAt.Time
	if view.Subtopics == nil {
		view.Subtopics = []string{}
	}
	return &view, nil
}
