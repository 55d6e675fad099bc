package repository

import (
	"context"
	"errors"

	"portfolio-services/internal/domain/catalog"
	"portfolio-services/internal/infra"
	"portfolio-services/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ServiceRepository struct {
	db db.DBTX
}

func NewServiceRepository(dbtx db.DBTX) *ServiceRepository {
	return &ServiceRepository{db: dbtx}
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	const sql = `
		SELECT id, title, category, description, price, subtopics
		FROM services
		WHERE id = $1`

	var (
		serviceID   uuid.UUID
		title       string
		category    string
		description pgtype.Text
		price       string
		subtopics   []string
	)
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&serviceID, &title, &category, &description, &price, &subtopics,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}

	return catalog.ReconstructService(serviceID, title, category, description.String, price, subtopics), nil
}
