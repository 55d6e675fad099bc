package queries

import (
	"context"
	"errors"
	"time"

	"portfolio-services/internal/infra"
	"portfolio-services/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrServiceNotFound = errors.New("service not found")

type ServiceView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Subtopics   []string  `json:"subtopics"`
	CreatedAt   time.Time `json:"created_at"`
}

type ServiceReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	ListViews(ctx context.Context) ([]*ServiceView, error)
}

type CatalogQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	List(ctx context.Context) ([]*ServiceView, error)
}

type catalogQueriesImpl struct {
	store ServiceReadStore
}

func NewCatalogQueries(store ServiceReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ServiceView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Wrap(err, "failed to find service")
	}
	return view, nil
}

func (q *catalogQueriesImpl) List(ctx context.Context) ([]*ServiceView, error) {
	views, err := q.store.ListViews(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list services")
	}
	return views, nil
}
