//go:build unit || e2e

package builder

import (
	"time"

	"portfolio-services/internal/domain/catalog"
	"portfolio-services/internal/usecase/queries"

	"github.com/google/uuid"
)

type ServiceBuilder struct {
	ID          uuid.UUID
	Title       string
	Category    string
	Description string
	Price       string
	Subtopics   []string
	CreatedAt   time.Time
}

func NewServiceBuilder() *ServiceBuilder {
	return &ServiceBuilder{
		ID:          uuid.New(),
		Title:       "Business Website",
		Category:    "Web Development",
		Description: "A responsive marketing site with contact forms",
		Price:       "₦350,000",
		Subtopics:   []string{"Responsive design", "SEO setup", "Contact forms"},
		CreatedAt:   time.Now(),
	}
}

func (b *ServiceBuilder) WithPrice(price string) *ServiceBuilder {
	b.Price = price
	return b
}

func (b *ServiceBuilder) BuildEntity() *catalog.Service {
	return catalog.ReconstructService(b.ID, b.Title, b.Category, b.Description, b.Price, b.Subtopics)
}

func (b *ServiceBuilder) BuildView() *queries.ServiceView {
	return &queries.ServiceView{
		ID:          b.ID,
		Title:       b.Title,
		Category:    b.Category,
		Description: b.Description,
		Price:       b.Price,
		Subtopics:   b.Subtopics,
		CreatedAt:   b.CreatedAt,
	}
}
