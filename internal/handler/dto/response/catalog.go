package response

import (
	"time"

	"portfolio-services/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Subtopics   []string  `json:"subtopics"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromServiceView(v *queries.ServiceView) *ServiceResponse {
	resp := &ServiceResponse{}
	_ = copier.Copy(resp, v)
	return resp
}

func FromServiceList(views []*queries.ServiceView) []*ServiceResponse {
	res := make([]*ServiceResponse, len(views))
	for i, v := range views {
		res[i] = FromServiceView(v)
	}
	return res
}
