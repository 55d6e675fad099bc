package request

import (
	"portfolio-services/internal/usecase/commands"

	"github.com/google/uuid"
)

type PlaceOrderRequest struct {
	ServiceID     uuid.UUID `json:"service_id" binding:"required"`
	Name          string    `json:"name" binding:"required"`
	Email         string    `json:"email" binding:"required"`
	Phone         string    `json:"phone"`
	Notes         string    `json:"notes" binding:"max=2000"`
	Urgency       string    `json:"urgency" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
}

func (r *PlaceOrderRequest) ToInput() commands.PlaceOrderInput {
	return commands.PlaceOrderInput{
		ServiceID:     r.ServiceID,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Notes:         r.Notes,
		Urgency:       r.Urgency,
		PaymentMethod: r.PaymentMethod,
	}
}
