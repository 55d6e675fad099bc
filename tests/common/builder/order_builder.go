//go:build unit || e2e

package builder

import (
	"time"

	reqdto "portfolio-services/internal/handler/dto/request"
	"portfolio-services/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID            uuid.UUID
	ServiceID     uuid.UUID
	ServiceTitle  string
	Category      string
	Name          string
	Email         string
	Phone         string
	Notes         string
	Urgency       string
	PaymentMethod string
	BaseAmount    int64
	FinalAmount   int64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewOrderBuilder() *OrderBuilder {
	now := time.Now()
	return &OrderBuilder{
		ID:            uuid.New(),
		ServiceID:     uuid.New(),
		ServiceTitle:  "Business Website",
		Category:      "Web Development",
		Name:          "Ada Obi",
		Email:         "ada@example.com",
		Phone:         "08031234567",
		Notes:         "Please start next week",
		Urgency:       "standard",
		PaymentMethod: "gateway",
		BaseAmount:    350000,
		FinalAmount:   350000,
		Status:        "awaiting_gateway_payment",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *OrderBuilder) WithUrgency(urgency string) *OrderBuilder {
	b.Urgency = urgency
	return b
}

func (b *OrderBuilder) WithPaymentMethod(method string) *OrderBuilder {
	b.PaymentMethod = method
	return b
}

func (b *OrderBuilder) WithStatus(status string) *OrderBuilder {
	b.Status = status
	return b
}

func (b *OrderBuilder) BuildPlaceRequestDTO() reqdto.PlaceOrderRequest {
	return reqdto.PlaceOrderRequest{
		ServiceID:     b.ServiceID,
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		Notes:         b.Notes,
		Urgency:       b.Urgency,
		PaymentMethod: b.PaymentMethod,
	}
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	return &queries.OrderView{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		ServiceTitle:    b.ServiceTitle,
		ServiceCategory: b.Category,
		CustomerName:    b.Name,
		CustomerEmail:   b.Email,
		CustomerPhone:   &b.Phone,
		Notes:           &b.Notes,
		Urgency:         b.Urgency,
		PaymentMethod:   b.PaymentMethod,
		BaseAmount:      b.BaseAmount,
		FinalAmount:     b.FinalAmount,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (b *OrderBuilder) BuildListItem() *queries.OrderListItem {
	return &queries.OrderListItem{
		ID:            b.ID,
		ServiceTitle:  b.ServiceTitle,
		CustomerName:  b.Name,
		CustomerEmail: b.Email,
		PaymentMethod: b.PaymentMethod,
		FinalAmount:   b.FinalAmount,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}
