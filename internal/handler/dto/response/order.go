package response

import (
	"time"

	"portfolio-services/internal/usecase/commands"
	"portfolio-services/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PlaceOrderResponse struct {
	OrderID      uuid.UUID                   `json:"order_id"`
	Status       string                      `json:"status"`
	BaseAmount   int64                       `json:"base_amount"`
	FinalAmount  int64                       `json:"final_amount"`
	Checkout     *CheckoutResponse           `json:"checkout,omitempty"`
	Instructions *ManualInstructionsResponse `json:"instructions,omitempty"`
}

type CheckoutResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type ManualInstructionsResponse struct {
	BTCAddress      string `json:"btc_address"`
	USDTAddress     string `json:"usdt_address"`
	USDTNetwork     string `json:"usdt_network"`
	BankName        string `json:"bank_name"`
	BankAccountName string `json:"bank_account_name"`
	BankAccountNo   string `json:"bank_account_no"`
}

func FromPlaceOrderResult(r *commands.PlaceOrderResult) *PlaceOrderResponse {
	resp := &PlaceOrderResponse{
		OrderID:     r.OrderID,
		Status:      r.Status.String(),
		BaseAmount:  r.BaseAmount,
		FinalAmount: r.FinalAmount,
	}
	if r.Checkout != nil {
		resp.Checkout = &CheckoutResponse{}
		_ = copier.Copy(resp.Checkout, r.Checkout)
	}
	if r.Instructions != nil {
		resp.Instructions = FromManualInstructions(*r.Instructions)
	}
	return resp
}

func FromManualInstructions(in commands.ManualInstructions) *ManualInstructionsResponse {
	resp := &ManualInstructionsResponse{}
	_ = copier.Copy(resp, &in)
	return resp
}

type PaymentResponse struct {
	OrderID            uuid.UUID `json:"order_id"`
	Status             string    `json:"status"`
	GatewayReference   string    `json:"gateway_reference,omitempty"`
	NotificationFailed bool      `json:"notification_failed"`
}

func FromPaymentResult(r *commands.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		OrderID:            r.OrderID,
		Status:             r.Status.String(),
		GatewayReference:   r.GatewayReference,
		NotificationFailed: r.NotificationFailed,
	}
}

type OrderResponse struct {
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

func FromOrderView(v *queries.OrderView) *OrderResponse {
	resp := &OrderResponse{}
	_ = copier.Copy(resp, v)
	return resp
}

type OrderListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	ServiceTitle  string    `json:"service_title"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	PaymentMethod string    `json:"payment_method"`
	FinalAmount   int64     `json:"final_amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromOrderList(items []*queries.OrderListItem) []*OrderListItemResponse {
	res := make([]*OrderListItemResponse, len(items))
	for i, it := range items {
		res[i] = &OrderListItemResponse{}
		_ = copier.Copy(res[i], it)
	}
	return res
}

type DashboardResponse struct {
	TotalOrders     int64 `json:"total_orders"`
	Succeeded       int64 `json:"succeeded"`
	AwaitingPayment int64 `json:"awaiting_payment"`
	AwaitingProof   int64 `json:"awaiting_proof"`
	FailedEmails    int64 `json:"failed_emails"`
}

func FromDashboardView(v *queries.DashboardView) *DashboardResponse {
	resp := &DashboardResponse{}
	_ = copier.Copy(resp, v)
	return resp
}
