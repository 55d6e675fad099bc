//go:build e2e

package order_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	reqdto "portfolio-services/internal/handler/dto/request"
	resdto "portfolio-services/internal/handler/dto/response"
	"portfolio-services/tests/common/authtest"
	"portfolio-services/tests/common/dbtest"
	"portfolio-services/tests/common/httptest"
	"portfolio-services/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type OrderFlowTestSuite struct {
	e2e.SharedSuite
}

func TestOrderFlowSuite(t *testing.T) {
	suite.Run(t, new(OrderFlowTestSuite))
}

func (s *OrderFlowTestSuite) placeRequest(serviceID uuid.UUID, urgency, method string) reqdto.PlaceOrderRequest {
	return reqdto.PlaceOrderRequest{
		ServiceID:     serviceID,
		Name:          "Ada Obi",
		Email:         "ada@example.com",
		Phone:         "08031234567",
		Notes:         "Please prioritize the landing page.",
		Urgency:       urgency,
		PaymentMethod: method,
	}
}

func (s *OrderFlowTestSuite) placeOrder(urgency, method string) resdto.PlaceOrderResponse {
	serviceID := dbtest.ServiceIDByTitle(s.T(), s.DB, "Business Website")

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders",
		s.placeRequest(serviceID, urgency, method), "")

	var placed resdto.PlaceOrderResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &placed)
	return placed
}

func (s *OrderFlowTestSuite) signWebhook(body []byte) string {
	mac := hmac.New(sha512.New, []byte(s.Config.Paystack.SecretKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *OrderFlowTestSuite) postWebhook(body []byte, signature string) *nethttptest.ResponseRecorder {
	req := nethttptest.NewRequest(http.MethodPost, "/api/payments/gateway/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("x-paystack-signature", signature)
	}
	w := nethttptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func chargeSuccessBody(orderID uuid.UUID, reference string) []byte {
	return fmt.Appendf(nil, `{
		"event": "charge.success",
		"data": {
			"reference": %q,
			"metadata": {"order_id": %q}
		}
	}`, reference, orderID.String())
}

// ============================================================
// Manual payment flow
// ============================================================

func (s *OrderFlowTestSuite) TestManualOrderLifecycle() {
	s.Run("success: manual order succeeds after proof upload", func() {
		placed := s.placeOrder("standard", "manual")
		s.Equal("awaiting_manual_proof", placed.Status)
		s.Equal(int64(350000), placed.BaseAmount)
		s.Equal(int64(350000), placed.FinalAmount)
		s.Nil(placed.Checkout)

		wantInstructions := &resdto.ManualInstructionsResponse{
			BTCAddress:      s.Config.Manual.BTCAddress,
			USDTAddress:     s.Config.Manual.USDTAddress,
			USDTNetwork:     s.Config.Manual.USDTNetwork,
			BankName:        s.Config.Manual.BankName,
			BankAccountName: s.Config.Manual.BankAccountName,
			BankAccountNo:   s.Config.Manual.BankAccountNo,
		}
		if diff := cmp.Diff(wantInstructions, placed.Instructions); diff != "" {
			s.Failf("instructions mismatch", "(-want +got):\n%s", diff)
		}
		s.Zero(s.Mail.Calls(), "no notification before a confirmed payment")

		proof := []byte("%PDF-1.4 fake receipt")
		w := httptest.PerformUpload(s.T(), s.Router, http.MethodPost,
			"/api/orders/"+placed.OrderID.String()+"/proof",
			"proof", "receipt.pdf", "application/pdf", proof)

		var payment resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &payment)
		s.Equal("succeeded", payment.Status)
		s.False(payment.NotificationFailed)
		s.Equal(1, s.Mail.Calls())

		s.Equal("succeeded", dbtest.OrderStatus(s.T(), s.DB, placed.OrderID))

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/orders/"+placed.OrderID.String(), nil, "")
		var view resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)
		s.True(view.HasProof)
		s.NotNil(view.ProofMimeType)
		s.Equal("application/pdf", *view.ProofMimeType)
	})

	s.Run("success: urgency multiplier applies to the quoted price", func() {
		placed := s.placeOrder("urgent", "manual")
		s.Equal(int64(350000), placed.BaseAmount)
		s.Equal(int64(525000), placed.FinalAmount)
	})

	s.Run("success: manual order can be abandoned", func() {
		placed := s.placeOrder("standard", "manual")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/orders/"+placed.OrderID.String()+"/abandon", nil, "")
		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal("cancelled", body["status"])
		s.Equal("cancelled", dbtest.OrderStatus(s.T(), s.DB, placed.OrderID))
	})
}

// ============================================================
// Gateway payment flow
// ============================================================

func (s *OrderFlowTestSuite) TestGatewayOrderLifecycle() {
	s.Run("success: checkout session is created and charge.success confirms the order", func() {
		placed := s.placeOrder("urgent", "gateway")
		s.Equal("awaiting_gateway_payment", placed.Status)
		s.Equal(int64(525000), placed.FinalAmount)
		s.Require().NotNil(placed.Checkout)
		s.Equal(s.Paystack.LastReference(), placed.Checkout.Reference)
		s.Contains(placed.Checkout.AuthorizationURL, placed.Checkout.Reference)

		body := chargeSuccessBody(placed.OrderID, placed.Checkout.Reference)
		w := s.postWebhook(body, s.signWebhook(body))

		var payment resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &payment)
		s.Equal("succeeded", payment.Status)
		s.Equal(placed.Checkout.Reference, payment.GatewayReference)
		s.Equal(1, s.Mail.Calls())
		s.Equal("succeeded", dbtest.OrderStatus(s.T(), s.DB, placed.OrderID))
	})

	s.Run("success: duplicate charge.success delivery is acknowledged once", func() {
		placed := s.placeOrder("standard", "gateway")

		body := chargeSuccessBody(placed.OrderID, placed.Checkout.Reference)
		w := s.postWebhook(body, s.signWebhook(body))
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
		s.Equal(1, s.Mail.Calls())

		w = s.postWebhook(body, s.signWebhook(body))
		var resp map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("ignored", resp["status"])
		s.Equal(1, s.Mail.Calls(), "a replay must not renotify")
		s.Equal("succeeded", dbtest.OrderStatus(s.T(), s.DB, placed.OrderID))
	})

	s.Run("success: cancelling gateway payment returns the order to draft", func() {
		placed := s.placeOrder("standard", "gateway")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/orders/"+placed.OrderID.String()+"/payment/cancel", nil, "")
		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal("draft", body["status"])
		s.Equal("draft", dbtest.OrderStatus(s.T(), s.DB, placed.OrderID))
	})

	s.Run("error: tampered webhook is rejected and order state is untouched", func() {
		placed := s.placeOrder("standard", "gateway")

		body := chargeSuccessBody(placed.OrderID, placed.Checkout.Reference)
		signature := s.signWebhook(append(body, ' '))
		w := s.postWebhook(body, signature)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid signature")

		s.Equal("awaiting_gateway_payment", dbtest.OrderStatus(s.T(), s.DB, placed.OrderID))
		s.Zero(s.Mail.Calls())
	})

	s.Run("success: non-charge events are acknowledged without confirming anything", func() {
		placed := s.placeOrder("standard", "gateway")

		body := fmt.Appendf(nil, `{"event":"transfer.success","data":{"reference":%q,"metadata":{"order_id":%q}}}`,
			placed.Checkout.Reference, placed.OrderID.String())
		w := s.postWebhook(body, s.signWebhook(body))

		var resp map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("ignored", resp["status"])
		s.Equal("awaiting_gateway_payment", dbtest.OrderStatus(s.T(), s.DB, placed.OrderID))
	})
}

// ============================================================
// Notification recovery
// ============================================================

func (s *OrderFlowTestSuite) TestNotificationRecovery() {
	s.Run("success: failed notification is flagged and cleared by retry", func() {
		s.Mail.SetFail(true)

		placed := s.placeOrder("standard", "manual")
		w := httptest.PerformUpload(s.T(), s.Router, http.MethodPost,
			"/api/orders/"+placed.OrderID.String()+"/proof",
			"proof", "receipt.pdf", "application/pdf", []byte("%PDF-1.4 fake receipt"))

		var payment resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &payment)
		s.Equal("succeeded", payment.Status)
		s.True(payment.NotificationFailed, "delivery failure must not fail the payment")
		s.True(dbtest.OrderNotificationFailed(s.T(), s.DB, placed.OrderID))

		token := authtest.LoginAdmin(s.T(), s.Router, s.Config.Admin.Email, s.Config.Admin.Password)
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/admin/dashboard", nil, token)
		var dashboard resdto.DashboardResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &dashboard)
		s.Equal(int64(1), dashboard.FailedEmails)

		s.Mail.SetFail(false)
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/orders/"+placed.OrderID.String()+"/notifications/retry", nil, "")
		var retried map[string]string
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &retried)
		s.Equal("sent", retried["status"])
		s.False(dbtest.OrderNotificationFailed(s.T(), s.DB, placed.OrderID))
	})

	s.Run("error: retry while delivery is still failing keeps the flag", func() {
		s.Mail.SetFail(true)

		placed := s.placeOrder("standard", "manual")
		w := httptest.PerformUpload(s.T(), s.Router, http.MethodPost,
			"/api/orders/"+placed.OrderID.String()+"/proof",
			"proof", "receipt.pdf", "application/pdf", []byte("%PDF-1.4 fake receipt"))
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/orders/"+placed.OrderID.String()+"/notifications/retry", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadGateway, "")
		s.True(dbtest.OrderNotificationFailed(s.T(), s.DB, placed.OrderID))
	})
}

// ============================================================
// Admin surface
// ============================================================

func (s *OrderFlowTestSuite) TestAdminSurface() {
	s.Run("success: admin can browse orders and download proof", func() {
		manual := s.placeOrder("standard", "manual")
		gateway := s.placeOrder("urgent", "gateway")

		proof := []byte("%PDF-1.4 admin download check")
		w := httptest.PerformUpload(s.T(), s.Router, http.MethodPost,
			"/api/orders/"+manual.OrderID.String()+"/proof",
			"proof", "receipt.pdf", "application/pdf", proof)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)

		token := authtest.LoginAdmin(s.T(), s.Router, s.Config.Admin.Email, s.Config.Admin.Password)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/admin/orders?limit=10", nil, token)
		var list []resdto.OrderListItemResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		s.Len(list, 2)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/admin/orders/"+gateway.OrderID.String(), nil, token)
		var view resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &view)

		want := resdto.OrderResponse{
			ID:            gateway.OrderID,
			ServiceTitle:  "Business Website",
			CustomerName:  "Ada Obi",
			CustomerEmail: "ada@example.com",
			Urgency:       "urgent",
			PaymentMethod: "gateway",
			BaseAmount:    350000,
			FinalAmount:   525000,
			Status:        "awaiting_gateway_payment",
		}
		diff := cmp.Diff(want, view,
			cmpopts.IgnoreFields(resdto.OrderResponse{},
				"ServiceID", "ServiceCategory", "CustomerPhone", "Notes",
				"GatewayReference", "CreatedAt", "UpdatedAt"),
			cmpopts.EquateEmpty())
		if diff != "" {
			s.Failf("order view mismatch", "(-want +got):\n%s", diff)
		}

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/admin/orders/"+manual.OrderID.String()+"/proof", nil, token)
		s.Equal(http.StatusOK, w.Code)
		s.Equal("application/pdf", w.Header().Get("Content-Type"))
		s.Equal(proof, w.Body.Bytes())

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/admin/dashboard", nil, token)
		var dashboard resdto.DashboardResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &dashboard)
		s.Equal(int64(2), dashboard.TotalOrders)
		s.Equal(int64(1), dashboard.Succeeded)
		s.Equal(int64(1), dashboard.AwaitingPayment)
	})

	s.Run("error: admin endpoints reject unauthenticated requests", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/admin/orders", nil, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

// ============================================================
// Catalog
// ============================================================

func (s *OrderFlowTestSuite) TestCatalog() {
	s.Run("success: seeded services are listed", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/services", nil, "")
		var services []resdto.ServiceResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &services)
		s.Len(services, 5)

		titles := make([]string, len(services))
		for i, svc := range services {
			titles[i] = svc.Title
		}
		s.Contains(titles, "Business Website")
		s.Contains(titles, "E-commerce Store")
	})

	s.Run("success: a single service exposes its subtopics", func() {
		id := dbtest.ServiceIDByTitle(s.T(), s.DB, "Brand Identity Pack")
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/services/"+id.String(), nil, "")
		var svc resdto.ServiceResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &svc)
		s.Equal("₦150,000", svc.Price)
		wantSubtopics := []string{"Logo design", "Color palette", "Typography", "Brand guide"}
		if diff := cmp.Diff(wantSubtopics, svc.Subtopics); diff != "" {
			s.Failf("subtopics mismatch", "(-want +got):\n%s", diff)
		}
	})
}
