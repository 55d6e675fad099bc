//go:build unit

package api_test

import (
	"bytes"
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"portfolio-services/internal/domain/order"
	"portfolio-services/internal/handler/api"
	resdto "portfolio-services/internal/handler/dto/response"
	"portfolio-services/internal/infra/gateway"
	"portfolio-services/internal/pkg/errs"
	"portfolio-services/internal/usecase/commands"
	"portfolio-services/tests/common/httptest"
	commandsmock "portfolio-services/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockDecoder  *commandsmock.MockWebhookDecoder
	instructions commands.ManualInstructions
	handler      *api.PaymentHandler
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockDecoder = commandsmock.NewMockWebhookDecoder(s.mockCtrl)
	s.instructions = commands.ManualInstructions{
		BTCAddress:      "bc1qexample",
		USDTAddress:     "TExampleAddress",
		USDTNetwork:     "TRC20",
		BankName:        "First Bank",
		BankAccountName: "Portfolio Services",
		BankAccountNo:   "0123456789",
	}
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockDecoder, s.instructions)

	s.router.POST("/payments/gateway/webhook", s.handler.Webhook)
	s.router.GET("/payments/manual-instructions", s.handler.ManualInstructions)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

// postWebhook sends a raw body with the gateway signature header, bypassing
// the JSON helper since webhook payloads are verified byte-for-byte.
func (s *PaymentHandlerTestSuite) postWebhook(body []byte, signature string) *nethttptest.ResponseRecorder {
	req := nethttptest.NewRequest(http.MethodPost, "/payments/gateway/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("x-paystack-signature", signature)
	}
	w := nethttptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *PaymentHandlerTestSuite) TestWebhook() {
	orderID := uuid.New()
	body := []byte(`{"event":"charge.success","data":{"reference":"PSK_REF_100","metadata":{"order_id":"` + orderID.String() + `"}}}`)

	s.Run("success: charge.success confirms the order", func() {
		event := &commands.WebhookEvent{
			Event:     "charge.success",
			OrderID:   orderID,
			Reference: "PSK_REF_100",
		}
		s.mockDecoder.EXPECT().DecodeWebhook(body, "valid-signature").
			Return(event, nil).Times(1)
		s.mockCommands.EXPECT().ConfirmGatewayPayment(gomock.Any(), orderID, "PSK_REF_100").
			Return(&commands.PaymentResult{
				OrderID:          orderID,
				Status:           order.StatusSucceeded,
				GatewayReference: "PSK_REF_100",
			}, nil).Times(1)

		rec := s.postWebhook(body, "valid-signature")

		var response resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("succeeded", response.Status)
		s.Equal("PSK_REF_100", response.GatewayReference)
	})

	s.Run("success: other events are acknowledged without confirming", func() {
		event := &commands.WebhookEvent{Event: "transfer.success"}
		s.mockDecoder.EXPECT().DecodeWebhook(gomock.Any(), gomock.Any()).
			Return(event, nil).Times(1)

		rec := s.postWebhook([]byte(`{"event":"transfer.success"}`), "valid-signature")

		var bodyMap map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &bodyMap)
		s.Equal("ignored", bodyMap["status"])
	})

	s.Run("error: 401 Unauthorized for an invalid signature", func() {
		s.mockDecoder.EXPECT().DecodeWebhook(body, "bad-signature").
			Return(nil, gateway.ErrInvalidSignature).Times(1)

		rec := s.postWebhook(body, "bad-signature")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid signature")
	})

	s.Run("error: 400 Bad Request for a malformed payload", func() {
		s.mockDecoder.EXPECT().DecodeWebhook(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("failed to decode webhook"), gateway.ErrMalformedWebhook)).Times(1)

		rec := s.postWebhook([]byte(`{"event":`), "valid-signature")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Malformed webhook")
	})

	s.Run("success: replayed charge.success is acknowledged, not retried", func() {
		event := &commands.WebhookEvent{
			Event:     "charge.success",
			OrderID:   orderID,
			Reference: "PSK_REF_100",
		}
		s.mockDecoder.EXPECT().DecodeWebhook(body, "valid-signature").
			Return(event, nil).Times(1)
		s.mockCommands.EXPECT().ConfirmGatewayPayment(gomock.Any(), orderID, "PSK_REF_100").
			Return(nil, errs.Mark(order.ErrInvalidTransition, commands.ErrDomainValidationFailed)).Times(1)

		rec := s.postWebhook(body, "valid-signature")

		var bodyMap map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &bodyMap)
		s.Equal("ignored", bodyMap["status"])
	})

	s.Run("error: 404 Not Found when the order does not exist", func() {
		event := &commands.WebhookEvent{
			Event:     "charge.success",
			OrderID:   orderID,
			Reference: "PSK_REF_100",
		}
		s.mockDecoder.EXPECT().DecodeWebhook(body, "valid-signature").
			Return(event, nil).Times(1)
		s.mockCommands.EXPECT().ConfirmGatewayPayment(gomock.Any(), orderID, "PSK_REF_100").
			Return(nil, commands.ErrOrderNotFound).Times(1)

		rec := s.postWebhook(body, "valid-signature")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 500 on confirmation failure", func() {
		event := &commands.WebhookEvent{
			Event:     "charge.success",
			OrderID:   orderID,
			Reference: "PSK_REF_100",
		}
		s.mockDecoder.EXPECT().DecodeWebhook(body, "valid-signature").
			Return(event, nil).Times(1)
		s.mockCommands.EXPECT().ConfirmGatewayPayment(gomock.Any(), orderID, "PSK_REF_100").
			Return(nil, errors.New("database error")).Times(1)

		rec := s.postWebhook(body, "valid-signature")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to confirm payment")
	})
}

func (s *PaymentHandlerTestSuite) TestManualInstructions() {
	s.Run("success: returns the configured payment rails", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/manual-instructions", nil, "")

		var response resdto.ManualInstructionsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("bc1qexample", response.BTCAddress)
		s.Equal("TRC20", response.USDTNetwork)
		s.Equal("0123456789", response.BankAccountNo)
	})
}
