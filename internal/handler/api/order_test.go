//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"portfolio-services/internal/domain/order"
	"portfolio-services/internal/handler/api"
	resdto "portfolio-services/internal/handler/dto/response"
	"portfolio-services/internal/pkg/errs"
	"portfolio-services/internal/usecase/commands"
	"portfolio-services/internal/usecase/queries"
	"portfolio-services/tests/common/builder"
	"portfolio-services/tests/common/httptest"
	"portfolio-services/tests/common/testutil"
	commandsmock "portfolio-services/tests/mock/commands"
	queriesmock "portfolio-services/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/orders", s.handler.Place)
	s.router.GET("/orders/:id", s.handler.Get)
	s.router.POST("/orders/:id/payment/cancel", s.handler.CancelPayment)
	s.router.POST("/orders/:id/proof", s.handler.SubmitProof)
	s.router.POST("/orders/:id/notifications/retry", s.handler.RetryNotification)
	s.router.POST("/orders/:id/abandon", s.handler.Abandon)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

type testCaseOrder struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestPlace
// ================================================================================

func (s *OrderHandlerTestSuite) TestPlace() {
	url := "/orders"

	reqBody := builder.NewOrderBuilder().BuildPlaceRequestDTO()
	orderID := uuid.New()
	gatewayResult := &commands.PlaceOrderResult{
		OrderID:     orderID,
		Status:      order.StatusAwaitingGatewayPayment,
		BaseAmount:  350000,
		FinalAmount: 350000,
		Checkout: &commands.CheckoutSession{
			AuthorizationURL: "https://checkout.paystack.com/abc123",
			AccessCode:       "abc123",
			Reference:        "PSK_1748779200000_x1y2z3a4b",
		},
	}

	s.Run("success: returns 201 Created with checkout session", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), reqBody.ToInput()).
			Return(gatewayResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.PlaceOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(orderID, response.OrderID)
		s.Equal("awaiting_gateway_payment", response.Status)
		s.Require().NotNil(response.Checkout)
		s.Equal("https://checkout.paystack.com/abc123", response.Checkout.AuthorizationURL)
		s.Nil(response.Instructions)
	})

	s.Run("success: manual branch returns payment instructions", func() {
		manualBody := builder.NewOrderBuilder().WithPaymentMethod("manual").BuildPlaceRequestDTO()
		manualResult := &commands.PlaceOrderResult{
			OrderID:     orderID,
			Status:      order.StatusAwaitingManualProof,
			BaseAmount:  350000,
			FinalAmount: 350000,
			Instructions: &commands.ManualInstructions{
				BTCAddress: "bc1qexample",
				BankName:   "First Bank",
			},
		}
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), manualBody.ToInput()).
			Return(manualResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, manualBody, "")

		var response resdto.PlaceOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("awaiting_manual_proof", response.Status)
		s.Nil(response.Checkout)
		s.Require().NotNil(response.Instructions)
		s.Equal("bc1qexample", response.Instructions.BTCAddress)
	})

	s.Run("error: 400 Bad Request on binding validation errors", func() {
		testCases := []testCaseOrder{
			{name: "missing field: service_id (required)", mutate: testutil.Field("service_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: name (required)", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: urgency (required)", mutate: testutil.Field("urgency", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: payment_method (required)", mutate: testutil.Field("payment_method", nil), expectCode: http.StatusBadRequest},
			{name: "notes length OK (2000 chars)", mutate: testutil.Field("notes", strings.Repeat("a", 2000)), expectCode: http.StatusCreated},
			{name: "notes length invalid (2001 chars)", mutate: testutil.Field("notes", strings.Repeat("a", 2001)), expectCode: http.StatusBadRequest},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
						Return(gatewayResult, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: 400 with field detail on domain validation errors", func() {
		verrs := order.ValidationErrors{
			{Field: "phone", Reason: "phone is required"},
		}
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), reqBody.ToInput()).
			Return(nil, verrs).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
		s.Contains(rec.Body.String(), "phone")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "service not found",
				commandsError:  commands.ErrServiceNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Service not found",
			},
			{
				name:           "gateway unavailable",
				commandsError:  errs.Mark(errors.New("initialize request failed"), commands.ErrGatewayUnavailable),
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Payment gateway unavailable",
			},
			{
				name:           "domain validation error",
				commandsError:  errs.Mark(order.ErrUnknownTier, commands.ErrDomainValidationFailed),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid order",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Failed to place order",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), reqBody.ToInput()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *OrderHandlerTestSuite) TestGet() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String()

	returnView := builder.NewOrderBuilder().BuildView()
	returnView.ID = orderID

	s.Run("success: returns 200 OK with OrderResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(orderID, response.ID)
		s.Equal(returnView.Status, response.Status)
		s.Equal(returnView.FinalAmount, response.FinalAmount)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/invalid-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing order", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), orderID).
			Return(nil, queries.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}

// ================================================================================
// TestCancelPayment
// ================================================================================

func (s *OrderHandlerTestSuite) TestCancelPayment() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/payment/cancel"

	s.Run("success: returns 200 OK with draft status", func() {
		s.mockCommands.EXPECT().CancelGatewayPayment(gomock.Any(), orderID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("draft", body["status"])
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "order not found",
				commandsError:  commands.ErrOrderNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Order not found",
			},
			{
				name:           "invalid transition",
				commandsError:  errs.Mark(order.ErrInvalidTransition, commands.ErrDomainValidationFailed),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Cancel failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Cancel failed",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelGatewayPayment(gomock.Any(), orderID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestSubmitProof
// ================================================================================

func (s *OrderHandlerTestSuite) TestSubmitProof() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/proof"
	proofData := []byte("%PDF-1.4 receipt")

	s.Run("success: returns 200 OK with succeeded status", func() {
		s.mockCommands.EXPECT().SubmitPaymentProof(gomock.Any(), orderID, proofData, "application/pdf").
			Return(&commands.PaymentResult{
				OrderID: orderID,
				Status:  order.StatusSucceeded,
			}, nil).Times(1)

		rec := httptest.PerformUpload(s.T(), s.router, http.MethodPost, url, "proof", "receipt.pdf", "application/pdf", proofData)

		var response resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("succeeded", response.Status)
		s.False(response.NotificationFailed)
	})

	s.Run("error: 413 when the file exceeds the size limit", func() {
		oversized := make([]byte, order.MaxProofSizeBytes+1)

		rec := httptest.PerformUpload(s.T(), s.router, http.MethodPost, url, "proof", "huge.pdf", "application/pdf", oversized)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusRequestEntityTooLarge, "Proof exceeds size limit")
	})

	s.Run("error: 400 for a disallowed content type", func() {
		rec := httptest.PerformUpload(s.T(), s.router, http.MethodPost, url, "proof", "archive.zip", "application/zip", proofData)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Proof type not allowed")
	})

	s.Run("error: 400 when the proof part is missing", func() {
		rec := httptest.PerformUpload(s.T(), s.router, http.MethodPost, url, "attachment", "receipt.pdf", "application/pdf", proofData)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Proof file required")
	})

	s.Run("error: 409 when the order is not awaiting proof", func() {
		s.mockCommands.EXPECT().SubmitPaymentProof(gomock.Any(), orderID, proofData, "application/pdf").
			Return(nil, errs.Mark(order.ErrInvalidTransition, commands.ErrDomainValidationFailed)).Times(1)

		rec := httptest.PerformUpload(s.T(), s.router, http.MethodPost, url, "proof", "receipt.pdf", "application/pdf", proofData)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Order is not awaiting proof")
	})

	s.Run("error: 404 for a missing order", func() {
		s.mockCommands.EXPECT().SubmitPaymentProof(gomock.Any(), orderID, proofData, "application/pdf").
			Return(nil, commands.ErrOrderNotFound).Times(1)

		rec := httptest.PerformUpload(s.T(), s.router, http.MethodPost, url, "proof", "receipt.pdf", "application/pdf", proofData)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}

// ================================================================================
// TestRetryNotification
// ================================================================================

func (s *OrderHandlerTestSuite) TestRetryNotification() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/notifications/retry"

	s.Run("success: returns 200 OK after resending", func() {
		s.mockCommands.EXPECT().RetryNotification(gomock.Any(), orderID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("sent", body["status"])
	})

	s.Run("error: 502 when delivery fails again", func() {
		s.mockCommands.EXPECT().RetryNotification(gomock.Any(), orderID).
			Return(errs.Mark(errors.New("send returned status 502"), commands.ErrNotificationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Notification delivery failed")
	})

	s.Run("error: 409 when the order has not succeeded", func() {
		s.mockCommands.EXPECT().RetryNotification(gomock.Any(), orderID).
			Return(errs.Mark(order.ErrNotSucceeded, commands.ErrDomainValidationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Retry failed")
	})
}

// ================================================================================
// TestAbandon
// ================================================================================

func (s *OrderHandlerTestSuite) TestAbandon() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/abandon"

	s.Run("success: returns 200 OK with cancelled status", func() {
		s.mockCommands.EXPECT().AbandonOrder(gomock.Any(), orderID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body["status"])
	})

	s.Run("error: 409 for a terminal order", func() {
		s.mockCommands.EXPECT().AbandonOrder(gomock.Any(), orderID).
			Return(errs.Mark(order.ErrInvalidTransition, commands.ErrDomainValidationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Abandon failed")
	})
}
