package api

import (
	"errors"
	"io"
	"net/http"

	"portfolio-services/internal/domain/order"
	reqdto "portfolio-services/internal/handler/dto/request"
	resdto "portfolio-services/internal/handler/dto/response"
	"portfolio-services/internal/handler/httperr"
	"portfolio-services/internal/usecase/commands"
	"portfolio-services/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Place order
// @Description Validate the order form, price the service, and start the chosen payment flow
// @Tags orders
// @Accept json
// @Produce json
// @Param request body reqdto.PlaceOrderRequest true "Place order request"
// @Success 201 {object} resdto.PlaceOrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	var req reqdto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.PlaceOrder(c.Request.Context(), req.ToInput())
	if err != nil {
		abortPlaceOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPlaceOrderResult(result))
}

func abortPlaceOrderError(c *gin.Context, err error) {
	var verrs order.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", verrs)
	case errors.Is(err, commands.ErrServiceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
	case errors.Is(err, commands.ErrGatewayUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment gateway unavailable", nil)
	case errors.Is(err, commands.ErrDomainValidationFailed):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to place order", nil)
	}
}

// @Summary Get order
// @Description Get an order's status, amounts, and payment state
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Cancel gateway payment
// @Description Return an order to draft after the customer closes the hosted checkout
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/payment/cancel [post]
func (h *OrderHandler) CancelPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.CancelGatewayPayment(c.Request.Context(), id); err != nil {
		abortOrderCommandError(c, err, "Cancel failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.StatusDraft.String()})
}

// @Summary Submit payment proof
// @Description Upload the manual payment proof (image or PDF, max 5 MiB)
// @Tags orders
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Order ID"
// @Param proof formData file true "Proof of payment"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /orders/{id}/proof [post]
func (h *OrderHandler) SubmitProof(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Proof file required", nil)
		return
	}
	if fileHeader.Size > order.MaxProofSizeBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, order.ErrProofTooLarge, "Proof exceeds size limit", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !order.IsAllowedProofType(mimeType) {
		httperr.AbortWithError(c, http.StatusBadRequest, order.ErrProofBadType, "Proof type not allowed", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read proof", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, order.MaxProofSizeBytes+1))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read proof", nil)
		return
	}
	if len(data) > order.MaxProofSizeBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, order.ErrProofTooLarge, "Proof exceeds size limit", nil)
		return
	}

	result, err := h.cmds.SubmitPaymentProof(c.Request.Context(), id, data, mimeType)
	if err != nil {
		abortProofError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentResult(result))
}

func abortProofError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
	case errors.Is(err, order.ErrProofTooLarge):
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, "Proof exceeds size limit", nil)
	case errors.Is(err, order.ErrProofMissing), errors.Is(err, order.ErrProofBadType):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid proof", nil)
	case errors.Is(err, order.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Order is not awaiting proof", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to submit proof", nil)
	}
}

// @Summary Retry notification
// @Description Resend the order confirmation email after a delivery failure
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /orders/{id}/notifications/retry [post]
func (h *OrderHandler) RetryNotification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.RetryNotification(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrNotificationFailed) {
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Notification delivery failed", nil)
			return
		}
		abortOrderCommandError(c, err, "Retry failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

// @Summary Abandon order
// @Description Cancel an in-progress order from any non-terminal state
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/abandon [post]
func (h *OrderHandler) Abandon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.AbandonOrder(c.Request.Context(), id); err != nil {
		abortOrderCommandError(c, err, "Abandon failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.StatusCancelled.String()})
}

func abortOrderCommandError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, order.ErrNotSucceeded):
		httperr.AbortWithError(c, http.StatusConflict, err, msg, nil)
	case errors.Is(err, commands.ErrDomainValidationFailed):
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
