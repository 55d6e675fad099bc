package api

import (
	"errors"
	"net/http"

	"portfolio-services/internal/domain/order"
	resdto "portfolio-services/internal/handler/dto/response"
	"portfolio-services/internal/handler/httperr"
	"portfolio-services/internal/infra/gateway"
	"portfolio-services/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "x-paystack-signature"

const eventChargeSuccess = "charge.success"

type PaymentHandler struct {
	cmds         commands.OrderCommands
	decoder      commands.WebhookDecoder
	instructions commands.ManualInstructions
}

func NewPaymentHandler(cmds commands.OrderCommands, decoder commands.WebhookDecoder, instructions commands.ManualInstructions) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, decoder: decoder, instructions: instructions}
}

// @Summary Payment gateway webhook
// @Description Receive Paystack events; charge.success confirms the matching order
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /payments/gateway/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := gateway.ReadWebhookBody(c.Request.Body)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read body", nil)
		return
	}

	event, err := h.decoder.DecodeWebhook(body, c.GetHeader(signatureHeader))
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidSignature) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid signature", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Malformed webhook", nil)
		return
	}

	// Unhandled event types are acknowledged so the gateway stops resending.
	if event.Event != eventChargeSuccess {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	result, err := h.cmds.ConfirmGatewayPayment(c.Request.Context(), event.OrderID, event.Reference)
	if err != nil {
		if errors.Is(err, commands.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		// Replayed deliveries hit an order that already left the awaiting
		// state; acknowledge them or the gateway keeps resending.
		if errors.Is(err, order.ErrInvalidTransition) {
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to confirm payment", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentResult(result))
}

// @Summary Manual payment instructions
// @Description Crypto addresses and bank details for the manual payment flow
// @Tags payments
// @Produce json
// @Success 200 {object} resdto.ManualInstructionsResponse
// @Router /payments/manual-instructions [get]
func (h *PaymentHandler) ManualInstructions(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromManualInstructions(h.instructions))
}
