package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "portfolio-services/internal/handler/dto/response"
	"portfolio-services/internal/handler/httperr"
	"portfolio-services/internal/infra"
	"portfolio-services/internal/usecase/commands"
	"portfolio-services/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler serves the reviewer surface: order lists, proof downloads,
// and the dashboard counters.
type AdminHandler struct {
	q      queries.OrderQueries
	orders commands.OrderRepository
}

func NewAdminHandler(q queries.OrderQueries, orders commands.OrderRepository) *AdminHandler {
	return &AdminHandler{q: q, orders: orders}
}

// @Summary List orders
// @Description List recent orders, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 50, max 200)"
// @Success 200 {array} resdto.OrderListItemResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	var limit int32
	if v := c.Query("limit"); v != "" {
		iv, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = int32(iv)
	}
	items, err := h.q.List(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list orders", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderList(items))
}

// @Summary Get order
// @Description Full order view including proof metadata
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/orders/{id} [get]
func (h *AdminHandler) GetOrder(c *gin.Context) {
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

// @Summary Download payment proof
// @Description Stream the stored payment proof with its original content type
// @Tags admin
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/orders/{id}/proof [get]
func (h *AdminHandler) DownloadProof(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	proof, err := h.orders.FindProof(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Proof not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load proof", nil)
		return
	}
	c.Data(http.StatusOK, proof.MimeType(), proof.Data())
}

// @Summary Dashboard
// @Description Aggregate order counters for the admin landing view
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.DashboardResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	view, err := h.q.Dashboard(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build dashboard", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDashboardView(view))
}
