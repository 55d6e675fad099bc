package api

import (
	"errors"
	"net/http"

	resdto "portfolio-services/internal/handler/dto/response"
	"portfolio-services/internal/handler/httperr"
	"portfolio-services/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	q queries.CatalogQueries
}

func NewCatalogHandler(q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{q: q}
}

// @Summary List services
// @Description List every service offering with display prices and subtopics
// @Tags services
// @Produce json
// @Success 200 {array} resdto.ServiceResponse
// @Failure 500 {object} map[string]string
// @Router /services [get]
func (h *CatalogHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list services", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceList(views))
}

// @Summary Get service
// @Description Get a single service offering by ID
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /services/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrServiceNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load service", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceView(view))
}
