package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfinder/internal/errors"
	"stockfinder/internal/pagination"
	"stockfinder/internal/services"
)

// InsightHandler handles the instrument insights view.
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// ListInstruments returns the paginated instrument display-name catalog.
// @Summary     List instruments
// @Description Get the catalog of selectable instrument names
// @Tags        instruments
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[string] "Instrument names"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /instruments [get]
func (h *InsightHandler) ListInstruments(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	c.JSON(http.StatusOK, pagination.Paginate(h.insightService.InstrumentNames(), page))
}

// insightsQuery represents the insights view selection.
type insightsQuery struct {
	Name string `form:"name" binding:"required"`
}

// GetInsights returns the metrics, trend series, and commentary for one
// instrument.
// @Summary     Get instrument insights
// @Description Get headline metrics, annual trend series, and price commentary for an instrument
// @Tags        instruments
// @Produce     json
// @Security    BearerAuth
// @Param       name query string true "Instrument display name"
// @Success     200 {object} services.InstrumentInsights "Insights payload"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Instrument not found"
// @Router      /instruments/insights [get]
func (h *InsightHandler) GetInsights(c *gin.Context) {
	var q insightsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	insights, err := h.insightService.Insights(q.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}
