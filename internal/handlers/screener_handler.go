package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfinder/internal/errors"
	"stockfinder/internal/services"
)

// ScreenerHandler handles the stock filter pipeline.
type ScreenerHandler struct {
	screenerService services.ScreenerServicer
}

// NewScreenerHandler creates a new ScreenerHandler
func NewScreenerHandler(screenerService services.ScreenerServicer) *ScreenerHandler {
	return &ScreenerHandler{screenerService: screenerService}
}

// GetOptions returns the selectable sectors and the global default bounds
// for each range filter.
// @Summary     Get screener options
// @Description Get the sector catalog and the default slider bounds
// @Tags        screener
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ScreenerOptions "Sectors and bounds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /screener/options [get]
func (h *ScreenerHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.screenerService.Options())
}

// SearchRequest represents the screener search payload. Sectors may be
// empty or contain "All" to disable the sector filter; each range is an
// inclusive [min,max] interval.
type SearchRequest struct {
	Sectors         []string       `json:"sectors"`
	Price           services.Range `json:"price"`
	PE              services.Range `json:"pe"`
	DividendYield   services.Range `json:"dividend_yield"`
	DebtToEquity    services.Range `json:"debt_to_equity"`
	OperatingIncome services.Range `json:"operating_income"`
}

// Search runs the filter-rank-narrate pipeline and returns the top results
// with their narratives. An empty result set is a 200 with a notice, not an
// error.
// @Summary     Search stocks
// @Description Filter, rank, and narrate stocks matching the criteria
// @Tags        screener
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SearchRequest true "Filter criteria"
// @Success     200 {object} services.ScreenResult "Ranked results"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /screener/search [post]
func (h *ScreenerHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.screenerService.FilterAndRank(services.ScreenCriteria{
		Sectors:         req.Sectors,
		Price:           req.Price,
		PE:              req.PE,
		DividendYield:   req.DividendYield,
		DebtToEquity:    req.DebtToEquity,
		OperatingIncome: req.OperatingIncome,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
