package api

import (
	"net/http"

	"booking-pricing/internal/domain/booking"
	reqdto "booking-pricing/internal/handler/dto/request"
	resdto "booking-pricing/internal/handler/dto/response"
	"booking-pricing/internal/handler/httperr"
	"booking-pricing/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	q queries.PricingQueries
}

func NewPricingHandler(q queries.PricingQueries) *PricingHandler {
	return &PricingHandler{q: q}
}

// @Summary Calculate booking pricing
// @Description Price every reservation of a booking and aggregate the totals
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body reqdto.BookingPricingRequest true "Booking pricing request"
// @Success 200 {object} resdto.BookingPricingResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/booking-pricing [post]
func (h *PricingHandler) CalculateBookingPricing(c *gin.Context) {
	var req reqdto.BookingPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	query, err := req.ToQuery()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}

	view, err := h.q.CalculateBookingPricing(c.Request.Context(), query)
	if err != nil {
		abortWithPricingError(c, err)
		return
	}
	res, err := resdto.FromBookingPricingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Calculate room product pricing
// @Description Price every compatible room product and rate plan pair for one stay
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body reqdto.RoomProductPricingRequest true "Room product pricing request"
// @Success 200 {object} resdto.RoomProductPricingListResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/room-product-pricing [post]
func (h *PricingHandler) CalculateRoomProductPricing(c *gin.Context) {
	var req reqdto.RoomProductPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	query, err := req.ToQuery()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
		return
	}

	view, err := h.q.CalculateRoomProductPricing(c.Request.Context(), query)
	if err != nil {
		abortWithPricingError(c, err)
		return
	}
	res, err := resdto.FromRoomProductPricingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

var pricingErrorRules = []httperr.Rule{
	{Target: booking.ErrInvalidInput, Status: http.StatusBadRequest, Message: "Invalid pricing input", ExposeCause: true},
	{Target: booking.ErrUpstreamUnavailable, Status: http.StatusBadGateway, Message: "Pricing service unavailable"},
}

func abortWithPricingError(c *gin.Context, err error) {
	httperr.AbortWithMappedError(c, err, pricingErrorRules)
}
