package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/metrics"
	"github.com/Domenick1991/airline-backoffice/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	metrics *metrics.Registry
}

type createBookingRequest struct {
	PassengerEmail string                     `json:"passenger_email" binding:"required,email"`
	Items          []createBookingItemRequest `json:"items"`
}

type createBookingItemRequest struct {
	FlightID     int64  `json:"flight_id" binding:"required"`
	Cabin        string `json:"cabin" binding:"required"`
	PriceCents   int64  `json:"price_cents"`
	SegmentOrder int    `json:"segment_order"`
}

func NewBookingHandler(service booking.BookingUseCase, reg *metrics.Registry) *BookingHandler {
	return &BookingHandler{service: service, metrics: reg}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.GET("/:id/items", h.items)
	router.GET("/:id/total", h.total)
	router.DELETE("/:id", h.cancel)
	router.GET("/by-reference/:reference", h.getByReference)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := booking.CreateBookingInput{PassengerEmail: req.PassengerEmail}
	for _, item := range req.Items {
		input.Items = append(input.Items, booking.BookingItemInput{
			FlightID:     item.FlightID,
			Cabin:        item.Cabin,
			PriceCents:   item.PriceCents,
			SegmentOrder: item.SegmentOrder,
		})
	}

	details, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsCreatedTotal.Inc()
	}
	c.JSON(http.StatusCreated, toBookingResponse(*details))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	details, err := h.service.FindDetails(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*details))
}

func (h *BookingHandler) getByReference(c *gin.Context) {
	details, err := h.service.FindDetailsByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*details))
}

// list serves /bookings, optionally filtered to one passenger's bookings by
// email.
func (h *BookingHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var (
		bookings []domain.Booking
		err      error
	)
	if email := c.Query("email"); email != "" {
		bookings, err = h.service.ListByPassengerEmail(c.Request.Context(), email, limit, offset)
	} else {
		bookings, err = h.service.List(c.Request.Context(), limit, offset)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingSummaryResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingSummaryResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) items(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	items, err := h.service.Items(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingItemRowResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toBookingItemRowResponse(it))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) total(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	total, err := h.service.Total(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "total_cents": total})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsCancelledTotal.Inc()
	}
	c.Status(http.StatusNoContent)
}
