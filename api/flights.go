package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airline-backoffice/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	Number        string    `json:"number" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	AirlineID     int64     `json:"airline_id" binding:"required"`
	OriginID      int64     `json:"origin_id" binding:"required"`
	DestinationID int64     `json:"destination_id" binding:"required"`
	Tags          []string  `json:"tags"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *FlightHandler) toInput(req flightRequest) flights.FlightInput {
	return flights.FlightInput{
		Number:        req.Number,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		AirlineID:     req.AirlineID,
		OriginID:      req.OriginID,
		DestinationID: req.DestinationID,
		Tags:          req.Tags,
	}
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Create(c.Request.Context(), h.toInput(req))
	if err != nil {
		writeError(c, err)
		return
	}

	details, err := h.service.GetByID(c.Request.Context(), flight.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(*details))
}

// list serves /flights, with optional filters for airline name or a tag set
// that every returned flight must carry.
func (h *FlightHandler) list(c *gin.Context) {
	ctx := c.Request.Context()

	if airline := c.Query("airline"); airline != "" {
		flights, err := h.service.ListByAirlineName(ctx, airline)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toFlightResponses(flights))
		return
	}

	if tags := c.Query("tags"); tags != "" {
		flights, err := h.service.ListWithAllTags(ctx, strings.Split(tags, ","))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toFlightResponses(flights))
		return
	}

	flights, err := h.service.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(flights))
}

func (h *FlightHandler) search(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from time"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to time"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	flights, err := h.service.Search(c.Request.Context(), origin, destination, from, to, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(flights))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, h.toInput(req)); err != nil {
		writeError(c, err)
		return
	}

	details, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*details))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
