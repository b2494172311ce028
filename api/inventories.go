package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/service/inventory"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service inventory.InventoryUseCase
}

type inventoryRequest struct {
	FlightID   int64  `json:"flight_id" binding:"required"`
	Cabin      string `json:"cabin" binding:"required"`
	TotalSeats int    `json:"total_seats" binding:"required"`
}

type adjustAvailabilityRequest struct {
	FlightID int64  `json:"flight_id" binding:"required"`
	Cabin    string `json:"cabin" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

func NewInventoryHandler(service inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/availability", h.availability)
	router.POST("/decrease", h.decrease)
	router.POST("/increase", h.increase)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *InventoryHandler) create(c *gin.Context) {
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.service.Create(c.Request.Context(), inventory.CreateInventoryInput{
		FlightID:   req.FlightID,
		Cabin:      req.Cabin,
		TotalSeats: req.TotalSeats,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInventoryResponse(*inv))
}

// list serves /inventories, optionally narrowed to one flight's cabins.
func (h *InventoryHandler) list(c *gin.Context) {
	var (
		inventories []domain.SeatInventory
		err         error
	)
	if raw := c.Query("flight_id"); raw != "" {
		flightID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight_id"})
			return
		}
		inventories, err = h.service.ListByFlight(c.Request.Context(), flightID)
	} else {
		inventories, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]inventoryResponse, 0, len(inventories))
	for _, inv := range inventories {
		resp = append(resp, toInventoryResponse(inv))
	}
	c.JSON(http.StatusOK, resp)
}

// availability answers whether a (flight, cabin) pair has at least the
// requested number of seats. A missing inventory row answers false.
func (h *InventoryHandler) availability(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Query("flight_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight_id"})
		return
	}
	cabin := c.Query("cabin")
	if cabin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cabin is required"})
		return
	}
	minimum, err := strconv.Atoi(c.DefaultQuery("minimum", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minimum"})
		return
	}

	ok, err := h.service.HasAvailableSeats(c.Request.Context(), flightID, cabin, minimum)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight_id": flightID, "cabin": cabin, "available": ok})
}

func (h *InventoryHandler) decrease(c *gin.Context) {
	var req adjustAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.service.Decrease(c.Request.Context(), req.FlightID, req.Cabin, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInventoryResponse(*inv))
}

func (h *InventoryHandler) increase(c *gin.Context) {
	var req adjustAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.service.Increase(c.Request.Context(), req.FlightID, req.Cabin, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInventoryResponse(*inv))
}

func (h *InventoryHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	inv, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInventoryResponse(*inv))
}

func (h *InventoryHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.service.Update(c.Request.Context(), id, inventory.CreateInventoryInput{
		FlightID:   req.FlightID,
		Cabin:      req.Cabin,
		TotalSeats: req.TotalSeats,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInventoryResponse(*inv))
}

func (h *InventoryHandler) delete(c *gin.Context) {
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
