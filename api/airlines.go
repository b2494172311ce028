package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airline-backoffice/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type AirlineHandler struct {
	service catalog.AirlineUseCase
}

type airlineRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func NewAirlineHandler(service catalog.AirlineUseCase) *AirlineHandler {
	return &AirlineHandler{service: service}
}

func (h *AirlineHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.GET("/by-code/:code", h.getByCode)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *AirlineHandler) create(c *gin.Context) {
	var req airlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airline, err := h.service.Create(c.Request.Context(), catalog.AirlineInput{Code: req.Code, Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAirlineResponse(*airline))
}

func (h *AirlineHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]airlineResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, toAirlineResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AirlineHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	airline, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirlineResponse(*airline))
}

func (h *AirlineHandler) getByCode(c *gin.Context) {
	airline, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirlineResponse(*airline))
}

func (h *AirlineHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req airlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	airline, err := h.service.Update(c.Request.Context(), id, catalog.AirlineInput{Code: req.Code, Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirlineResponse(*airline))
}

func (h *AirlineHandler) delete(c *gin.Context) {
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
