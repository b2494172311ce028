package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airline-backoffice/internal/service/tags"
	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	service tags.TagUseCase
}

type tagRequest struct {
	Name string `json:"name" binding:"required"`
}

func NewTagHandler(service tags.TagUseCase) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.GET("/by-name/:name", h.getByName)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *TagHandler) create(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.service.Create(c.Request.Context(), tags.TagInput{Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTagResponse(*tag))
}

func (h *TagHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]tagResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, toTagResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TagHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	tag, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTagResponse(*tag))
}

func (h *TagHandler) getByName(c *gin.Context) {
	tag, err := h.service.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTagResponse(*tag))
}

func (h *TagHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.service.Update(c.Request.Context(), id, tags.TagInput{Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTagResponse(*tag))
}

func (h *TagHandler) delete(c *gin.Context) {
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
