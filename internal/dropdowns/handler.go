package dropdowns

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/clients/:clientId/dropdowns/:category", h.ListOptions)
	router.POST("/clients/:clientId/dropdowns/:category", h.AddOption)
	router.GET("/clients/:clientId/dropdowns/:category/watch", h.WatchOptions)
}

func (h *Handler) ListOptions(c *gin.Context) {
	options, err := h.service.Options(c.Param("clientId"), c.Param("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load dropdown options", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"options": options})
}

func (h *Handler) AddOption(c *gin.Context) {
	var req struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	err := h.service.AddOption(c.Param("clientId"), c.Param("category"), req.Value)
	switch {
	case errors.Is(err, ErrEmptyOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDuplicateOption):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to add dropdown option", "details": err.Error()})
	default:
		c.JSON(http.StatusCreated, gin.H{"message": "Option added"})
	}
}

// WatchOptions streams the live option list over server-sent events. The
// first event carries the current list; one event follows every change.
func (h *Handler) WatchOptions(c *gin.Context) {
	updates, err := h.service.Subscribe(c.Request.Context(), c.Param("clientId"), c.Param("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to subscribe", "details": err.Error()})
		return
	}

	c.Stream(func(w io.Writer) bool {
		snapshot, open := <-updates
		if !open {
			return false
		}
		c.SSEvent("options", snapshot)
		return true
	})
}
