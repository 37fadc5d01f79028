package approval

import (
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
	router.POST("/clients/:clientId/reconcile", h.Reconcile)
}

// Reconcile runs a drift-repair pass over a client's sourcing and petty
// cash collections and reports what it fixed.
func (h *Handler) Reconcile(c *gin.Context) {
	report, err := h.service.Reconcile(c.Param("clientId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
