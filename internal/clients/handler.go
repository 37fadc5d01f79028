package clients

import (
	"errors"
	"net/http"

	"github.com/gabapdb/sourcing-pettycash/internal/totals"
	"github.com/gabapdb/sourcing-pettycash/pkg/apperrors"
	"github.com/gabapdb/sourcing-pettycash/pkg/models"
	"github.com/gabapdb/sourcing-pettycash/pkg/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repository ClientRepository
}

func NewHandler(r ClientRepository) *Handler {
	return &Handler{repository: r}
}

// RegisterRoutes wires the client registry. Reads are open; writes require
// a signed-in user.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/clients", h.GetClients)
	router.GET("/clients/:clientId", h.GetClient)
	router.POST("/clients", security.JWTMiddleware(), h.CreateClient)
	router.DELETE("/clients/:clientId", security.JWTMiddleware(), security.Authorize("admin"), h.DeleteClient)
}

func (h *Handler) GetClients(c *gin.Context) {
	clients, err := h.repository.GetClients()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve clients", "details": err.Error()})
		return
	}

	if clients == nil {
		clients = []models.Client{}
	}

	c.JSON(http.StatusOK, clients)
}

func (h *Handler) GetClient(c *gin.Context) {
	client, err := h.repository.GetClient(c.Param("clientId"))
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve client", "details": err.Error()})
	default:
		c.JSON(http.StatusOK, client)
	}
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	name := totals.SafeText(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client name is required"})
		return
	}

	client, err := h.repository.PersistClient(name)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Client name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create client", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *Handler) DeleteClient(c *gin.Context) {
	err := h.repository.RemoveClient(c.Param("clientId"))
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete client", "details": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
	}
}
