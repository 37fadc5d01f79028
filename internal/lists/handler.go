package lists

import (
	"net/http"

	"github.com/gabapdb/sourcing-pettycash/internal/totals"
	"github.com/gabapdb/sourcing-pettycash/pkg/models"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repository ListRepository
}

func NewHandler(r ListRepository) *Handler {
	return &Handler{repository: r}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/clients/:clientId/sourcing-lists", h.GetSourcingLists)
	router.POST("/clients/:clientId/sourcing-lists", h.CreateSourcingList)
	router.GET("/clients/:clientId/petty-cash-docs", h.GetPettyCashDocs)
	router.POST("/clients/:clientId/petty-cash-docs", h.CreatePettyCashDoc)
}

func (h *Handler) GetSourcingLists(c *gin.Context) {
	lists, err := h.repository.GetSourcingLists(c.Param("clientId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve sourcing lists", "details": err.Error()})
		return
	}

	if lists == nil {
		lists = []models.SourcingList{}
	}

	c.JSON(http.StatusOK, lists)
}

func (h *Handler) CreateSourcingList(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	name := totals.SafeText(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List name is required"})
		return
	}

	list, err := h.repository.PersistSourcingList(c.Param("clientId"), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create sourcing list", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, list)
}

func (h *Handler) GetPettyCashDocs(c *gin.Context) {
	docs, err := h.repository.GetPettyCashDocs(c.Param("clientId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve petty cash docs", "details": err.Error()})
		return
	}

	if docs == nil {
		docs = []models.PettyCashDoc{}
	}

	c.JSON(http.StatusOK, docs)
}

func (h *Handler) CreatePettyCashDoc(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	title := totals.SafeText(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	doc, err := h.repository.PersistPettyCashDoc(c.Param("clientId"), title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create petty cash doc", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, doc)
}
