package reports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gabapdb/sourcing-pettycash/internal/items"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	items *items.Service
}

func NewHandler(itemService *items.Service) *Handler {
	return &Handler{items: itemService}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/clients/:clientId/sourcing-lists/:listId/export", h.export(items.Sourcing))
	router.GET("/clients/:clientId/petty-cash/export", h.export(items.PettyCash))
	router.GET("/clients/:clientId/liquidation/export", h.export(items.Liquidation))
}

func (h *Handler) export(collection items.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := items.Scope{
			ClientID:   c.Param("clientId"),
			Collection: collection,
			ListID:     c.Param("listId"),
		}

		list, err := h.items.List(scope)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve items", "details": err.Error()})
			return
		}

		title := sheetTitle(collection)
		workbook, err := BuildWorkbook(title, collection, list)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to build report", "details": err.Error()})
			return
		}
		defer workbook.Close()

		filename := fmt.Sprintf("%s-%s.xlsx", title, time.Now().UTC().Format("2006-01-02"))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := workbook.Write(c.Writer); err != nil {
			c.Status(http.StatusInternalServerError)
		}
	}
}

func sheetTitle(collection items.Collection) string {
	switch collection {
	case items.PettyCash:
		return "Petty Cash"
	case items.Liquidation:
		return "Liquidation"
	default:
		return "Sourcing"
	}
}
