package googlesheets

import (
	"net/http"

	"github.com/gabapdb/sourcing-pettycash/internal/items"
	"github.com/gabapdb/sourcing-pettycash/pkg/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	export *ExportService
}

func NewHandler(export *ExportService) *Handler {
	return &Handler{export: export}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	auth := security.JWTMiddleware()
	router.POST("/clients/:clientId/sourcing-lists/:listId/sheets-export", auth, h.exportCollection(items.Sourcing))
	router.POST("/clients/:clientId/petty-cash/sheets-export", auth, h.exportCollection(items.PettyCash))
	router.POST("/clients/:clientId/liquidation/sheets-export", auth, h.exportCollection(items.Liquidation))
}

func (h *Handler) exportCollection(collection items.Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			SpreadsheetID string `json:"spreadsheetId" binding:"required"`
			SheetName     string `json:"sheetName"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "spreadsheetId is required"})
			return
		}
		if req.SheetName == "" {
			req.SheetName = "Sheet1"
		}

		scope := items.Scope{
			ClientID:   c.Param("clientId"),
			Collection: collection,
			ListID:     c.Param("listId"),
		}

		exported, err := h.export.Export(scope, req.SpreadsheetID, req.SheetName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to export to sheet", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Exported", "items": exported})
	}
}
