package items

import (
	"errors"
	"io"
	"net/http"

	"github.com/gabapdb/sourcing-pettycash/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ApprovalToggler handles the sourcing approved/notApproved pair, which is
// a cross-collection transition rather than a plain flag flip.
type ApprovalToggler interface {
	Toggle(scope Scope, id, flag string) error
}

type Handler struct {
	service  *Service
	approval ApprovalToggler
}

func NewHandler(service *Service, approval ApprovalToggler) *Handler {
	return &Handler{service: service, approval: approval}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	sourcing := router.Group("/clients/:clientId/sourcing-lists/:listId/items")
	h.registerCollection(sourcing, Sourcing)

	pettyCash := router.Group("/clients/:clientId/petty-cash/items")
	h.registerCollection(pettyCash, PettyCash)

	liquidation := router.Group("/clients/:clientId/liquidation/items")
	h.registerCollection(liquidation, Liquidation)
}

func (h *Handler) registerCollection(group *gin.RouterGroup, collection Collection) {
	group.GET("", h.listItems(collection))
	group.POST("", h.addItem(collection))
	group.PATCH("/:id", h.updateItem(collection))
	group.DELETE("/:id", h.deleteItem(collection))
	group.POST("/:id/toggle", h.toggleFlag(collection))
	group.GET("/watch", h.watchItems(collection))
}

func scopeFrom(c *gin.Context, collection Collection) Scope {
	return Scope{
		ClientID:   c.Param("clientId"),
		Collection: collection,
		ListID:     c.Param("listId"),
	}
}

func (h *Handler) listItems(collection Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := scopeFrom(c, collection)

		list, err := h.service.List(scope)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve items", "details": err.Error()})
			return
		}

		if list == nil {
			list = []LineItem{}
		}

		c.JSON(http.StatusOK, gin.H{
			"items":      list,
			"grandTotal": h.service.GrandTotal(list),
		})
	}
}

func (h *Handler) addItem(collection Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		item, err := h.service.Add(scopeFrom(c, collection), req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to add item", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

func (h *Handler) updateItem(collection Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Field string      `json:"field" binding:"required"`
			Value interface{} `json:"value"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		err := h.service.Update(scopeFrom(c, collection), c.Param("id"), req.Field, req.Value)
		switch {
		case errors.Is(err, ErrUnknownField):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update item", "details": err.Error()})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Updated"})
		}
	}
}

func (h *Handler) deleteItem(collection Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h.service.Delete(scopeFrom(c, collection), c.Param("id"))
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete item", "details": err.Error()})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
		}
	}
}

func (h *Handler) toggleFlag(collection Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Flag string `json:"flag" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		scope := scopeFrom(c, collection)

		var err error
		if collection == Sourcing && (req.Flag == "approved" || req.Flag == "notApproved") {
			err = h.approval.Toggle(scope, c.Param("id"), req.Flag)
		} else {
			err = h.service.ToggleFlag(scope, c.Param("id"), req.Flag)
		}

		switch {
		case errors.Is(err, ErrUnknownFlag):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to toggle flag", "details": err.Error()})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Toggled"})
		}
	}
}

// watchItems streams the live item set over server-sent events; every event
// replaces the previous set wholesale.
func (h *Handler) watchItems(collection Collection) gin.HandlerFunc {
	return func(c *gin.Context) {
		updates, err := h.service.Subscribe(c.Request.Context(), scopeFrom(c, collection))
		if err != nil {
			c.SSEvent("error", gin.H{"error": "Unable to subscribe", "details": err.Error()})
			c.Writer.Flush()
			return
		}

		c.Stream(func(w io.Writer) bool {
			snapshot, open := <-updates
			if !open {
				return false
			}
			c.SSEvent("items", snapshot)
			return true
		})
	}
}
