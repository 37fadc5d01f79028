package projects

import (
	"net/http"

	"github.com/gabapdb/sourcing-pettycash/internal/totals"
	"github.com/gabapdb/sourcing-pettycash/pkg/models"
	"github.com/gabapdb/sourcing-pettycash/pkg/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repository ProjectRepository
}

func NewHandler(r ProjectRepository) *Handler {
	return &Handler{repository: r}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects", h.GetProjects)
	router.POST("/projects", security.JWTMiddleware(), h.CreateProject)
}

func (h *Handler) GetProjects(c *gin.Context) {
	projects, err := h.repository.GetProjects()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to retrieve projects", "details": err.Error()})
		return
	}

	if projects == nil {
		projects = []models.Project{}
	}

	c.JSON(http.StatusOK, projects)
}

// CreateProject records a project owned by the signed-in user.
func (h *Handler) CreateProject(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	name := totals.SafeText(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
		return
	}

	ownerID, err := security.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in required"})
		return
	}

	project, err := h.repository.PersistProject(name, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create project", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, project)
}
