package projects

import (
	"fmt"
	"time"

	"github.com/gabapdb/sourcing-pettycash/internal/repository"
	"github.com/gabapdb/sourcing-pettycash/pkg/apperrors"
	"github.com/gabapdb/sourcing-pettycash/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type ProjectRepository interface {
	GetProjects() ([]models.Project, error)
	PersistProject(name, ownerID string) (*models.Project, error)
}

type projectRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) ProjectRepository {
	return &projectRepository{repo: r}
}

// GetProjects returns projects newest first.
func (r *projectRepository) GetProjects() ([]models.Project, error) {
	var projects []models.Project
	query := r.repo.GoquDBWrapper.
		Select("id", "name", "owner_id", "created_at").
		From("projects").
		Order(goqu.I("created_at").Desc())

	if err := query.Executor().ScanStructs(&projects); err != nil {
		return nil, fmt.Errorf("unable to list projects: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) PersistProject(name, ownerID string) (*models.Project, error) {
	project := models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	query := r.repo.GoquDBWrapper.Insert("projects").
		Rows(goqu.Record{
			"id":         project.ID,
			"name":       project.Name,
			"owner_id":   project.OwnerID,
			"created_at": project.CreatedAt,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromPq(err, "project already exists")
	}

	return &project, nil
}
