package clients

import (
	"fmt"
	"time"

	"github.com/gabapdb/sourcing-pettycash/internal/repository"
	"github.com/gabapdb/sourcing-pettycash/pkg/apperrors"
	"github.com/gabapdb/sourcing-pettycash/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type ClientRepository interface {
	GetClients() ([]models.Client, error)
	GetClient(id string) (*models.Client, error)
	PersistClient(name string) (*models.Client, error)
	RemoveClient(id string) error
}

type clientRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) ClientRepository {
	return &clientRepository{repo: r}
}

func (r *clientRepository) GetClients() ([]models.Client, error) {
	var clients []models.Client
	query := r.repo.GoquDBWrapper.
		Select("id", "name", "created_at").
		From("clients").
		Order(goqu.I("created_at").Asc())

	if err := query.Executor().ScanStructs(&clients); err != nil {
		return nil, fmt.Errorf("unable to list clients: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) GetClient(id string) (*models.Client, error) {
	var client models.Client
	query := r.repo.GoquDBWrapper.
		Select("id", "name", "created_at").
		From("clients").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&client)
	if err != nil {
		return nil, fmt.Errorf("unable to get client: %w", err)
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}

	return &client, nil
}

func (r *clientRepository) PersistClient(name string) (*models.Client, error) {
	client := models.Client{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	query := r.repo.GoquDBWrapper.Insert("clients").
		Rows(goqu.Record{
			"id":         client.ID,
			"name":       client.Name,
			"created_at": client.CreatedAt,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromPq(err, "client name already exists")
	}

	return &client, nil
}

func (r *clientRepository) RemoveClient(id string) error {
	result, err := r.repo.GoquDBWrapper.
		Delete("clients").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return apperrors.FromPq(err, "client is still referenced")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
