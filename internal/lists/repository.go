package lists

import (
	"fmt"
	"time"

	"github.com/gabapdb/sourcing-pettycash/internal/repository"
	"github.com/gabapdb/sourcing-pettycash/pkg/apperrors"
	"github.com/gabapdb/sourcing-pettycash/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// ListRepository manages the named areas under a client: sourcing lists and
// petty cash docs.
type ListRepository interface {
	GetSourcingLists(clientID string) ([]models.SourcingList, error)
	PersistSourcingList(clientID, name string) (*models.SourcingList, error)
	GetPettyCashDocs(clientID string) ([]models.PettyCashDoc, error)
	PersistPettyCashDoc(clientID, title string) (*models.PettyCashDoc, error)
}

type listRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) ListRepository {
	return &listRepository{repo: r}
}

func (r *listRepository) GetSourcingLists(clientID string) ([]models.SourcingList, error) {
	var lists []models.SourcingList
	query := r.repo.GoquDBWrapper.
		Select("id", "client_id", "name", "created_at").
		From("sourcing_lists").
		Where(goqu.Ex{"client_id": clientID}).
		Order(goqu.I("created_at").Asc())

	if err := query.Executor().ScanStructs(&lists); err != nil {
		return nil, fmt.Errorf("unable to list sourcing lists: %w", err)
	}

	return lists, nil
}

func (r *listRepository) PersistSourcingList(clientID, name string) (*models.SourcingList, error) {
	list := models.SourcingList{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	query := r.repo.GoquDBWrapper.Insert("sourcing_lists").
		Rows(goqu.Record{
			"id":         list.ID,
			"client_id":  list.ClientID,
			"name":       list.Name,
			"created_at": list.CreatedAt,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromPq(err, "sourcing list cannot be created")
	}

	return &list, nil
}

func (r *listRepository) GetPettyCashDocs(clientID string) ([]models.PettyCashDoc, error) {
	var docs []models.PettyCashDoc
	query := r.repo.GoquDBWrapper.
		Select("id", "client_id", "title", "created_at").
		From("petty_cash_docs").
		Where(goqu.Ex{"client_id": clientID}).
		Order(goqu.I("created_at").Asc())

	if err := query.Executor().ScanStructs(&docs); err != nil {
		return nil, fmt.Errorf("unable to list petty cash docs: %w", err)
	}

	return docs, nil
}

func (r *listRepository) PersistPettyCashDoc(clientID, title string) (*models.PettyCashDoc, error) {
	doc := models.PettyCashDoc{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	query := r.repo.GoquDBWrapper.Insert("petty_cash_docs").
		Rows(goqu.Record{
			"id":         doc.ID,
			"client_id":  doc.ClientID,
			"title":      doc.Title,
			"created_at": doc.CreatedAt,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromPq(err, "petty cash doc cannot be created")
	}

	return &doc, nil
}
