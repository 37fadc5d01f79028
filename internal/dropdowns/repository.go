package dropdowns

import (
	"fmt"
	"time"

	"github.com/gabapdb/sourcing-pettycash/internal/repository"
	"github.com/gabapdb/sourcing-pettycash/pkg/apperrors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// Option is one persisted dropdown value for a client and category.
type Option struct {
	ID        string    `db:"id" json:"id"`
	ClientID  string    `db:"client_id" json:"clientId"`
	Category  string    `db:"category" json:"category"`
	Value     string    `db:"value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type OptionRepository interface {
	ListOptions(clientID, category string) ([]Option, error)
	InsertOption(clientID, category, value string) error
}

type optionRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) OptionRepository {
	return &optionRepository{repo: r}
}

func (r *optionRepository) ListOptions(clientID, category string) ([]Option, error) {
	var options []Option
	query := r.repo.GoquDBWrapper.
		Select("id", "client_id", "category", "value", "created_at").
		From("dropdown_options").
		Where(goqu.Ex{"client_id": clientID, "category": category}).
		Order(goqu.I("created_at").Asc())

	if err := query.Executor().ScanStructs(&options); err != nil {
		return nil, fmt.Errorf("unable to list dropdown options: %w", err)
	}

	return options, nil
}

func (r *optionRepository) InsertOption(clientID, category, value string) error {
	query := r.repo.GoquDBWrapper.Insert("dropdown_options").
		Rows(goqu.Record{
			"id":         uuid.NewString(),
			"client_id":  clientID,
			"category":   category,
			"value":      value,
			"created_at": time.Now().UTC(),
		})

	if _, err := query.Executor().Exec(); err != nil {
		return apperrors.FromPq(err, "dropdown option already exists")
	}

	return nil
}
