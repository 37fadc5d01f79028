package items

import (
	"fmt"

	"github.com/gabapdb/sourcing-pettycash/internal/repository"
	"github.com/gabapdb/sourcing-pettycash/pkg/apperrors"

	"github.com/doug-martin/goqu/v9"
)

const table = "line_items"

var itemColumns = []interface{}{
	"id", "correlation_id", "petty_cash_id", "petty_cash_request_no",
	"store", "item_code", "item_name", "unit", "item_type", "dimensions",
	"notes", "quantity", "price", "total", "purchase_price", "balance",
	"approved", "not_approved", "moved_to_petty_cash", "processed", "paid",
	"changed", "new_item", "new_quantity", "new_unit", "new_dimensions",
	"new_price", "new_total_price", "new_purchase_price", "new_balance",
	"new_notes", "from_sourcing_list", "created_at",
}

// LineItemRepository persists line items for every collection. The Tx
// variants participate in a caller-owned transaction; the approval
// transition uses them to keep its two collections consistent.
type LineItemRepository interface {
	List(scope Scope) ([]LineItem, error)
	Get(scope Scope, id string) (*LineItem, error)
	Insert(scope Scope, item *LineItem) error
	UpdateFields(scope Scope, id string, fields map[string]interface{}) error
	Delete(scope Scope, id string) error

	GetTx(tx *goqu.TxDatabase, scope Scope, id string) (*LineItem, error)
	InsertTx(tx *goqu.TxDatabase, scope Scope, item *LineItem) error
	UpdateFieldsTx(tx *goqu.TxDatabase, scope Scope, id string, fields map[string]interface{}) error
	DeleteByCorrelationTx(tx *goqu.TxDatabase, clientID string, collection Collection, correlationID string) (int64, error)

	ListCollection(clientID string, collection Collection) ([]LineItem, error)
}

type lineItemRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) LineItemRepository {
	return &lineItemRepository{repo: r}
}

func scopeEx(scope Scope) goqu.Ex {
	ex := goqu.Ex{
		"client_id":  scope.ClientID,
		"collection": string(scope.Collection),
	}
	if scope.ListID != "" {
		ex["list_id"] = scope.ListID
	}
	return ex
}

func (r *lineItemRepository) List(scope Scope) ([]LineItem, error) {
	var list []LineItem
	query := r.repo.GoquDBWrapper.
		Select(itemColumns...).
		From(table).
		Where(scopeEx(scope)).
		Order(goqu.I("created_at").Asc())

	if err := query.Executor().ScanStructs(&list); err != nil {
		return nil, fmt.Errorf("unable to list %s items: %w", scope.Collection, err)
	}

	return list, nil
}

func (r *lineItemRepository) Get(scope Scope, id string) (*LineItem, error) {
	var item LineItem
	query := r.repo.GoquDBWrapper.
		Select(itemColumns...).
		From(table).
		Where(scopeEx(scope), goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("unable to get item: %w", err)
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}

	return &item, nil
}

func (r *lineItemRepository) Insert(scope Scope, item *LineItem) error {
	query := r.repo.GoquDBWrapper.Insert(table).Rows(insertRecord(scope, item))

	if _, err := query.Executor().Exec(); err != nil {
		return apperrors.FromPq(err, "failed to insert line item")
	}

	return nil
}

func (r *lineItemRepository) UpdateFields(scope Scope, id string, fields map[string]interface{}) error {
	result, err := r.repo.GoquDBWrapper.
		Update(table).
		Set(fields).
		Where(scopeEx(scope), goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return apperrors.FromPq(err, "failed to update line item")
	}

	return requireRow(result.RowsAffected())
}

func (r *lineItemRepository) Delete(scope Scope, id string) error {
	result, err := r.repo.GoquDBWrapper.
		Delete(table).
		Where(scopeEx(scope), goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete line item: %w", err)
	}

	return requireRow(result.RowsAffected())
}

func (r *lineItemRepository) GetTx(tx *goqu.TxDatabase, scope Scope, id string) (*LineItem, error) {
	var item LineItem
	query := tx.
		Select(itemColumns...).
		From(table).
		Where(scopeEx(scope), goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("unable to get item: %w", err)
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}

	return &item, nil
}

func (r *lineItemRepository) InsertTx(tx *goqu.TxDatabase, scope Scope, item *LineItem) error {
	if _, err := tx.Insert(table).Rows(insertRecord(scope, item)).Executor().Exec(); err != nil {
		return apperrors.FromPq(err, "failed to insert line item")
	}
	return nil
}

func (r *lineItemRepository) UpdateFieldsTx(tx *goqu.TxDatabase, scope Scope, id string, fields map[string]interface{}) error {
	result, err := tx.
		Update(table).
		Set(fields).
		Where(scopeEx(scope), goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return apperrors.FromPq(err, "failed to update line item")
	}

	return requireRow(result.RowsAffected())
}

func (r *lineItemRepository) DeleteByCorrelationTx(tx *goqu.TxDatabase, clientID string, collection Collection, correlationID string) (int64, error) {
	result, err := tx.
		Delete(table).
		Where(goqu.Ex{
			"client_id":      clientID,
			"collection":     string(collection),
			"correlation_id": correlationID,
		}).
		Executor().Exec()
	if err != nil {
		return 0, fmt.Errorf("failed to delete correlated items: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *lineItemRepository) ListCollection(clientID string, collection Collection) ([]LineItem, error) {
	return r.List(Scope{ClientID: clientID, Collection: collection})
}

func requireRow(affected int64, err error) error {
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func insertRecord(scope Scope, item *LineItem) goqu.Record {
	record := goqu.Record{
		"id":                    item.ID,
		"collection":            string(scope.Collection),
		"client_id":             scope.ClientID,
		"correlation_id":        item.CorrelationID,
		"petty_cash_id":         item.PettyCashID,
		"petty_cash_request_no": item.PettyCashRequestNo,
		"store":                 item.Store,
		"item_code":             item.ItemCode,
		"item_name":             item.ItemName,
		"unit":                  item.Unit,
		"item_type":             item.ItemType,
		"dimensions":            item.Dimensions,
		"notes":                 item.Notes,
		"quantity":              item.Quantity,
		"price":                 item.Price,
		"total":                 item.Total,
		"purchase_price":        item.PurchasePrice,
		"balance":               item.Balance,
		"approved":              item.Approved,
		"not_approved":          item.NotApproved,
		"moved_to_petty_cash":   item.MovedToPettyCash,
		"processed":             item.Processed,
		"paid":                  item.Paid,
		"changed":               item.Changed,
		"new_item":              item.NewItem,
		"new_quantity":          item.NewQuantity,
		"new_unit":              item.NewUnit,
		"new_dimensions":        item.NewDimensions,
		"new_price":             item.NewPrice,
		"new_total_price":       item.NewTotalPrice,
		"new_purchase_price":    item.NewPurchasePrice,
		"new_balance":           item.NewBalance,
		"new_notes":             item.NewNotes,
		"from_sourcing_list":    item.FromSourcingList,
		"created_at":            item.CreatedAt,
	}
	if scope.ListID != "" {
		record["list_id"] = scope.ListID
	}
	return record
}
