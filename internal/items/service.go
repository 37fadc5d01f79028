package items

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gabapdb/sourcing-pettycash/internal/totals"
	"github.com/gabapdb/sourcing-pettycash/internal/watch"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnknownField      = errors.New("field is not editable in this collection")
	ErrUnknownFlag       = errors.New("flag cannot be toggled in this collection")
)

// AddItemRequest carries user input for a new row. Quantity and price come
// in as raw JSON values: anything that does not parse as a number counts
// as 0, matching the edit-table input behavior.
type AddItemRequest struct {
	Store              string      `json:"store"`
	ItemCode           string      `json:"item"`
	ItemName           string      `json:"itemName"`
	Quantity           interface{} `json:"quantity"`
	Unit               string      `json:"unit"`
	ItemType           string      `json:"type"`
	Dimensions         string      `json:"dimensions"`
	Notes              string      `json:"notes"`
	Price              interface{} `json:"price"`
	PurchasePrice      interface{} `json:"purchasePrice"`
	Balance            interface{} `json:"balance"`
	PettyCashRequestNo string      `json:"pettyCashRequestNo"`
}

// Service is the collection manager shared by sourcing, petty cash and
// liquidation; a Descriptor tells it which fields and flags each
// collection supports.
type Service struct {
	repo LineItemRepository
	hub  *watch.Hub[[]LineItem]
	log  *zap.Logger
}

func NewService(repo LineItemRepository, hub *watch.Hub[[]LineItem], log *zap.Logger) *Service {
	return &Service{repo: repo, hub: hub, log: log}
}

// List returns the scope's items ordered by creation time ascending.
func (s *Service) List(scope Scope) ([]LineItem, error) {
	if _, ok := DescriptorFor(scope.Collection); !ok {
		return nil, ErrUnknownCollection
	}
	return s.repo.List(scope)
}

// GrandTotal derives the table footer sum from the current item set. It is
// never persisted.
func (s *Service) GrandTotal(list []LineItem) float64 {
	return totals.CalcGrandTotal(list)
}

// Add coerces the numeric inputs, derives the total, stamps creation time
// and persists a new item with all status flags at their defaults.
func (s *Service) Add(scope Scope, req AddItemRequest) (*LineItem, error) {
	if _, ok := DescriptorFor(scope.Collection); !ok {
		return nil, ErrUnknownCollection
	}

	quantity := CoerceNumber(req.Quantity)
	price := CoerceNumber(req.Price)

	item := &LineItem{
		ID:                 uuid.NewString(),
		CorrelationID:      uuid.NewString(),
		PettyCashRequestNo: totals.SafeText(req.PettyCashRequestNo),
		Store:              req.Store,
		ItemCode:           req.ItemCode,
		ItemName:           req.ItemName,
		Unit:               req.Unit,
		ItemType:           req.ItemType,
		Dimensions:         req.Dimensions,
		Notes:              req.Notes,
		Quantity:           quantity,
		Price:              price,
		Total:              totals.CalcTotal(quantity, price),
		PurchasePrice:      CoerceNumber(req.PurchasePrice),
		Balance:            CoerceNumber(req.Balance),
		FromSourcingList:   scope.ListID,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.repo.Insert(scope, item); err != nil {
		return nil, err
	}

	s.publish(scope)
	return item, nil
}

// Update writes exactly the named field. Writing quantity or price also
// rewrites total from the new value and the other field's stored value in
// the same statement.
func (s *Service) Update(scope Scope, id, field string, value interface{}) error {
	desc, ok := DescriptorFor(scope.Collection)
	if !ok {
		return ErrUnknownCollection
	}

	column, ok := desc.EditableColumn(field)
	if !ok {
		return ErrUnknownField
	}

	fields := map[string]interface{}{}
	if desc.IsNumeric(field) {
		fields[column] = CoerceNumber(value)
	} else {
		fields[column] = CoerceString(value)
	}

	if field == "quantity" || field == "price" {
		existing, err := s.repo.Get(scope, id)
		if err != nil {
			return err
		}

		quantity := existing.Quantity
		price := existing.Price
		if field == "quantity" {
			quantity = CoerceNumber(value)
		} else {
			price = CoerceNumber(value)
		}
		fields["total"] = totals.CalcTotal(quantity, price)
	}

	if err := s.repo.UpdateFields(scope, id, fields); err != nil {
		return err
	}

	s.publish(scope)
	return nil
}

// Delete removes the item permanently; deleting an unknown id surfaces the
// store's not-found failure.
func (s *Service) Delete(scope Scope, id string) error {
	if _, ok := DescriptorFor(scope.Collection); !ok {
		return ErrUnknownCollection
	}

	if err := s.repo.Delete(scope, id); err != nil {
		return err
	}

	s.publish(scope)
	return nil
}

// ToggleFlag flips an independent boolean flag (processed, paid, changed).
// The sourcing approval pair goes through the approval transition instead.
func (s *Service) ToggleFlag(scope Scope, id, flag string) error {
	desc, ok := DescriptorFor(scope.Collection)
	if !ok {
		return ErrUnknownCollection
	}

	column, ok := desc.ToggleColumn(flag)
	if !ok {
		return ErrUnknownFlag
	}

	item, err := s.repo.Get(scope, id)
	if err != nil {
		return err
	}
	current, err := item.FlagValue(flag)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateFields(scope, id, map[string]interface{}{column: !current}); err != nil {
		return err
	}

	s.publish(scope)
	return nil
}

// Subscribe emits the current item set immediately and the full replacement
// set after every change until ctx is cancelled.
func (s *Service) Subscribe(ctx context.Context, scope Scope) (<-chan []LineItem, error) {
	current, err := s.List(scope)
	if err != nil {
		return nil, err
	}

	updates := s.hub.Subscribe(ctx, scope.Topic())

	out := make(chan []LineItem, 1)
	out <- current
	go func() {
		defer close(out)
		for snapshot := range updates {
			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Publish pushes the scope's current item set to live subscribers. The
// approval service calls this for both sides of a transition.
func (s *Service) Publish(scope Scope) {
	s.publish(scope)
}

func (s *Service) publish(scope Scope) {
	list, err := s.repo.List(scope)
	if err != nil {
		s.log.Warn("failed to reload items for broadcast",
			zap.String("topic", scope.Topic()),
			zap.Error(err),
		)
		return
	}
	s.hub.Publish(scope.Topic(), list)
}

// CoerceNumber applies spreadsheet-style input coercion: numbers pass
// through, numeric strings parse, everything else counts as 0.
func CoerceNumber(value interface{}) float64 {
	var n float64
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(totals.SafeText(v), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// CoerceString renders a raw JSON value as its text form.
func CoerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
