// Package approval implements the sourcing → petty cash transition.
//
// Approving a sourcing item mirrors it into the client's petty cash
// collection; un-approving removes every mirrored record. Both sides are
// written in a single database transaction, so no observable state exists
// where the sourcing flag and the mirror disagree.
package approval

import (
	"errors"
	"fmt"
	"time"

	"github.com/gabapdb/sourcing-pettycash/internal/items"
	"github.com/gabapdb/sourcing-pettycash/internal/repository"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotSourcing = errors.New("approval toggles apply to sourcing items only")
	ErrUnknownFlag = errors.New("flag must be approved or notApproved")
)

type Service struct {
	tx    repository.TxRunner
	repo  items.LineItemRepository
	items *items.Service
	log   *zap.Logger
}

func NewService(tx repository.TxRunner, repo items.LineItemRepository, itemService *items.Service, log *zap.Logger) *Service {
	return &Service{tx: tx, repo: repo, items: itemService, log: log}
}

// Toggle flips approved or notApproved on a sourcing item. The pair stays
// mutually exclusive through a single multi-column update, and the petty
// cash mirror is created or deleted in the same transaction.
func (s *Service) Toggle(scope items.Scope, id, flag string) error {
	if scope.Collection != items.Sourcing {
		return ErrNotSourcing
	}
	if flag != "approved" && flag != "notApproved" {
		return ErrUnknownFlag
	}

	pettyCashScope := items.Scope{ClientID: scope.ClientID, Collection: items.PettyCash}

	err := s.tx.WithTx(func(tx *goqu.TxDatabase) error {
		item, err := s.repo.GetTx(tx, scope, id)
		if err != nil {
			return err
		}

		if flag == "approved" {
			return s.toggleApproved(tx, scope, pettyCashScope, item)
		}
		return s.toggleNotApproved(tx, scope, item)
	})
	if err != nil {
		return err
	}

	s.items.Publish(scope)
	s.items.Publish(pettyCashScope)
	return nil
}

func (s *Service) toggleApproved(tx *goqu.TxDatabase, scope, pettyCashScope items.Scope, item *items.LineItem) error {
	approving := !item.Approved

	fields := map[string]interface{}{
		"approved":            approving,
		"not_approved":        false,
		"moved_to_petty_cash": approving,
	}
	if err := s.repo.UpdateFieldsTx(tx, scope, item.ID, fields); err != nil {
		return err
	}

	if approving {
		if err := s.repo.InsertTx(tx, pettyCashScope, mirrorOf(item, scope.ListID)); err != nil {
			return fmt.Errorf("failed to mirror item into petty cash: %w", err)
		}
		return nil
	}

	if _, err := s.repo.DeleteByCorrelationTx(tx, scope.ClientID, items.PettyCash, item.CorrelationID); err != nil {
		return fmt.Errorf("failed to remove petty cash mirror: %w", err)
	}
	return nil
}

func (s *Service) toggleNotApproved(tx *goqu.TxDatabase, scope items.Scope, item *items.LineItem) error {
	fields := map[string]interface{}{
		"not_approved":        !item.NotApproved,
		"approved":            false,
		"moved_to_petty_cash": false,
	}
	if err := s.repo.UpdateFieldsTx(tx, scope, item.ID, fields); err != nil {
		return err
	}

	// Marking an approved item as not approved revokes the approval, so
	// the mirror goes with it.
	if item.Approved {
		if _, err := s.repo.DeleteByCorrelationTx(tx, scope.ClientID, items.PettyCash, item.CorrelationID); err != nil {
			return fmt.Errorf("failed to remove petty cash mirror: %w", err)
		}
	}
	return nil
}

// mirrorOf copies the descriptive and numeric fields of a sourcing item
// into a fresh petty cash record linked by the correlation id.
func mirrorOf(item *items.LineItem, sourcingListID string) *items.LineItem {
	pettyCashID := uuid.NewString()
	return &items.LineItem{
		ID:               pettyCashID,
		CorrelationID:    item.CorrelationID,
		PettyCashID:      &pettyCashID,
		Store:            item.Store,
		ItemCode:         item.ItemCode,
		ItemName:         item.ItemName,
		Unit:             item.Unit,
		ItemType:         item.ItemType,
		Dimensions:       item.Dimensions,
		Notes:            item.Notes,
		Quantity:         item.Quantity,
		Price:            item.Price,
		Total:            item.Total,
		Processed:        false,
		Paid:             false,
		FromSourcingList: sourcingListID,
		CreatedAt:        time.Now().UTC(),
	}
}

// Report summarizes one reconciliation pass.
type Report struct {
	OrphansRemoved  int `json:"orphansRemoved"`
	MirrorsRestored int `json:"mirrorsRestored"`
}

// Reconcile repairs drift between the two collections caused by
// out-of-band writes: petty cash records without an approved sourcing
// parent are removed, approved sourcing items without a mirror get one.
func (s *Service) Reconcile(clientID string) (*Report, error) {
	sourcing, err := s.repo.ListCollection(clientID, items.Sourcing)
	if err != nil {
		return nil, err
	}
	pettyCash, err := s.repo.ListCollection(clientID, items.PettyCash)
	if err != nil {
		return nil, err
	}

	approved := make(map[string]items.LineItem)
	for _, item := range sourcing {
		if item.Approved {
			approved[item.CorrelationID] = item
		}
	}
	mirrored := make(map[string]bool)
	for _, item := range pettyCash {
		mirrored[item.CorrelationID] = true
	}

	report := &Report{}
	pettyCashScope := items.Scope{ClientID: clientID, Collection: items.PettyCash}

	err = s.tx.WithTx(func(tx *goqu.TxDatabase) error {
		removed := make(map[string]bool)
		for _, item := range pettyCash {
			if _, ok := approved[item.CorrelationID]; ok || removed[item.CorrelationID] {
				continue
			}
			deleted, err := s.repo.DeleteByCorrelationTx(tx, clientID, items.PettyCash, item.CorrelationID)
			if err != nil {
				return err
			}
			removed[item.CorrelationID] = true
			report.OrphansRemoved += int(deleted)
		}

		for correlationID, item := range approved {
			if mirrored[correlationID] {
				continue
			}
			source := item
			if err := s.repo.InsertTx(tx, pettyCashScope, mirrorOf(&source, source.FromSourcingList)); err != nil {
				return err
			}
			report.MirrorsRestored++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.OrphansRemoved > 0 || report.MirrorsRestored > 0 {
		s.items.Publish(pettyCashScope)
		s.log.Info("reconciled petty cash mirrors",
			zap.String("clientId", clientID),
			zap.Int("orphansRemoved", report.OrphansRemoved),
			zap.Int("mirrorsRestored", report.MirrorsRestored),
		)
	}

	return report, nil
}
