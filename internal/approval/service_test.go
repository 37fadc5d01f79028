package approval

import (
	"testing"

	"github.com/gabapdb/sourcing-pettycash/internal/items"
	"github.com/gabapdb/sourcing-pettycash/internal/watch"
	"github.com/gabapdb/sourcing-pettycash/pkg/apperrors"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTxRunner runs the transaction body directly; the repository is mocked
// so no real database is involved.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(fn func(tx *goqu.TxDatabase) error) error {
	return fn(nil)
}

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) List(scope items.Scope) ([]items.LineItem, error) {
	args := m.Called(scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]items.LineItem), args.Error(1)
}

func (m *MockRepo) Get(scope items.Scope, id string) (*items.LineItem, error) {
	args := m.Called(scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*items.LineItem), args.Error(1)
}

func (m *MockRepo) Insert(scope items.Scope, item *items.LineItem) error {
	args := m.Called(scope, item)
	return args.Error(0)
}

func (m *MockRepo) UpdateFields(scope items.Scope, id string, fields map[string]interface{}) error {
	args := m.Called(scope, id, fields)
	return args.Error(0)
}

func (m *MockRepo) Delete(scope items.Scope, id string) error {
	args := m.Called(scope, id)
	return args.Error(0)
}

func (m *MockRepo) GetTx(tx *goqu.TxDatabase, scope items.Scope, id string) (*items.LineItem, error) {
	args := m.Called(tx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*items.LineItem), args.Error(1)
}

func (m *MockRepo) InsertTx(tx *goqu.TxDatabase, scope items.Scope, item *items.LineItem) error {
	args := m.Called(tx, scope, item)
	return args.Error(0)
}

func (m *MockRepo) UpdateFieldsTx(tx *goqu.TxDatabase, scope items.Scope, id string, fields map[string]interface{}) error {
	args := m.Called(tx, scope, id, fields)
	return args.Error(0)
}

func (m *MockRepo) DeleteByCorrelationTx(tx *goqu.TxDatabase, clientID string, collection items.Collection, correlationID string) (int64, error) {
	args := m.Called(tx, clientID, collection, correlationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepo) ListCollection(clientID string, collection items.Collection) ([]items.LineItem, error) {
	args := m.Called(clientID, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]items.LineItem), args.Error(1)
}

var (
	sourcingScope  = items.Scope{ClientID: "c1", Collection: items.Sourcing, ListID: "l1"}
	pettyCashScope = items.Scope{ClientID: "c1", Collection: items.PettyCash}
)

func newTestService(repo *MockRepo) *Service {
	itemService := items.NewService(repo, watch.NewHub[[]items.LineItem](), zap.NewNop())
	return NewService(fakeTxRunner{}, repo, itemService, zap.NewNop())
}

func pendingItem() *items.LineItem {
	return &items.LineItem{
		ID:            "item-1",
		CorrelationID: "corr-1",
		Store:         "Wilcon Depot",
		ItemName:      "Plywood",
		Quantity:      3,
		Price:         150,
		Total:         450,
	}
}

func TestApproveMirrorsIntoPettyCash(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetTx", mock.Anything, sourcingScope, "item-1").Return(pendingItem(), nil)
	repo.On("UpdateFieldsTx", mock.Anything, sourcingScope, "item-1", map[string]interface{}{
		"approved":            true,
		"not_approved":        false,
		"moved_to_petty_cash": true,
	}).Return(nil)

	var mirrored *items.LineItem
	repo.On("InsertTx", mock.Anything, pettyCashScope, mock.Anything).Run(func(args mock.Arguments) {
		mirrored = args.Get(2).(*items.LineItem)
	}).Return(nil)
	repo.On("List", mock.Anything).Return([]items.LineItem{}, nil).Maybe()

	service := newTestService(repo)
	require.NoError(t, service.Toggle(sourcingScope, "item-1", "approved"))

	require.NotNil(t, mirrored)
	assert.Equal(t, "corr-1", mirrored.CorrelationID)
	assert.Equal(t, 450.0, mirrored.Total)
	assert.False(t, mirrored.Processed)
	assert.False(t, mirrored.Paid)
	assert.Equal(t, "l1", mirrored.FromSourcingList)
	require.NotNil(t, mirrored.PettyCashID)
	assert.Equal(t, mirrored.ID, *mirrored.PettyCashID)
	repo.AssertExpectations(t)
}

func TestUnapproveDeletesMirror(t *testing.T) {
	approved := pendingItem()
	approved.Approved = true
	approved.MovedToPettyCash = true

	repo := new(MockRepo)
	repo.On("GetTx", mock.Anything, sourcingScope, "item-1").Return(approved, nil)
	repo.On("UpdateFieldsTx", mock.Anything, sourcingScope, "item-1", map[string]interface{}{
		"approved":            false,
		"not_approved":        false,
		"moved_to_petty_cash": false,
	}).Return(nil)
	repo.On("DeleteByCorrelationTx", mock.Anything, "c1", items.PettyCash, "corr-1").Return(int64(1), nil)
	repo.On("List", mock.Anything).Return([]items.LineItem{}, nil).Maybe()

	service := newTestService(repo)
	require.NoError(t, service.Toggle(sourcingScope, "item-1", "approved"))
	repo.AssertExpectations(t)
}

func TestToggleNotApprovedClearsApprovalAndMirror(t *testing.T) {
	approved := pendingItem()
	approved.Approved = true

	repo := new(MockRepo)
	repo.On("GetTx", mock.Anything, sourcingScope, "item-1").Return(approved, nil)
	repo.On("UpdateFieldsTx", mock.Anything, sourcingScope, "item-1", map[string]interface{}{
		"not_approved":        true,
		"approved":            false,
		"moved_to_petty_cash": false,
	}).Return(nil)
	repo.On("DeleteByCorrelationTx", mock.Anything, "c1", items.PettyCash, "corr-1").Return(int64(1), nil)
	repo.On("List", mock.Anything).Return([]items.LineItem{}, nil).Maybe()

	service := newTestService(repo)
	require.NoError(t, service.Toggle(sourcingScope, "item-1", "notApproved"))
	repo.AssertExpectations(t)
}

func TestToggleNotApprovedOnPendingItemSkipsPettyCash(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetTx", mock.Anything, sourcingScope, "item-1").Return(pendingItem(), nil)
	repo.On("UpdateFieldsTx", mock.Anything, sourcingScope, "item-1", map[string]interface{}{
		"not_approved":        true,
		"approved":            false,
		"moved_to_petty_cash": false,
	}).Return(nil)
	repo.On("List", mock.Anything).Return([]items.LineItem{}, nil).Maybe()

	service := newTestService(repo)
	require.NoError(t, service.Toggle(sourcingScope, "item-1", "notApproved"))

	repo.AssertNotCalled(t, "DeleteByCorrelationTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestToggleRejectsNonSourcingScope(t *testing.T) {
	service := newTestService(new(MockRepo))

	err := service.Toggle(pettyCashScope, "item-1", "approved")
	assert.ErrorIs(t, err, ErrNotSourcing)
}

func TestToggleRejectsOtherFlags(t *testing.T) {
	service := newTestService(new(MockRepo))

	err := service.Toggle(sourcingScope, "item-1", "processed")
	assert.ErrorIs(t, err, ErrUnknownFlag)
}

func TestToggleUnknownIDSurfacesNotFound(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetTx", mock.Anything, sourcingScope, "missing").Return(nil, apperrors.ErrNotFound)

	service := newTestService(repo)

	err := service.Toggle(sourcingScope, "missing", "approved")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReconcileRemovesOrphansAndRestoresMirrors(t *testing.T) {
	sourcing := []items.LineItem{
		{ID: "s1", CorrelationID: "corr-1", Approved: true, FromSourcingList: "l1", Total: 450},
		{ID: "s2", CorrelationID: "corr-2", Approved: false},
	}
	pettyCash := []items.LineItem{
		{ID: "p2", CorrelationID: "corr-2"}, // orphan: parent no longer approved
	}

	repo := new(MockRepo)
	repo.On("ListCollection", "c1", items.Sourcing).Return(sourcing, nil)
	repo.On("ListCollection", "c1", items.PettyCash).Return(pettyCash, nil)
	repo.On("DeleteByCorrelationTx", mock.Anything, "c1", items.PettyCash, "corr-2").Return(int64(1), nil)
	repo.On("InsertTx", mock.Anything, pettyCashScope, mock.MatchedBy(func(item *items.LineItem) bool {
		return item.CorrelationID == "corr-1"
	})).Return(nil)
	repo.On("List", mock.Anything).Return([]items.LineItem{}, nil).Maybe()

	service := newTestService(repo)
	report, err := service.Reconcile("c1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.OrphansRemoved)
	assert.Equal(t, 1, report.MirrorsRestored)
	repo.AssertExpectations(t)
}

func TestReconcileCleanStateIsNoOp(t *testing.T) {
	sourcing := []items.LineItem{
		{ID: "s1", CorrelationID: "corr-1", Approved: true},
	}
	pettyCash := []items.LineItem{
		{ID: "p1", CorrelationID: "corr-1"},
	}

	repo := new(MockRepo)
	repo.On("ListCollection", "c1", items.Sourcing).Return(sourcing, nil)
	repo.On("ListCollection", "c1", items.PettyCash).Return(pettyCash, nil)

	service := newTestService(repo)
	report, err := service.Reconcile("c1")
	require.NoError(t, err)

	assert.Equal(t, 0, report.OrphansRemoved)
	assert.Equal(t, 0, report.MirrorsRestored)
	repo.AssertNotCalled(t, "InsertTx", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "DeleteByCorrelationTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
