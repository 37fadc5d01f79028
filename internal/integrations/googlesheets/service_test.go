package googlesheets

import (
	"errors"
	"testing"

	"github.com/gabapdb/sourcing-pettycash/internal/items"
	"github.com/gabapdb/sourcing-pettycash/internal/watch"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockSheetWriter struct {
	mock.Mock
}

func (m *MockSheetWriter) Clear(spreadsheetID, writeRange string) error {
	args := m.Called(spreadsheetID, writeRange)
	return args.Error(0)
}

func (m *MockSheetWriter) Update(spreadsheetID, writeRange string, values [][]interface{}) error {
	args := m.Called(spreadsheetID, writeRange, values)
	return args.Error(0)
}

type stubItemRepo struct {
	list []items.LineItem
	err  error
}

func (r *stubItemRepo) List(scope items.Scope) ([]items.LineItem, error) { return r.list, r.err }
func (r *stubItemRepo) Get(scope items.Scope, id string) (*items.LineItem, error) {
	return nil, errors.New("not implemented")
}
func (r *stubItemRepo) Insert(scope items.Scope, item *items.LineItem) error { return nil }
func (r *stubItemRepo) UpdateFields(scope items.Scope, id string, fields map[string]interface{}) error {
	return nil
}
func (r *stubItemRepo) Delete(scope items.Scope, id string) error { return nil }
func (r *stubItemRepo) GetTx(tx *goqu.TxDatabase, scope items.Scope, id string) (*items.LineItem, error) {
	return nil, errors.New("not implemented")
}
func (r *stubItemRepo) InsertTx(tx *goqu.TxDatabase, scope items.Scope, item *items.LineItem) error {
	return nil
}
func (r *stubItemRepo) UpdateFieldsTx(tx *goqu.TxDatabase, scope items.Scope, id string, fields map[string]interface{}) error {
	return nil
}
func (r *stubItemRepo) DeleteByCorrelationTx(tx *goqu.TxDatabase, clientID string, collection items.Collection, correlationID string) (int64, error) {
	return 0, nil
}
func (r *stubItemRepo) ListCollection(clientID string, collection items.Collection) ([]items.LineItem, error) {
	return nil, nil
}

func newTestService(repo items.LineItemRepository, writer SheetWriter) *ExportService {
	itemService := items.NewService(repo, watch.NewHub[[]items.LineItem](), zap.NewNop())
	return NewExportService(writer, itemService, zap.NewNop())
}

func TestExportWritesTable(t *testing.T) {
	repo := &stubItemRepo{list: []items.LineItem{
		{ID: "a", Store: "Wilcon Depot", ItemCode: "PL-01", Quantity: 3, Price: 150, Total: 450},
	}}
	writer := new(MockSheetWriter)
	writer.On("Clear", "sheet-1", "Costs").Return(nil)
	writer.On("Update", "sheet-1", "Costs!A1", mock.MatchedBy(func(values [][]interface{}) bool {
		// header + one row + footer
		return len(values) == 3 && values[0][0] == "Store" && values[1][0] == "Wilcon Depot"
	})).Return(nil)

	scope := items.Scope{ClientID: "c1", Collection: items.PettyCash}
	exported, err := newTestService(repo, writer).Export(scope, "sheet-1", "Costs")

	assert.NoError(t, err)
	assert.Equal(t, 1, exported)
	writer.AssertExpectations(t)
}

func TestExportClearFailure(t *testing.T) {
	writer := new(MockSheetWriter)
	writer.On("Clear", "sheet-1", "Sheet1").Return(errors.New("permission denied"))

	scope := items.Scope{ClientID: "c1", Collection: items.PettyCash}
	_, err := newTestService(&stubItemRepo{}, writer).Export(scope, "sheet-1", "Sheet1")

	assert.ErrorContains(t, err, "failed to clear sheet")
	writer.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportListFailure(t *testing.T) {
	repo := &stubItemRepo{err: errors.New("db down")}
	writer := new(MockSheetWriter)

	scope := items.Scope{ClientID: "c1", Collection: items.Sourcing}
	_, err := newTestService(repo, writer).Export(scope, "sheet-1", "Sheet1")

	assert.Error(t, err)
	writer.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}
