package googlesheets

import (
	"fmt"

	"github.com/gabapdb/sourcing-pettycash/internal/items"
	"github.com/gabapdb/sourcing-pettycash/internal/reports"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"
)

// SheetWriter is the slice of the Sheets API the exporter needs.
type SheetWriter interface {
	Clear(spreadsheetID, writeRange string) error
	Update(spreadsheetID, writeRange string, values [][]interface{}) error
}

type ExportService struct {
	writer SheetWriter
	items  *items.Service
	log    *zap.Logger
}

func NewExportService(writer SheetWriter, itemService *items.Service, log *zap.Logger) *ExportService {
	return &ExportService{writer: writer, items: itemService, log: log}
}

// Export replaces the target sheet range with the collection's current
// table: header, rows in creation order, grand-total footer.
func (s *ExportService) Export(scope items.Scope, spreadsheetID, sheetName string) (int, error) {
	list, err := s.items.List(scope)
	if err != nil {
		return 0, err
	}

	rows, err := reports.Table(scope.Collection, list)
	if err != nil {
		return 0, err
	}

	writeRange := fmt.Sprintf("%s!A1", sheetName)
	if err := s.writer.Clear(spreadsheetID, sheetName); err != nil {
		return 0, fmt.Errorf("failed to clear sheet: %w", err)
	}
	if err := s.writer.Update(spreadsheetID, writeRange, rows); err != nil {
		return 0, fmt.Errorf("failed to write sheet: %w", err)
	}

	s.log.Info("exported collection to google sheet",
		zap.String("clientId", scope.ClientID),
		zap.String("collection", string(scope.Collection)),
		zap.String("spreadsheetId", spreadsheetID),
		zap.Int("rows", len(rows)),
	)

	return len(list), nil
}

// apiWriter adapts the generated Sheets client to SheetWriter.
type apiWriter struct {
	service *sheets.Service
}

func NewSheetWriter(service *sheets.Service) SheetWriter {
	return &apiWriter{service: service}
}

func (w *apiWriter) Clear(spreadsheetID, writeRange string) error {
	_, err := w.service.Spreadsheets.Values.
		Clear(spreadsheetID, writeRange, &sheets.ClearValuesRequest{}).
		Do()
	return err
}

func (w *apiWriter) Update(spreadsheetID, writeRange string, values [][]interface{}) error {
	_, err := w.service.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Do()
	return err
}
