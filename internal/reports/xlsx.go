// Package reports renders a collection's table as a spreadsheet: one header
// row, one row per item, and a grand-total footer derived from the rows.
package reports

import (
	"fmt"

	"github.com/gabapdb/sourcing-pettycash/internal/items"
	"github.com/gabapdb/sourcing-pettycash/internal/totals"

	"github.com/xuri/excelize/v2"
)

var headers = map[items.Collection][]string{
	items.Sourcing:    {"Store", "Item", "Item Name", "Quantity", "Unit", "Type", "Dimensions", "Notes", "Price", "Total", "Approved"},
	items.PettyCash:   {"Store", "Item", "Item Name", "Quantity", "Unit", "Type", "Dimensions", "Notes", "Price", "Total", "Processed", "Paid"},
	items.Liquidation: {"PC Request No", "Store", "Item", "Item Name", "Quantity", "Unit", "Type", "Dimensions", "Notes", "Price", "Total", "Purchase Price", "Balance", "Changed"},
}

func rowValues(collection items.Collection, item items.LineItem) []interface{} {
	switch collection {
	case items.PettyCash:
		return []interface{}{
			item.Store, item.ItemCode, item.ItemName, item.Quantity, item.Unit,
			item.ItemType, item.Dimensions, item.Notes, item.Price, item.Total,
			item.Processed, item.Paid,
		}
	case items.Liquidation:
		return []interface{}{
			item.PettyCashRequestNo, item.Store, item.ItemCode, item.ItemName,
			liquidationQuantity(item), item.Unit, item.ItemType, item.Dimensions,
			item.Notes, liquidationPrice(item), item.Total, item.PurchasePrice,
			item.Balance, item.Changed,
		}
	default:
		return []interface{}{
			item.Store, item.ItemCode, item.ItemName, item.Quantity, item.Unit,
			item.ItemType, item.Dimensions, item.Notes, item.Price, item.Total,
			item.Approved,
		}
	}
}

// Edited liquidation rows export their shadow figures.
func liquidationQuantity(item items.LineItem) float64 {
	if item.Changed && item.NewQuantity != nil {
		return *item.NewQuantity
	}
	return item.Quantity
}

func liquidationPrice(item items.LineItem) float64 {
	if item.Changed && item.NewPrice != nil {
		return *item.NewPrice
	}
	return item.Price
}

// Table renders the item set as rows of cell values: a header row, one row
// per item, and a grand-total footer. Both the xlsx and the Google Sheets
// exporters consume it.
func Table(collection items.Collection, list []items.LineItem) ([][]interface{}, error) {
	cols, ok := headers[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	rows := make([][]interface{}, 0, len(list)+2)

	header := make([]interface{}, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	rows = append(rows, header)

	for _, item := range list {
		rows = append(rows, rowValues(collection, item))
	}

	footer := make([]interface{}, len(cols))
	footer[0] = "Grand Total"
	footer[indexOf(cols, "Total")] = totals.CalcGrandTotal(list)
	rows = append(rows, footer)

	return rows, nil
}

// BuildWorkbook renders the item set into a single-sheet workbook.
func BuildWorkbook(title string, collection items.Collection, list []items.LineItem) (*excelize.File, error) {
	rows, err := Table(collection, list)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), title); err != nil {
		return nil, err
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(title, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return 0
}
