package items

// Descriptor configures the generic collection manager for one collection:
// which fields are editable, which hold numbers, and which flags can be
// toggled. One manager implementation serves all three tables.
type Descriptor struct {
	Collection Collection

	// editable maps the wire field name to its column.
	editable map[string]string
	// numeric marks editable fields whose values are coerced to float64.
	numeric map[string]bool
	// toggles maps a flag name to its column.
	toggles map[string]string
}

var baseEditable = map[string]string{
	"store":      "store",
	"item":       "item_code",
	"itemName":   "item_name",
	"quantity":   "quantity",
	"unit":       "unit",
	"type":       "item_type",
	"dimensions": "dimensions",
	"notes":      "notes",
	"price":      "price",
}

var descriptors = map[Collection]Descriptor{
	Sourcing: {
		Collection: Sourcing,
		editable:   baseEditable,
		numeric:    map[string]bool{"quantity": true, "price": true},
		// approved/notApproved are driven by the approval transition,
		// not by a plain flag toggle.
		toggles: map[string]string{},
	},
	PettyCash: {
		Collection: PettyCash,
		editable:   baseEditable,
		numeric:    map[string]bool{"quantity": true, "price": true},
		toggles: map[string]string{
			"processed": "processed",
			"paid":      "paid",
		},
	},
	Liquidation: {
		Collection: Liquidation,
		editable: merge(baseEditable, map[string]string{
			"purchasePrice":      "purchase_price",
			"balance":            "balance",
			"pettyCashRequestNo": "petty_cash_request_no",
			"newItem":            "new_item",
			"newQuantity":        "new_quantity",
			"newUnit":            "new_unit",
			"newDimensions":      "new_dimensions",
			"newPrice":           "new_price",
			"newTotalPrice":      "new_total_price",
			"newPurchasePrice":   "new_purchase_price",
			"newBalance":         "new_balance",
			"newNotes":           "new_notes",
		}),
		numeric: map[string]bool{
			"quantity":         true,
			"price":            true,
			"purchasePrice":    true,
			"balance":          true,
			"newQuantity":      true,
			"newPrice":         true,
			"newTotalPrice":    true,
			"newPurchasePrice": true,
			"newBalance":       true,
		},
		toggles: map[string]string{
			"changed": "changed",
		},
	},
}

// DescriptorFor returns the manager configuration for a collection.
func DescriptorFor(c Collection) (Descriptor, bool) {
	d, ok := descriptors[c]
	return d, ok
}

// EditableColumn resolves a wire field name to its column.
func (d Descriptor) EditableColumn(field string) (string, bool) {
	col, ok := d.editable[field]
	return col, ok
}

// IsNumeric reports whether the field's value is coerced to a number.
func (d Descriptor) IsNumeric(field string) bool {
	return d.numeric[field]
}

// ToggleColumn resolves a flag name to its column.
func (d Descriptor) ToggleColumn(flag string) (string, bool) {
	col, ok := d.toggles[flag]
	return col, ok
}

func merge(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
