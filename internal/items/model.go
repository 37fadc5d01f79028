package items

import (
	"fmt"
	"time"
)

// Collection names one of the three line-item tables' logical collections.
type Collection string

const (
	Sourcing    Collection = "sourcing"
	PettyCash   Collection = "petty_cash"
	Liquidation Collection = "liquidation"
)

// Scope identifies one item collection instance: a client, a collection,
// and for sourcing the owning list.
type Scope struct {
	ClientID   string
	Collection Collection
	ListID     string
}

// Topic keys the live-snapshot hub.
func (s Scope) Topic() string {
	if s.ListID != "" {
		return fmt.Sprintf("items/%s/%s/%s", s.ClientID, s.Collection, s.ListID)
	}
	return fmt.Sprintf("items/%s/%s", s.ClientID, s.Collection)
}

// LineItem is one row of a sourcing, petty cash or liquidation table. The
// three collections share the schema; collection-specific fields are zero
// elsewhere. The "new*" shadow fields belong to liquidation only and hold
// edited figures displayed when Changed is set.
type LineItem struct {
	ID            string  `db:"id" json:"id"`
	CorrelationID string  `db:"correlation_id" json:"uuidSL"`
	PettyCashID   *string `db:"petty_cash_id" json:"uuidPC,omitempty"`

	PettyCashRequestNo string `db:"petty_cash_request_no" json:"pettyCashRequestNo,omitempty"`
	Store              string `db:"store" json:"store"`
	ItemCode           string `db:"item_code" json:"item"`
	ItemName           string `db:"item_name" json:"itemName"`
	Unit               string `db:"unit" json:"unit"`
	ItemType           string `db:"item_type" json:"type"`
	Dimensions         string `db:"dimensions" json:"dimensions"`
	Notes              string `db:"notes" json:"notes"`

	Quantity      float64 `db:"quantity" json:"quantity"`
	Price         float64 `db:"price" json:"price"`
	Total         float64 `db:"total" json:"total"`
	PurchasePrice float64 `db:"purchase_price" json:"purchasePrice,omitempty"`
	Balance       float64 `db:"balance" json:"balance,omitempty"`

	Approved          bool `db:"approved" json:"approved"`
	NotApproved       bool `db:"not_approved" json:"notApproved"`
	MovedToPettyCash  bool `db:"moved_to_petty_cash" json:"movedToPettyCash"`
	Processed         bool `db:"processed" json:"processed"`
	Paid              bool `db:"paid" json:"paid"`
	Changed           bool `db:"changed" json:"changed"`

	NewItem          *string  `db:"new_item" json:"newItem,omitempty"`
	NewQuantity      *float64 `db:"new_quantity" json:"newQuantity,omitempty"`
	NewUnit          *string  `db:"new_unit" json:"newUnit,omitempty"`
	NewDimensions    *string  `db:"new_dimensions" json:"newDimensions,omitempty"`
	NewPrice         *float64 `db:"new_price" json:"newPrice,omitempty"`
	NewTotalPrice    *float64 `db:"new_total_price" json:"newTotalPrice,omitempty"`
	NewPurchasePrice *float64 `db:"new_purchase_price" json:"newPurchasePrice,omitempty"`
	NewBalance       *float64 `db:"new_balance" json:"newBalance,omitempty"`
	NewNotes         *string  `db:"new_notes" json:"newNotes,omitempty"`

	FromSourcingList string    `db:"from_sourcing_list" json:"fromSourcingList,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// LineTotal satisfies totals.Totaler.
func (i LineItem) LineTotal() float64 { return i.Total }

// FlagValue reads one of the boolean status flags by name.
func (i LineItem) FlagValue(flag string) (bool, error) {
	switch flag {
	case "approved":
		return i.Approved, nil
	case "notApproved":
		return i.NotApproved, nil
	case "processed":
		return i.Processed, nil
	case "paid":
		return i.Paid, nil
	case "changed":
		return i.Changed, nil
	default:
		return false, fmt.Errorf("unknown flag %q", flag)
	}
}
