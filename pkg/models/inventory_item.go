package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked good, keyed by its exact name across engines.
// CostPrice carries last purchase cost for bought goods and a weighted
// average for produced goods.
type InventoryItem struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
}
