package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer tracks a running receivable. Balance only moves through
// credit/partial sales (up) and payment collection (down); collecting more
// than is owed leaves it negative, meaning credit owed to the customer.
type Customer struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}
