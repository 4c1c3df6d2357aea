package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/pkg/enums"
)

// Transaction is an immutable entry in the append-only monetary log,
// kept newest first.
type Transaction struct {
	ID       uuid.UUID             `json:"id"`
	Type     enums.TransactionType `json:"type"`
	Client   string                `json:"client"`
	ItemName string                `json:"itemName"`
	Quantity int                   `json:"quantity"`
	Total    decimal.Decimal       `json:"total"`
	Date     string                `json:"date"`
	Time     string                `json:"time"`

	// SELL and PAYMENT extras. Profit is a pointer so legacy records
	// without one survive round-trips; aggregation applies a fallback.
	AmountPaid *decimal.Decimal `json:"amountPaid,omitempty"`
	BalanceDue *decimal.Decimal `json:"balanceDue,omitempty"`
	Status     enums.SaleStatus `json:"status,omitempty"`
	Profit     *decimal.Decimal `json:"profit,omitempty"`
}
