package customers

import (
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/internal/store"
)

// Ledger applies balance movements to live state, inside a store closure.
type Ledger struct {
	state *store.State
}

// NewLedger binds balance primitives to the given state.
func NewLedger(state *store.State) Ledger {
	return Ledger{state: state}
}

// AdjustBalance moves a customer's receivable by delta. Unknown names are a
// silent no-op: sales to unregistered clients still succeed, they just never
// reach the receivables ledger.
func (l Ledger) AdjustBalance(name string, delta decimal.Decimal) {
	customer, ok := l.state.Customer(name)
	if !ok {
		return
	}
	customer.Balance = customer.Balance.Add(delta)
	l.state.MarkDirty(store.KeyCustomers)
}
