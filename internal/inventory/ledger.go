package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/internal/store"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// CategoryProduced marks finished goods created by a production credit.
const CategoryProduced = "Produced"

// Ledger applies stock movements to live state. It is constructed inside a
// store Update/View closure and must not outlive it.
type Ledger struct {
	state *store.State
}

// NewLedger binds ledger primitives to the given state.
func NewLedger(state *store.State) Ledger {
	return Ledger{state: state}
}

// Receive books a purchase. An existing item gains quantity and has its cost
// price overwritten with the latest purchase cost: bought goods are costed at
// last-cost, never averaged. Only production credits average (CreditProduced).
func (l Ledger) Receive(name string, quantity int, unitCost decimal.Decimal, category string, sellingPrice decimal.Decimal) {
	if item, ok := l.state.Item(name); ok {
		item.Quantity += quantity
		item.CostPrice = unitCost
		if sellingPrice.IsPositive() {
			item.SellingPrice = sellingPrice
		}
		l.state.MarkDirty(store.KeyInventory)
		return
	}

	if category == "" {
		category = "General"
	}
	l.state.PutItem(models.InventoryItem{
		ID:           uuid.New(),
		Name:         name,
		Category:     category,
		Quantity:     quantity,
		CostPrice:    unitCost,
		SellingPrice: sellingPrice,
	})
}

// Consume deducts stock, failing without mutation when the item is missing or
// holds less than requested. Stock can never go negative through this path.
func (l Ledger) Consume(name string, quantity int) error {
	item, ok := l.state.Item(name)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, fmt.Sprintf("item %q not in stock", name)).
			WithDetails(map[string]any{"item": name, "requested": quantity, "available": 0})
	}
	if quantity > item.Quantity {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, fmt.Sprintf("not enough %q in stock", name)).
			WithDetails(map[string]any{"item": name, "requested": quantity, "available": item.Quantity})
	}
	item.Quantity -= quantity
	l.state.MarkDirty(store.KeyInventory)
	return nil
}

// ConsumeWasteClamped deducts waste, clamping at zero. Unknown items are a
// no-op. Waste deliberately never fails; see the production engine.
func (l Ledger) ConsumeWasteClamped(name string, quantity int) {
	item, ok := l.state.Item(name)
	if !ok {
		return
	}
	item.Quantity -= quantity
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	l.state.MarkDirty(store.KeyInventory)
}

// CreditProduced adds finished goods. An existing item's cost price becomes
// the weighted average of its current holding and the incoming batch, rounded
// to a whole figure; a new item is created in the Produced category with the
// batch unit cost and no selling price.
func (l Ledger) CreditProduced(name string, quantity int, batchTotalCost decimal.Decimal) {
	qty := decimal.NewFromInt(int64(quantity))

	if item, ok := l.state.Item(name); ok {
		existingQty := decimal.NewFromInt(int64(item.Quantity))
		existingValue := existingQty.Mul(item.CostPrice)
		item.CostPrice = existingValue.Add(batchTotalCost).
			Div(existingQty.Add(qty)).
			Round(0)
		item.Quantity += quantity
		l.state.MarkDirty(store.KeyInventory)
		return
	}

	l.state.PutItem(models.InventoryItem{
		ID:           uuid.New(),
		Name:         name,
		Category:     CategoryProduced,
		Quantity:     quantity,
		CostPrice:    batchTotalCost.Div(qty).Round(0),
		SellingPrice: decimal.Zero,
	})
}

// LowStock lists items whose quantity fell under the threshold.
func (l Ledger) LowStock(threshold int) []models.InventoryItem {
	var low []models.InventoryItem
	for _, item := range l.state.Inventory {
		if item.Quantity < threshold {
			low = append(low, item)
		}
	}
	return low
}

// TotalValue sums quantity times cost price over all items.
func (l Ledger) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l.state.Inventory {
		total = total.Add(item.CostPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
