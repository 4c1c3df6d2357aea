package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/internal/inventory"
	"github.com/mariodelgado/aquatrack-backend/internal/store"
	"github.com/mariodelgado/aquatrack-backend/pkg/enums"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// legacyProfitRate approximates profit for SELL records written before the
// profit field existed. Changing it changes historical report numbers.
var legacyProfitRate = decimal.RequireFromString("0.3")

// Summary is the derived dashboard rollup. It is recomputed on demand and
// never stored.
type Summary struct {
	TotalSales    decimal.Decimal        `json:"totalSales"`
	TotalSpent    decimal.Decimal        `json:"totalSpent"`
	Profit        decimal.Decimal        `json:"profit"`
	StockValue    decimal.Decimal        `json:"stockValue"`
	LowStockItems []models.InventoryItem `json:"lowStockItems"`
}

// Service derives read-only rollups from the transaction log and inventory.
type Service interface {
	Summary(ctx context.Context) Summary
}

type service struct {
	store     *store.Store
	threshold int
}

// NewService wires the aggregator to the state store.
func NewService(st *store.Store, lowStockThreshold int) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("state store required")
	}
	if lowStockThreshold <= 0 {
		lowStockThreshold = 20
	}
	return &service{store: st, threshold: lowStockThreshold}, nil
}

func (s *service) Summary(ctx context.Context) Summary {
	summary := Summary{
		TotalSales: decimal.Zero,
		TotalSpent: decimal.Zero,
		Profit:     decimal.Zero,
		StockValue: decimal.Zero,
	}

	s.store.View(func(st *store.State) {
		for _, txn := range st.Transactions {
			switch txn.Type {
			case enums.TransactionTypeSell:
				summary.TotalSales = summary.TotalSales.Add(txn.Total)
				if txn.Profit != nil {
					summary.Profit = summary.Profit.Add(*txn.Profit)
				} else {
					summary.Profit = summary.Profit.Add(txn.Total.Mul(legacyProfitRate))
				}
			case enums.TransactionTypeBuy:
				summary.TotalSpent = summary.TotalSpent.Add(txn.Total)
			}
		}

		led := inventory.NewLedger(st)
		summary.StockValue = led.TotalValue()
		summary.LowStockItems = led.LowStock(s.threshold)
	})

	if summary.LowStockItems == nil {
		summary.LowStockItems = []models.InventoryItem{}
	}
	return summary
}
