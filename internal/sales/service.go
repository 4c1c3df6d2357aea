package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/internal/customers"
	"github.com/mariodelgado/aquatrack-backend/internal/inventory"
	"github.com/mariodelgado/aquatrack-backend/internal/store"
	"github.com/mariodelgado/aquatrack-backend/pkg/enums"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/metrics"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// WalkInClient is the unattributed cash customer: credit from a walk-in sale
// is never posted to the customer ledger.
const WalkInClient = "Walk-in"

// Service executes point-of-sale transactions.
type Service interface {
	Sell(ctx context.Context, input SellInput) (*models.Transaction, error)
	Transactions(ctx context.Context) []models.Transaction
}

// SellInput is the validated payload for a sale.
type SellInput struct {
	ItemName     string
	Quantity     int
	SellingPrice decimal.Decimal
	Client       string
	AmountPaid   decimal.Decimal
}

type service struct {
	store   *store.Store
	metrics *metrics.EngineMetrics
	now     func() time.Time
}

// NewService wires the sales engine to the state store.
func NewService(st *store.Store, em *metrics.EngineMetrics) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("state store required")
	}
	return &service{store: st, metrics: em, now: time.Now}, nil
}

// Sell validates stock, appends a SELL transaction, debits inventory, and
// posts any outstanding balance to the customer ledger.
func (s *service) Sell(ctx context.Context, input SellInput) (*models.Transaction, error) {
	txn, err := s.sell(ctx, input)
	s.metrics.Record("sell_stock", err)
	return txn, err
}

func (s *service) sell(ctx context.Context, input SellInput) (*models.Transaction, error) {
	name := strings.TrimSpace(input.ItemName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.SellingPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price must not be negative")
	}
	if input.AmountPaid.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount paid must not be negative")
	}

	client := strings.TrimSpace(input.Client)
	if client == "" {
		client = WalkInClient
	}

	var txn models.Transaction
	err := s.store.Update(ctx, func(st *store.State) error {
		item, ok := st.Item(name)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, fmt.Sprintf("item %q not in stock", name)).
				WithDetails(map[string]any{"item": name, "requested": input.Quantity, "available": 0})
		}
		if input.Quantity > item.Quantity {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, fmt.Sprintf("not enough %q in stock", name)).
				WithDetails(map[string]any{"item": name, "requested": input.Quantity, "available": item.Quantity})
		}

		qty := decimal.NewFromInt(int64(input.Quantity))
		total := input.SellingPrice.Mul(qty)
		balanceDue := total.Sub(input.AmountPaid)
		profit := input.SellingPrice.Sub(item.CostPrice).Mul(qty)

		status := enums.SaleStatusPaid
		switch {
		case input.AmountPaid.IsZero():
			status = enums.SaleStatusCredit
		case input.AmountPaid.LessThan(total):
			status = enums.SaleStatusPartial
		}

		amountPaid := input.AmountPaid
		now := s.now()
		txn = models.Transaction{
			ID:         uuid.New(),
			Type:       enums.TransactionTypeSell,
			Client:     client,
			ItemName:   name,
			Quantity:   input.Quantity,
			Total:      total,
			Date:       now.Format("2006-01-02"),
			Time:       now.Format("15:04:05"),
			AmountPaid: &amountPaid,
			BalanceDue: &balanceDue,
			Status:     status,
			Profit:     &profit,
		}
		st.AppendTransaction(txn)

		if err := inventory.NewLedger(st).Consume(name, input.Quantity); err != nil {
			return err
		}

		// The sale price becomes the item's current list price.
		item.SellingPrice = input.SellingPrice
		st.MarkDirty(store.KeyInventory)

		if balanceDue.IsPositive() && client != WalkInClient {
			customers.NewLedger(st).AdjustBalance(client, balanceDue)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *service) Transactions(ctx context.Context) []models.Transaction {
	var txns []models.Transaction
	s.store.View(func(st *store.State) {
		txns = append(txns, st.Transactions...)
	})
	return txns
}
