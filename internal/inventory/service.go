package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/internal/store"
	"github.com/mariodelgado/aquatrack-backend/pkg/enums"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/metrics"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// Service exposes the stock intake and inventory read operations.
type Service interface {
	AddStock(ctx context.Context, input AddStockInput) (*models.Transaction, error)
	List(ctx context.Context) []models.InventoryItem
	LowStock(ctx context.Context) []models.InventoryItem
	StockValue(ctx context.Context) decimal.Decimal
}

// AddStockInput is the validated payload for a purchase.
type AddStockInput struct {
	Name         string
	Category     string
	Quantity     int
	UnitCost     decimal.Decimal
	SellingPrice decimal.Decimal
	Supplier     string
}

type service struct {
	store     *store.Store
	metrics   *metrics.EngineMetrics
	threshold int
	now       func() time.Time
}

// NewService wires the inventory service to the state store.
func NewService(st *store.Store, em *metrics.EngineMetrics, lowStockThreshold int) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("state store required")
	}
	if lowStockThreshold <= 0 {
		lowStockThreshold = 20
	}
	return &service{
		store:     st,
		metrics:   em,
		threshold: lowStockThreshold,
		now:       time.Now,
	}, nil
}

// AddStock books a purchase into the ledger and records a BUY transaction.
func (s *service) AddStock(ctx context.Context, input AddStockInput) (*models.Transaction, error) {
	txn, err := s.addStock(ctx, input)
	s.metrics.Record("add_stock", err)
	return txn, err
}

func (s *service) addStock(ctx context.Context, input AddStockInput) (*models.Transaction, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.UnitCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost must not be negative")
	}

	client := strings.TrimSpace(input.Supplier)
	if client == "" {
		client = "Supplier"
	}

	now := s.now()
	txn := models.Transaction{
		ID:       uuid.New(),
		Type:     enums.TransactionTypeBuy,
		Client:   client,
		ItemName: name,
		Quantity: input.Quantity,
		Total:    input.UnitCost.Mul(decimal.NewFromInt(int64(input.Quantity))),
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04:05"),
	}

	err := s.store.Update(ctx, func(st *store.State) error {
		NewLedger(st).Receive(name, input.Quantity, input.UnitCost, input.Category, input.SellingPrice)
		st.AppendTransaction(txn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *service) List(ctx context.Context) []models.InventoryItem {
	var items []models.InventoryItem
	s.store.View(func(st *store.State) {
		items = append(items, st.Inventory...)
	})
	return items
}

func (s *service) LowStock(ctx context.Context) []models.InventoryItem {
	var items []models.InventoryItem
	s.store.View(func(st *store.State) {
		items = NewLedger(st).LowStock(s.threshold)
	})
	return items
}

func (s *service) StockValue(ctx context.Context) decimal.Decimal {
	value := decimal.Zero
	s.store.View(func(st *store.State) {
		value = NewLedger(st).TotalValue()
	})
	return value
}
