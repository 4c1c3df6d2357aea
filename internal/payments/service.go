package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/internal/customers"
	"github.com/mariodelgado/aquatrack-backend/internal/store"
	"github.com/mariodelgado/aquatrack-backend/pkg/enums"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/metrics"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// Service collects customer payments against outstanding balances.
type Service interface {
	Collect(ctx context.Context, customerName string, amount decimal.Decimal) (*models.Transaction, error)
}

type service struct {
	store   *store.Store
	metrics *metrics.EngineMetrics
	now     func() time.Time
}

// NewService wires the payment engine to the state store.
func NewService(st *store.Store, em *metrics.EngineMetrics) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("state store required")
	}
	return &service{store: st, metrics: em, now: time.Now}, nil
}

// Collect records a PAYMENT transaction and reduces the customer's balance.
// The amount is not capped at the balance: overpaying drives the balance
// negative, which the ledger reads as credit owed to the customer.
func (s *service) Collect(ctx context.Context, customerName string, amount decimal.Decimal) (*models.Transaction, error) {
	txn, err := s.collect(ctx, customerName, amount)
	s.metrics.Record("collect_payment", err)
	return txn, err
}

func (s *service) collect(ctx context.Context, customerName string, amount decimal.Decimal) (*models.Transaction, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	now := s.now()
	txn := models.Transaction{
		ID:       uuid.New(),
		Type:     enums.TransactionTypePayment,
		Client:   customerName,
		Quantity: 0,
		Total:    amount,
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04:05"),
		Status:   enums.SaleStatusCollected,
	}

	err := s.store.Update(ctx, func(st *store.State) error {
		st.AppendTransaction(txn)
		customers.NewLedger(st).AdjustBalance(customerName, amount.Neg())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
