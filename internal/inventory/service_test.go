package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariodelgado/aquatrack-backend/pkg/enums"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(newTestStore(t), nil, 20)
	require.NoError(t, err)
	svc.(*service).now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestService_AddStockRecordsBuyTransaction(t *testing.T) {
	svc := newTestService(t)

	txn, err := svc.AddStock(context.Background(), AddStockInput{
		Name:     "500ml Bottle",
		Quantity: 100,
		UnitCost: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	assert.Equal(t, enums.TransactionTypeBuy, txn.Type)
	assert.Equal(t, "Supplier", txn.Client)
	assert.Equal(t, "500ml Bottle", txn.ItemName)
	assert.Equal(t, 100, txn.Quantity)
	assert.True(t, txn.Total.Equal(decimal.NewFromInt(200)), "got %s", txn.Total)
	assert.Equal(t, "2025-03-14", txn.Date)
	assert.Equal(t, "09:30:00", txn.Time)

	items := svc.List(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, "General", items[0].Category)
	assert.Equal(t, 100, items[0].Quantity)
}

func TestService_AddStockValidation(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name  string
		input AddStockInput
	}{
		{"empty name", AddStockInput{Name: "  ", Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
		{"zero quantity", AddStockInput{Name: "Cap", Quantity: 0, UnitCost: decimal.NewFromInt(1)}},
		{"negative cost", AddStockInput{Name: "Cap", Quantity: 1, UnitCost: decimal.NewFromInt(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddStock(context.Background(), tc.input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}

	assert.Empty(t, svc.List(context.Background()))
}

func TestService_AddStockNamedSupplier(t *testing.T) {
	svc := newTestService(t)

	txn, err := svc.AddStock(context.Background(), AddStockInput{
		Name:     "Cap",
		Quantity: 500,
		UnitCost: decimal.NewFromFloat(0.5),
		Supplier: "CapCo",
	})
	require.NoError(t, err)
	assert.Equal(t, "CapCo", txn.Client)
	assert.True(t, txn.Total.Equal(decimal.NewFromInt(250)), "got %s", txn.Total)
}

func TestService_LowStockAndStockValue(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddStock(context.Background(), AddStockInput{Name: "Cap", Quantity: 5, UnitCost: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = svc.AddStock(context.Background(), AddStockInput{Name: "Label", Quantity: 100, UnitCost: decimal.NewFromInt(2)})
	require.NoError(t, err)

	low := svc.LowStock(context.Background())
	require.Len(t, low, 1)
	assert.Equal(t, "Cap", low[0].Name)

	assert.True(t, svc.StockValue(context.Background()).Equal(decimal.NewFromInt(205)))
}
