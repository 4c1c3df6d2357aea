package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mariodelgado/aquatrack-backend/internal/store"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/kv"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	kvs, err := kv.NewGormWithConn(conn)
	require.NoError(t, err)

	st, err := store.Open(context.Background(), kvs, "test", nil)
	require.NoError(t, err)
	return st
}

func TestLedger_ReceiveOverwritesCostAtLastPurchase(t *testing.T) {
	st := newTestStore(t)

	err := st.Update(context.Background(), func(state *store.State) error {
		led := NewLedger(state)
		led.Receive("500ml Bottle", 100, decimal.NewFromInt(2), "Raw Material", decimal.Zero)
		led.Receive("500ml Bottle", 50, decimal.NewFromInt(3), "", decimal.Zero)
		return nil
	})
	require.NoError(t, err)

	st.View(func(state *store.State) {
		item, ok := state.Item("500ml Bottle")
		require.True(t, ok)
		assert.Equal(t, 150, item.Quantity)
		// Purchases are costed at the latest price, never averaged.
		assert.True(t, item.CostPrice.Equal(decimal.NewFromInt(3)), "got %s", item.CostPrice)
		assert.Equal(t, "Raw Material", item.Category)
	})
}

func TestLedger_ReceiveDefaultsCategoryAndKeepsSellingPrice(t *testing.T) {
	st := newTestStore(t)

	err := st.Update(context.Background(), func(state *store.State) error {
		led := NewLedger(state)
		led.Receive("Cap", 200, decimal.NewFromFloat(0.5), "", decimal.NewFromInt(1))
		// A zero selling price on a restock keeps the existing one.
		led.Receive("Cap", 100, decimal.NewFromFloat(0.6), "", decimal.Zero)
		return nil
	})
	require.NoError(t, err)

	st.View(func(state *store.State) {
		item, ok := state.Item("Cap")
		require.True(t, ok)
		assert.Equal(t, "General", item.Category)
		assert.True(t, item.SellingPrice.Equal(decimal.NewFromInt(1)))
	})
}

func TestLedger_ConsumeFailsWithoutMutation(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Update(context.Background(), func(state *store.State) error {
		NewLedger(state).Receive("Label", 10, decimal.NewFromInt(1), "", decimal.Zero)
		return nil
	}))

	err := st.Update(context.Background(), func(state *store.State) error {
		return NewLedger(state).Consume("Label", 11)
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())

	st.View(func(state *store.State) {
		item, _ := state.Item("Label")
		assert.Equal(t, 10, item.Quantity)
	})
}

func TestLedger_ConsumeUnknownItemFails(t *testing.T) {
	st := newTestStore(t)

	err := st.Update(context.Background(), func(state *store.State) error {
		return NewLedger(state).Consume("Ghost", 1)
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
}

func TestLedger_WasteClampsAtZero(t *testing.T) {
	st := newTestStore(t)

	err := st.Update(context.Background(), func(state *store.State) error {
		led := NewLedger(state)
		led.Receive("Shrink Wrap", 5, decimal.NewFromInt(1), "", decimal.Zero)
		led.ConsumeWasteClamped("Shrink Wrap", 8)
		led.ConsumeWasteClamped("Ghost", 3) // unknown items are a no-op
		return nil
	})
	require.NoError(t, err)

	st.View(func(state *store.State) {
		item, _ := state.Item("Shrink Wrap")
		assert.Equal(t, 0, item.Quantity)
		_, ok := state.Item("Ghost")
		assert.False(t, ok)
	})
}

func TestLedger_CreditProducedAveragesCost(t *testing.T) {
	st := newTestStore(t)

	err := st.Update(context.Background(), func(state *store.State) error {
		led := NewLedger(state)
		// First batch creates the item: 115 / 40 = 2.875, rounded to 3.
		led.CreditProduced("500ml Case", 40, decimal.NewFromInt(115))
		return nil
	})
	require.NoError(t, err)

	st.View(func(state *store.State) {
		item, ok := state.Item("500ml Case")
		require.True(t, ok)
		assert.Equal(t, CategoryProduced, item.Category)
		assert.Equal(t, 40, item.Quantity)
		assert.True(t, item.CostPrice.Equal(decimal.NewFromInt(3)), "got %s", item.CostPrice)
		assert.True(t, item.SellingPrice.IsZero())
	})

	err = st.Update(context.Background(), func(state *store.State) error {
		// Second batch: (40*3 + 60) / (40+20) = 3 exactly.
		NewLedger(state).CreditProduced("500ml Case", 20, decimal.NewFromInt(60))
		return nil
	})
	require.NoError(t, err)

	st.View(func(state *store.State) {
		item, _ := state.Item("500ml Case")
		assert.Equal(t, 60, item.Quantity)
		assert.True(t, item.CostPrice.Equal(decimal.NewFromInt(3)), "got %s", item.CostPrice)
	})
}

func TestLedger_LowStockAndTotalValue(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.Update(context.Background(), func(state *store.State) error {
		led := NewLedger(state)
		led.Receive("Cap", 5, decimal.NewFromInt(1), "", decimal.Zero)
		led.Receive("Label", 50, decimal.NewFromInt(2), "", decimal.Zero)
		return nil
	}))

	st.View(func(state *store.State) {
		led := NewLedger(state)

		low := led.LowStock(20)
		require.Len(t, low, 1)
		assert.Equal(t, "Cap", low[0].Name)

		// 5*1 + 50*2
		assert.True(t, led.TotalValue().Equal(decimal.NewFromInt(105)), "got %s", led.TotalValue())
	})
}
