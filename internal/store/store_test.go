package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mariodelgado/aquatrack-backend/pkg/kv"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

func newTestKV(t *testing.T) kv.Store {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	kvs, err := kv.NewGormWithConn(conn)
	require.NoError(t, err)
	return kvs
}

func TestOpen_FirstBootSeedsDefaultRecipes(t *testing.T) {
	kvs := newTestKV(t)

	st, err := Open(context.Background(), kvs, "2.3.0", nil)
	require.NoError(t, err)

	st.View(func(state *State) {
		assert.Len(t, state.Recipes, 3)
		assert.Empty(t, state.Inventory)
		assert.Empty(t, state.Transactions)
	})
}

func TestUpdate_PersistsDirtyCollections(t *testing.T) {
	kvs := newTestKV(t)

	st, err := Open(context.Background(), kvs, "2.3.0", nil)
	require.NoError(t, err)

	err = st.Update(context.Background(), func(state *State) error {
		state.PutItem(models.InventoryItem{
			ID:        uuid.New(),
			Name:      "500ml Bottle",
			Category:  "Raw Material",
			Quantity:  100,
			CostPrice: decimal.NewFromInt(2),
		})
		return nil
	})
	require.NoError(t, err)

	// Same backend, same version: a fresh store must hydrate the item.
	reopened, err := Open(context.Background(), kvs, "2.3.0", nil)
	require.NoError(t, err)

	reopened.View(func(state *State) {
		require.Len(t, state.Inventory, 1)
		assert.Equal(t, "500ml Bottle", state.Inventory[0].Name)
		assert.Equal(t, 100, state.Inventory[0].Quantity)

		item, ok := state.Item("500ml Bottle")
		require.True(t, ok)
		assert.True(t, item.CostPrice.Equal(decimal.NewFromInt(2)))
	})
}

func TestUpdate_FailedFnPersistsNothing(t *testing.T) {
	kvs := newTestKV(t)

	st, err := Open(context.Background(), kvs, "2.3.0", nil)
	require.NoError(t, err)

	sentinel := assert.AnError
	err = st.Update(context.Background(), func(state *State) error {
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	reopened, err := Open(context.Background(), kvs, "2.3.0", nil)
	require.NoError(t, err)
	reopened.View(func(state *State) {
		assert.Empty(t, state.Inventory)
	})
}

func TestOpen_VersionMismatchResetsToDefaults(t *testing.T) {
	kvs := newTestKV(t)

	st, err := Open(context.Background(), kvs, "2.2.0", nil)
	require.NoError(t, err)

	err = st.Update(context.Background(), func(state *State) error {
		state.PutItem(models.InventoryItem{ID: uuid.New(), Name: "Cap", Quantity: 500})
		state.AppendTransaction(models.Transaction{ID: uuid.New(), Client: "Supplier"})
		return nil
	})
	require.NoError(t, err)

	// Bumping the expected version wipes every collection once.
	reopened, err := Open(context.Background(), kvs, "2.3.0", nil)
	require.NoError(t, err)
	reopened.View(func(state *State) {
		assert.Empty(t, state.Inventory)
		assert.Empty(t, state.Transactions)
		assert.Len(t, state.Recipes, 3)
	})

	// A second boot on the new version hydrates instead of resetting.
	again, err := Open(context.Background(), kvs, "2.3.0", nil)
	require.NoError(t, err)
	again.View(func(state *State) {
		assert.Len(t, state.Recipes, 3)
	})
}

func TestState_CustomerLookupIsCaseInsensitive(t *testing.T) {
	kvs := newTestKV(t)

	st, err := Open(context.Background(), kvs, "2.3.0", nil)
	require.NoError(t, err)

	err = st.Update(context.Background(), func(state *State) error {
		state.PutCustomer(models.Customer{ID: uuid.New(), Name: "Acme Hotel", Balance: decimal.Zero})
		return nil
	})
	require.NoError(t, err)

	st.View(func(state *State) {
		_, ok := state.Customer("acme hotel")
		assert.True(t, ok)
		_, ok = state.Customer("ACME HOTEL")
		assert.True(t, ok)
		_, ok = state.Customer("Acme")
		assert.False(t, ok)
	})
}

func TestState_ItemLookupIsCaseSensitive(t *testing.T) {
	kvs := newTestKV(t)

	st, err := Open(context.Background(), kvs, "2.3.0", nil)
	require.NoError(t, err)

	err = st.Update(context.Background(), func(state *State) error {
		state.PutItem(models.InventoryItem{ID: uuid.New(), Name: "Cap", Quantity: 10})
		return nil
	})
	require.NoError(t, err)

	st.View(func(state *State) {
		_, ok := state.Item("Cap")
		assert.True(t, ok)
		_, ok = state.Item("cap")
		assert.False(t, ok)
	})
}

func TestState_TransactionsArePrepended(t *testing.T) {
	kvs := newTestKV(t)

	st, err := Open(context.Background(), kvs, "2.3.0", nil)
	require.NoError(t, err)

	first := uuid.New()
	second := uuid.New()
	err = st.Update(context.Background(), func(state *State) error {
		state.AppendTransaction(models.Transaction{ID: first})
		state.AppendTransaction(models.Transaction{ID: second})
		return nil
	})
	require.NoError(t, err)

	st.View(func(state *State) {
		require.Len(t, state.Transactions, 2)
		assert.Equal(t, second, state.Transactions[0].ID)
		assert.Equal(t, first, state.Transactions[1].ID)
	})
}
