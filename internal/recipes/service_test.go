package recipes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mariodelgado/aquatrack-backend/internal/store"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/kv"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	kvs, err := kv.NewGormWithConn(conn)
	require.NoError(t, err)

	st, err := store.Open(context.Background(), kvs, "test", nil)
	require.NoError(t, err)

	svc, err := NewService(st, nil)
	require.NoError(t, err)
	return svc
}

func TestService_PresetRecipeBook(t *testing.T) {
	svc := newTestService(t)

	list := svc.List(context.Background())
	require.Len(t, list, 3)

	names := []string{list[0].Name, list[1].Name, list[2].Name}
	assert.Contains(t, names, "500ml Case (x24)")
	assert.Contains(t, names, "1L Case (x12)")
	assert.Contains(t, names, "19L Refill")
}

func TestService_AddAppendsRecipe(t *testing.T) {
	svc := newTestService(t)

	recipe, err := svc.Add(context.Background(), AddInput{
		Name:       "Sachet Bundle (x50)",
		OutputItem: "Sachet Bundle",
		BaseQty:    1,
		Materials: []models.RecipeMaterial{
			{Name: "Sachet", Quantity: 50},
			{Name: "Bundle Wrap", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, recipe.ID)
	assert.Len(t, svc.List(context.Background()), 4)
}

func TestService_AddValidation(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name  string
		input AddInput
	}{
		{"empty name", AddInput{OutputItem: "X", BaseQty: 1, Materials: []models.RecipeMaterial{{Name: "A", Quantity: 1}}}},
		{"empty output", AddInput{Name: "R", BaseQty: 1, Materials: []models.RecipeMaterial{{Name: "A", Quantity: 1}}}},
		{"zero base qty", AddInput{Name: "R", OutputItem: "X", Materials: []models.RecipeMaterial{{Name: "A", Quantity: 1}}}},
		{"no materials", AddInput{Name: "R", OutputItem: "X", BaseQty: 1}},
		{"bad material line", AddInput{Name: "R", OutputItem: "X", BaseQty: 1, Materials: []models.RecipeMaterial{{Name: "", Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tc.input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestService_MaterialsForScalesToOutput(t *testing.T) {
	svc := newTestService(t)

	recipe, err := svc.Add(context.Background(), AddInput{
		Name:       "500ml Case (x24)",
		OutputItem: "500ml Case",
		BaseQty:    2,
		Materials: []models.RecipeMaterial{
			{Name: "500ml Bottle", Quantity: 48},
			{Name: "Shrink Wrap", Quantity: 2},
		},
	})
	require.NoError(t, err)

	lines, err := svc.MaterialsFor(context.Background(), recipe.ID, 10)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "500ml Bottle", lines[0].Name)
	assert.Equal(t, 240, lines[0].Quantity)
	assert.Equal(t, 10, lines[1].Quantity)
}

func TestService_MaterialsForFloorsFractionalScaling(t *testing.T) {
	svc := newTestService(t)

	recipe, err := svc.Add(context.Background(), AddInput{
		Name:       "Twin Pack (x2)",
		OutputItem: "Twin Pack",
		BaseQty:    2,
		Materials: []models.RecipeMaterial{
			{Name: "Wrap", Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 3 wraps per 2 output units scaled to 1 unit is 1.5; whole pieces
	// only, so the line floors to 1.
	lines, err := svc.MaterialsFor(context.Background(), recipe.ID, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	lines, err = svc.MaterialsFor(context.Background(), recipe.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestService_MaterialsForUnknownRecipe(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.MaterialsFor(context.Background(), uuid.New(), 10)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
