package store

import (
	"github.com/google/uuid"

	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// defaultRecipes seeds the recipe book on first boot and after a version
// reset. Quantities are per BaseQty units of the output item.
func defaultRecipes() []models.Recipe {
	return []models.Recipe{
		{
			ID:         uuid.New(),
			Name:       "500ml Case (x24)",
			OutputItem: "500ml Case",
			BaseQty:    1,
			Materials: []models.RecipeMaterial{
				{Name: "500ml Bottle", Quantity: 24},
				{Name: "Cap", Quantity: 24},
				{Name: "Label", Quantity: 24},
				{Name: "Shrink Wrap", Quantity: 1},
			},
		},
		{
			ID:         uuid.New(),
			Name:       "1L Case (x12)",
			OutputItem: "1L Case",
			BaseQty:    1,
			Materials: []models.RecipeMaterial{
				{Name: "1L Bottle", Quantity: 12},
				{Name: "Cap", Quantity: 12},
				{Name: "Label", Quantity: 12},
				{Name: "Shrink Wrap", Quantity: 1},
			},
		},
		{
			ID:         uuid.New(),
			Name:       "19L Refill",
			OutputItem: "19L Refill",
			BaseQty:    1,
			Materials: []models.RecipeMaterial{
				{Name: "19L Bottle", Quantity: 1},
				{Name: "19L Cap", Quantity: 1},
			},
		},
	}
}
