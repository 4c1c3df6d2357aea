package recipes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mariodelgado/aquatrack-backend/internal/production"
	"github.com/mariodelgado/aquatrack-backend/internal/store"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/metrics"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// Service manages the recipe book.
type Service interface {
	Add(ctx context.Context, input AddInput) (*models.Recipe, error)
	List(ctx context.Context) []models.Recipe
	MaterialsFor(ctx context.Context, recipeID uuid.UUID, outputQty int) ([]production.MaterialLine, error)
}

// AddInput is the validated payload for a new recipe.
type AddInput struct {
	Name       string
	OutputItem string
	BaseQty    int
	Materials  []models.RecipeMaterial
}

type service struct {
	store   *store.Store
	metrics *metrics.EngineMetrics
}

// NewService wires the recipe service to the state store.
func NewService(st *store.Store, em *metrics.EngineMetrics) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("state store required")
	}
	return &service{store: st, metrics: em}, nil
}

// Add stores a new recipe. Recipes are never edited in place; a revised mix
// is a new entry.
func (s *service) Add(ctx context.Context, input AddInput) (*models.Recipe, error) {
	recipe, err := s.add(ctx, input)
	s.metrics.Record("add_recipe", err)
	return recipe, err
}

func (s *service) add(ctx context.Context, input AddInput) (*models.Recipe, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe name is required")
	}
	output := strings.TrimSpace(input.OutputItem)
	if output == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "output item is required")
	}
	if input.BaseQty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base quantity must be positive")
	}
	if len(input.Materials) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one material is required")
	}
	for _, material := range input.Materials {
		if strings.TrimSpace(material.Name) == "" || material.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "material lines need a name and a positive quantity")
		}
	}

	recipe := models.Recipe{
		ID:         uuid.New(),
		Name:       name,
		OutputItem: output,
		BaseQty:    input.BaseQty,
		Materials:  input.Materials,
	}

	err := s.store.Update(ctx, func(st *store.State) error {
		st.AppendRecipe(recipe)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *service) List(ctx context.Context) []models.Recipe {
	var list []models.Recipe
	s.store.View(func(st *store.State) {
		list = append(list, st.Recipes...)
	})
	return list
}

// MaterialsFor scales a recipe's material list to the requested output
// quantity, proportionally to the recipe's base quantity. Scaling is integer
// division: a fractional result floors to the next whole unit, since material
// lines are counted in indivisible pieces (bottles, caps, wraps).
func (s *service) MaterialsFor(ctx context.Context, recipeID uuid.UUID, outputQty int) ([]production.MaterialLine, error) {
	if outputQty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "output quantity must be positive")
	}

	var recipe *models.Recipe
	s.store.View(func(st *store.State) {
		for i := range st.Recipes {
			if st.Recipes[i].ID == recipeID {
				r := st.Recipes[i]
				recipe = &r
				return
			}
		}
	})
	if recipe == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
	}

	lines := make([]production.MaterialLine, 0, len(recipe.Materials))
	for _, material := range recipe.Materials {
		lines = append(lines, production.MaterialLine{
			Name:     material.Name,
			Quantity: material.Quantity * outputQty / recipe.BaseQty,
		})
	}
	return lines, nil
}
