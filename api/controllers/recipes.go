package controllers

import (
	"net/http"

	"github.com/mariodelgado/aquatrack-backend/api/responses"
	"github.com/mariodelgado/aquatrack-backend/api/validators"
	recipesvc "github.com/mariodelgado/aquatrack-backend/internal/recipes"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

type recipeMaterialRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type addRecipeRequest struct {
	Name       string                  `json:"name" validate:"required"`
	OutputItem string                  `json:"outputItem" validate:"required"`
	BaseQty    int                     `json:"baseQty" validate:"required,min=1"`
	Materials  []recipeMaterialRequest `json:"materials" validate:"required,min=1,dive"`
}

// AddRecipe registers a bill of materials for a finished good.
func AddRecipe(svc recipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recipe service unavailable"))
			return
		}

		var payload addRecipeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		materials := make([]models.RecipeMaterial, 0, len(payload.Materials))
		for _, m := range payload.Materials {
			materials = append(materials, models.RecipeMaterial{Name: m.Name, Quantity: m.Quantity})
		}

		recipe, err := svc.Add(r.Context(), recipesvc.AddInput{
			Name:       payload.Name,
			OutputItem: payload.OutputItem,
			BaseQty:    payload.BaseQty,
			Materials:  materials,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, recipe)
	}
}

// ListRecipes returns the stored recipes.
func ListRecipes(svc recipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recipe service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}
