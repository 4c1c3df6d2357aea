package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/api/responses"
	"github.com/mariodelgado/aquatrack-backend/api/validators"
	productionsvc "github.com/mariodelgado/aquatrack-backend/internal/production"
	recipesvc "github.com/mariodelgado/aquatrack-backend/internal/recipes"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
)

type materialLineRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type runProductionRequest struct {
	OutputName   string                `json:"outputName" validate:"required"`
	OutputQty    int                   `json:"outputQty" validate:"required,min=1"`
	RecipeID     string                `json:"recipeId,omitempty"`
	Used         []materialLineRequest `json:"used,omitempty" validate:"omitempty,dive"`
	Waste        []materialLineRequest `json:"waste,omitempty" validate:"omitempty,dive"`
	LaborCost    float64               `json:"laborCost" validate:"gte=0"`
	OverheadCost float64               `json:"overheadCost" validate:"gte=0"`
}

// RunProduction executes one batch. The material list comes either inline or,
// when recipeId is set, scaled from the stored recipe.
func RunProduction(svc productionsvc.Service, recipes recipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "production service unavailable"))
			return
		}

		var payload runProductionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		used := toMaterialLines(payload.Used)
		if payload.RecipeID != "" {
			if recipes == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recipe service unavailable"))
				return
			}
			recipeID, err := uuid.Parse(payload.RecipeID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "recipeId must be a valid UUID"))
				return
			}
			scaled, err := recipes.MaterialsFor(r.Context(), recipeID, payload.OutputQty)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			used = scaled
		}

		record, err := svc.Run(r.Context(), productionsvc.RunInput{
			OutputName:   payload.OutputName,
			OutputQty:    payload.OutputQty,
			Used:         used,
			Waste:        toMaterialLines(payload.Waste),
			LaborCost:    decimal.NewFromFloat(payload.LaborCost),
			OverheadCost: decimal.NewFromFloat(payload.OverheadCost),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// ListProduction returns the production history, newest first.
func ListProduction(svc productionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "production service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Records(r.Context()))
	}
}

func toMaterialLines(lines []materialLineRequest) []productionsvc.MaterialLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]productionsvc.MaterialLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, productionsvc.MaterialLine{Name: line.Name, Quantity: line.Quantity})
	}
	return out
}
