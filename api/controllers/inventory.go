package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/api/responses"
	"github.com/mariodelgado/aquatrack-backend/api/validators"
	inventorysvc "github.com/mariodelgado/aquatrack-backend/internal/inventory"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
)

type addStockRequest struct {
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category,omitempty"`
	Quantity     int     `json:"quantity" validate:"required,min=1"`
	UnitCost     float64 `json:"unitCost" validate:"gte=0"`
	SellingPrice float64 `json:"sellingPrice,omitempty" validate:"omitempty,gte=0"`
	Supplier     string  `json:"supplier,omitempty"`
}

// AddStock handles purchase intake into the inventory ledger.
func AddStock(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload addStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.AddStock(r.Context(), inventorysvc.AddStockInput{
			Name:         payload.Name,
			Category:     payload.Category,
			Quantity:     payload.Quantity,
			UnitCost:     decimal.NewFromFloat(payload.UnitCost),
			SellingPrice: decimal.NewFromFloat(payload.SellingPrice),
			Supplier:     payload.Supplier,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

// ListInventory returns every stocked item.
func ListInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}

// LowStock returns items under the reorder threshold.
func LowStock(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.LowStock(r.Context()))
	}
}
