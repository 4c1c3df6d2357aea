package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/api/responses"
	"github.com/mariodelgado/aquatrack-backend/api/validators"
	salessvc "github.com/mariodelgado/aquatrack-backend/internal/sales"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
)

type sellStockRequest struct {
	ItemName     string  `json:"itemName" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,min=1"`
	SellingPrice float64 `json:"sellingPrice" validate:"gte=0"`
	Client       string  `json:"client,omitempty"`
	AmountPaid   float64 `json:"amountPaid" validate:"gte=0"`
}

// SellStock handles a point-of-sale transaction.
func SellStock(svc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		var payload sellStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.Sell(r.Context(), salessvc.SellInput{
			ItemName:     payload.ItemName,
			Quantity:     payload.Quantity,
			SellingPrice: decimal.NewFromFloat(payload.SellingPrice),
			Client:       payload.Client,
			AmountPaid:   decimal.NewFromFloat(payload.AmountPaid),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

// ListTransactions returns the monetary log, newest first. An optional
// limit query parameter caps the page size.
func ListTransactions(svc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txns := svc.Transactions(r.Context())
		if limit > 0 && len(txns) > limit {
			txns = txns[:limit]
		}
		responses.WriteSuccess(w, txns)
	}
}
