package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/api/responses"
	"github.com/mariodelgado/aquatrack-backend/api/validators"
	customersvc "github.com/mariodelgado/aquatrack-backend/internal/customers"
	paymentsvc "github.com/mariodelgado/aquatrack-backend/internal/payments"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
)

type registerCustomerRequest struct {
	Name string `json:"name" validate:"required"`
}

type collectPaymentRequest struct {
	CustomerName string  `json:"customerName" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
}

// RegisterCustomer adds a credit customer, reusing the existing entry on a
// case-insensitive name match.
func RegisterCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		var payload registerCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Register(r.Context(), validators.SanitizeString(payload.Name, 120))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// ListCustomers returns the customer register with outstanding balances.
func ListCustomers(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}

// CollectPayment records a debt payment against a customer's balance.
func CollectPayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var payload collectPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.Collect(r.Context(), payload.CustomerName, decimal.NewFromFloat(payload.Amount))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}
