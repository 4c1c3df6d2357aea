package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/api/responses"
	"github.com/mariodelgado/aquatrack-backend/api/validators"
	hrsvc "github.com/mariodelgado/aquatrack-backend/internal/hr"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
)

type addEmployeeRequest struct {
	Name          string  `json:"name" validate:"required"`
	Role          string  `json:"role" validate:"required"`
	MonthlySalary float64 `json:"monthlySalary" validate:"gte=0"`
}

// AddEmployee registers a staff member.
func AddEmployee(svc hrsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hr service unavailable"))
			return
		}

		var payload addEmployeeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.Add(r.Context(), hrsvc.AddInput{
			Name:          payload.Name,
			Role:          payload.Role,
			MonthlySalary: decimal.NewFromFloat(payload.MonthlySalary),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, employee)
	}
}

// ListEmployees returns the staff registry.
func ListEmployees(svc hrsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hr service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}
