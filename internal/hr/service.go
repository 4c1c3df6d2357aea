package hr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/internal/store"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/metrics"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// Service keeps the employee registry. Payroll amounts never enter the
// transaction log; the registry informs the HR pages only.
type Service interface {
	Add(ctx context.Context, input AddInput) (*models.Employee, error)
	List(ctx context.Context) []models.Employee
}

// AddInput is the validated payload for a new employee.
type AddInput struct {
	Name          string
	Role          string
	MonthlySalary decimal.Decimal
}

type service struct {
	store   *store.Store
	metrics *metrics.EngineMetrics
	now     func() time.Time
}

// NewService wires the HR service to the state store.
func NewService(st *store.Store, em *metrics.EngineMetrics) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("state store required")
	}
	return &service{store: st, metrics: em, now: time.Now}, nil
}

func (s *service) Add(ctx context.Context, input AddInput) (*models.Employee, error) {
	employee, err := s.add(ctx, input)
	s.metrics.Record("add_employee", err)
	return employee, err
}

func (s *service) add(ctx context.Context, input AddInput) (*models.Employee, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee name is required")
	}
	if input.MonthlySalary.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salary must not be negative")
	}

	employee := models.Employee{
		ID:            uuid.New(),
		Name:          name,
		Role:          strings.TrimSpace(input.Role),
		MonthlySalary: input.MonthlySalary,
		HiredAt:       s.now(),
	}

	err := s.store.Update(ctx, func(st *store.State) error {
		st.AppendEmployee(employee)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *service) List(ctx context.Context) []models.Employee {
	var employees []models.Employee
	s.store.View(func(st *store.State) {
		employees = append(employees, st.Employees...)
	})
	return employees
}
