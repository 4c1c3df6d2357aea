package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/internal/store"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/metrics"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// Service manages the customer credit ledger.
type Service interface {
	Register(ctx context.Context, name string) (*models.Customer, error)
	List(ctx context.Context) []models.Customer
}

type service struct {
	store   *store.Store
	metrics *metrics.EngineMetrics
}

// NewService wires the customer service to the state store.
func NewService(st *store.Store, em *metrics.EngineMetrics) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("state store required")
	}
	return &service{store: st, metrics: em}, nil
}

// Register creates a customer with a zero balance. Names deduplicate
// case-insensitively; registering an existing name returns the existing
// record untouched.
func (s *service) Register(ctx context.Context, name string) (*models.Customer, error) {
	customer, err := s.register(ctx, name)
	s.metrics.Record("add_customer", err)
	return customer, err
}

func (s *service) register(ctx context.Context, name string) (*models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}

	var result models.Customer
	err := s.store.Update(ctx, func(st *store.State) error {
		if existing, ok := st.Customer(name); ok {
			result = *existing
			return nil
		}
		customer := models.Customer{
			ID:      uuid.New(),
			Name:    name,
			Balance: decimal.Zero,
		}
		st.PutCustomer(customer)
		result = customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) List(ctx context.Context) []models.Customer {
	var customers []models.Customer
	s.store.View(func(st *store.State) {
		customers = append(customers, st.Customers...)
	})
	return customers
}
