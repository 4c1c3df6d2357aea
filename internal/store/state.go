package store

import (
	"strings"

	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// Collection keys, fixed names in the key-value layer.
const (
	KeyInventory    = "inventory"
	KeyTransactions = "transactions"
	KeyProduction   = "production"
	KeyCustomers    = "customers"
	KeyRecipes      = "recipes"
	KeyEmployees    = "employees"
	KeyAppVersion   = "app_version"
)

var collectionKeys = []string{
	KeyInventory,
	KeyTransactions,
	KeyProduction,
	KeyCustomers,
	KeyRecipes,
	KeyEmployees,
}

// State holds every collection the dashboard works on. Entities are joined by
// name at the API boundary; the indexes below resolve those lookups without
// scanning. All access happens under the owning Store's lock.
type State struct {
	Inventory    []models.InventoryItem
	Transactions []models.Transaction
	Production   []models.ProductionRecord
	Customers    []models.Customer
	Recipes      []models.Recipe
	Employees    []models.Employee

	itemIndex     map[string]int // exact item name
	customerIndex map[string]int // lowercased customer name
	dirty         map[string]bool
}

func newState() *State {
	s := &State{
		Inventory:    []models.InventoryItem{},
		Transactions: []models.Transaction{},
		Production:   []models.ProductionRecord{},
		Customers:    []models.Customer{},
		Recipes:      []models.Recipe{},
		Employees:    []models.Employee{},
	}
	s.rebuildIndexes()
	s.resetDirty()
	return s
}

func (s *State) rebuildIndexes() {
	s.itemIndex = make(map[string]int, len(s.Inventory))
	for i, item := range s.Inventory {
		s.itemIndex[item.Name] = i
	}
	s.customerIndex = make(map[string]int, len(s.Customers))
	for i, customer := range s.Customers {
		s.customerIndex[strings.ToLower(customer.Name)] = i
	}
}

func (s *State) resetDirty() {
	s.dirty = make(map[string]bool)
}

// MarkDirty flags a collection for persistence at the end of the update.
func (s *State) MarkDirty(key string) {
	s.dirty[key] = true
}

// Item resolves an inventory item by exact name. The returned pointer is live;
// callers that mutate through it must MarkDirty(KeyInventory).
func (s *State) Item(name string) (*models.InventoryItem, bool) {
	i, ok := s.itemIndex[name]
	if !ok {
		return nil, false
	}
	return &s.Inventory[i], true
}

// PutItem appends a new inventory item and indexes it.
func (s *State) PutItem(item models.InventoryItem) {
	s.Inventory = append(s.Inventory, item)
	s.itemIndex[item.Name] = len(s.Inventory) - 1
	s.MarkDirty(KeyInventory)
}

// Customer resolves a customer by case-insensitive name. The returned pointer
// is live; mutating callers must MarkDirty(KeyCustomers).
func (s *State) Customer(name string) (*models.Customer, bool) {
	i, ok := s.customerIndex[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return &s.Customers[i], true
}

// PutCustomer appends a new customer and indexes it.
func (s *State) PutCustomer(customer models.Customer) {
	s.Customers = append(s.Customers, customer)
	s.customerIndex[strings.ToLower(customer.Name)] = len(s.Customers) - 1
	s.MarkDirty(KeyCustomers)
}

// AppendTransaction prepends to the append-only log, newest first.
func (s *State) AppendTransaction(txn models.Transaction) {
	s.Transactions = append([]models.Transaction{txn}, s.Transactions...)
	s.MarkDirty(KeyTransactions)
}

// AppendProduction prepends a production record, newest first.
func (s *State) AppendProduction(record models.ProductionRecord) {
	s.Production = append([]models.ProductionRecord{record}, s.Production...)
	s.MarkDirty(KeyProduction)
}

// AppendRecipe stores a new recipe entry.
func (s *State) AppendRecipe(recipe models.Recipe) {
	s.Recipes = append(s.Recipes, recipe)
	s.MarkDirty(KeyRecipes)
}

// AppendEmployee stores a new employee entry.
func (s *State) AppendEmployee(employee models.Employee) {
	s.Employees = append(s.Employees, employee)
	s.MarkDirty(KeyEmployees)
}
