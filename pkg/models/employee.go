package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee is an HR registry entry. Payroll money flows are not part of the
// transaction log; the salary here is informational.
type Employee struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Role          string          `json:"role"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	HiredAt       time.Time       `json:"hiredAt"`
}
