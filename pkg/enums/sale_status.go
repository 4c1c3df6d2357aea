package enums

import "fmt"

// SaleStatus tracks how much of a sale's total has been paid.
type SaleStatus string

const (
	SaleStatusPaid      SaleStatus = "PAID"
	SaleStatusPartial   SaleStatus = "PARTIAL"
	SaleStatusCredit    SaleStatus = "CREDIT"
	SaleStatusCollected SaleStatus = "COLLECTED"
)

var validSaleStatuses = []SaleStatus{
	SaleStatusPaid,
	SaleStatusPartial,
	SaleStatusCredit,
	SaleStatusCollected,
}

// String implements fmt.Stringer.
func (s SaleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SaleStatus.
func (s SaleStatus) IsValid() bool {
	for _, candidate := range validSaleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSaleStatus converts raw input into a SaleStatus.
func ParseSaleStatus(value string) (SaleStatus, error) {
	for _, candidate := range validSaleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale status %q", value)
}
