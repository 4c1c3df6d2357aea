package enums

// ProductionStatus marks the lifecycle of a production record. Runs are
// recorded only once they finish, so Completed is the only value written today.
type ProductionStatus string

const (
	ProductionStatusCompleted ProductionStatus = "Completed"
)

// String implements fmt.Stringer.
func (p ProductionStatus) String() string {
	return string(p)
}
