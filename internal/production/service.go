package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/internal/inventory"
	"github.com/mariodelgado/aquatrack-backend/internal/store"
	"github.com/mariodelgado/aquatrack-backend/pkg/enums"
	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/metrics"
	"github.com/mariodelgado/aquatrack-backend/pkg/models"
)

// Service runs production batches.
type Service interface {
	Run(ctx context.Context, input RunInput) (*models.ProductionRecord, error)
	Records(ctx context.Context) []models.ProductionRecord
}

// MaterialLine names a stock entry and a quantity.
type MaterialLine struct {
	Name     string
	Quantity int
}

// RunInput is the validated payload for one production run.
type RunInput struct {
	OutputName   string
	OutputQty    int
	Used         []MaterialLine
	Waste        []MaterialLine
	LaborCost    decimal.Decimal
	OverheadCost decimal.Decimal
}

type service struct {
	store   *store.Store
	metrics *metrics.EngineMetrics
	now     func() time.Time
}

// NewService wires the production engine to the state store.
func NewService(st *store.Store, em *metrics.EngineMetrics) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("state store required")
	}
	return &service{store: st, metrics: em, now: time.Now}, nil
}

// Run executes one batch: an all-or-nothing availability check over the used
// materials, batch costing from the pre-mutation snapshot, material debits,
// waste clamp-debits, the finished-good credit, and the production record.
func (s *service) Run(ctx context.Context, input RunInput) (*models.ProductionRecord, error) {
	record, err := s.run(ctx, input)
	s.metrics.Record("record_production", err)
	return record, err
}

func (s *service) run(ctx context.Context, input RunInput) (*models.ProductionRecord, error) {
	outputName := strings.TrimSpace(input.OutputName)
	if outputName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "output item name is required")
	}
	if input.OutputQty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "output quantity must be positive")
	}
	if len(input.Used) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one raw material is required")
	}
	for _, line := range input.Used {
		if strings.TrimSpace(line.Name) == "" || line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "raw material lines need a name and a positive quantity")
		}
	}
	if input.LaborCost.IsNegative() || input.OverheadCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "labor and overhead costs must not be negative")
	}

	var record models.ProductionRecord
	err := s.store.Update(ctx, func(st *store.State) error {
		led := inventory.NewLedger(st)

		// Availability pre-check covers used materials only. Waste is
		// exempt on purpose: short waste stock clamps to zero later
		// instead of failing the run. Requests are tallied per material
		// so duplicate lines for the same name are checked against their
		// combined total, keeping the later debits all-or-nothing.
		requested := make(map[string]int, len(input.Used))
		for _, line := range input.Used {
			requested[line.Name] += line.Quantity
			item, ok := st.Item(line.Name)
			if !ok || item.Quantity < requested[line.Name] {
				available := 0
				if ok {
					available = item.Quantity
				}
				return pkgerrors.New(pkgerrors.CodeInsufficientRawMaterial,
					fmt.Sprintf("not enough %q for this batch", line.Name)).
					WithDetails(map[string]any{
						"material":  line.Name,
						"requested": requested[line.Name],
						"available": available,
					})
			}
		}

		// Material cost from the pre-mutation snapshot. Waste is deducted
		// from stock but never enters the batch cost basis.
		materialCost := decimal.Zero
		for _, line := range input.Used {
			item, _ := st.Item(line.Name)
			materialCost = materialCost.Add(item.CostPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		totalCost := materialCost.Add(input.LaborCost).Add(input.OverheadCost)
		unitCost := totalCost.Div(decimal.NewFromInt(int64(input.OutputQty))).Round(2)

		for _, line := range input.Used {
			if err := led.Consume(line.Name, line.Quantity); err != nil {
				return err
			}
		}
		for _, line := range input.Waste {
			led.ConsumeWasteClamped(line.Name, line.Quantity)
		}
		led.CreditProduced(outputName, input.OutputQty, totalCost)

		wasteDetails := make([]models.WasteDetail, 0, len(input.Waste))
		for _, line := range input.Waste {
			wasteDetails = append(wasteDetails, models.WasteDetail{Name: line.Name, Quantity: line.Quantity})
		}

		record = models.ProductionRecord{
			ID:              uuid.New(),
			Date:            s.now().Format("2006-01-02"),
			ProducedItem:    outputName,
			ProducedQty:     input.OutputQty,
			RawMaterials:    summarizeLines(input.Used),
			LaborCost:       input.LaborCost,
			ElectricityCost: input.OverheadCost,
			TotalCost:       totalCost,
			UnitCost:        unitCost,
			Waste:           summarizeLines(input.Waste),
			WasteDetails:    wasteDetails,
			Status:          enums.ProductionStatusCompleted,
		}
		st.AppendProduction(record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *service) Records(ctx context.Context) []models.ProductionRecord {
	var records []models.ProductionRecord
	s.store.View(func(st *store.State) {
		records = append(records, st.Production...)
	})
	return records
}

func summarizeLines(lines []MaterialLine) string {
	if len(lines) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%s x%d", line.Name, line.Quantity))
	}
	return strings.Join(parts, ", ")
}
