package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mariodelgado/aquatrack-backend/pkg/enums"
)

// WasteDetail is one wasted material line inside a production run.
type WasteDetail struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ProductionRecord captures one finished batch. UnitCost is fixed at creation
// (total cost over produced quantity, two decimals) and never recomputed.
type ProductionRecord struct {
	ID              uuid.UUID              `json:"id"`
	Date            string                 `json:"date"`
	ProducedItem    string                 `json:"producedItem"`
	ProducedQty     int                    `json:"producedQty"`
	RawMaterials    string                 `json:"rawMaterials"`
	LaborCost       decimal.Decimal        `json:"laborCost"`
	ElectricityCost decimal.Decimal        `json:"electricityCost"`
	TotalCost       decimal.Decimal        `json:"totalCost"`
	UnitCost        decimal.Decimal        `json:"unitCost"`
	Waste           string                 `json:"waste"`
	WasteDetails    []WasteDetail          `json:"wasteDetails"`
	Status          enums.ProductionStatus `json:"status"`
}
