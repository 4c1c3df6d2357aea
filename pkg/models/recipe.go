package models

import "github.com/google/uuid"

// RecipeMaterial is one ingredient line, scaled per BaseQty units of output.
type RecipeMaterial struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Recipe describes how to assemble an output item from raw materials.
type Recipe struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	OutputItem string           `json:"outputItem"`
	BaseQty    int              `json:"baseQty"`
	Materials  []RecipeMaterial `json:"materials"`
}
