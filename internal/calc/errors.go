// Package calc implements the pure calculation engines: balance point,
// heat loss, refrigerant charge diagnosis, setback savings, system
// comparison, sizing, and hourly performance. Engines never read persisted
// state; they operate only on their inputs and return explicit errors for
// insufficient data instead of panicking.
package calc

import "errors"

// Sentinel errors returned by the engines. Callers convert these into
// user-facing messages; they are never allowed to propagate uncaught.
var (
	// ErrMissingHeatLossInput means none of heatLossFactor, thermalFactor
	// plus squareFeet, or squareFeet alone was supplied.
	ErrMissingHeatLossInput = errors.New("heat loss factor, thermal factor with square feet, or square feet is required")

	// ErrMissingOutdoorTemp means the heat loss call omitted the outdoor
	// temperature.
	ErrMissingOutdoorTemp = errors.New("outdoor temperature is required")

	// ErrUnknownRefrigerant means no PT table exists for the refrigerant.
	ErrUnknownRefrigerant = errors.New("unknown refrigerant")

	// ErrPressureOutOfRange means the pressure falls outside the PT table.
	ErrPressureOutOfRange = errors.New("pressure outside PT table range")
)
