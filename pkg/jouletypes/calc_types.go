package jouletypes

// BalancePointInput carries the building and equipment parameters needed by
// the balance point solver. Zero values fall back to the solver's defaults.
type BalancePointInput struct {
	Tons              float64
	Capacity          float64 // kBTU/hr rated; used when Tons is zero
	SquareFeet        float64
	CeilingHeight     float64
	InsulationLevel   float64
	HSPF2             float64
	TargetIndoorTemp  float64
	WinterThermostat  float64
	DesignOutdoorTemp float64
}

// BalancePointResult is the solver output. BalancePoint is nil only when no
// crossover or extrapolation estimate could be produced; callers must treat
// nil as "insufficient data", never as zero.
type BalancePointResult struct {
	BalancePoint   *float64
	AuxHeatAtDesign float64
	COPAtDesign    *float64
	HeatLossFactor float64
	Interpretation string
}

// HeatLossInput selects a heat-loss factor source in priority order:
// explicit factor, thermal factor x square feet, then a square-footage
// estimate. All three absent is an error.
type HeatLossInput struct {
	OutdoorTemp    float64
	IndoorTemp     float64
	HeatLossFactor float64
	ThermalFactor  float64
	SquareFeet     float64
}

// HeatLossResult reports the computed loss and which factor source was used.
type HeatLossResult struct {
	HeatLossBtuPerHour float64
	FactorUsed         float64
	FactorSource       string // "explicit", "thermal", "estimated"
	DeltaT             float64
}

// ChargeMethod selects the refrigerant charge diagnosis method.
type ChargeMethod string

// Charge diagnosis methods.
const (
	MethodSubcooling ChargeMethod = "subcooling"
	MethodSuperheat  ChargeMethod = "superheat"
)

// ChargeStatus is the five-band charge classification.
type ChargeStatus string

// Charge status bands ordered from undercharged to overcharged.
const (
	ChargeSignificantlyUndercharged ChargeStatus = "significantly undercharged"
	ChargeSlightlyUndercharged      ChargeStatus = "slightly undercharged"
	ChargeGood                      ChargeStatus = "good"
	ChargeSlightlyOvercharged       ChargeStatus = "slightly overcharged"
	ChargeSignificantlyOvercharged  ChargeStatus = "significantly overcharged"
)

// ChargeInput carries one subcooling/superheat reading.
type ChargeInput struct {
	Refrigerant     string
	Method          ChargeMethod
	LinePressure    float64 // psig at the service port
	LineTemp        float64 // measured liquid or suction line temperature, F
	TargetSubcool   float64
	TargetSuperheat float64
}

// ChargeResult is the outcome of a charge diagnosis reading.
type ChargeResult struct {
	SaturationTemp float64
	Measured       float64 // actual subcooling or superheat, F
	Target         float64
	Difference     float64 // measured minus target
	Status         ChargeStatus
	Method         ChargeMethod
}

// AnnualEstimate is the derived, read-only analysis snapshot consumed by
// what-if and bill-explanation handlers. Produced by an external pipeline.
type AnnualEstimate struct {
	HeatingCost    float64
	CoolingCost    float64
	TotalCost      float64
	HDD            float64
	CDD            float64
	ThermalFactor  float64
	HeatLossFactor float64
	AuxKwhIncluded float64
}

// Diagnostic issue types emitted by the performance analyzer.
const (
	IssueShortCycling    = "short_cycling"
	IssueExcessiveAux    = "excessive_aux_heat"
	IssueTempInstability = "temperature_instability"
)

// DiagnosticIssue is one finding from the uploaded-data analysis.
// AuxPercentage is only meaningful for IssueExcessiveAux.
type DiagnosticIssue struct {
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	AuxPercentage float64 `json:"auxPercentage,omitempty"`
}

// DiagnosticsSnapshot is the cached output of the performance analyzer.
// Absence of a snapshot is "no data yet", not an error.
type DiagnosticsSnapshot struct {
	Issues []DiagnosticIssue `json:"issues"`
}

// CSVInfo describes the thermostat data upload backing the snapshot.
type CSVInfo struct {
	FileName   string `json:"fileName"`
	UploadedAt string `json:"uploadedAt"`
	DataPoints int    `json:"dataPoints"`
}

// Recommendation is one savings suggestion from the analysis pipeline.
type Recommendation struct {
	Title           string
	Message         string
	SavingsEstimate float64
}

// DeviceState is cached thermostat telemetry read by the offline resolver.
type DeviceState struct {
	CurrentTemp     float64
	CurrentHumidity float64
	HVACMode        string
	HVACRunning     bool
	LastUpdate      string
	BridgeOnline    bool
	HasData         bool
}

// Location is the user's configured city used for context assembly.
type Location struct {
	City  string
	State string
	Lat   float64
	Lon   float64
}
