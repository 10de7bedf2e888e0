// Package jouletypes provides shared types for the Joule command engine.
// It defines the parsed-command union, the setting-command registry entry,
// calculation results, and the service interfaces used across packages.
package jouletypes

// Command actions recognized by the grammar parser. The dispatcher keys its
// registry and handler families off these strings.
const (
	ActionSetWinterTemp          = "setWinterTemp"
	ActionSetSummerTemp          = "setSummerTemp"
	ActionSetHSPF                = "setHSPF"
	ActionSetSEER                = "setSEER"
	ActionSetUtilityCost         = "setUtilityCost"
	ActionSetGasCost             = "setGasCost"
	ActionSetSquareFeet          = "setSquareFeet"
	ActionSetInsulationLevel     = "setInsulationLevel"
	ActionSetCapacity            = "setCapacity"
	ActionSetAFUE                = "setAFUE"
	ActionSetHomeShape           = "setHomeShape"
	ActionSetSolarExposure       = "setSolarExposure"
	ActionSetEnergyMode          = "setEnergyMode"
	ActionSetPrimarySystem       = "setPrimarySystem"
	ActionSetCoolingSystem       = "setCoolingSystem"
	ActionSetCeilingHeight       = "setCeilingHeight"
	ActionSetHomeElevation       = "setHomeElevation"
	ActionSetUseElectricAuxHeat  = "setUseElectricAuxHeat"
	ActionUseManualHeatLoss      = "setUseManualHeatLoss"
	ActionUseCalculatedHeatLoss  = "setUseCalculatedHeatLoss"
	ActionUseAnalyzerHeatLoss    = "setUseAnalyzerHeatLoss"
	ActionSetManualHeatLoss      = "setManualHeatLoss"
	ActionSetLocation            = "setLocation"

	ActionSetAnalyzerHeatLoss    = "setAnalyzerHeatLoss"
	ActionSetCoolingCapacity     = "setCoolingCapacity"
	ActionSetRates               = "setRates"
	ActionSetDetailedAnnualEst   = "setUseDetailedAnnualEstimate"

	ActionPresetSleep = "presetSleep"
	ActionPresetAway  = "presetAway"
	ActionPresetHome  = "presetHome"

	ActionIncreaseTemp = "increaseTemp"
	ActionDecreaseTemp = "decreaseTemp"
	ActionQueryTemp    = "queryTemp"

	ActionNavigate = "navigate"
	ActionEducate  = "educate"
	ActionHelp     = "help"

	ActionSetDarkMode     = "setDarkMode"
	ActionToggleDarkMode  = "toggleDarkMode"
	ActionSetByzantine    = "setByzantineMode"
	ActionSetGroqAPIKey    = "setGroqApiKey"
	ActionSetGroqModel     = "setGroqModel"
	ActionSetLLMProvider   = "setLlmProvider"
	ActionSetVoiceListen   = "setVoiceListenDuration"
	ActionQueryGroqAPIKey  = "queryGroqApiKey"
	ActionQueryGroqModel   = "queryGroqModel"
	ActionQueryLLMProvider = "queryLlmProvider"
	ActionQueryVoiceListen = "queryVoiceListenDuration"

	ActionShowDiagnostics   = "showDiagnostics"
	ActionCheckShortCycling = "checkShortCycling"
	ActionCheckAuxHeat      = "checkAuxHeat"
	ActionCheckTempStability = "checkTempStability"
	ActionShowCsvInfo       = "showCsvInfo"

	ActionSetCompressorMinRuntime = "setCompressorMinRuntime"
	ActionSetHeatDifferential     = "setHeatDifferential"
	ActionSetCoolDifferential     = "setCoolDifferential"
	ActionSetSleepModeStartTime   = "setSleepModeStartTime"
	ActionSetSleepTime            = "setSleepTime"
	ActionSetWakeTime             = "setWakeTime"
	ActionSetNighttimeTemp        = "setNighttimeTemperature"
	ActionSetDaytimeTemp          = "setDaytimeTemperature"
	ActionSetDaytimeStartTime     = "setDaytimeStartTime"

	ActionWhatIfHSPF      = "whatIfHSPF"
	ActionWhatIfSEER      = "whatIfSEER"
	ActionBreakEven       = "breakEven"
	ActionEnergyUsage     = "energyUsage"
	ActionAverageDaily    = "averageDaily"
	ActionMonthlySpend    = "monthlySpend"
	ActionFullAnalysis    = "fullAnalysis"
	ActionSystemAnalysis  = "systemAnalysis"
	ActionCostForecast    = "costForecast"
	ActionSavingsAnalysis = "savingsAnalysis"
	ActionExplainBill     = "explainBill"
	ActionShowScore       = "showScore"
	ActionShowSavings     = "showSavings"
	ActionSystemStatus    = "systemStatus"
	ActionNormalForCity   = "normalForCity"
	ActionCalcCharging    = "calculateCharging"
	ActionCalcHeatLoss    = "calculateHeatLoss"
	ActionCalcPerformance = "calculatePerformance"
	ActionCalcSetback     = "calculateSetback"
	ActionCompareSystem   = "compareSystem"
	ActionUndo            = "undo"

	ActionOfflineAnswer = "offlineAnswer"
)

// ParsedCommand is the tagged union produced by the grammar parser. Exactly
// one of the variant shapes is populated per parse: a local command
// (Action + Value), an offline answer (Type/Answer/Check), a sales query
// (IsSalesQuery + SalesAnswer), or not-a-command (IsCommand false).
// Dispatch code must not inspect fields outside the active variant.
type ParsedCommand struct {
	Action    string
	Value     interface{}
	Raw       string
	IsCommand bool

	// Sales-query variant.
	IsSalesQuery bool
	SalesAnswer  string

	// Offline-answer variant.
	Type         string
	NeedsContext bool
	Answer       string
	Check        string

	// Handler-specific extras.
	CityName     string
	Target       string
	Topic        string
	Refrigerant  string
	OutdoorTemp  float64
	HasOutdoor   bool
	Days         int
	Cost         float64
	ElectricRate float64
	GasRate      float64

	// Freeform-facts variant, populated when no command matched.
	Facts *QueryFacts
}

// QueryFacts holds loose parameters scraped from a freeform question.
// Pointer fields distinguish "absent" from a legitimate zero.
type QueryFacts struct {
	CityName        string
	SquareFeet      *int
	InsulationLevel *float64
	IndoorTemp      *int
	PrimarySystem   string
	EnergyMode      string
}

// SettingCommandConfig is a declarative registry entry mapping a command
// action to the settings key it mutates plus display and side-effect
// metadata. AlsoSet and AlsoDisable must never reference Key itself.
type SettingCommandConfig struct {
	Key               string
	Label             string
	Unit              string
	Prefix            string
	UseUnifiedManager bool
	UseRaw            bool
	IsBoolean         bool
	AlsoSet           []string
	AlsoDisable       []string
}

// Output statuses attached to dispatcher messages.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusInfo    = "info"
	StatusWarning = "warning"
)

// DispatchCallbacks is the injected side-effect surface for the dispatcher.
// Handlers never touch storage, speech, or navigation directly. Any callback
// may be nil; handlers degrade per their documented behavior.
type DispatchCallbacks struct {
	OnSettingChange func(key string, value interface{}, source, comment string)
	SetOutput       func(message, status string)
	Speak           func(message string)
	Navigate        func(route string)
}
