package commands

// navigationShortcuts maps spoken shorthands to app routes. Several
// aliases share a route on purpose.
var navigationShortcuts = map[string]string{
	"forecast":   "/cost-forecaster",
	"forecaster": "/cost-forecaster",
	"7day":       "/cost-forecaster",
	"7-day":      "/cost-forecaster",

	"comparison": "/cost-comparison",
	"compare":    "/cost-comparison",
	"versus":     "/cost-comparison",
	"vs":         "/cost-comparison",

	"balance": "/energy-flow",
	"flow":    "/energy-flow",
	"energy":  "/energy-flow",

	"charging":    "/charging-calculator",
	"ac":          "/charging-calculator",
	"refrigerant": "/charging-calculator",

	"analyzer":    "/performance-analyzer",
	"performance": "/performance-analyzer",
	"analyze":     "/performance-analyzer",

	"methodology": "/methodology",
	"math":        "/methodology",
	"formulas":    "/methodology",

	"settings":    "/settings",
	"preferences": "/settings",
	"config":      "/settings",

	"thermostat": "/thermostat-analyzer",
	"setback":    "/thermostat-analyzer",
	"schedule":   "/thermostat-analyzer",

	"budget":  "/monthly-budget",
	"monthly": "/monthly-budget",
	"planner": "/monthly-budget",

	"roi":     "/upgrade-roi",
	"upgrade": "/upgrade-roi",
	"payback": "/upgrade-roi",

	"contactor": "/contactor-demo",
	"demo":      "/contactor-demo",
	"hardware":  "/contactor-demo",

	"home":      "/",
	"main":      "/",
	"dashboard": "/",
}

var routeLabels = map[string]string{
	"/cost-forecaster":      "7-Day Cost Forecaster",
	"/cost-comparison":      "System Comparison",
	"/energy-flow":          "Balance Point Analyzer",
	"/charging-calculator":  "A/C Charging Calculator",
	"/performance-analyzer": "Performance Analyzer",
	"/methodology":          "Calculation Methodology",
	"/settings":             "Settings",
	"/thermostat-analyzer":  "Thermostat Strategy Analyzer",
	"/monthly-budget":       "Monthly Budget Planner",
	"/upgrade-roi":          "Upgrade ROI Analyzer",
	"/contactor-demo":       "Contactor Demo",
	"/":                     "Home",
}

// RouteFromShortcut resolves a navigation shorthand to its route path.
func RouteFromShortcut(target string) (string, bool) {
	path, ok := navigationShortcuts[target]
	return path, ok
}

// RouteLabel returns the human label for a route path, or the path
// itself when unknown.
func RouteLabel(path string) string {
	if label, ok := routeLabels[path]; ok {
		return label
	}
	return path
}
