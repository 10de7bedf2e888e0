package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runToolsFor(t *testing.T, query string) []toolResult {
	t.Helper()
	agent := newTestAgent(&fakeLLMClient{})
	return agent.runTools(query, testAgentSettings())
}

func toolNamed(t *testing.T, results []toolResult, name string) toolResult {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no tool named %q in %v", name, results)
	return toolResult{}
}

func TestAgentTools_NoToolsForGreeting(t *testing.T) {
	assert.Empty(t, runToolsFor(t, "good morning"))
	assert.Empty(t, runToolsFor(t, "tell me about my setup"))
}

func TestAgentTools_BalancePoint(t *testing.T) {
	results := runToolsFor(t, "what's my balance point")
	tool := toolNamed(t, results, "calculateBalancePoint")

	assert.Contains(t, tool.Output, "balance point is")
	assert.Contains(t, tool.Output, "Heat loss rate:")
}

func TestAgentTools_SetbackSavings(t *testing.T) {
	results := runToolsFor(t, "how much would a night setback save me")
	tool := toolNamed(t, results, "estimateSetbackSavings")

	assert.Contains(t, tool.Output, "Thermostat Setback Strategy Savings")
	assert.Contains(t, tool.Output, "Annual Savings")
}

func TestAgentTools_SystemComparison(t *testing.T) {
	results := runToolsFor(t, "is a heat pump cheaper than a gas furnace here")
	tool := toolNamed(t, results, "compareHeatingSystems")

	assert.Contains(t, tool.Output, "Heat Pump vs Gas Furnace Comparison")
	assert.Contains(t, tool.Output, "wins!")
}

func TestAgentTools_SystemSizing(t *testing.T) {
	results := runToolsFor(t, "what size heat pump do I need")
	tool := toolNamed(t, results, "calculateSystemSizing")

	assert.Contains(t, tool.Output, "System Sizing Estimate")
	assert.Contains(t, tool.Output, "Recommended size:")
}

func TestAgentTools_PerformanceMetrics(t *testing.T) {
	results := runToolsFor(t, "how efficient is my home")
	tool := toolNamed(t, results, "calculatePerformanceMetrics")

	assert.Contains(t, tool.Output, "Your System Performance Metrics")
	assert.Contains(t, tool.Output, "Average COP")
}

func TestAgentTools_ChargeDiagnosisFromReadings(t *testing.T) {
	results := runToolsFor(t, "subcooling check: 317 psi and line temp is 95 on R-410A")
	tool := toolNamed(t, results, "diagnoseCharge")

	assert.Contains(t, tool.Output, "Charge Diagnosis (Subcooling)")
	assert.Contains(t, tool.Output, "Status:")
}

func TestAgentTools_ChargingTargetsWithoutReadings(t *testing.T) {
	results := runToolsFor(t, "what are the charging targets for r-32 at 95 degrees")
	tool := toolNamed(t, results, "calculateChargingTargets")

	assert.Contains(t, tool.Output, "R-32 Charging Targets")
	assert.Contains(t, tool.Output, "Outdoor: 95°F")
	assert.Contains(t, tool.Output, "Target Superheat")
}

func TestAgentTools_HeatingEnergyImpact(t *testing.T) {
	results := runToolsFor(t, "what does it cost to run per hour at 30 degrees")
	tool := toolNamed(t, results, "calculateEnergyImpact")

	assert.Contains(t, tool.Output, "Estimated Performance at 30°F")
	assert.Contains(t, tool.Output, "Defrost penalty")
	assert.Contains(t, tool.Output, "/hour")
}

func TestAgentTools_CoolingEnergyImpact(t *testing.T) {
	results := runToolsFor(t, "how much does the ac cost to run per hour at 95 degrees")
	tool := toolNamed(t, results, "calculateEnergyImpact")

	assert.Contains(t, tool.Output, "Cooling Performance at 95°F")
	assert.Contains(t, tool.Output, "/hour")
}

func TestAgentTools_ElevationAdjustsOutdoorTemp(t *testing.T) {
	agent := newTestAgent(&fakeLLMClient{})
	settings := testAgentSettings()
	settings["homeElevation"] = 5280.0

	results := agent.runTools("what does it cost to run per hour at 30 degrees", settings)
	tool := toolNamed(t, results, "calculateEnergyImpact")

	// 5280 ft at 50% humidity: lapse 4.2F/1000ft shifts 30F down to 8F.
	assert.Contains(t, tool.Output, "Estimated Performance at 8°F")
}

func TestAgentService_ToolResultsRideIntoPrompt(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	result := agent.Answer(AgentRequest{
		Query:    "when does aux heat kick in",
		APIKey:   "gsk_x",
		Settings: testAgentSettings(),
	})
	require.True(t, result.Success)

	last := fake.messages[len(fake.messages)-1].Content
	assert.Contains(t, last, "TOOL RESULTS:")
	assert.Contains(t, last, "- calculateBalancePoint:")
	assert.Contains(t, last, "- calculateEnergyImpact:")
	assert.True(t, strings.HasSuffix(last, "Provide a helpful response based on the tool results above."))

	assert.Equal(t, []string{"calculateBalancePoint", "calculateEnergyImpact"}, result.ExecutedTools)
}

func TestAgentService_NoToolBlockWithoutTools(t *testing.T) {
	fake := &fakeLLMClient{}
	agent := newTestAgent(fake)

	agent.Answer(AgentRequest{Query: "good morning", APIKey: "gsk_x", Settings: testAgentSettings()})

	last := fake.messages[len(fake.messages)-1].Content
	assert.NotContains(t, last, "TOOL RESULTS:")
	assert.True(t, strings.HasSuffix(last, "User question: good morning"))
}

func TestInsulationQualityWord(t *testing.T) {
	assert.Equal(t, "excellent", insulationQualityWord(0.5))
	assert.Equal(t, "good", insulationQualityWord(0.8))
	assert.Equal(t, "average", insulationQualityWord(1.0))
	assert.Equal(t, "poor", insulationQualityWord(1.3))
	assert.Equal(t, "average", insulationQualityWord(0))
}
