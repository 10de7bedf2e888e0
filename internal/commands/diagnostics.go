package commands

import (
	"fmt"
	"strings"

	"joule/pkg/jouletypes"
)

// runDiagnostic handles the diagnostics query family against the cached
// analyzer snapshot. Missing data is an informational message, never an
// error. Returns false when the action is not a diagnostic query.
func (d *Dispatcher) runDiagnostic(parsed jouletypes.ParsedCommand, cb jouletypes.DispatchCallbacks) bool {
	switch parsed.Action {
	case jouletypes.ActionShowDiagnostics:
		snap, err := d.snapshot()
		if err != nil {
			d.output(cb, "No diagnostic data available. Upload thermostat CSV in Performance Analyzer first.", jouletypes.StatusInfo)
			return true
		}
		if snap == nil || len(snap.Issues) == 0 {
			d.output(cb, "✅ No system issues detected. Upload thermostat data in the Performance Analyzer to check your system.", jouletypes.StatusInfo)
			d.speak(cb, "No system issues detected")
			return true
		}
		var list strings.Builder
		shown := snap.Issues
		if len(shown) > 3 {
			shown = shown[:3]
		}
		for i, issue := range shown {
			if i > 0 {
				list.WriteString("\n")
			}
			fmt.Fprintf(&list, "• %s", issue.Description)
		}
		more := ""
		if len(snap.Issues) > 3 {
			more = fmt.Sprintf("\n... and %d more issues", len(snap.Issues)-3)
		}
		d.output(cb, fmt.Sprintf("⚠️ **System Diagnostics**\n\nFound %d issue(s):\n%s%s\n\nView Performance Analyzer for details.",
			len(snap.Issues), list.String(), more), jouletypes.StatusWarning)
		d.speak(cb, fmt.Sprintf("Found %d system issues. Check the performance analyzer for details.", len(snap.Issues)))
		return true

	case jouletypes.ActionCheckShortCycling:
		snap, err := d.snapshot()
		if err != nil {
			d.output(cb, "Upload thermostat CSV data in Performance Analyzer to check for short cycling.", jouletypes.StatusInfo)
			return true
		}
		if issue := findIssue(snap, jouletypes.IssueShortCycling); issue != nil {
			d.output(cb, fmt.Sprintf("⚠️ %s\n\nShort cycling reduces efficiency and can damage your compressor. Consider checking: refrigerant levels, thermostat placement, or filter cleanliness.",
				issue.Description), jouletypes.StatusWarning)
			d.speak(cb, "Short cycling detected. This can damage your compressor.")
		} else {
			d.output(cb, "✅ No short cycling detected in your thermostat data.", jouletypes.StatusSuccess)
			d.speak(cb, "No short cycling detected")
		}
		return true

	case jouletypes.ActionCheckAuxHeat:
		snap, err := d.snapshot()
		if err != nil {
			d.output(cb, "Upload thermostat data to analyze aux heat usage.", jouletypes.StatusInfo)
			return true
		}
		if issue := findIssue(snap, jouletypes.IssueExcessiveAux); issue != nil {
			d.output(cb, fmt.Sprintf("⚠️ %s\n\nAux heat (%s%% of runtime) is expensive! Check your balance point setting or thermostat configuration.",
				issue.Description, formatSettingValue(issue.AuxPercentage)), jouletypes.StatusWarning)
			d.speak(cb, "Excessive auxiliary heat usage detected")
		} else {
			d.output(cb, "✅ Auxiliary heat usage is within normal range.", jouletypes.StatusSuccess)
			d.speak(cb, "Auxiliary heat usage is normal")
		}
		return true

	case jouletypes.ActionCheckTempStability:
		snap, err := d.snapshot()
		if err != nil {
			d.output(cb, "Upload thermostat data to analyze temperature stability.", jouletypes.StatusInfo)
			return true
		}
		if issue := findIssue(snap, jouletypes.IssueTempInstability); issue != nil {
			d.output(cb, fmt.Sprintf("⚠️ %s\n\nLarge temperature swings may indicate thermostat issues, poor insulation, or undersized equipment.",
				issue.Description), jouletypes.StatusWarning)
			d.speak(cb, "Temperature instability detected")
		} else {
			d.output(cb, "✅ Indoor temperature stability looks good.", jouletypes.StatusSuccess)
			d.speak(cb, "Temperature stability is normal")
		}
		return true

	case jouletypes.ActionShowCsvInfo:
		if d.diags == nil {
			d.output(cb, "No CSV data found. Upload in Performance Analyzer first.", jouletypes.StatusInfo)
			return true
		}
		info, err := d.diags.CSVInfo()
		if err != nil {
			d.output(cb, "No CSV data found. Upload in Performance Analyzer first.", jouletypes.StatusInfo)
			return true
		}
		if info == nil || info.DataPoints == 0 {
			d.output(cb, "No thermostat data uploaded yet. Visit Performance Analyzer to upload CSV data.", jouletypes.StatusInfo)
			return true
		}
		fileName := info.FileName
		if fileName == "" {
			fileName = "thermostat-data.csv"
		}
		uploaded := info.UploadedAt
		if uploaded == "" {
			uploaded = "recently"
		}
		d.output(cb, fmt.Sprintf("📊 **Thermostat Data**\n\nFile: %s\nUploaded: %s\nData points: %d\n\nAsk me about problems, short cycling, or aux heat usage!",
			fileName, uploaded, info.DataPoints), jouletypes.StatusInfo)
		d.speak(cb, fmt.Sprintf("You have %d data points uploaded on %s", info.DataPoints, uploaded))
		return true
	}
	return false
}

func (d *Dispatcher) snapshot() (*jouletypes.DiagnosticsSnapshot, error) {
	if d.diags == nil {
		return nil, nil
	}
	return d.diags.Snapshot()
}

func findIssue(snap *jouletypes.DiagnosticsSnapshot, issueType string) *jouletypes.DiagnosticIssue {
	if snap == nil {
		return nil
	}
	for i := range snap.Issues {
		if snap.Issues[i].Type == issueType {
			return &snap.Issues[i]
		}
	}
	return nil
}
