package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joule/pkg/jouletypes"
)

func TestDiagnosticsService_EmptyIsAnError(t *testing.T) {
	d := NewDiagnosticsService("")
	require.NoError(t, d.Initialize())

	_, err := d.Snapshot()
	require.Error(t, err)
	assert.Equal(t, "no thermostat data uploaded", err.Error())

	_, err = d.CSVInfo()
	assert.Error(t, err)
}

func TestDiagnosticsService_StoreAndRead(t *testing.T) {
	d := NewDiagnosticsService("")

	snapshot := &jouletypes.DiagnosticsSnapshot{Issues: []jouletypes.DiagnosticIssue{
		{Type: jouletypes.IssueExcessiveAux, Description: "Aux heat ran 41% of the time", AuxPercentage: 41},
	}}
	info := &jouletypes.CSVInfo{FileName: "ecobee.csv", UploadedAt: "2026-08-01", DataPoints: 2880}
	require.NoError(t, d.Store(snapshot, info))

	got, err := d.Snapshot()
	require.NoError(t, err)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, jouletypes.IssueExcessiveAux, got.Issues[0].Type)

	gotInfo, err := d.CSVInfo()
	require.NoError(t, err)
	assert.Equal(t, 2880, gotInfo.DataPoints)
}

func TestDiagnosticsService_CleanSnapshotIsNotAnError(t *testing.T) {
	d := NewDiagnosticsService("")
	require.NoError(t, d.Store(&jouletypes.DiagnosticsSnapshot{}, nil))

	snap, err := d.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Issues)
}

func TestDiagnosticsService_PersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics.json")

	d := NewDiagnosticsService(path)
	require.NoError(t, d.Initialize())
	require.NoError(t, d.Store(
		&jouletypes.DiagnosticsSnapshot{Issues: []jouletypes.DiagnosticIssue{
			{Type: jouletypes.IssueShortCycling, Description: "Short cycling detected: 6 cycles/hour"},
		}},
		&jouletypes.CSVInfo{FileName: "data.csv", DataPoints: 720},
	))

	reloaded := NewDiagnosticsService(path)
	require.NoError(t, reloaded.Initialize())

	snap, err := reloaded.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Issues, 1)
	assert.Equal(t, "Short cycling detected: 6 cycles/hour", snap.Issues[0].Description)

	info, err := reloaded.CSVInfo()
	require.NoError(t, err)
	assert.Equal(t, "data.csv", info.FileName)
}
