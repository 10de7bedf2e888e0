package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joule/internal/testutils"
	"joule/pkg/jouletypes"
)

// newTestAudit pins timestamps and IDs so exports are deterministic.
func newTestAudit(fn RevertFunc) *AuditService {
	a := NewAuditService(fn)
	a.now = testutils.FixedClock(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))
	a.newID = testutils.IDSequence("id")
	return a
}

func TestAuditService_RecordAppends(t *testing.T) {
	a := newTestAudit(nil)

	entry := a.Record("winterThermostat", 70.0, 72.0, "AskJoule", "Set winter thermostat to 72")

	assert.Equal(t, "id-1", entry.ID)
	assert.Equal(t, "2026-03-14T09:26:53Z", entry.Timestamp)
	assert.Equal(t, "winterThermostat", entry.Key)
	assert.EqualValues(t, 70.0, entry.OldValue)
	assert.EqualValues(t, 72.0, entry.NewValue)

	entries := a.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
}

func TestAuditService_UndoRevertsAndRemoves(t *testing.T) {
	reverted := map[string]interface{}{}
	a := newTestAudit(func(key string, value interface{}) error {
		reverted[key] = value
		return nil
	})

	a.Record("hspf2", 9.0, 10.0, "AskJoule", "")
	entry := a.Record("winterThermostat", 70.0, 72.0, "AskJoule", "")

	require.NoError(t, a.Undo(entry.ID))

	assert.EqualValues(t, 70.0, reverted["winterThermostat"])
	entries := a.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "hspf2", entries[0].Key)
}

func TestAuditService_UndoUnknownID(t *testing.T) {
	a := newTestAudit(func(string, interface{}) error { return nil })

	err := a.Undo("nope")
	require.Error(t, err)
	assert.Equal(t, "audit entry nope not found", err.Error())
}

func TestAuditService_UndoWithoutRevertSink(t *testing.T) {
	a := newTestAudit(nil)
	entry := a.Record("hspf2", 9.0, 10.0, "AskJoule", "")

	err := a.Undo(entry.ID)
	require.Error(t, err)
	assert.Equal(t, "undo is not available: no revert sink", err.Error())
}

func TestAuditService_UndoLast(t *testing.T) {
	var lastKey string
	a := newTestAudit(func(key string, _ interface{}) error {
		lastKey = key
		return nil
	})

	assert.False(t, a.UndoLast())

	a.Record("hspf2", 9.0, 10.0, "AskJoule", "")
	a.Record("efficiency", 15.0, 16.0, "AskJoule", "")

	assert.True(t, a.UndoLast())
	assert.Equal(t, "efficiency", lastKey)
	assert.Len(t, a.Entries(), 1)
}

func TestAuditService_Clear(t *testing.T) {
	a := newTestAudit(nil)
	a.Record("hspf2", 9.0, 10.0, "AskJoule", "")

	a.Clear()
	assert.Empty(t, a.Entries())
}

func TestAuditService_ExportCSV(t *testing.T) {
	a := newTestAudit(nil)
	a.Record("winterThermostat", 70.0, 72.5, "AskJoule", "Set winter thermostat to 72.5")
	a.Record("primarySystem", "heatPump", "gasFurnace", "AskJoule", `user said "switch to gas"`)
	a.Record("useElectricAuxHeat", true, false, "AskJoule", "")
	a.Record("capacity", nil, 36, "AskJoule", "")

	csv := a.ExportCSV()
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, "timestamp,key,oldValue,newValue,source,comment", lines[0])
	assert.Equal(t, `"2026-03-14T09:26:53Z","winterThermostat","70","72.5","AskJoule","Set winter thermostat to 72.5"`, lines[1])
	assert.Equal(t, `"2026-03-14T09:26:53Z","primarySystem","heatPump","gasFurnace","AskJoule","user said ""switch to gas"""`, lines[2])
	assert.Equal(t, `"2026-03-14T09:26:53Z","useElectricAuxHeat","true","false","AskJoule",""`, lines[3])
	assert.Equal(t, `"2026-03-14T09:26:53Z","capacity","","36","AskJoule",""`, lines[4])
}

func TestAuditService_ExportCSV_EmptyLogIsHeaderOnly(t *testing.T) {
	a := newTestAudit(nil)
	assert.Equal(t, "timestamp,key,oldValue,newValue,source,comment\n", a.ExportCSV())
}

func TestAuditService_ExportJSON(t *testing.T) {
	a := newTestAudit(nil)
	a.Record("hspf2", 9.0, 10.0, "AskJoule", "Set HSPF2 to 10")

	data, err := a.ExportJSON()
	require.NoError(t, err)

	var entries []jouletypes.AuditLogEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "id-1", entries[0].ID)
	assert.Equal(t, "hspf2", entries[0].Key)
	assert.EqualValues(t, 10.0, entries[0].NewValue)
}
