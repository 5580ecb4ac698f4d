package diagnostics

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Millisecond)
	}
}

func TestEmitRecordsInOrder(t *testing.T) {
	m := NewManager()
	m.now = fixedClock()

	m.Emit("CHAOS_ALGEBRAIC_SWAP", "chaos.algebraic", Info, Params{"op": "ADD"})
	m.Emit("CHAOS_SKIPPED_BUDGET", "chaos.safety", Warning, Params{"reason": "budget"})

	events := m.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "CHAOS_ALGEBRAIC_SWAP", events[0].ID)
	assert.Equal(t, Warning, events[1].Severity)
	assert.True(t, events[0].Timestamp.Before(events[1].Timestamp))
}

func TestEventsReturnsCopy(t *testing.T) {
	m := NewManager()
	m.Emit("IR_READY", "ir", Info, nil)

	events := m.Events()
	events[0].ID = "mutated"
	assert.Equal(t, "IR_READY", m.Events()[0].ID)
}

func TestClear(t *testing.T) {
	m := NewManager()
	m.Emit("PARSE_FAILED", "parser", Error, nil)
	m.Clear()
	assert.Empty(t, m.Events())
}

func TestPrefixAndCount(t *testing.T) {
	m := NewManager()
	m.Emit("CHAOS_NOOP_INJECTED", "chaos.noop", Info, nil)
	m.Emit("CHAOS_NOOP_INJECTED", "chaos.noop", Info, nil)
	m.Emit("CODEGEN_DONE", "codegen", Info, nil)

	assert.Len(t, m.WithPrefix(PrefixChaos), 2)
	assert.Len(t, m.WithPrefix(PrefixCodegen), 1)
	assert.Equal(t, 2, m.Count("CHAOS_NOOP_INJECTED"))
	assert.Equal(t, 0, m.Count("PARSE_FAILED"))
}

func TestNilManagerDiscards(t *testing.T) {
	var m *Manager
	ev := m.Emit("CHAOS_PLAN_SELECTED", "chaos.planner", Info, Params{"seed": 1})
	assert.Equal(t, "CHAOS_PLAN_SELECTED", ev.ID)
	assert.Nil(t, m.Events())
	m.Clear()
}

func TestEventString(t *testing.T) {
	ev := Event{ID: "CHAOS_NUM_ENCODING", Context: "chaos.data.encoding", Severity: Info,
		Params: Params{"orig": "10", "enc": "enc_add_0 - 3"}}
	assert.Equal(t, "[info] CHAOS_NUM_ENCODING (chaos.data.encoding) enc=enc_add_0 - 3 orig=10", ev.String())
}

func TestWriteTable(t *testing.T) {
	m := NewManager()
	m.now = fixedClock()
	m.Emit("CHAOS_BUDGET_SUMMARY", "chaos.budget", Info, Params{"added": 3})

	var buf bytes.Buffer
	require.NoError(t, m.WriteTable(&buf))
	out := buf.String()
	assert.Contains(t, out, "CHAOS_BUDGET_SUMMARY")
	assert.Contains(t, out, "added=3")
	assert.Contains(t, out, "03:04:05.001")
}
