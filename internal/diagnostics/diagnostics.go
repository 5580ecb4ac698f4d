// Package diagnostics records structured events raised while compiling:
// every chaos mutation, skipped mutation and pipeline failure becomes an
// Event with a stable id such as CHAOS_ALGEBRAIC_SWAP.
package diagnostics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("chaoslab.diagnostics")

type Severity string

const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Event id prefixes, one per pipeline stage.
const (
	PrefixChaos   = "CHAOS_"
	PrefixParse   = "PARSE_"
	PrefixCodegen = "CODEGEN_"
	PrefixIR      = "IR_"
)

type Params map[string]any

type Event struct {
	ID        string
	Context   string
	Severity  Severity
	Params    Params
	Timestamp time.Time
}

func (e Event) String() string {
	return fmt.Sprintf("[%s] %s (%s) %s", e.Severity, e.ID, e.Context, formatParams(e.Params))
}

// Manager collects events in emission order. A nil *Manager discards everything,
// so components can emit unconditionally.
type Manager struct {
	mu     sync.Mutex
	events []Event
	now    func() time.Time
}

func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Emit records an event and returns it.
func (m *Manager) Emit(id, context string, severity Severity, params Params) Event {
	ev := Event{ID: id, Context: context, Severity: severity, Params: params}
	if m == nil {
		return ev
	}

	m.mu.Lock()
	ev.Timestamp = m.now()
	m.events = append(m.events, ev)
	m.mu.Unlock()

	switch severity {
	case Error:
		log.Errorf("%s", ev)
	case Warning:
		log.Warningf("%s", ev)
	default:
		log.Debugf("%s", ev)
	}
	return ev
}

// Events returns a copy of everything emitted since the last Clear
func (m *Manager) Events() []Event {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// WithPrefix returns the events whose id starts with prefix
func (m *Manager) WithPrefix(prefix string) []Event {
	var out []Event
	for _, ev := range m.Events() {
		if strings.HasPrefix(ev.ID, prefix) {
			out = append(out, ev)
		}
	}
	return out
}

// Count returns how many events carry the given id
func (m *Manager) Count(id string) int {
	n := 0
	for _, ev := range m.Events() {
		if ev.ID == id {
			n++
		}
	}
	return n
}

func (m *Manager) Clear() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}

// WriteTable renders the event log as a table
func (m *Manager) WriteTable(w io.Writer) error {
	t := table.NewWriter()
	t.SetTitle("Diagnostics")
	t.AppendHeader(table.Row{"#", "Time", "Severity", "ID", "Context", "Params"})
	for i, ev := range m.Events() {
		t.AppendRow(table.Row{i + 1, ev.Timestamp.Format("15:04:05.000"), ev.Severity, ev.ID, ev.Context, formatParams(ev.Params)})
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatParams(params Params) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, params[k])
	}
	return strings.Join(parts, " ")
}
