package diagnostics

import (
	"fmt"
	"strings"
)

var knownPrefixes = []string{PrefixChaos, PrefixIR, PrefixParse, PrefixCodegen}

// Validation collects the problems found in an event log. Errors break the
// event contract; warnings only flag ids outside the known stages.
type Validation struct {
	Errors   []string
	Warnings []string
}

func (v Validation) OK() bool {
	return len(v.Errors) == 0
}

func (v Validation) String() string {
	return fmt.Sprintf("%d errors, %d warnings", len(v.Errors), len(v.Warnings))
}

// Validate checks that every event carries an id, a non-blank context and a
// known severity, and that ids start with a stage prefix.
func Validate(events []Event) Validation {
	var v Validation
	for i, ev := range events {
		at := fmt.Sprintf("event %d", i+1)
		if ev.ID == "" {
			v.Errors = append(v.Errors, at+": missing required field 'id'")
		} else {
			at += " (" + ev.ID + ")"
			if !hasKnownPrefix(ev.ID) {
				v.Warnings = append(v.Warnings, at+": non-standard id prefix")
			}
		}

		switch {
		case ev.Context == "":
			v.Errors = append(v.Errors, at+": missing required field 'context'")
		case strings.TrimSpace(ev.Context) == "":
			v.Errors = append(v.Errors, at+": context must not be blank")
		}

		switch ev.Severity {
		case Info, Warning, Error:
		case "":
			v.Errors = append(v.Errors, at+": missing required field 'severity'")
		default:
			v.Errors = append(v.Errors, fmt.Sprintf("%s: invalid severity %q", at, ev.Severity))
		}
	}
	return v
}

func hasKnownPrefix(id string) bool {
	for _, p := range knownPrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// Validate checks the recorded events
func (m *Manager) Validate() Validation {
	return Validate(m.Events())
}
