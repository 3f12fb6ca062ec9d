package diag

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Trace is the host-provided sink for three independently toggled trace
// channels: debug (one record per visited node), scope (one record per
// scope on exit), and stack (a snapshot on every AR push/pop). Records
// are free-form text; nothing parses them.
type Trace interface {
	Debugf(format string, args ...any)
	Scopef(format string, args ...any)
	Stackf(format string, args ...any)
}

// NopTrace discards everything. Used by tests and by hosts that want total
// silence.
type NopTrace struct{}

func (NopTrace) Debugf(string, ...any) {}
func (NopTrace) Scopef(string, ...any) {}
func (NopTrace) Stackf(string, ...any) {}

var (
	debugStyle = pterm.NewStyle(pterm.FgCyan)
	scopeStyle = pterm.NewStyle(pterm.FgMagenta)
	stackStyle = pterm.NewStyle(pterm.FgBlue)
)

// PtermTrace routes each channel to stdout through a distinct pterm style,
// gated by independent booleans.
type PtermTrace struct {
	Debug bool
	Scope bool
	Stack bool
}

func (t PtermTrace) Debugf(format string, args ...any) {
	if !t.Debug {
		return
	}
	debugStyle.Println("[debug] " + fmt.Sprintf(format, args...))
}

func (t PtermTrace) Scopef(format string, args ...any) {
	if !t.Scope {
		return
	}
	scopeStyle.Println("[scope] " + fmt.Sprintf(format, args...))
}

func (t PtermTrace) Stackf(format string, args ...any) {
	if !t.Stack {
		return
	}
	stackStyle.Println("[stack] " + fmt.Sprintf(format, args...))
}
