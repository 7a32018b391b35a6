// Package input translates host events into navigation engine commands.
//
// Hosts map whatever their visual tree is (DOM elements, terminal rows) to a
// logical Target naming a node ID. The dispatcher then resolves that ID to the
// nearest enclosing navigable node using the tree model's parent index.
package input

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/smileynet/treenav/internal/debug"
	"github.com/smileynet/treenav/internal/nav"
	"github.com/smileynet/treenav/internal/tree"
)

// ErrNoEngine is returned by NewDispatcher when no engine is supplied.
var ErrNoEngine = errors.New("input: engine is required")

// Kind identifies the host event type.
type Kind int

const (
	Click Kind = iota + 1
	DoubleActivate
	KeyPress
	RootFocus
)

func (k Kind) String() string {
	switch k {
	case Click:
		return "click"
	case DoubleActivate:
		return "double-activate"
	case KeyPress:
		return "key"
	case RootFocus:
		return "root-focus"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Target is the logical origin of an event.
type Target struct {
	NodeID string // innermost node under the event; empty for the root container
	Toggle bool   // the event hit NodeID's toggle affordance
}

// Event is one discrete host input.
type Event struct {
	Kind             Kind
	Target           Target
	Key              Key
	DefaultPrevented bool // set when another handler already consumed the event
}

// ClickOn is a click on a node's row.
func ClickOn(id string) Event {
	return Event{Kind: Click, Target: Target{NodeID: id}}
}

// ToggleClickOn is a click on a node's toggle affordance.
func ToggleClickOn(id string) Event {
	return Event{Kind: Click, Target: Target{NodeID: id, Toggle: true}}
}

// DoubleActivateOn is a double click on a node.
func DoubleActivateOn(id string) Event {
	return Event{Kind: DoubleActivate, Target: Target{NodeID: id}}
}

// KeyOn is a key press delivered to a node.
func KeyOn(id string, k Key) Event {
	return Event{Kind: KeyPress, Target: Target{NodeID: id}, Key: k}
}

// RootFocused is the root container receiving focus.
func RootFocused() Event {
	return Event{Kind: RootFocus}
}

// Dispatcher routes events to an engine.
type Dispatcher struct {
	engine *nav.Engine
	logger *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger for ignored and dispatched events.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates a dispatcher for e.
func NewDispatcher(e *nav.Engine, opts ...DispatcherOption) (*Dispatcher, error) {
	if e == nil {
		return nil, ErrNoEngine
	}
	d := &Dispatcher{engine: e, logger: debug.Discard()}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Engine returns the engine events are routed to.
func (d *Dispatcher) Engine() *nav.Engine {
	return d.engine
}

// Resolve walks from t's node outward and returns the nearest navigable node.
func (d *Dispatcher) Resolve(t Target) (*tree.Node, bool) {
	m := d.engine.Model()
	n, ok := m.Resolve(t.NodeID)
	for ok {
		if m.IsNavigable(n) {
			return n, true
		}
		n, ok = m.Parent(n)
	}
	return nil, false
}

// Dispatch handles one event and reports whether it changed anything.
func (d *Dispatcher) Dispatch(ev Event) bool {
	handled := d.dispatch(ev)
	d.logger.Debug("input: event",
		"kind", ev.Kind.String(),
		"target", ev.Target.NodeID,
		"toggle", ev.Target.Toggle,
		"key", string(ev.Key),
		"handled", handled,
	)
	return handled
}

func (d *Dispatcher) dispatch(ev Event) bool {
	switch ev.Kind {
	case RootFocus:
		return d.rootFocus()
	case Click:
		if ev.DefaultPrevented {
			return false
		}
		return d.click(ev.Target)
	case DoubleActivate:
		if ev.DefaultPrevented {
			return false
		}
		n, ok := d.Resolve(ev.Target)
		if !ok {
			return false
		}
		return d.engine.Perform(nav.Activate, n)
	case KeyPress:
		a, ok := ev.Key.Action()
		if !ok {
			return false
		}
		n, ok := d.Resolve(ev.Target)
		if !ok {
			return false
		}
		return d.engine.Perform(a, n)
	}
	return false
}

// click toggles a group when its toggle affordance was hit, otherwise it
// focuses the row. Clicking never selects.
func (d *Dispatcher) click(t Target) bool {
	n, ok := d.Resolve(t)
	if !ok {
		return false
	}
	if n.IsGroup() && t.Toggle && t.NodeID == n.ID {
		return d.engine.ToggleGroup(n.ID)
	}
	if d.engine.State().FocusedID == n.ID {
		return false
	}
	d.engine.SetFocused(n)
	return true
}

// rootFocus focuses the first enabled node when the root container gains
// focus with nothing focused. The lookup ignores ancestor visibility.
func (d *Dispatcher) rootFocus() bool {
	if _, ok := d.engine.Focused(); ok {
		return false
	}
	n, ok := d.engine.Model().FirstAnywhere()
	if !ok {
		return false
	}
	d.engine.SetFocused(n)
	return true
}
