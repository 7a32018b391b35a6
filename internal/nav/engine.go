// Package nav implements the tree widget interaction engine: roving focus,
// single selection, group expand/collapse and the depth-first traversal
// behind directional keyboard navigation.
//
// The engine never paints. Every visible change is reported to a Renderer as
// an intent, and the host decides how to draw it. An Engine is not safe for
// concurrent use; the host must deliver events one at a time from a single
// goroutine.
package nav

import (
	"errors"
	"log/slog"

	"github.com/smileynet/treenav/internal/debug"
	"github.com/smileynet/treenav/internal/tree"
)

// Initialization errors returned by New.
var (
	ErrNoRenderer = errors.New("nav: renderer is required")
	ErrNoModel    = errors.New("nav: tree model is required")
)

// Renderer applies the visual side of state changes.
// Each transition produces exactly one call.
type Renderer interface {
	ApplyFocus(FocusIntent)
	ApplySelection(intents ...SelectionIntent)
	ApplyGroup(GroupIntent)
}

// State is the engine's mutable navigation state. Empty IDs mean unset.
type State struct {
	FocusedID  string
	SelectedID string
}

// Engine owns NavigationState for one tree widget.
type Engine struct {
	model    *tree.Model
	renderer Renderer
	logger   *slog.Logger
	state    State
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-action debug records.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine over model that reports to r. Nothing is focused or
// selected initially, so the root container holds the tab stop.
func New(model *tree.Model, r Renderer, opts ...Option) (*Engine, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	if r == nil {
		return nil, ErrNoRenderer
	}
	e := &Engine{
		model:    model,
		renderer: r,
		logger:   debug.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Model returns the tree the engine navigates.
func (e *Engine) Model() *tree.Model {
	return e.model
}

// State returns a copy of the current navigation state.
func (e *Engine) State() State {
	return e.state
}
