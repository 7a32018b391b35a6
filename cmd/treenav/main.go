package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/treenav"
	"github.com/smileynet/treenav/internal/browser"
	"github.com/smileynet/treenav/internal/config"
	"github.com/smileynet/treenav/internal/debug"
	"github.com/smileynet/treenav/internal/input"
	"github.com/smileynet/treenav/internal/nav"
	"github.com/smileynet/treenav/internal/state"
	"github.com/smileynet/treenav/internal/tree"
	"github.com/smileynet/treenav/internal/watch"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for treenav.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Browse  BrowseCmd        `cmd:"" help:"Browse a tree interactively."`
	Outline OutlineCmd       `cmd:"" help:"Print the outline a fresh browser would show."`
	Replay  ReplayCmd        `cmd:"" help:"Replay input against a tree and print every renderer intent."`
}

// TreeSource names the tree shared by every command.
type TreeSource struct {
	File   string `arg:"" optional:"" help:"Tree file (YAML or JSON). Defaults to tree.path from config."`
	Format string `help:"Tree file format: auto, yaml or json." default:""`
	Sample string `help:"Use a bundled sample tree (menu, files) instead of a file."`
}

const (
	// sampleDir holds local samples that shadow the bundled ones.
	sampleDir = ".treenav/samples"
	// sessionDir holds remembered browse sessions, one file per tree.
	sessionDir = ".treenav/sessions"
)

var (
	// errNoTree is returned when neither the command line nor config names a tree.
	errNoTree = errors.New("no tree file given (pass FILE, --sample or set tree.path)")
	// errTwoSources is returned when both FILE and --sample are given.
	errTwoSources = errors.New("pass FILE or --sample, not both")
)

// inputError marks failures caused by the tree file or the replayed input,
// as opposed to setup problems.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

// loadedTree is a forest plus where it came from.
type loadedTree struct {
	Title   string
	Path    string // empty for samples
	Format  tree.Format
	Roots   []*tree.Node
	Session string // key for remembered browse state
}

// resolve picks the tree path and format, command line first.
func (s TreeSource) resolve(cfg *config.Config) (string, tree.Format, error) {
	path := s.File
	if path == "" {
		path = cfg.Tree.Path
	}
	if path == "" {
		return "", "", errNoTree
	}
	name := s.Format
	if name == "" {
		name = cfg.Tree.Format
	}
	format, err := tree.ParseFormat(name)
	if err != nil {
		return "", "", err
	}
	return path, format, nil
}

// load reads the tree, reporting failures as input errors.
func (s TreeSource) load(cfg *config.Config) (loadedTree, error) {
	if s.Sample != "" {
		if s.File != "" {
			return loadedTree{}, errTwoSources
		}
		roots, err := treenav.LoadSample(treenav.OverlayFS(sampleDir, treenav.Samples), s.Sample)
		if err != nil {
			return loadedTree{}, &inputError{err: err}
		}
		return loadedTree{Title: s.Sample + " (sample)", Roots: roots, Session: "sample-" + s.Sample}, nil
	}

	path, format, err := s.resolve(cfg)
	if err != nil {
		return loadedTree{}, err
	}
	roots, err := tree.Load(path, format)
	if err != nil {
		return loadedTree{}, &inputError{err: err}
	}
	return loadedTree{
		Title:   filepath.Base(path),
		Path:    path,
		Format:  format,
		Roots:   roots,
		Session: state.SessionID(path),
	}, nil
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/treenav/config.yaml"),
		".treenav/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// --- Browse command ---

// BrowseCmd opens the interactive tree browser.
type BrowseCmd struct {
	TreeSource `embed:""`
	Watch      bool `help:"Reload the tree when the file changes."`
	NoMouse    bool `help:"Disable mouse support." name:"no-mouse"`
	Remember   bool `help:"Restore expansion, focus and selection from the last session, and save them on exit."`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds the browser and launches it.
func (b *BrowseCmd) Run() error {
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	logger, closeLog, err := debug.Open(cfg.Debug.LogFile)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer closeLog() //nolint:errcheck // best-effort log close on exit

	m, cleanup, err := b.model(cfg, logger)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer cleanup()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if m.mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	prog := tea.NewProgram(m.Model, opts...)
	return b.run(isTTY, prog, m.save)
}

// browseModel is a browser model plus the settings the program needs.
type browseModel struct {
	browser.Model
	mouse bool
	save  func(tea.Model) error // nil unless the session is remembered
}

// model loads the tree and builds the browser from config and flags.
func (b *BrowseCmd) model(cfg *config.Config, logger *slog.Logger) (browseModel, func(), error) {
	lt, err := b.load(cfg)
	if err != nil {
		return browseModel{}, nil, err
	}

	mouse := cfg.Browse.Mouse && !b.NoMouse
	opts := []browser.Option{
		browser.WithTitle(lt.Title),
		browser.WithMouse(mouse),
		browser.WithVimKeys(cfg.Browse.VimKeys),
		browser.WithDoubleClick(cfg.Browse.DoubleClick),
		browser.WithIndent(cfg.Browse.Indent),
		browser.WithLogger(logger),
	}

	cleanup := func() {}
	if (cfg.Browse.Watch || b.Watch) && lt.Path != "" {
		w, err := watch.New(lt.Path)
		if err != nil {
			return browseModel{}, nil, err
		}
		cleanup = func() { _ = w.Close() }
		opts = append(opts, browser.WithWatcher(w, func() ([]*tree.Node, error) {
			return tree.Load(lt.Path, lt.Format)
		}))
	}

	var save func(tea.Model) error
	if cfg.Browse.Remember || b.Remember {
		store := state.NewFileStore(sessionDir)
		s, found, err := store.Load(lt.Session)
		switch {
		case err != nil:
			logger.Warn("browse: session not restored", "session", lt.Session, "error", err)
		case found:
			opts = append(opts, browser.WithSnapshot(browser.Snapshot{
				Expanded: s.Expanded,
				Focused:  s.Focused,
				Selected: s.Selected,
			}))
		}
		save = saveSession(store, lt.Session)
	}

	m, err := browser.NewModel(lt.Roots, opts...)
	if err != nil {
		cleanup()
		return browseModel{}, nil, err
	}
	return browseModel{Model: m, mouse: mouse, save: save}, cleanup, nil
}

// saveSession returns a hook that stores the final browser state under id.
func saveSession(store *state.FileStore, id string) func(tea.Model) error {
	return func(final tea.Model) error {
		m, ok := final.(browser.Model)
		if !ok {
			return nil
		}
		snap := m.Snapshot()
		return store.Save(state.Session{
			ID:       id,
			Expanded: snap.Expanded,
			Focused:  snap.Focused,
			Selected: snap.Selected,
			SavedAt:  time.Now(),
		})
	}
}

// run executes the tea program, enabling testable wiring. save, when set,
// receives the final model after the program exits cleanly.
func (b *BrowseCmd) run(isTTY bool, prog teaRunner, save func(tea.Model) error) error {
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if save == nil {
		return nil
	}
	if err := save(final); err != nil {
		return fmt.Errorf("browse: saving session: %w", err)
	}
	return nil
}

// --- Outline command ---

// OutlineCmd prints the tree as a fresh browser would paint it.
type OutlineCmd struct {
	TreeSource `embed:""`
}

// Run executes the outline command.
func (o *OutlineCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("outline: %w", err)
	}
	return o.run(os.Stdout, cfg)
}

func (o *OutlineCmd) run(w io.Writer, cfg *config.Config) error {
	lt, err := o.load(cfg)
	if err != nil {
		return fmt.Errorf("outline: %w", err)
	}
	return browser.WriteOutline(w, tree.NewModel(lt.Roots), cfg.Browse.Indent)
}

// --- Replay command ---

// ReplayCmd feeds a scripted event sequence to the engine and prints the
// renderer intents it produces.
type ReplayCmd struct {
	TreeSource `embed:""`
	Keys       []string `help:"Events to replay: key names (down, right, enter, ...), tab, click=ID, toggle=ID, dblclick=ID." sep:"," required:""`
	NoEnter    bool     `help:"Do not focus the tree before replaying." name:"no-enter"`
}

// Run executes the replay command.
func (r *ReplayCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	logger, closeLog, err := debug.Open(cfg.Debug.LogFile)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	defer closeLog() //nolint:errcheck // best-effort log close on exit
	return r.run(os.Stdout, cfg, logger)
}

func (r *ReplayCmd) run(w io.Writer, cfg *config.Config, logger *slog.Logger) error {
	events, err := parseEvents(r.Keys)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	lt, err := r.load(cfg)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	engine, err := nav.New(tree.NewModel(lt.Roots), intentPrinter{w: w}, nav.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	d, err := input.NewDispatcher(engine, input.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	if !r.NoEnter {
		_, _ = fmt.Fprintln(w, "> enter")
		d.Dispatch(input.RootFocused())
	}
	for _, ev := range events {
		_, _ = fmt.Fprintf(w, "> %s\n", ev.token)
		e := ev.event
		if e.Kind == input.KeyPress {
			e.Target = input.Target{NodeID: engine.State().FocusedID}
		}
		d.Dispatch(e)
	}

	st := engine.State()
	_, _ = fmt.Fprintf(w, "state focused=%s selected=%s\n", orNone(st.FocusedID), orNone(st.SelectedID))
	return nil
}

// scripted is one parsed replay token.
type scripted struct {
	token string
	event input.Event
}

// parseEvents turns replay tokens into dispatcher events. Key events are
// retargeted at replay time to whatever holds focus.
func parseEvents(tokens []string) ([]scripted, error) {
	var out []scripted
	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		if name, id, ok := strings.Cut(tok, "="); ok {
			if id == "" {
				return nil, &inputError{err: fmt.Errorf("event %q: missing node id", tok)}
			}
			var ev input.Event
			switch strings.ToLower(name) {
			case "click":
				ev = input.ClickOn(id)
			case "toggle":
				ev = input.ToggleClickOn(id)
			case "dblclick":
				ev = input.DoubleActivateOn(id)
			default:
				return nil, &inputError{err: fmt.Errorf("unknown event %q", tok)}
			}
			out = append(out, scripted{token: tok, event: ev})
			continue
		}
		if strings.EqualFold(tok, "tab") {
			out = append(out, scripted{token: tok, event: input.RootFocused()})
			continue
		}
		k, ok := input.ParseKey(tok)
		if !ok {
			return nil, &inputError{err: fmt.Errorf("unknown key %q", tok)}
		}
		out = append(out, scripted{token: tok, event: input.KeyOn("", k)})
	}
	return out, nil
}

// intentPrinter is a nav.Renderer that prints one line per intent.
type intentPrinter struct {
	w io.Writer
}

func (p intentPrinter) ApplyFocus(i nav.FocusIntent) {
	_, _ = fmt.Fprintf(p.w, "focus %s -> %s\n", nodeName(i.Previous), nodeName(i.Next))
}

func (p intentPrinter) ApplySelection(intents ...nav.SelectionIntent) {
	parts := make([]string, len(intents))
	for i, in := range intents {
		sign := "-"
		if in.Selected {
			sign = "+"
		}
		parts[i] = sign + in.ID
	}
	_, _ = fmt.Fprintf(p.w, "select %s\n", strings.Join(parts, " "))
}

func (p intentPrinter) ApplyGroup(i nav.GroupIntent) {
	verb := "close"
	if i.Opened {
		verb = "open"
	}
	_, _ = fmt.Fprintf(p.w, "%s %s\n", verb, i.Node.ID)
}

func nodeName(n *tree.Node) string {
	if n == nil {
		return "(root)"
	}
	return n.ID
}

func orNone(id string) string {
	if id == "" {
		return "-"
	}
	return id
}

const (
	exitSuccess = 0
	exitInput   = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ie *inputError
	if errors.As(err, &ie) {
		return exitInput
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("treenav"),
		kong.Description("Keyboard and mouse navigation for collapsible trees."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
