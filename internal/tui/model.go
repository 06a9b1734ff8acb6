package tui

import (
	"filepick/internal/errors"
	"filepick/internal/ignore"
	"filepick/internal/layout"
	"filepick/internal/log"
	"filepick/internal/picker"
	"filepick/internal/registry"
	"filepick/internal/stats"
	"filepick/internal/tui/components"
	"filepick/internal/tui/messages"
	"filepick/internal/tui/styles"
	"filepick/internal/tui/views"
	"filepick/internal/watch"
	"filepick/pkg/types"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a Model.
type Options struct {
	// IgnorePath is the ignore file loaded when the program starts. Empty
	// means no rules.
	IgnorePath string
	Keys       types.KeyMap
	Theme      styles.Theme
	// Watcher, when set, must already track the ignore file and the items.
	Watcher *watch.Watcher
}

// Model is the bubbletea adapter around a picker session. Every message is
// applied to the session completely before View renders the next frame.
type Model struct {
	session  *picker.Session
	keys     types.KeyMap
	theme    styles.Theme
	status   *components.StatusBar
	watcher  *watch.Watcher
	showHelp bool

	ignorePath   string
	rulesPending bool

	// Seq of the latest rules load; older results are dropped
	rulesSeq int

	done     bool
	selected []string
	err      error
}

func New(session *picker.Session, opts Options) *Model {
	m := &Model{
		session:    session,
		keys:       opts.Keys,
		theme:      opts.Theme,
		watcher:    opts.Watcher,
		ignorePath: opts.IgnorePath,
	}
	m.status = components.NewStatusBar(m.theme.Stats)
	if m.ignorePath != "" {
		m.rulesPending = true
		m.status.SetLoading(true)
	}
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.rulesPending {
		cmds = append(cmds, loadRules(m.ignorePath, m.rulesSeq), m.status.Tick())
	} else {
		m.session.SetRules(nil)
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.session.Resize(msg.Width, msg.Height)
		return m, nil

	case messages.RulesLoadedMsg:
		if msg.Seq != m.rulesSeq {
			log.LogWithFields(log.F("seq", msg.Seq), log.F("latest", m.rulesSeq)).Debug("Dropping stale ignore rules")
			return m, nil
		}
		logRulesError(msg.Path, msg.Err)
		m.session.SetRules(msg.Rules)
		m.rulesPending = false
		m.status.SetLoading(false)
		m.status.SetText("")
		return m, nil

	case messages.FileChangedMsg:
		return m, m.handleFileChanged(msg)

	case messages.WatchClosedMsg:
		return m, nil
	}

	return m, m.status.Update(msg)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.finish(nil, picker.ErrCancelled)
	case key.Matches(msg, m.keys.Submit):
		return m.finish(m.session.Submit(), nil)
	case key.Matches(msg, m.keys.Up):
		m.session.Move(picker.Up)
	case key.Matches(msg, m.keys.Down):
		m.session.Move(picker.Down)
	case key.Matches(msg, m.keys.Left):
		m.session.Move(picker.Left)
	case key.Matches(msg, m.keys.Right):
		m.session.Move(picker.Right)
	case key.Matches(msg, m.keys.Toggle):
		// Read failures are logged by the session and show up in the stats
		_ = m.session.Toggle()
	case key.Matches(msg, m.keys.SelectAll):
		_ = m.session.ToggleAll()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleFileChanged(msg messages.FileChangedMsg) tea.Cmd {
	next := waitForChange(m.watcher)
	// The ignore file may be listed as an item too, so refresh before
	// deciding whether to reload
	m.session.Refresh(msg.ID)
	if msg.ID != m.ignorePath || m.ignorePath == "" {
		return next
	}

	log.LogWithFields(log.F("file", msg.ID)).Debug("Ignore file changed, reloading rules")
	// The current rules stay in force until the reload arrives
	m.rulesSeq++
	m.status.SetLoading(true)
	m.status.SetText("reloading rules")
	return tea.Batch(loadRules(m.ignorePath, m.rulesSeq), m.status.Tick(), next)
}

func (m *Model) finish(selected []string, err error) (tea.Model, tea.Cmd) {
	m.done = true
	m.selected = selected
	m.err = err
	if m.watcher != nil {
		m.watcher.Stop()
	}
	return m, tea.Quit
}

// View implements tea.Model
func (m *Model) View() string {
	if m.done {
		return ""
	}
	return views.RenderFrame(m, m.theme)
}

// Result returns the submitted ids, or picker.ErrCancelled. It is only
// meaningful after the program has exited.
func (m *Model) Result() ([]string, error) {
	if !m.done {
		return nil, picker.ErrCancelled
	}
	return m.selected, m.err
}

// Session returns the underlying picker session.
func (m *Model) Session() *picker.Session {
	return m.session
}

func loadRules(path string, seq int) tea.Cmd {
	return func() tea.Msg {
		rules, err := ignore.Load(path)
		return messages.RulesLoadedMsg{Path: path, Rules: rules, Err: err, Seq: seq}
	}
}

func logRulesError(path string, err error) {
	switch {
	case err == nil:
	case errors.IsConfigUnreadable(err):
		log.LogWithError(err).Warn("Ignore file unreadable, continuing without rules")
	case errors.IsInvalidPattern(err):
		log.LogWithFields(log.F("file", path), log.F("error", err)).Warn("Skipped ignore patterns that do not compile")
	default:
		log.LogWithError(err).Warn("Ignore file not loaded")
	}
}

func waitForChange(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	ch := w.FileChannel()
	return func() tea.Msg {
		mod, ok := <-ch
		if !ok {
			return messages.WatchClosedMsg{}
		}
		return messages.FileChangedMsg{ID: mod.ID}
	}
}

// FrameSource implementation

func (m *Model) Layout() layout.Layout            { return m.session.Layout() }
func (m *Model) Cursor() picker.Cursor            { return m.session.Cursor() }
func (m *Model) Stats() stats.Stats               { return m.session.Stats() }
func (m *Model) Item(i int) (registry.Item, bool) { return m.session.Item(i) }
func (m *Model) Ignored(i int) bool               { return m.session.Ignored(i) }
func (m *Model) ShowHelp() bool                   { return m.showHelp }
func (m *Model) Keys() types.KeyMap               { return m.keys }
func (m *Model) Status() string                   { return m.status.View() }

func (m *Model) RuleCount() int {
	if m.rulesPending {
		return -1
	}
	return m.session.Rules().Len()
}
