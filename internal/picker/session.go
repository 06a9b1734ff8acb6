// Package picker implements the selection session behind the terminal UI:
// the item registry, the ignore rules, the column layout, the cursor and the
// derived statistics, mutated only through the operations below.
package picker

import (
	"filepick/internal/errors"
	"filepick/internal/ignore"
	"filepick/internal/layout"
	"filepick/internal/log"
	"filepick/internal/registry"
	"filepick/internal/stats"

	"github.com/google/uuid"
)

// ErrCancelled is returned to the caller when the user leaves without
// submitting.
var ErrCancelled = errors.New("selection cancelled")

// Options configures a Session.
type Options struct {
	Layout layout.Options
	Width  int
	Height int
}

// Session owns all picker state. Every mutating operation recomputes the
// layout or stats it affects before returning, so readers always see a
// consistent snapshot.
type Session struct {
	id      string
	reg     *registry.Registry
	rules   *ignore.RuleSet
	ignored []bool
	opts    layout.Options
	layout  layout.Layout
	cursor  Cursor
	stats   stats.Stats
	log     *log.Logger
}

// New starts a session over reg. Rules start unset and match nothing until
// SetRules is called.
func New(reg *registry.Registry, opts Options) *Session {
	id := uuid.NewString()
	s := &Session{
		id:      id,
		reg:     reg,
		ignored: make([]bool, reg.Len()),
		opts:    opts.Layout,
		log:     log.LogWithFields(log.F("session", id)),
	}
	s.layout = layout.Compute(opts.Width, opts.Height, reg.Len(), s.opts)
	s.recompute()
	s.log.With(log.F("items", reg.Len())).Debug("Session started")
	return s
}

// ID identifies the session in log output.
func (s *Session) ID() string { return s.id }

func (s *Session) Layout() layout.Layout { return s.layout }
func (s *Session) Cursor() Cursor        { return s.cursor }
func (s *Session) Stats() stats.Stats    { return s.stats }
func (s *Session) Len() int              { return s.reg.Len() }

// Rules returns the active rule set, nil until rules are loaded.
func (s *Session) Rules() *ignore.RuleSet { return s.rules }

// Item returns the item at i.
func (s *Session) Item(i int) (registry.Item, bool) { return s.reg.At(i) }

// Ignored reports whether the item at i matches the active rules.
func (s *Session) Ignored(i int) bool {
	return i >= 0 && i < len(s.ignored) && s.ignored[i]
}

// Resize recomputes the layout for a new terminal size. The selected item
// stays selected and the scroll offset moves only as far as needed to keep
// it visible.
func (s *Session) Resize(width, height int) {
	prev := s.layout.ScrollOffset
	s.layout = layout.Compute(width, height, s.reg.Len(), s.opts).WithScroll(prev)
	s.cursor = at(s.cursor.SelectedIndex, s.layout)
	s.follow()
}

// Move applies d to the cursor and reports whether it moved.
func (s *Session) Move(d Direction) bool {
	next, moved := s.cursor.move(d, s.layout)
	if !moved {
		return false
	}
	s.cursor = next
	s.follow()
	return true
}

// Toggle flips the item under the cursor. A failed content read is logged
// and returned; the item stays toggled.
func (s *Session) Toggle() error {
	if s.reg.Len() == 0 {
		return nil
	}
	err := s.reg.Toggle(s.cursor.SelectedIndex)
	if err != nil {
		s.logReadError(err)
	}
	s.recompute()
	return err
}

// ToggleAll disables every item when all are enabled and enables every
// item otherwise. Read failures are logged and returned.
func (s *Session) ToggleAll() []error {
	errs := s.reg.ToggleAll()
	for _, err := range errs {
		s.logReadError(err)
	}
	s.recompute()
	return errs
}

// SetRules replaces the active rule set.
func (s *Session) SetRules(rules *ignore.RuleSet) {
	s.rules = rules
	for i, it := range s.reg.Items() {
		s.ignored[i] = rules.Matches(it.ID)
	}
	s.recompute()
	s.log.With(log.F("patterns", rules.Len())).Debug("Ignore rules applied")
}

// Refresh re-reads the content of id after it changed on disk. It reports
// whether id belongs to the session.
func (s *Session) Refresh(id string) bool {
	known, err := s.reg.Refresh(id)
	if !known {
		return false
	}
	if err != nil {
		s.logReadError(err)
	}
	s.recompute()
	return true
}

// Submit returns the enabled ids in input order.
func (s *Session) Submit() []string {
	ids := s.reg.EnabledIDs()
	s.log.With(log.F("selected", len(ids))).Info("Selection submitted")
	return ids
}

func (s *Session) follow() {
	s.layout = s.layout.Follow(s.layout.RowOf(s.cursor.SelectedIndex))
}

func (s *Session) recompute() {
	s.stats = stats.Recompute(s.reg.Items(), s.rules)
}

func (s *Session) logReadError(err error) {
	l := s.log.WithError(err)
	switch {
	case errors.IsFileNotFound(err):
		l.Warn("Item no longer exists")
	case errors.IsFileAccessDenied(err):
		l.Warn("Item content not readable, permission denied")
	default:
		l.Warn("Cannot read item content")
	}
}
