// Package registry holds the selectable items of a picker session and
// their enabled flags.
package registry

import (
	"strings"

	"filepick/internal/content"
	"filepick/internal/errors"

	"golang.org/x/sync/errgroup"
)

// ErrNoItem is returned when an operation targets an index with no item.
var ErrNoItem = errors.New("no item at index")

const defaultConcurrency = 8

// Item is one selectable, path-backed entry.
type Item struct {
	ID       string
	Label    string
	Category Category
	Enabled  bool

	size  int
	sized bool
}

// CachedSize returns the content length read for the item, if any.
func (it Item) CachedSize() (int, bool) {
	return it.size, it.sized
}

// Registry owns the item set. It is not safe for concurrent use; the
// picker drives it from a single goroutine.
type Registry struct {
	items       []Item
	index       map[string]int
	reader      content.Reader
	concurrency int
}

// Option configures a Registry.
type Option func(*Registry)

// WithConcurrency bounds the number of parallel reads in ToggleAll.
func WithConcurrency(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// New builds a registry from paths in order. Blank entries are skipped
// and only the first occurrence of a duplicate path is kept.
func New(paths []string, reader content.Reader, opts ...Option) *Registry {
	r := &Registry{
		items:       make([]Item, 0, len(paths)),
		index:       make(map[string]int, len(paths)),
		reader:      reader,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, p := range paths {
		id := strings.TrimSpace(p)
		if id == "" {
			continue
		}
		if _, dup := r.index[id]; dup {
			continue
		}
		r.index[id] = len(r.items)
		r.items = append(r.items, Item{
			ID:       id,
			Label:    id,
			Category: CategoryOf(id),
		})
	}
	return r
}

// Len returns the number of items.
func (r *Registry) Len() int {
	return len(r.items)
}

// At returns the item at i.
func (r *Registry) At(i int) (Item, bool) {
	if i < 0 || i >= len(r.items) {
		return Item{}, false
	}
	return r.items[i], true
}

// Index returns the position of id.
func (r *Registry) Index(id string) (int, bool) {
	i, ok := r.index[id]
	return i, ok
}

// Items returns a copy of the items in order.
func (r *Registry) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// AllEnabled reports whether every item is enabled. It is false for an
// empty registry.
func (r *Registry) AllEnabled() bool {
	if len(r.items) == 0 {
		return false
	}
	for _, it := range r.items {
		if !it.Enabled {
			return false
		}
	}
	return true
}

// EnabledIDs returns the ids of enabled items in input order. The result
// is never nil.
func (r *Registry) EnabledIDs() []string {
	ids := make([]string, 0, len(r.items))
	for _, it := range r.items {
		if it.Enabled {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// Toggle flips the item at i. When the item becomes enabled without a
// cached size, its content is read; a read failure is returned but the
// flip stands.
func (r *Registry) Toggle(i int) error {
	if i < 0 || i >= len(r.items) {
		return ErrNoItem
	}
	it := &r.items[i]
	it.Enabled = !it.Enabled
	if it.Enabled && !it.sized {
		return r.load(i)
	}
	return nil
}

// ToggleAll disables everything when every item is enabled and enables
// everything otherwise. Missing sizes are read in parallel and applied
// only once every read has finished. Read failures are returned in item
// order.
func (r *Registry) ToggleAll() []error {
	target := !r.AllEnabled()

	var pending []int
	for i := range r.items {
		r.items[i].Enabled = target
		if target && !r.items[i].sized {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 || r.reader == nil {
		return nil
	}

	sizes := make([]int, len(pending))
	failures := make([]error, len(pending))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for n, i := range pending {
		id := r.items[i].ID
		g.Go(func() error {
			sizes[n], failures[n] = r.reader.Length(id)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for n, i := range pending {
		if failures[n] != nil {
			errs = append(errs, failures[n])
			continue
		}
		r.items[i].size = sizes[n]
		r.items[i].sized = true
	}
	return errs
}

// Refresh drops the cached size of id and, if the item is enabled, reads
// it again. It reports whether id is a known item.
func (r *Registry) Refresh(id string) (bool, error) {
	i, ok := r.index[id]
	if !ok {
		return false, nil
	}
	r.items[i].size = 0
	r.items[i].sized = false
	if !r.items[i].Enabled {
		return true, nil
	}
	return true, r.load(i)
}

func (r *Registry) load(i int) error {
	if r.reader == nil {
		return nil
	}
	n, err := r.reader.Length(r.items[i].ID)
	if err != nil {
		return err
	}
	r.items[i].size = n
	r.items[i].sized = true
	return nil
}
