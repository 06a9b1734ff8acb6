package common

import (
	"filepick/internal/layout"
	"filepick/internal/picker"
	"filepick/internal/registry"
	"filepick/internal/stats"
	"filepick/pkg/types"
)

// FrameSource defines the state views read to render a frame
type FrameSource interface {
	Layout() layout.Layout
	Cursor() picker.Cursor
	Stats() stats.Stats
	Item(i int) (registry.Item, bool)
	Ignored(i int) bool

	// RuleCount is the number of loaded patterns, or -1 while loading.
	RuleCount() int
	Status() string
	ShowHelp() bool
	Keys() types.KeyMap
}
