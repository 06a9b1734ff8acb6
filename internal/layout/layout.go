// Package layout arranges items into a fixed number of columns that fit the
// terminal and tracks the vertical scroll window shared by all columns.
package layout

const (
	DefaultMinColumnWidth = 40
	DefaultMaxColumns     = 4
	DefaultHeaderRows     = 6

	// FrameWidth is the horizontal space taken by the border and padding.
	FrameWidth = 4
)

// Options tunes the geometry. Non-positive widths and column limits fall
// back to the defaults.
type Options struct {
	MinColumnWidth int
	MaxColumns     int
	HeaderRows     int
}

// DefaultOptions returns the default geometry.
func DefaultOptions() Options {
	return Options{
		MinColumnWidth: DefaultMinColumnWidth,
		MaxColumns:     DefaultMaxColumns,
		HeaderRows:     DefaultHeaderRows,
	}
}

func (o Options) normalized() Options {
	if o.MinColumnWidth <= 0 {
		o.MinColumnWidth = DefaultMinColumnWidth
	}
	if o.MaxColumns <= 0 {
		o.MaxColumns = DefaultMaxColumns
	}
	if o.HeaderRows < 0 {
		o.HeaderRows = DefaultHeaderRows
	}
	return o
}

// Layout is the geometry for one terminal size and item count.
type Layout struct {
	TerminalWidth  int
	TerminalHeight int
	ColumnCount    int
	ItemsPerColumn int
	ColumnWidths   []int
	VisibleRows    int
	ScrollOffset   int
	ItemCount      int
}

// Compute derives a layout. The scroll offset starts at zero.
func Compute(width, height, itemCount int, opts Options) Layout {
	opts = opts.normalized()
	width = max(width, 1)
	height = max(height, 1)
	itemCount = max(itemCount, 0)

	cols := min(max(width/opts.MinColumnWidth, 1), opts.MaxColumns)

	perColumn := 0
	if itemCount > 0 {
		perColumn = ceilDiv(itemCount, cols)
		// Drop columns the ceiling left empty.
		cols = ceilDiv(itemCount, perColumn)
	} else {
		cols = 1
	}

	return Layout{
		TerminalWidth:  width,
		TerminalHeight: height,
		ColumnCount:    cols,
		ItemsPerColumn: perColumn,
		ColumnWidths:   splitWidth(width-FrameWidth, cols),
		VisibleRows:    max(height-opts.HeaderRows, 1),
		ItemCount:      itemCount,
	}
}

// ColumnRange returns the half-open index range [start, end) of col.
func (l Layout) ColumnRange(col int) (start, end int) {
	if col < 0 || col >= l.ColumnCount {
		return 0, 0
	}
	start = min(col*l.ItemsPerColumn, l.ItemCount)
	end = min(start+l.ItemsPerColumn, l.ItemCount)
	return start, end
}

// ColumnOf returns the column holding item i.
func (l Layout) ColumnOf(i int) int {
	if l.ItemsPerColumn == 0 || i < 0 {
		return 0
	}
	return i / l.ItemsPerColumn
}

// RowOf returns the row of item i within its column.
func (l Layout) RowOf(i int) int {
	if l.ItemsPerColumn == 0 || i < 0 {
		return 0
	}
	return i % l.ItemsPerColumn
}

// IndexAt returns the item at row of col, or false when that cell is empty.
func (l Layout) IndexAt(col, row int) (int, bool) {
	if col < 0 || col >= l.ColumnCount || row < 0 || row >= l.ItemsPerColumn {
		return 0, false
	}
	i := col*l.ItemsPerColumn + row
	if i >= l.ItemCount {
		return 0, false
	}
	return i, true
}

// MaxScroll is the largest valid scroll offset.
func (l Layout) MaxScroll() int {
	return max(l.ItemsPerColumn-l.VisibleRows, 0)
}

// Follow moves the scroll window the least amount needed to show row.
func (l Layout) Follow(row int) Layout {
	off := l.ScrollOffset
	if row < off {
		off = row
	}
	if row >= off+l.VisibleRows {
		off = row - l.VisibleRows + 1
	}
	l.ScrollOffset = min(max(off, 0), l.MaxScroll())
	return l
}

// WithScroll returns l with offset clamped into range.
func (l Layout) WithScroll(offset int) Layout {
	l.ScrollOffset = min(max(offset, 0), l.MaxScroll())
	return l
}

// VisibleRange returns the half-open range of rows in the scroll window.
func (l Layout) VisibleRange() (first, last int) {
	first = l.ScrollOffset
	last = min(first+l.VisibleRows, l.ItemsPerColumn)
	return first, last
}

func splitWidth(usable, cols int) []int {
	widths := make([]int, cols)
	base := usable / cols
	extra := usable % cols
	for i := range widths {
		w := base
		if i < extra {
			w++
		}
		widths[i] = max(w, 1)
	}
	return widths
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
