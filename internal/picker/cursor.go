package picker

import "filepick/internal/layout"

// Direction is a cursor movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Cursor is the highlighted cell. ActiveColumn always equals the column of
// SelectedIndex in the current layout.
type Cursor struct {
	ActiveColumn  int
	SelectedIndex int
}

// move returns the cursor after d, and whether it changed. Vertical moves
// stay inside the current column; horizontal moves keep the row and clamp
// to the last item.
func (c Cursor) move(d Direction, l layout.Layout) (Cursor, bool) {
	n := l.ItemCount
	if n == 0 {
		return c, false
	}
	start, end := l.ColumnRange(c.ActiveColumn)
	row := c.SelectedIndex - start
	next := c.SelectedIndex

	switch d {
	case Down:
		if c.SelectedIndex+1 < end {
			next = c.SelectedIndex + 1
		}
	case Up:
		if c.SelectedIndex > start {
			next = c.SelectedIndex - 1
		}
	case Right:
		if c.ActiveColumn < l.ColumnCount-1 {
			next = min((c.ActiveColumn+1)*l.ItemsPerColumn+row, n-1)
		}
	case Left:
		if c.ActiveColumn > 0 {
			next = min((c.ActiveColumn-1)*l.ItemsPerColumn+row, n-1)
		}
	}

	if next == c.SelectedIndex {
		return c, false
	}
	return at(next, l), true
}

func at(index int, l layout.Layout) Cursor {
	if l.ItemCount == 0 {
		return Cursor{}
	}
	index = min(max(index, 0), l.ItemCount-1)
	return Cursor{ActiveColumn: l.ColumnOf(index), SelectedIndex: index}
}
