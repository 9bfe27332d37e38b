// Package sheet models spreadsheet content as typed rows and reads
// workbooks into that model.
package sheet

import (
	"strconv"
	"strings"
)

// Kind is the variant tag of a Cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
)

// Cell is a single spreadsheet value: empty, a number, or text.
type Cell struct {
	Kind Kind
	Num  float64
	Str  string
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{Kind: KindEmpty} }

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Kind: KindNumber, Num: v} }

// Text returns a text cell. Blank text collapses to an empty cell.
func Text(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty()
	}
	return Cell{Kind: KindText, Str: s}
}

// ParseCell builds a cell from a raw workbook value. isString marks values
// the workbook stores as strings; those never become numbers.
func ParseCell(raw string, isString bool) Cell {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Empty()
	}
	if !isString {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(v)
		}
	}
	return Text(raw)
}

func (c Cell) IsEmpty() bool  { return c.Kind == KindEmpty }
func (c Cell) IsNumber() bool { return c.Kind == KindNumber }
func (c Cell) IsText() bool   { return c.Kind == KindText }

// Float returns the numeric value and whether the cell is a number.
func (c Cell) Float() (float64, bool) {
	if c.Kind != KindNumber {
		return 0, false
	}
	return c.Num, true
}

// TextValue returns the text of a text cell and "" for anything else.
func (c Cell) TextValue() string {
	if c.Kind != KindText {
		return ""
	}
	return c.Str
}

// String renders any cell as text. Used when scanning whole rows for markers.
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindText:
		return c.Str
	default:
		return ""
	}
}

// Row is an ordered, possibly ragged, sequence of cells.
type Row []Cell

// At returns the cell at index i, or an empty cell when the row is shorter.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Empty()
	}
	return r[i]
}

// IsBlank reports whether every cell of the row is empty.
func (r Row) IsBlank() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Sheet is a named worksheet.
type Sheet struct {
	Name string
	Rows []Row
}
