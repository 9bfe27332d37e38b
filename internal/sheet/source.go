package sheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrFileNotFound is returned when a local workbook path does not exist.
var ErrFileNotFound = errors.New("workbook file not found")

// Source yields the sheets of a workbook as typed rows.
type Source interface {
	// SheetNames returns sheet names in workbook order.
	SheetNames() []string

	// Rows returns the ordered rows of the named sheet.
	Rows(name string) ([]Row, error)

	// Close releases the underlying workbook.
	Close() error
}

// Fetcher downloads remote workbooks addressed by gs:// URIs.
type Fetcher interface {
	FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error)
}

// Workbook is an excelize-backed Source.
type Workbook struct {
	file *excelize.File
}

// OpenFile opens a workbook from a local path.
func OpenFile(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("OpenFile: %s: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("OpenFile: stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("OpenFile: failed to open Excel file: %w", err)
	}
	return &Workbook{file: f}, nil
}

// OpenReader opens a workbook from an in-memory stream.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("OpenReader: failed to open Excel file: %w", err)
	}
	return &Workbook{file: f}, nil
}

// Open opens a workbook from a local path or, for gs:// locations, from
// bytes downloaded through fetcher.
func Open(ctx context.Context, location string, fetcher Fetcher) (*Workbook, error) {
	if !strings.HasPrefix(location, "gs://") {
		return OpenFile(location)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("Open: no storage fetcher configured for %s", location)
	}

	data, err := fetcher.FetchFromGCS(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	return OpenReader(bytes.NewReader(data))
}

// SheetNames implements Source.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows implements Source. Values are read raw so that dates stay serial
// numbers; the stored cell type decides whether a value is text.
func (w *Workbook) Rows(name string) ([]Row, error) {
	raw, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("Rows: failed to read sheet %s: %w", name, err)
	}

	rows := make([]Row, len(raw))
	for i, values := range raw {
		row := make(Row, len(values))
		for j, v := range values {
			if strings.TrimSpace(v) == "" {
				row[j] = Empty()
				continue
			}
			row[j] = ParseCell(v, w.isStringCell(name, j+1, i+1))
		}
		rows[i] = row
	}
	return rows, nil
}

// isStringCell reports whether the workbook stores the cell as a string.
func (w *Workbook) isStringCell(sheetName string, col, row int) bool {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	typ, err := w.file.GetCellType(sheetName, ref)
	if err != nil {
		return false
	}
	return typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString
}

// Close implements Source.
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// Memory is a Source over sheets already held in memory.
type Memory struct {
	Sheets []Sheet
}

// NewMemory creates a Memory source.
func NewMemory(sheets ...Sheet) *Memory {
	return &Memory{Sheets: sheets}
}

// SheetNames implements Source.
func (m *Memory) SheetNames() []string {
	names := make([]string, len(m.Sheets))
	for i, s := range m.Sheets {
		names[i] = s.Name
	}
	return names
}

// Rows implements Source.
func (m *Memory) Rows(name string) ([]Row, error) {
	for _, s := range m.Sheets {
		if s.Name == name {
			return s.Rows, nil
		}
	}
	return nil, fmt.Errorf("Rows: sheet %q not found", name)
}

// Close implements Source.
func (m *Memory) Close() error { return nil }

var (
	_ Source = (*Workbook)(nil)
	_ Source = (*Memory)(nil)
)
