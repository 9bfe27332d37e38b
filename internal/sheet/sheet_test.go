package sheet

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		isString bool
		want     Cell
	}{
		{"blank", "   ", false, Empty()},
		{"integer", "45000", false, Number(45000)},
		{"negative decimal", "-120.5", false, Number(-120.5)},
		{"text", " Apartamento A-1 ", false, Text("Apartamento A-1")},
		{"numeric string stays text", "123", true, Text("123")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCell(tt.raw, tt.isString))
		})
	}
}

func TestCellAccessors(t *testing.T) {
	n := Number(12.5)
	v, ok := n.Float()
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)
	assert.Equal(t, "", n.TextValue())
	assert.Equal(t, "12.5", n.String())

	s := Text("Banco")
	_, ok = s.Float()
	assert.False(t, ok)
	assert.Equal(t, "Banco", s.TextValue())

	assert.True(t, Text("  ").IsEmpty())
}

func TestRowAt(t *testing.T) {
	row := R("A-1", 3.5, nil)

	assert.True(t, row.At(0).IsText())
	assert.True(t, row.At(1).IsNumber())
	assert.True(t, row.At(2).IsEmpty())
	assert.True(t, row.At(10).IsEmpty())
	assert.True(t, row.At(-1).IsEmpty())
	assert.False(t, row.IsBlank())
	assert.True(t, R(nil, "").IsBlank())
}

func TestWorkbookRows(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Apartamento A-1"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 45000))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "Cuota mensual"))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", 150.25))
	require.NoError(t, f.SetCellValue("Sheet1", "D2", "123"))
	_, err := f.NewSheet("Banco")
	require.NoError(t, err)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	wb, err := OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Sheet1", "Banco"}, wb.SheetNames())

	rows, err := wb.Rows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Text("Apartamento A-1"), rows[0].At(0))
	assert.Equal(t, Number(45000), rows[1].At(0))
	assert.Equal(t, Text("Cuota mensual"), rows[1].At(1))
	assert.Equal(t, Number(150.25), rows[1].At(2))
	assert.Equal(t, Text("123"), rows[1].At(3))
}

func TestOpenFileNotFound(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

type mockFetcher struct {
	FetchFromGCSFunc func(ctx context.Context, gcsURI string) ([]byte, error)
}

func (m *mockFetcher) FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error) {
	return m.FetchFromGCSFunc(ctx, gcsURI)
}

func TestOpenFromGCS(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Presupuesto"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	var requested string
	fetcher := &mockFetcher{
		FetchFromGCSFunc: func(ctx context.Context, gcsURI string) ([]byte, error) {
			requested = gcsURI
			return buf.Bytes(), nil
		},
	}

	wb, err := Open(context.Background(), "gs://condo-imports/2025/cuentas.xlsx", fetcher)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "gs://condo-imports/2025/cuentas.xlsx", requested)
	assert.Equal(t, []string{"Sheet1"}, wb.SheetNames())
}

func TestOpenFromGCSWithoutFetcher(t *testing.T) {
	_, err := Open(context.Background(), "gs://bucket/file.xlsx", nil)
	assert.Error(t, err)
}

func TestMemorySource(t *testing.T) {
	src := NewMemory(Sheet{Name: "A1", Rows: []Row{R("A-1")}})

	assert.Equal(t, []string{"A1"}, src.SheetNames())
	rows, err := src.Rows("A1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = src.Rows("missing")
	assert.Error(t, err)
}
