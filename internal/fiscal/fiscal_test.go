package fiscal

import (
	"fmt"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/condo-os/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialToDateValue(t *testing.T) {
	tests := []struct {
		serial float64
		want   string
		ok     bool
	}{
		{25569, "1970-01-01", true},
		{44927, "2023-01-01", true},
		{45000, "2023-03-15", true},
		{45000.75, "2023-03-15", true},
		{45658, "2025-01-01", true},
		{1000, "1902-09-26", true},
		{999, "", false},
		{12, "", false},
		{-45000, "", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.serial), func(t *testing.T) {
			got, ok := SerialToDateValue(tt.serial)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, FormatDate(got))
			}
		})
	}
}

func TestSerialToDateRejectsNonNumbers(t *testing.T) {
	_, ok := SerialToDate(sheet.Text("15/03/2023"))
	assert.False(t, ok)

	_, ok = SerialToDate(sheet.Empty())
	assert.False(t, ok)

	d, ok := SerialToDate(sheet.Number(45000))
	require.True(t, ok)
	assert.Equal(t, civil.Date{Year: 2023, Month: 3, Day: 15}, d)
}

func TestSerialToDateRoundTrip(t *testing.T) {
	for serial := 1000.0; serial < 60000; serial += 97 {
		d, ok := SerialToDateValue(serial)
		require.True(t, ok)

		parsed, err := civil.ParseDate(FormatDate(d))
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
		assert.Equal(t, int(serial)-ExcelEpochOffset, parsed.DaysSince(civil.Date{Year: 1970, Month: 1, Day: 1}))
	}
}

func TestQuarter(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-15", "Q1"},
		{"2024-03-31", "Q1"},
		{"2024-04-01", "Q2"},
		{"2024-06-30", "Q2"},
		{"2024-07-01", "Q3"},
		{"2024-09-30", "Q3"},
		{"2024-10-01", "Q4"},
		{"2024-12-31", "Q4"},
		{"not a date", ""},
		{"2024-13-01", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, Quarter(tt.date))
		})
	}
}

func TestYear(t *testing.T) {
	assert.Equal(t, 2024, Year("2024-05-01"))
	assert.Equal(t, 0, Year("abc"))
	assert.Equal(t, 0, Year(""))

	d := civil.Date{Year: 2025, Month: 11, Day: 3}
	assert.Equal(t, 2025, YearOf(d))
	assert.Equal(t, "Q4", QuarterOf(d))
}
