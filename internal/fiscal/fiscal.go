// Package fiscal converts spreadsheet date serials to calendar dates and
// derives calendar-aligned fiscal quarters and years.
package fiscal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/condo-os/internal/sheet"
)

const (
	// ExcelEpochOffset is the number of days between the spreadsheet epoch
	// (day 0 = 1899-12-30) and 1970-01-01.
	ExcelEpochOffset = 25569

	// MinSerial rejects small integers that are not dates.
	MinSerial = 1000

	// MaxSerial is 9999-12-31, the last date spreadsheets can represent.
	MaxSerial = 2958465

	dateFormat = "2006-01-02"
)

// SerialToDateValue converts a date serial to a calendar date. ok is false
// for serials below MinSerial and for values no spreadsheet date can hold.
func SerialToDateValue(serial float64) (civil.Date, bool) {
	if math.IsNaN(serial) || serial < MinSerial || serial > MaxSerial {
		return civil.Date{}, false
	}
	days := math.Floor(serial - ExcelEpochOffset)
	frac := time.Duration((serial - ExcelEpochOffset - days) * float64(24*time.Hour))
	t := time.Unix(0, 0).UTC().AddDate(0, 0, int(days)).Add(frac)
	return civil.DateOf(t), true
}

// SerialToDate converts a numeric cell to a calendar date. Non-numeric
// cells are invalid.
func SerialToDate(c sheet.Cell) (civil.Date, bool) {
	v, ok := c.Float()
	if !ok {
		return civil.Date{}, false
	}
	return SerialToDateValue(v)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(d civil.Date) string {
	return d.In(time.UTC).Format(dateFormat)
}

// Quarter maps the month segment of a YYYY-MM-DD string to Q1..Q4.
// Malformed input yields "".
func Quarter(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) < 2 {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return ""
	}
	return fmt.Sprintf("Q%d", (month-1)/3+1)
}

// Year parses the year segment of a YYYY-MM-DD string. Malformed input
// yields 0.
func Year(date string) int {
	parts := strings.Split(date, "-")
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	return year
}

// QuarterOf returns the fiscal quarter of d.
func QuarterOf(d civil.Date) string {
	return Quarter(FormatDate(d))
}

// YearOf returns the fiscal year of d.
func YearOf(d civil.Date) int {
	return d.Year
}
