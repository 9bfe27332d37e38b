package extract

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dvloznov/condo-os/internal/classify"
	"github.com/dvloznov/condo-os/internal/sheet"
)

var unitCodePattern = regexp.MustCompile(`^([A-Za-z])-?(\d+)$`)

// Closing and totals rows in unit ledgers.
var ledgerExcludedMarkers = []string{"saldo anterior", "saldo inicial", "saldo final", "total"}

// Rows that open an account with a known balance.
var openingMarkers = []string{"saldo inicial", "saldo anterior", "apertura"}

var totalMarkers = []string{"total"}

// Labels of dated totals rows start with one of these.
var totalPrefixes = []string{"total", "subtotal", "sub-total", "sub total"}

// Totals and report titles in expense and budget sheets.
var summaryMarkers = []string{"total", "subtotal", "resumen", "informe", "reporte", "presupuesto", "budget"}

// IsUnitCode reports whether s looks like a unit code ("A1", "b-12").
func IsUnitCode(s string) bool {
	return unitCodePattern.MatchString(strings.TrimSpace(s))
}

// CanonicalUnitCode rewrites a unit code as upper-case Letter-Digits
// ("a1" → "A-1"). Values that are not unit codes are upper-cased only.
func CanonicalUnitCode(s string) string {
	s = strings.TrimSpace(s)
	m := unitCodePattern.FindStringSubmatch(s)
	if m == nil {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(m[1]) + "-" + m[2]
}

func truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// isTotalLabel reports whether a label names a totals row ("TOTAL",
// "Subtotal limpieza"). Descriptions that merely mention a total elsewhere
// are not totals rows.
func isTotalLabel(s string) bool {
	folded := classify.Fold(s)
	for _, p := range totalPrefixes {
		if strings.HasPrefix(folded, p) {
			return true
		}
	}
	return false
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func hasMarker(text string, markers []string) bool {
	return classify.ContainsAny(classify.Fold(text), markers)
}

// absOf returns |v| for numeric cells and 0 otherwise.
func absOf(c sheet.Cell) float64 {
	v, ok := c.Float()
	if !ok {
		return 0
	}
	return math.Abs(v)
}
