// Package detect decides which import pipeline applies to a worksheet.
package detect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dvloznov/condo-os/internal/classify"
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/sheet"
)

// Sheet-name keywords per type, folded. Checked in domain.SheetTypes order.
var nameKeywords = map[domain.SheetType][]string{
	domain.SheetUnits:     {"propietario", "unidades", "coeficiente", "copropiet", "alicuota", "owners", "units"},
	domain.SheetBudget:    {"presupuesto", "budget"},
	domain.SheetExpenses:  {"gasto", "egreso", "expense"},
	domain.SheetLedger:    {"estado de cuenta", "cuenta corriente", "libro", "apartamento", "ledger"},
	domain.SheetMovements: {"movimiento", "caja", "banco", "fondo de reserva", "tesoreria", "movements"},
}

// Row markers shared with the movement extractor.
var (
	PettyCashMarkers   = []string{"caja chica"}
	BankMarkers        = []string{"banco"}
	ReserveFundMarkers = []string{"fondo de reserva"}
)

var (
	ledgerSheetName = regexp.MustCompile(`^[A-Za-z]-?\d+$`)
	unitHeader      = regexp.MustCompile(`(?i)^(apartamento|apto\.?|unidad|unit)\s*:?\s*([A-Za-z]-?\d+)\b`)
)

// Detect resolves a sheet's type from its name, falling back to row
// content when the name says nothing.
func Detect(name string, rows []sheet.Row) domain.SheetType {
	if t := FromName(name); t != domain.SheetUnrecognized {
		return t
	}
	return FromRows(rows)
}

// Resolve returns override when set, otherwise the detected type.
func Resolve(name string, rows []sheet.Row, override domain.SheetType) domain.SheetType {
	if override != domain.SheetUnrecognized {
		return override
	}
	return Detect(name, rows)
}

// FromName matches the sheet name against the keyword sets in priority
// order. Names shaped like a unit code ("A1", "B-12") are ledgers.
func FromName(name string) domain.SheetType {
	folded := classify.Fold(name)
	if folded == "" {
		return domain.SheetUnrecognized
	}
	for _, t := range domain.SheetTypes {
		if classify.ContainsAny(folded, nameKeywords[t]) {
			return t
		}
	}
	if ledgerSheetName.MatchString(strings.TrimSpace(name)) {
		return domain.SheetLedger
	}
	return domain.SheetUnrecognized
}

// FromRows inspects row content: cash/bank or reserve-fund markers mean
// movements, an apartment header means a ledger.
func FromRows(rows []sheet.Row) domain.SheetType {
	if HasSideBySideAccounts(rows) || HasMarker(rows, ReserveFundMarkers) {
		return domain.SheetMovements
	}
	for _, row := range rows {
		if unitHeader.MatchString(row.At(0).TextValue()) {
			return domain.SheetLedger
		}
	}
	return domain.SheetUnrecognized
}

// HasSideBySideAccounts reports whether any single row names both the petty
// cash and the bank account.
func HasSideBySideAccounts(rows []sheet.Row) bool {
	for _, row := range rows {
		text := foldRow(row)
		if classify.ContainsAny(text, PettyCashMarkers) && classify.ContainsAny(text, BankMarkers) {
			return true
		}
	}
	return false
}

// HasMarker reports whether any cell of the sheet contains one of markers.
func HasMarker(rows []sheet.Row, markers []string) bool {
	for _, row := range rows {
		if classify.ContainsAny(foldRow(row), markers) {
			return true
		}
	}
	return false
}

// UnitHeaderCode extracts the unit code from an "Apartamento A-1" style
// header. ok is false when s is not such a header.
func UnitHeaderCode(s string) (string, bool) {
	m := unitHeader.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	return m[2], true
}

// ParseSheetType validates a --type value. The empty string means no
// override.
func ParseSheetType(s string) (domain.SheetType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return domain.SheetUnrecognized, nil
	}
	for _, t := range domain.SheetTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return domain.SheetUnrecognized, fmt.Errorf("ParseSheetType: unknown sheet type %q (want units|ledger|expenses|movements|budget)", s)
}

func foldRow(row sheet.Row) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if !c.IsEmpty() {
			parts = append(parts, c.String())
		}
	}
	return classify.Fold(strings.Join(parts, " | "))
}
