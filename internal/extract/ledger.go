package extract

import (
	"cloud.google.com/go/civil"
	"github.com/dvloznov/condo-os/internal/classify"
	"github.com/dvloznov/condo-os/internal/detect"
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/fiscal"
	"github.com/dvloznov/condo-os/internal/sheet"
)

type ledgerAcc struct {
	cfg     Config
	unit    string
	entries []domain.LedgerEntry
}

func (a *ledgerAcc) step(row sheet.Row) {
	if row.IsBlank() {
		return
	}
	c0, c1 := row.At(0), row.At(1)

	if code, ok := detect.UnitHeaderCode(c0.TextValue()); ok {
		a.unit = CanonicalUnitCode(code)
		return
	}
	if IsUnitCode(c0.TextValue()) && !c1.IsNumber() {
		a.unit = CanonicalUnitCode(c0.TextValue())
		return
	}
	if a.unit == "" {
		return
	}

	desc := c1.TextValue()
	if desc == "" {
		desc = c0.TextValue()
	}
	if runeLen(desc) < 3 || hasMarker(desc, ledgerExcludedMarkers) {
		return
	}
	date, ok := a.entryDate(c0, c1)
	if !ok {
		return
	}

	entry := domain.LedgerEntry{
		UnitCode:     a.unit,
		Description:  truncate(desc, a.cfg.DescriptionMax),
		Date:         date,
		DebitAmount:  absOf(row.At(2)),
		CreditAmount: absOf(row.At(3)),
		Type:         classify.LedgerType(desc),
		Category:     classify.LedgerCategory(desc),
		FiscalYear:   fiscal.YearOf(date),
	}
	if v, ok := row.At(4).Float(); ok {
		balance := v
		entry.RunningBalance = &balance
	}
	a.entries = append(a.entries, entry)
}

// entryDate returns the first of the candidate cells holding a serial at
// or after the minimum ledger date.
func (a *ledgerAcc) entryDate(candidates ...sheet.Cell) (civil.Date, bool) {
	for _, c := range candidates {
		v, ok := c.Float()
		if !ok || v < a.cfg.MinLedgerSerial {
			continue
		}
		if d, ok := fiscal.SerialToDateValue(v); ok {
			return d, true
		}
	}
	return civil.Date{}, false
}

// Ledger scans a unit ledger sheet. Header rows ("Apartamento A-1", or a
// bare unit code) select the unit that following entry rows belong to.
func Ledger(rows []sheet.Row, cfg Config) []domain.LedgerEntry {
	acc := &ledgerAcc{cfg: cfg.withDefaults()}
	for _, row := range rows {
		acc.step(row)
	}
	return acc.entries
}
