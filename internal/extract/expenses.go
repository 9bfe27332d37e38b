package extract

import (
	"github.com/dvloznov/condo-os/internal/classify"
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/fiscal"
	"github.com/dvloznov/condo-os/internal/sheet"
)

type expensesAcc struct {
	cfg     Config
	header  string
	entries []domain.ExpenseEntry
}

func (a *expensesAcc) step(row sheet.Row) {
	if row.IsBlank() {
		return
	}
	label := row.At(0).TextValue()
	if runeLen(label) <= 3 {
		return
	}

	c1, c2 := row.At(1), row.At(2)
	if !c1.IsNumber() {
		// Report titles and totals never become section headers.
		if !hasMarker(label, summaryMarkers) {
			a.header = label
		}
		return
	}
	if !c2.IsNumber() || isTotalLabel(label) {
		return
	}
	date, ok := fiscal.SerialToDate(c1)
	if !ok {
		return
	}
	a.entries = append(a.entries, domain.ExpenseEntry{
		Description: truncate(label, a.cfg.DescriptionMax),
		Date:        date,
		Amount:      absOf(c2),
		Category:    classify.ExpenseCategory(a.header),
		Quarter:     fiscal.QuarterOf(date),
		FiscalYear:  fiscal.YearOf(date),
	})
}

// Expenses scans an expense sheet. Section header rows set the category of
// the data rows below them until the next header.
func Expenses(rows []sheet.Row, cfg Config) []domain.ExpenseEntry {
	acc := &expensesAcc{cfg: cfg.withDefaults()}
	for _, row := range rows {
		acc.step(row)
	}
	return acc.entries
}
