package extract

import (
	"github.com/dvloznov/condo-os/internal/classify"
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/sheet"
)

// Budget amounts are above this; smaller numbers are percentages or codes.
const minBudgetAmount = 100

type budgetAcc struct {
	entries []domain.BudgetEntry
}

func (a *budgetAcc) step(row sheet.Row) {
	if row.IsBlank() {
		return
	}
	label := row.At(0).TextValue()
	if runeLen(label) <= 3 || hasMarker(label, summaryMarkers) {
		return
	}
	for i := 1; i < len(row); i++ {
		v, ok := row[i].Float()
		if !ok || v <= minBudgetAmount {
			continue
		}
		a.entries = append(a.entries, domain.BudgetEntry{
			Category:     label,
			AnnualAmount: v,
			Department:   classify.ExpenseCategory(label),
		})
		return
	}
}

// Budget scans a budget sheet: each labelled row yields its first amount
// above 100 as the annual budget of that category.
func Budget(rows []sheet.Row, cfg Config) []domain.BudgetEntry {
	acc := &budgetAcc{}
	for _, row := range rows {
		acc.step(row)
	}
	return acc.entries
}
