package extract

import (
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/sheet"
)

// Result holds the records extracted from one sheet. Only the slice that
// matches Type is populated.
type Result struct {
	Type      domain.SheetType
	Units     []domain.Unit
	Ledger    []domain.LedgerEntry
	Expenses  []domain.ExpenseEntry
	Movements []domain.MovementEntry
	Budget    []domain.BudgetEntry

	// TotalShare is the ownership share total of a units sheet.
	TotalShare float64
	Warnings   []string
}

// Count returns the number of extracted records.
func (r Result) Count() int {
	return len(r.Units) + len(r.Ledger) + len(r.Expenses) + len(r.Movements) + len(r.Budget)
}

// Extract runs the extractor for kind. Unrecognized kinds yield an empty
// result.
func Extract(kind domain.SheetType, rows []sheet.Row, cfg Config) Result {
	res := Result{Type: kind}
	switch kind {
	case domain.SheetUnits:
		u := Units(rows, cfg)
		res.Units = u.Units
		res.TotalShare = u.TotalShare
		res.Warnings = u.Warnings
	case domain.SheetLedger:
		res.Ledger = Ledger(rows, cfg)
	case domain.SheetExpenses:
		res.Expenses = Expenses(rows, cfg)
	case domain.SheetMovements:
		res.Movements = Movements(rows, cfg)
	case domain.SheetBudget:
		res.Budget = Budget(rows, cfg)
	}
	return res
}
