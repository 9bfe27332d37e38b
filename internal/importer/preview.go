package importer

import (
	"fmt"
	"io"
	"sort"

	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/extract"
	"github.com/shopspring/decimal"
)

// writePreview prints what was extracted from one sheet: counts, groups and
// totals.
func writePreview(w io.Writer, sheetName string, res extract.Result) {
	fmt.Fprintf(w, "\n=== Sheet %q (%s) ===\n", sheetName, res.Type)
	fmt.Fprintf(w, "Extracted %d records\n", res.Count())

	switch res.Type {
	case domain.SheetUnits:
		previewUnits(w, res)
	case domain.SheetLedger:
		previewLedger(w, res.Ledger)
	case domain.SheetExpenses:
		previewExpenses(w, res.Expenses)
	case domain.SheetMovements:
		previewMovements(w, res.Movements)
	case domain.SheetBudget:
		previewBudget(w, res.Budget)
	}

	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "  WARNING: %s\n", warning)
	}
}

func previewUnits(w io.Writer, res extract.Result) {
	for _, u := range res.Units {
		fmt.Fprintf(w, "  %-6s %-30s %8.2f m²  share %.4f  %d components\n",
			u.UnitCode, u.OwnerName, u.SizeSqm, u.OwnershipShare, len(u.Components))
	}
	fmt.Fprintf(w, "  Total ownership share: %.4f\n", res.TotalShare)
}

func previewLedger(w io.Writer, entries []domain.LedgerEntry) {
	type group struct {
		count         int
		debit, credit decimal.Decimal
	}
	groups := map[string]*group{}
	for _, e := range entries {
		g, ok := groups[e.UnitCode]
		if !ok {
			g = &group{}
			groups[e.UnitCode] = g
		}
		g.count++
		g.debit = g.debit.Add(decimal.NewFromFloat(e.DebitAmount))
		g.credit = g.credit.Add(decimal.NewFromFloat(e.CreditAmount))
	}

	for _, unit := range sortedKeys(groups) {
		g := groups[unit]
		fmt.Fprintf(w, "  %-6s %4d entries  debit %12s  credit %12s\n",
			unit, g.count, g.debit.StringFixed(2), g.credit.StringFixed(2))
	}
}

func previewExpenses(w io.Writer, entries []domain.ExpenseEntry) {
	byCategory := map[string]decimal.Decimal{}
	byQuarter := map[string]decimal.Decimal{}
	counts := map[string]int{}
	total := decimal.Zero

	for _, e := range entries {
		amount := decimal.NewFromFloat(e.Amount)
		cat := string(e.Category)
		byCategory[cat] = byCategory[cat].Add(amount)
		counts[cat]++
		q := fmt.Sprintf("%d %s", e.FiscalYear, e.Quarter)
		byQuarter[q] = byQuarter[q].Add(amount)
		total = total.Add(amount)
	}

	for _, cat := range sortedKeys(byCategory) {
		fmt.Fprintf(w, "  %-24s %4d entries  %12s\n", cat, counts[cat], byCategory[cat].StringFixed(2))
	}
	for _, q := range sortedKeys(byQuarter) {
		fmt.Fprintf(w, "  %-24s %12s\n", q, byQuarter[q].StringFixed(2))
	}
	fmt.Fprintf(w, "  Total: %s\n", total.StringFixed(2))
}

func previewMovements(w io.Writer, entries []domain.MovementEntry) {
	type account struct {
		count           int
		credits, debits decimal.Decimal
		final           float64
	}
	accounts := map[string]*account{}
	for _, e := range entries {
		a, ok := accounts[e.AccountKey]
		if !ok {
			a = &account{}
			accounts[e.AccountKey] = a
		}
		a.count++
		switch e.Kind {
		case domain.MovementCredit:
			a.credits = a.credits.Add(decimal.NewFromFloat(e.Amount))
		case domain.MovementDebit:
			a.debits = a.debits.Add(decimal.NewFromFloat(e.Amount))
		}
		a.final = e.RunningBalance
	}

	for _, key := range sortedKeys(accounts) {
		a := accounts[key]
		fmt.Fprintf(w, "  %-18s %4d entries  in %12s  out %12s  final balance %12.2f\n",
			domain.AccountNames[key], a.count, a.credits.StringFixed(2), a.debits.StringFixed(2), a.final)
	}
}

func previewBudget(w io.Writer, entries []domain.BudgetEntry) {
	total := decimal.Zero
	for _, e := range entries {
		fmt.Fprintf(w, "  %-30s %-24s %12.2f\n", e.Category, e.Department, e.AnnualAmount)
		total = total.Add(decimal.NewFromFloat(e.AnnualAmount))
	}
	fmt.Fprintf(w, "  Total budget: %s\n", total.StringFixed(2))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
