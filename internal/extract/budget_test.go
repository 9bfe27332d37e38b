package extract

import (
	"testing"

	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/sheet"
	"github.com/stretchr/testify/assert"
)

func budgetRows() []sheet.Row {
	return []sheet.Row{
		sheet.R("PRESUPUESTO 2025", 2025),
		sheet.R("Concepto", "Mensual", "Anual"),
		sheet.R("Seguro del edificio", 12, 1200),
		sheet.R("Limpieza", 500, 6000),
		sheet.R("Fondo", 15),
		sheet.R("TOTAL", 7200),
		sheet.R("Agua", 3000),
	}
}

func TestBudget(t *testing.T) {
	entries := Budget(budgetRows(), DefaultConfig())

	assert.Equal(t, []domain.BudgetEntry{
		{Category: "Seguro del edificio", AnnualAmount: 1200, Department: domain.ExpenseInsurance},
		{Category: "Limpieza", AnnualAmount: 500, Department: domain.ExpenseCleaning},
		{Category: "Agua", AnnualAmount: 3000, Department: domain.ExpenseUtilities},
	}, entries)
}

func TestExtractDispatch(t *testing.T) {
	res := Extract(domain.SheetBudget, budgetRows(), DefaultConfig())
	assert.Equal(t, domain.SheetBudget, res.Type)
	assert.Equal(t, 3, res.Count())
	assert.Empty(t, res.Ledger)

	res = Extract(domain.SheetUnits, unitsRows(0.5, 0.5), DefaultConfig())
	assert.Equal(t, 2, res.Count())
	assert.InDelta(t, 1.0, res.TotalShare, 1e-9)

	res = Extract(domain.SheetUnrecognized, budgetRows(), DefaultConfig())
	assert.Equal(t, 0, res.Count())
}

func TestExtractZeroConfigUsesDefaults(t *testing.T) {
	rows := []sheet.Row{
		sheet.R("Apartamento A-1"),
		sheet.R(44000, "Cuota antigua", 100),
		sheet.R(45000, "Cuota nueva", 100),
	}
	res := Extract(domain.SheetLedger, rows, Config{})
	assert.Equal(t, 1, res.Count())
}
