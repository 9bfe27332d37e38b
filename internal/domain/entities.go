package domain

import (
	"cloud.google.com/go/civil"
)

// UnitComponent is one part of a unit (apartment, parking space, storage room).
type UnitComponent struct {
	Type string
	Lot  string
	Size float64
}

// Unit is an ownership unit read from a units sheet.
// OwnershipShare is a fraction in [0,1].
type Unit struct {
	UnitCode       string
	OwnerName      string
	SizeSqm        float64
	OwnershipShare float64
	Components     []UnitComponent
	Notes          string
}

// LedgerEntry is a dated debit/credit transaction against one unit.
type LedgerEntry struct {
	UnitCode       string
	Description    string
	Date           civil.Date
	DebitAmount    float64
	CreditAmount   float64
	RunningBalance *float64 // nil when the sheet carries no balance column value
	Type           LedgerType
	Category       LedgerCategory
	FiscalYear     int
}

// ExpenseEntry is one building expense, categorised by its section header.
type ExpenseEntry struct {
	Description string
	Date        civil.Date
	Amount      float64
	Category    ExpenseCategory
	Quarter     string
	FiscalYear  int
}

// MovementEntry is a dated transaction on a cash or bank account.
// RunningBalance is rounded to 2 decimals.
type MovementEntry struct {
	Description    string
	Date           civil.Date
	Kind           MovementKind
	Amount         float64
	RunningBalance float64
	Category       MovementCategory
	FiscalYear     int
	AccountKey     string
}

// BudgetEntry is the annual budget of one category.
type BudgetEntry struct {
	Category     string
	AnnualAmount float64
	Department   ExpenseCategory
}
