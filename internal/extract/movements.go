package extract

import (
	"cloud.google.com/go/civil"
	"github.com/dvloznov/condo-os/internal/classify"
	"github.com/dvloznov/condo-os/internal/detect"
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/fiscal"
	"github.com/dvloznov/condo-os/internal/sheet"
	"github.com/shopspring/decimal"
)

// Column offsets of the two accounts on a side-by-side sheet.
const (
	pettyCashOffset = 0
	bankOffset      = 6
)

// layout locates the columns of one account inside a row.
type layout struct {
	date, desc, credit, debit, balance int
}

// Side-by-side windows are [date, description, credit, debit, balance].
func sideBySideLayout(offset int) layout {
	return layout{date: offset, desc: offset + 1, credit: offset + 2, debit: offset + 3, balance: offset + 4}
}

// Reserve fund sheets are [date, description, debit, credit, balance].
var reserveFundLayout = layout{date: 0, desc: 1, debit: 2, credit: 3, balance: 4}

// balanceAcc carries one account's running balance across the rows of a
// sheet.
type balanceAcc struct {
	cfg     Config
	account string
	cols    layout
	// debitFirst selects the reserve fund rule: a negative debit cell is
	// checked before the credit cell.
	debitFirst bool
	balance    decimal.Decimal
	entries    []domain.MovementEntry
}

func newBalanceAcc(cfg Config, account string, cols layout, debitFirst bool) *balanceAcc {
	return &balanceAcc{cfg: cfg, account: account, cols: cols, debitFirst: debitFirst, balance: decimal.Zero}
}

func (a *balanceAcc) step(row sheet.Row) {
	if row.IsBlank() {
		return
	}
	desc := row.At(a.cols.desc).TextValue()
	date, dated := fiscal.SerialToDate(row.At(a.cols.date))

	if desc != "" && hasMarker(desc, openingMarkers) {
		opening, ok := row.At(a.cols.credit).Float()
		if !ok {
			opening, ok = row.At(a.cols.balance).Float()
		}
		if !ok {
			return
		}
		a.balance = decimal.NewFromFloat(opening)
		if dated {
			a.emit(desc, date, domain.MovementOpeningBalance, decimal.NewFromFloat(opening).Abs())
		}
		return
	}
	if !dated || hasMarker(desc, totalMarkers) {
		return
	}

	kind, amount, ok := a.classify(row)
	if !ok {
		return
	}
	if kind == domain.MovementCredit {
		a.balance = a.balance.Add(amount)
	} else {
		a.balance = a.balance.Sub(amount)
	}
	a.emit(desc, date, kind, amount)
}

// classify decides between Credit and Debit for a non-opening row and
// returns the unsigned amount.
func (a *balanceAcc) classify(row sheet.Row) (domain.MovementKind, decimal.Decimal, bool) {
	credit, creditOK := row.At(a.cols.credit).Float()
	debit, debitOK := row.At(a.cols.debit).Float()

	if a.debitFirst {
		switch {
		case debitOK && debit < 0:
			return domain.MovementDebit, decimal.NewFromFloat(debit).Abs(), true
		case creditOK && credit > 0:
			return domain.MovementCredit, decimal.NewFromFloat(credit), true
		}
		return "", decimal.Zero, false
	}

	// Ties go to Credit when the credit cell holds a positive number.
	switch {
	case creditOK && credit > 0:
		return domain.MovementCredit, decimal.NewFromFloat(credit), true
	case debitOK && debit != 0:
		return domain.MovementDebit, decimal.NewFromFloat(debit).Abs(), true
	}
	return "", decimal.Zero, false
}

func (a *balanceAcc) emit(desc string, date civil.Date, kind domain.MovementKind, amount decimal.Decimal) {
	a.entries = append(a.entries, domain.MovementEntry{
		Description:    truncate(desc, a.cfg.DescriptionMax),
		Date:           date,
		Kind:           kind,
		Amount:         amount.Round(2).InexactFloat64(),
		RunningBalance: a.balance.Round(2).InexactFloat64(),
		Category:       classify.MovementCategory(desc),
		FiscalYear:     fiscal.YearOf(date),
		AccountKey:     a.account,
	})
}

// Movements scans a cash/bank movement sheet. A sheet naming both the
// petty cash and the bank account in one row is read as two side-by-side
// accounts; a sheet mentioning the reserve fund is read as a single
// account. A sheet matching both is scanned both ways.
func Movements(rows []sheet.Row, cfg Config) []domain.MovementEntry {
	cfg = cfg.withDefaults()

	var accs []*balanceAcc
	if detect.HasSideBySideAccounts(rows) {
		accs = append(accs,
			newBalanceAcc(cfg, domain.AccountPettyCash, sideBySideLayout(pettyCashOffset), false),
			newBalanceAcc(cfg, domain.AccountBank, sideBySideLayout(bankOffset), false),
		)
	}
	if detect.HasMarker(rows, detect.ReserveFundMarkers) {
		accs = append(accs, newBalanceAcc(cfg, domain.AccountReserveFund, reserveFundLayout, true))
	}

	var out []domain.MovementEntry
	for _, acc := range accs {
		for _, row := range rows {
			acc.step(row)
		}
		out = append(out, acc.entries...)
	}
	return out
}
