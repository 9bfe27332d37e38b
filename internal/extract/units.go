package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/sheet"
	"github.com/shopspring/decimal"
)

// Totals rows carry the unit size; smaller numbers in that column are
// lot numbers or stray counts.
const minTotalsSize = 50

// UnitsResult is the outcome of a units sheet scan.
type UnitsResult struct {
	Units      []domain.Unit
	TotalShare float64
	Warnings   []string
}

// unitsAcc carries the unit being built across its owner, component and
// totals rows.
type unitsAcc struct {
	pending *domain.Unit
	units   []domain.Unit
}

func (a *unitsAcc) step(row sheet.Row) {
	c0, c1 := row.At(0), row.At(1)

	switch {
	case runeLen(c0.TextValue()) > 3 && IsUnitCode(c1.String()):
		a.flush()
		u := domain.Unit{
			OwnerName: c0.TextValue(),
			UnitCode:  CanonicalUnitCode(c1.String()),
		}
		if v, ok := row.At(3).Float(); ok {
			u.SizeSqm = v
		}
		if v, ok := row.At(4).Float(); ok {
			u.OwnershipShare = normalizeShare(v)
		}
		a.pending = &u

	case c0.IsEmpty() && !c1.IsEmpty() && !row.At(2).IsEmpty() && row.At(3).IsNumber():
		if a.pending == nil {
			return
		}
		size, _ := row.At(3).Float()
		a.pending.Components = append(a.pending.Components, domain.UnitComponent{
			Type: c1.String(),
			Lot:  row.At(2).String(),
			Size: size,
		})

	case c0.IsEmpty() && c1.IsEmpty():
		size, ok := row.At(3).Float()
		if !ok || size <= minTotalsSize || a.pending == nil {
			return
		}
		a.pending.SizeSqm = size
		for _, c := range []sheet.Cell{row.At(4), row.At(5)} {
			if v, ok := c.Float(); ok {
				a.pending.OwnershipShare = normalizeShare(v)
				break
			}
		}
	}
}

// flush emits the pending unit when it has a positive share.
func (a *unitsAcc) flush() {
	if a.pending != nil && a.pending.OwnershipShare > 0 {
		a.pending.Notes = componentNotes(a.pending.Components)
		a.units = append(a.units, *a.pending)
	}
	a.pending = nil
}

func (a *unitsAcc) finish(cfg Config) UnitsResult {
	a.flush()

	total := decimal.Zero
	for _, u := range a.units {
		total = total.Add(decimal.NewFromFloat(u.OwnershipShare))
	}
	res := UnitsResult{
		Units:      a.units,
		TotalShare: total.Round(6).InexactFloat64(),
	}
	if len(a.units) == 0 {
		res.Warnings = append(res.Warnings, "no units with a positive ownership share found")
		return res
	}
	if total.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(decimal.NewFromFloat(cfg.ShareTolerance)) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"ownership shares sum to %s across %d units, expected 1.0 (±%s)",
			total.StringFixed(4), len(a.units), strconv.FormatFloat(cfg.ShareTolerance, 'f', -1, 64)))
	}
	return res
}

// Units scans a units sheet. Owner rows start a unit, component rows
// add parts to it and a totals row sets its size and share.
func Units(rows []sheet.Row, cfg Config) UnitsResult {
	cfg = cfg.withDefaults()
	acc := &unitsAcc{}
	for _, row := range rows {
		acc.step(row)
	}
	return acc.finish(cfg)
}

// normalizeShare turns percentages (55) into fractions (0.55).
func normalizeShare(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

func componentNotes(components []domain.UnitComponent) string {
	parts := make([]string, 0, len(components))
	for _, c := range components {
		parts = append(parts, fmt.Sprintf("%s %s (%s m²)", c.Type, c.Lot, strconv.FormatFloat(c.Size, 'f', -1, 64)))
	}
	return strings.Join(parts, "; ")
}
