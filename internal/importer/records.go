package importer

import (
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/dvloznov/condo-os/internal/extract"
	"github.com/dvloznov/condo-os/internal/notionsync"
	"github.com/jomei/notionapi"
)

// record is one pending remote write.
type record struct {
	collection notionsync.Collection
	label      string
	props      notionapi.Properties
	// parentKey is set for records other sheets link to; the created page
	// ID is added to the lookup under it.
	parentKey string
}

// buildRecords maps extracted entities to Notion properties, resolving
// parent links through lookup. Unmatched entries are written unlinked.
func buildRecords(res extract.Result, lookup *Lookup) []record {
	var records []record

	for _, u := range res.Units {
		records = append(records, record{
			collection: notionsync.CollectionUnits,
			label:      u.UnitCode,
			props:      notionsync.UnitToNotionProperties(u),
			parentKey:  u.UnitCode,
		})
	}

	for _, e := range res.Ledger {
		unitPageID, _ := lookup.Get(e.UnitCode)
		records = append(records, record{
			collection: notionsync.CollectionLedger,
			label:      e.UnitCode + " " + e.Description,
			props:      notionsync.LedgerEntryToNotionProperties(e, unitPageID),
		})
	}

	for _, e := range res.Expenses {
		records = append(records, record{
			collection: notionsync.CollectionExpenses,
			label:      e.Description,
			props:      notionsync.ExpenseEntryToNotionProperties(e),
		})
	}

	for _, e := range res.Movements {
		accountPageID, _ := lookup.Get(e.AccountKey, domain.AccountNames[e.AccountKey])
		records = append(records, record{
			collection: notionsync.CollectionMovements,
			label:      e.AccountKey + " " + e.Description,
			props:      notionsync.MovementEntryToNotionProperties(e, accountPageID),
		})
	}

	for _, e := range res.Budget {
		records = append(records, record{
			collection: notionsync.CollectionBudget,
			label:      e.Category,
			props:      notionsync.BudgetEntryToNotionProperties(e),
		})
	}

	return records
}

// collectionFor returns the collection a sheet type writes to.
func collectionFor(t domain.SheetType) notionsync.Collection {
	switch t {
	case domain.SheetUnits:
		return notionsync.CollectionUnits
	case domain.SheetLedger:
		return notionsync.CollectionLedger
	case domain.SheetExpenses:
		return notionsync.CollectionExpenses
	case domain.SheetMovements:
		return notionsync.CollectionMovements
	case domain.SheetBudget:
		return notionsync.CollectionBudget
	}
	return ""
}
