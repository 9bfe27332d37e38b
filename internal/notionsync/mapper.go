package notionsync

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/jomei/notionapi"
)

// UnitToNotionProperties converts a Unit to Notion properties for the
// Units database.
func UnitToNotionProperties(u domain.Unit) notionapi.Properties {
	props := notionapi.Properties{
		"Unit":            titleProperty(u.UnitCode),
		"Owner":           richTextProperty(u.OwnerName),
		"Size (m²)":       notionapi.NumberProperty{Number: u.SizeSqm},
		"Ownership Share": notionapi.NumberProperty{Number: u.OwnershipShare},
	}

	if u.Notes != "" {
		props["Notes"] = richTextProperty(u.Notes)
	}

	return props
}

// LedgerEntryToNotionProperties converts a LedgerEntry to Notion properties.
// unitPageID links the entry to its unit page when not empty.
func LedgerEntryToNotionProperties(e domain.LedgerEntry, unitPageID string) notionapi.Properties {
	props := notionapi.Properties{
		"Description": titleProperty(e.Description),
		"Unit Code":   richTextProperty(e.UnitCode),
		"Date":        dateProperty(e.Date),
		"Debit":       notionapi.NumberProperty{Number: e.DebitAmount},
		"Credit":      notionapi.NumberProperty{Number: e.CreditAmount},
		"Type":        selectProperty(string(e.Type)),
		"Category":    selectProperty(string(e.Category)),
		"Fiscal Year": notionapi.NumberProperty{Number: float64(e.FiscalYear)},
	}

	// Running Balance (nullable)
	if e.RunningBalance != nil {
		props["Running Balance"] = notionapi.NumberProperty{Number: *e.RunningBalance}
	}

	if unitPageID != "" {
		props["Unit"] = relationProperty(unitPageID)
	}

	return props
}

// ExpenseEntryToNotionProperties converts an ExpenseEntry to Notion properties.
func ExpenseEntryToNotionProperties(e domain.ExpenseEntry) notionapi.Properties {
	props := notionapi.Properties{
		"Description": titleProperty(e.Description),
		"Date":        dateProperty(e.Date),
		"Amount":      notionapi.NumberProperty{Number: e.Amount},
		"Category":    selectProperty(string(e.Category)),
		"Fiscal Year": notionapi.NumberProperty{Number: float64(e.FiscalYear)},
	}

	if e.Quarter != "" {
		props["Quarter"] = selectProperty(e.Quarter)
	}

	return props
}

// MovementEntryToNotionProperties converts a MovementEntry to Notion
// properties. accountPageID links the movement to its account page when
// not empty.
func MovementEntryToNotionProperties(e domain.MovementEntry, accountPageID string) notionapi.Properties {
	props := notionapi.Properties{
		"Description":     titleProperty(e.Description),
		"Date":            dateProperty(e.Date),
		"Movement Type":   selectProperty(string(e.Kind)),
		"Amount":          notionapi.NumberProperty{Number: e.Amount},
		"Running Balance": notionapi.NumberProperty{Number: e.RunningBalance},
		"Category":        selectProperty(string(e.Category)),
		"Fiscal Year":     notionapi.NumberProperty{Number: float64(e.FiscalYear)},
		"Account Key":     selectProperty(e.AccountKey),
	}

	if accountPageID != "" {
		props["Account"] = relationProperty(accountPageID)
	}

	return props
}

// BudgetEntryToNotionProperties converts a BudgetEntry to Notion properties.
func BudgetEntryToNotionProperties(e domain.BudgetEntry) notionapi.Properties {
	return notionapi.Properties{
		"Category":      titleProperty(e.Category),
		"Annual Amount": notionapi.NumberProperty{Number: e.AnnualAmount},
		"Department":    selectProperty(string(e.Department)),
	}
}

func titleProperty(content string) notionapi.TitleProperty {
	return notionapi.TitleProperty{
		Title: []notionapi.RichText{
			{
				Type: notionapi.ObjectTypeText,
				Text: &notionapi.Text{
					Content: content,
				},
			},
		},
	}
}

func richTextProperty(content string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		RichText: []notionapi.RichText{
			{
				Type: notionapi.ObjectTypeText,
				Text: &notionapi.Text{
					Content: content,
				},
			},
		},
	}
}

func selectProperty(name string) notionapi.SelectProperty {
	return notionapi.SelectProperty{
		Select: notionapi.Option{
			Name: name,
		},
	}
}

func dateProperty(d civil.Date) notionapi.DateProperty {
	start := notionapi.Date(time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC))
	return notionapi.DateProperty{
		Date: &notionapi.DateObject{
			Start: &start,
		},
	}
}

func relationProperty(pageID string) notionapi.RelationProperty {
	return notionapi.RelationProperty{
		Relation: []notionapi.Relation{
			{ID: notionapi.PageID(pageID)},
		},
	}
}
