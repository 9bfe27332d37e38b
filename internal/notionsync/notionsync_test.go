package notionsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/condo-os/internal/domain"
	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNotionService is a mock implementation of NotionService for testing.
type mockNotionService struct {
	CreatePageFunc    func(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)
	QueryDatabaseFunc func(ctx context.Context, databaseID string, filter *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

func (m *mockNotionService) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	if m.CreatePageFunc != nil {
		return m.CreatePageFunc(ctx, databaseID, properties)
	}
	return &notionapi.Page{ID: "page-1"}, nil
}

func (m *mockNotionService) QueryDatabase(ctx context.Context, databaseID string, filter *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	if m.QueryDatabaseFunc != nil {
		return m.QueryDatabaseFunc(ctx, databaseID, filter)
	}
	return &notionapi.DatabaseQueryResponse{}, nil
}

func titledPage(id, title string) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"Name": &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: title}},
			},
		},
	}
}

func TestStoreCreateRecord(t *testing.T) {
	var gotDB string
	mock := &mockNotionService{
		CreatePageFunc: func(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
			gotDB = databaseID
			return &notionapi.Page{ID: "new-page"}, nil
		},
	}
	store := NewStore(mock, Databases{CollectionUnits: "units-db"})

	id, err := store.CreateRecord(context.Background(), CollectionUnits, notionapi.Properties{})
	require.NoError(t, err)
	assert.Equal(t, "new-page", id)
	assert.Equal(t, "units-db", gotDB)
}

func TestStoreCreateRecordUnknownCollection(t *testing.T) {
	store := NewStore(&mockNotionService{}, Databases{})

	_, err := store.CreateRecord(context.Background(), CollectionBudget, notionapi.Properties{})
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestStoreCreateRecordWrapsError(t *testing.T) {
	apiErr := errors.New("validation_error")
	mock := &mockNotionService{
		CreatePageFunc: func(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
			return nil, apiErr
		},
	}
	store := NewStore(mock, Databases{CollectionLedger: "ledger-db"})

	_, err := store.CreateRecord(context.Background(), CollectionLedger, notionapi.Properties{})
	assert.ErrorIs(t, err, apiErr)
	assert.Contains(t, err.Error(), "ledger")
}

func TestDatabasesMissing(t *testing.T) {
	dbs := Databases{CollectionUnits: "u", CollectionLedger: ""}
	assert.Equal(t, []Collection{CollectionLedger, CollectionBudget}, dbs.Missing(CollectionUnits, CollectionLedger, CollectionBudget))
	assert.Empty(t, dbs.Missing(CollectionUnits))
}

func TestLoadParentLookupPaginates(t *testing.T) {
	var cursors []notionapi.Cursor
	mock := &mockNotionService{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, filter *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
			cursors = append(cursors, filter.StartCursor)
			if filter.StartCursor == "" {
				return &notionapi.DatabaseQueryResponse{
					Results:    []notionapi.Page{titledPage("p1", "A-1"), titledPage("p2", "")},
					HasMore:    true,
					NextCursor: "next",
				}, nil
			}
			return &notionapi.DatabaseQueryResponse{
				Results: []notionapi.Page{titledPage("p3", "B-2")},
			}, nil
		},
	}

	lookup, err := LoadParentLookup(context.Background(), mock, "units-db")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A-1": "p1", "B-2": "p3"}, lookup)
	assert.Equal(t, []notionapi.Cursor{"", "next"}, cursors)
}

func TestLoadParentLookupError(t *testing.T) {
	mock := &mockNotionService{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, filter *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
			return nil, errors.New("unauthorized")
		},
	}

	_, err := LoadParentLookup(context.Background(), mock, "units-db")
	assert.Error(t, err)
}

func TestLedgerEntryToNotionProperties(t *testing.T) {
	balance := 450.0
	e := domain.LedgerEntry{
		UnitCode:       "A-1",
		Description:    "Cuota enero",
		Date:           civil.Date{Year: 2023, Month: 3, Day: 15},
		DebitAmount:    150,
		RunningBalance: &balance,
		Type:           domain.LedgerFeeCall,
		Category:       domain.LedgerCategoryCommonCharges,
		FiscalYear:     2023,
	}

	props := LedgerEntryToNotionProperties(e, "")
	assert.NotContains(t, props, "Unit")
	assert.Equal(t, notionapi.NumberProperty{Number: 450}, props["Running Balance"])
	assert.Equal(t, notionapi.SelectProperty{Select: notionapi.Option{Name: "Fee Call"}}, props["Type"])

	title, ok := props["Description"].(notionapi.TitleProperty)
	require.True(t, ok)
	assert.Equal(t, "Cuota enero", title.Title[0].Text.Content)

	linked := LedgerEntryToNotionProperties(e, "unit-page")
	rel, ok := linked["Unit"].(notionapi.RelationProperty)
	require.True(t, ok)
	assert.Equal(t, notionapi.PageID("unit-page"), rel.Relation[0].ID)

	e.RunningBalance = nil
	assert.NotContains(t, LedgerEntryToNotionProperties(e, ""), "Running Balance")
}

func TestMovementEntryToNotionProperties(t *testing.T) {
	e := domain.MovementEntry{
		Description:    "Material de limpieza",
		Date:           civil.Date{Year: 2023, Month: 3, Day: 17},
		Kind:           domain.MovementDebit,
		Amount:         200,
		RunningBalance: 1300.1,
		Category:       domain.MovementCleaning,
		FiscalYear:     2023,
		AccountKey:     domain.AccountPettyCash,
	}

	props := MovementEntryToNotionProperties(e, "acct-page")
	assert.Equal(t, notionapi.SelectProperty{Select: notionapi.Option{Name: "Debit"}}, props["Movement Type"])
	assert.Equal(t, notionapi.NumberProperty{Number: 1300.1}, props["Running Balance"])
	assert.Contains(t, props, "Account")

	date, ok := props["Date"].(notionapi.DateProperty)
	require.True(t, ok)
	assert.Equal(t, "2023-03-17", time.Time(*date.Date.Start).Format("2006-01-02"))
}

func TestUnitExpenseAndBudgetProperties(t *testing.T) {
	unit := UnitToNotionProperties(domain.Unit{UnitCode: "A-1", OwnerName: "María", SizeSqm: 98, OwnershipShare: 0.45})
	assert.Equal(t, notionapi.NumberProperty{Number: 0.45}, unit["Ownership Share"])
	assert.NotContains(t, unit, "Notes")

	expense := ExpenseEntryToNotionProperties(domain.ExpenseEntry{Description: "Luz", Amount: 10, Category: domain.ExpenseUtilities, Quarter: "Q1"})
	assert.Equal(t, notionapi.SelectProperty{Select: notionapi.Option{Name: "Q1"}}, expense["Quarter"])

	budget := BudgetEntryToNotionProperties(domain.BudgetEntry{Category: "Seguro", AnnualAmount: 1200, Department: domain.ExpenseInsurance})
	assert.Equal(t, notionapi.SelectProperty{Select: notionapi.Option{Name: "Insurance"}}, budget["Department"])
	assert.Len(t, budget, 3)
}
