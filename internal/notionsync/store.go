package notionsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/jomei/notionapi"
)

// Collection names a Notion database the importer writes to or reads from.
type Collection string

const (
	CollectionUnits     Collection = "units"
	CollectionLedger    Collection = "ledger"
	CollectionExpenses  Collection = "expenses"
	CollectionMovements Collection = "movements"
	CollectionBudget    Collection = "budget"
	CollectionAccounts  Collection = "accounts"
)

// Collections lists every collection.
var Collections = []Collection{
	CollectionUnits, CollectionLedger, CollectionExpenses,
	CollectionMovements, CollectionBudget, CollectionAccounts,
}

// ErrUnknownCollection is returned when no database ID is configured for a
// collection.
var ErrUnknownCollection = errors.New("no database configured for collection")

// Databases maps collections to Notion database IDs.
type Databases map[Collection]string

// Missing returns the collections without a database ID.
func (d Databases) Missing(collections ...Collection) []Collection {
	var missing []Collection
	for _, c := range collections {
		if d[c] == "" {
			missing = append(missing, c)
		}
	}
	return missing
}

// Store creates records as pages in the configured Notion databases.
type Store struct {
	notion    NotionService
	databases Databases
}

// NewStore creates a Store backed by the given Notion service.
func NewStore(notion NotionService, databases Databases) *Store {
	return &Store{notion: notion, databases: databases}
}

// CreateRecord creates one page in the database of collection and returns
// its page ID.
func (s *Store) CreateRecord(ctx context.Context, collection Collection, props notionapi.Properties) (string, error) {
	dbID := s.databases[collection]
	if dbID == "" {
		return "", fmt.Errorf("CreateRecord: %w: %s", ErrUnknownCollection, collection)
	}

	page, err := s.notion.CreatePage(ctx, dbID, props)
	if err != nil {
		return "", fmt.Errorf("CreateRecord: %s: %w", collection, err)
	}

	return string(page.ID), nil
}
