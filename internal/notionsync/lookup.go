package notionsync

import (
	"context"
	"fmt"

	"github.com/dvloznov/condo-os/internal/logger"
	"github.com/jomei/notionapi"
)

// LoadParentLookup reads every page of a parent database (units or
// accounts) and returns page title → page ID. Pages without a title are
// skipped.
func LoadParentLookup(ctx context.Context, notionClient NotionService, databaseID string) (map[string]string, error) {
	log := logger.FromContext(ctx)

	pages, err := queryAllNotionPages(ctx, notionClient, databaseID)
	if err != nil {
		return nil, fmt.Errorf("LoadParentLookup: %w", err)
	}

	lookup := make(map[string]string, len(pages))
	for _, page := range pages {
		title := extractTitle(page)
		if title == "" {
			continue
		}
		lookup[title] = string(page.ID)
	}

	log.Info().
		Str("database_id", databaseID).
		Int("page_count", len(pages)).
		Int("titled_pages", len(lookup)).
		Msg("Loaded parent lookup from Notion")

	return lookup, nil
}

// queryAllNotionPages queries all pages from a Notion database and returns them.
// Handles pagination automatically.
func queryAllNotionPages(ctx context.Context, notionClient NotionService, databaseID string) ([]notionapi.Page, error) {
	var allPages []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}

		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := notionClient.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("queryAllNotionPages: %w", err)
		}

		allPages = append(allPages, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return allPages, nil
}

// extractTitle returns the plain text of a page's title property, whatever
// the property is called.
func extractTitle(page notionapi.Page) string {
	for _, prop := range page.Properties {
		if title, ok := prop.(*notionapi.TitleProperty); ok {
			if len(title.Title) > 0 {
				return title.Title[0].PlainText
			}
		}
	}
	return ""
}
