package importer

import (
	"strings"

	"github.com/dvloznov/condo-os/internal/classify"
)

// Lookup maps natural keys of parent records (unit codes, account keys or
// names) to Notion page IDs. Keys match regardless of case, accents,
// spaces, hyphens and underscores, so "A-1" finds "a1" and "caja_chica"
// finds "Caja Chica".
type Lookup struct {
	ids map[string]string
}

// NewLookup builds a lookup from key → page ID entries.
func NewLookup(entries map[string]string) *Lookup {
	l := &Lookup{ids: make(map[string]string, len(entries))}
	for k, v := range entries {
		l.Add(k, v)
	}
	return l
}

// Add registers a page ID. Empty keys or IDs are ignored.
func (l *Lookup) Add(key, pageID string) {
	k := lookupKey(key)
	if k == "" || pageID == "" {
		return
	}
	l.ids[k] = pageID
}

// Get returns the page ID of the first key that resolves.
func (l *Lookup) Get(keys ...string) (string, bool) {
	if l == nil {
		return "", false
	}
	for _, key := range keys {
		if id, ok := l.ids[lookupKey(key)]; ok {
			return id, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.ids)
}

func lookupKey(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(classify.Fold(s))
}
