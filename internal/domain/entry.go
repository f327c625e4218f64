package domain

import (
	"strings"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
)

// Stored field names shared by the entry and trending collections.
const (
	FieldTitle          = "title"
	FieldTitleLowercase = "titleLowercase"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldImage          = "imageBase64"
	FieldLink           = "link"
	FieldCreatedAt      = "created_at"
	FieldHidden         = "isHidden"
	FieldTimestamp      = "timestamp"
)

// Entry is a catalog entry, called a search result by the public pages.
type Entry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageBase64 string    `json:"imageBase64,omitempty"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func EntryFromDocument(d storage.Document) Entry {
	return Entry{
		ID:          d.ID,
		Title:       d.String(FieldTitle),
		Description: d.String(FieldDescription),
		Category:    d.String(FieldCategory),
		ImageBase64: d.String(FieldImage),
		Link:        d.String(FieldLink),
		CreatedAt:   d.Time(FieldCreatedAt),
	}
}

func EntriesFromDocuments(docs []storage.Document) []Entry {
	entries := make([]Entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, EntryFromDocument(d))
	}
	return entries
}

// Fields returns the editable fields of e, including the derived
// titleLowercase used by prefix suggestions.
func (e Entry) Fields() storage.Fields {
	return storage.Fields{
		FieldTitle:          e.Title,
		FieldTitleLowercase: strings.ToLower(e.Title),
		FieldDescription:    e.Description,
		FieldCategory:       e.Category,
		FieldImage:          e.ImageBase64,
		FieldLink:           e.Link,
	}
}
