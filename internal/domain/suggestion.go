package domain

import "github.com/DjordjeVuckovic/media-catalog/internal/storage"

// Suggestion is a row of the autocomplete list: either a trending item or a
// title prefix match. It is rebuilt on every fetch.
type Suggestion struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageBase64 string `json:"imageBase64,omitempty"`
	IsHidden    bool   `json:"isHidden,omitempty"`
}

func SuggestionFromDocument(d storage.Document) Suggestion {
	return Suggestion{
		ID:          d.ID,
		Title:       d.String(FieldTitle),
		Description: d.String(FieldDescription),
		ImageBase64: d.String(FieldImage),
		IsHidden:    d.Bool(FieldHidden),
	}
}

// VisibleSuggestions drops hidden items and keeps the order of the rest.
func VisibleSuggestions(in []Suggestion) []Suggestion {
	out := make([]Suggestion, 0, len(in))
	for _, s := range in {
		if !s.IsHidden {
			out = append(out, s)
		}
	}
	return out
}
