package domain

import (
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/storage"
)

const (
	MaxTrendingItems     = 6
	DefaultTrendingTitle = "New Trending Item"
)

type TrendingItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageBase64 string    `json:"imageBase64,omitempty"`
	IsHidden    bool      `json:"isHidden"`
	Timestamp   time.Time `json:"timestamp"`
}

func TrendingItemFromDocument(d storage.Document) TrendingItem {
	return TrendingItem{
		ID:          d.ID,
		Title:       d.String(FieldTitle),
		Description: d.String(FieldDescription),
		ImageBase64: d.String(FieldImage),
		IsHidden:    d.Bool(FieldHidden),
		Timestamp:   d.Time(FieldTimestamp),
	}
}
