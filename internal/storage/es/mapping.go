package es

import (
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// textFields are analyzed; sorting and range queries go to their keyword subfield.
var textFields = map[string]bool{
	"title":       true,
	"description": true,
}

type IndexBuilder struct{}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{}
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				"catalog_analyzer": types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"title":          b.createTextPropertyWithKeyword("catalog_analyzer"),
			"titleLowercase": types.NewKeywordProperty(),
			"description":    b.createTextPropertyWithKeyword("catalog_analyzer"),
			"category":       types.NewKeywordProperty(),
			"link":           types.NewKeywordProperty(),
			"imageBase64":    b.createStoredOnlyProperty(),
			"isHidden":       types.NewBooleanProperty(),
			"created_at":     types.NewDateProperty(),
			"timestamp":      types.NewDateProperty(),
		},
	}
}

// sortField returns the field name usable for sorting and range queries.
func (b *IndexBuilder) sortField(field string) string {
	if textFields[field] {
		return field + ".keyword"
	}
	return field
}

func (b *IndexBuilder) createTextPropertyWithKeyword(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	ignoreAbove := 1024
	keyword := types.NewKeywordProperty()
	keyword.IgnoreAbove = &ignoreAbove
	textProp.Fields = map[string]types.Property{
		"keyword": keyword,
	}
	return textProp
}

// createStoredOnlyProperty keeps large values in _source without indexing them.
func (b *IndexBuilder) createStoredOnlyProperty() types.Property {
	index := false
	textProp := types.NewTextProperty()
	textProp.Index = &index
	return textProp
}
