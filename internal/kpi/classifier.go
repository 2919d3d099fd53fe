package kpi

import (
	"fmt"
	"strings"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// Classifier assigns metrics to categories by case-insensitive substring
// matching on the metric name.
type Classifier struct {
	keywords map[model.Category][]string
	table    KeywordTable
}

// NewClassifier builds a classifier from a keyword table. Keywords are
// lower-cased once here so matching stays allocation-light.
func NewClassifier(table KeywordTable) (*Classifier, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid keyword table: %w", err)
	}

	keywords := make(map[model.Category][]string, len(table))
	normalized := make(KeywordTable, 0, len(table))
	for _, entry := range table {
		lowered := make([]string, 0, len(entry.Keywords))
		for _, kw := range entry.Keywords {
			lowered = append(lowered, strings.ToLower(strings.TrimSpace(kw)))
		}
		keywords[entry.Category] = lowered
		normalized = append(normalized, CategoryKeywords{Category: entry.Category, Keywords: lowered})
	}

	return &Classifier{keywords: keywords, table: normalized}, nil
}

// MustNewClassifier is NewClassifier for tables known to be valid.
func MustNewClassifier(table KeywordTable) *Classifier {
	c, err := NewClassifier(table)
	if err != nil {
		panic(err)
	}
	return c
}

// Table returns the normalized keyword table.
func (c *Classifier) Table() KeywordTable {
	return c.table
}

// Classify returns the metrics belonging to category, in their original order.
func (c *Classifier) Classify(metrics []model.Metric, category model.Category) []model.Metric {
	keywords := c.keywords[category]
	out := make([]model.Metric, 0)
	if len(keywords) == 0 {
		return out
	}
	for _, m := range metrics {
		if matchesAny(m.Name, keywords) {
			out = append(out, m)
		}
	}
	return out
}

// Categories returns every category whose keywords match the metric name.
// More than one entry means the name is ambiguous under the current table.
func (c *Classifier) Categories(m model.Metric) []model.Category {
	var out []model.Category
	for _, entry := range c.table {
		if matchesAny(m.Name, entry.Keywords) {
			out = append(out, entry.Category)
		}
	}
	return out
}

func matchesAny(name string, keywords []string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
