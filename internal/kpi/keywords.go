package kpi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// Keyword table errors.
var (
	ErrUnknownCategory   = errors.New("unknown category")
	ErrEmptyKeywords     = errors.New("category has no keywords")
	ErrBlankKeyword      = errors.New("blank keyword")
	ErrDuplicateCategory = errors.New("duplicate category")
)

// CategoryKeywords lists the name fragments that pull a metric into a category.
type CategoryKeywords struct {
	Category model.Category
	Keywords []string
}

// KeywordTable is the ordered rule set used by the classifier.
type KeywordTable []CategoryKeywords

// DefaultKeywords returns the stock keyword table.
func DefaultKeywords() KeywordTable {
	return KeywordTable{
		{
			Category: model.CategoryInflow,
			Keywords: []string{"throughput", "inflow"},
		},
		{
			Category: model.CategoryLabour,
			Keywords: []string{"labour", "labor"},
		},
		{
			Category: model.CategoryParts,
			Keywords: []string{"parts", "accessories", "oil"},
		},
		{
			Category: model.CategoryEfficiency,
			Keywords: []string{
				"conversion", "efficiency", "cleaning", "service", "nps", "connect",
				"complaints", "alignment", "balancing", "pmc", "cash", "insurance",
			},
		},
	}
}

// Keywords returns the keywords configured for a category.
func (t KeywordTable) Keywords(c model.Category) []string {
	for _, entry := range t {
		if entry.Category == c {
			return entry.Keywords
		}
	}
	return nil
}

// Validate checks that every entry names a known category exactly once and
// carries at least one non-blank keyword.
func (t KeywordTable) Validate() error {
	seen := make(map[model.Category]bool, len(t))
	for _, entry := range t {
		if !entry.Category.IsValid() {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, entry.Category)
		}
		if seen[entry.Category] {
			return fmt.Errorf("%w: %s", ErrDuplicateCategory, entry.Category)
		}
		seen[entry.Category] = true
		if len(entry.Keywords) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyKeywords, entry.Category)
		}
		for _, kw := range entry.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("%w in %s", ErrBlankKeyword, entry.Category)
			}
		}
	}
	return nil
}
