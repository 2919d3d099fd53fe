package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/common"
	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/kpi"
)

// LoadKeywordTable builds the classifier table. Each categories.<name> key
// that is set replaces the default keywords of that category.
func LoadKeywordTable(v *viper.Viper) (kpi.KeywordTable, error) {
	if v == nil {
		v = viper.GetViper()
	}

	table := kpi.DefaultKeywords()
	for i, entry := range table {
		key := "categories." + string(entry.Category)
		if !v.IsSet(key) {
			continue
		}

		keywords := cleanList(v.GetStringSlice(key))
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: %s has no keywords", common.ErrInvalidConfig, key)
		}
		table[i].Keywords = keywords
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return table, nil
}

// LoadClassifier builds a classifier from the configured keyword table.
func LoadClassifier(v *viper.Viper) (*kpi.Classifier, error) {
	table, err := LoadKeywordTable(v)
	if err != nil {
		return nil, err
	}
	return kpi.NewClassifier(table)
}

// LoadRoster returns the fixed location roster from locations.roster.
// An empty roster means every stored location is used.
func LoadRoster(v *viper.Viper) []string {
	if v == nil {
		v = viper.GetViper()
	}
	return cleanList(v.GetStringSlice("locations.roster"))
}

// cleanList splits comma separated entries, trims them, drops blanks and
// removes duplicates.
func cleanList(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}
