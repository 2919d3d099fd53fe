package kpi

import (
	"testing"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(metrics []model.Metric) []string {
	out := make([]string, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, m.Name)
	}
	return out
}

func TestClassifier_Classify(t *testing.T) {
	c := MustNewClassifier(DefaultKeywords())

	tests := []struct {
		name     string
		metric   string
		category model.Category
		want     bool
	}{
		{"labour upper case", "TOTAL LABOUR (PMGR+BP+VAS+AMC RENDERED)", model.CategoryLabour, true},
		{"labour mixed case", "Total Labour (PMGR+BP+VAS+AMC rendered)", model.CategoryLabour, true},
		{"american spelling", "Labor Sale", model.CategoryLabour, true},
		{"oil is parts", "Oil Filter Sale", model.CategoryParts, true},
		{"nps is efficiency", "NPS Score", model.CategoryEfficiency, true},
		{"throughput is inflow", "Total Throughput", model.CategoryInflow, true},
		{"substring not whole word", "Accessories-Retail", model.CategoryParts, true},
		{"no match", "Headcount", model.CategoryEfficiency, false},
		{"inflow does not pull labour", "Total Throughput", model.CategoryLabour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify([]model.Metric{{Name: tt.metric}}, tt.category)
			if tt.want {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestClassifier_PreservesOrderAndSkipsEmptyNames(t *testing.T) {
	c := MustNewClassifier(DefaultKeywords())
	metrics := []model.Metric{
		{Name: "Parts Sale"},
		{Name: ""},
		{Name: "Labour"},
		{Name: "Engine Oil"},
		{Name: "Accessories"},
	}

	got := c.Classify(metrics, model.CategoryParts)
	assert.Equal(t, []string{"Parts Sale", "Engine Oil", "Accessories"}, names(got))

	for _, category := range model.Categories() {
		for _, m := range c.Classify([]model.Metric{{Name: ""}}, category) {
			t.Errorf("empty name classified into %s: %+v", category, m)
		}
	}
}

func TestClassifier_Categories(t *testing.T) {
	c := MustNewClassifier(DefaultKeywords())

	assert.Equal(t, []model.Category{model.CategoryParts, model.CategoryEfficiency},
		c.Categories(model.Metric{Name: "Service Parts"}))
	assert.Equal(t, []model.Category{model.CategoryLabour},
		c.Categories(model.Metric{Name: "Labour"}))
	assert.Empty(t, c.Categories(model.Metric{Name: "Headcount"}))
	assert.Empty(t, c.Categories(model.Metric{}))
}

func TestNewClassifier_CustomTable(t *testing.T) {
	c, err := NewClassifier(KeywordTable{
		{Category: model.CategoryInflow, Keywords: []string{"  Walk-In "}},
	})
	require.NoError(t, err)

	got := c.Classify([]model.Metric{{Name: "WALK-IN COUNT"}, {Name: "Total Throughput"}}, model.CategoryInflow)
	assert.Equal(t, []string{"WALK-IN COUNT"}, names(got))
	assert.Empty(t, c.Classify([]model.Metric{{Name: "Labour"}}, model.CategoryLabour))
	assert.Equal(t, []string{"walk-in"}, c.Table().Keywords(model.CategoryInflow))
}

func TestNewClassifier_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		table   KeywordTable
		wantErr error
	}{
		{
			name:    "unknown category",
			table:   KeywordTable{{Category: "sales", Keywords: []string{"x"}}},
			wantErr: ErrUnknownCategory,
		},
		{
			name:    "no keywords",
			table:   KeywordTable{{Category: model.CategoryParts}},
			wantErr: ErrEmptyKeywords,
		},
		{
			name:    "blank keyword",
			table:   KeywordTable{{Category: model.CategoryParts, Keywords: []string{"parts", " "}}},
			wantErr: ErrBlankKeyword,
		},
		{
			name: "duplicate category",
			table: KeywordTable{
				{Category: model.CategoryParts, Keywords: []string{"parts"}},
				{Category: model.CategoryParts, Keywords: []string{"oil"}},
			},
			wantErr: ErrDuplicateCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClassifier(tt.table)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultKeywords_Valid(t *testing.T) {
	table := DefaultKeywords()
	require.NoError(t, table.Validate())
	assert.Len(t, table, 4)
	assert.Contains(t, table.Keywords(model.CategoryEfficiency), "insurance")
	assert.Nil(t, table.Keywords("unknown"))
}
