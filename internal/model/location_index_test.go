package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationIndex_Order(t *testing.T) {
	index := NewLocationIndex()
	index.Add("Sewri", RawRow{Parameters: "a"})
	index.Add("Kalina")
	index.Add("Sewri", RawRow{Parameters: "b"})

	assert.Equal(t, []string{"Sewri", "Kalina"}, index.Locations())
	assert.Equal(t, 2, index.Len())
	assert.Len(t, index.Rows("Sewri"), 2)
	assert.True(t, index.Has("Kalina"))
	assert.Empty(t, index.Rows("Kalina"))
	assert.False(t, index.Has("Bhandup"))
	assert.Nil(t, index.Rows("Bhandup"))
}

func TestLocationIndex_NilSafe(t *testing.T) {
	var index *LocationIndex
	assert.Zero(t, index.Len())
	assert.Nil(t, index.Locations())
	assert.Nil(t, index.Rows("x"))
	assert.False(t, index.Has("x"))
	assert.Zero(t, index.Clone().Len())

	var zero LocationIndex
	zero.Add("Kalina", RawRow{})
	assert.Equal(t, 1, zero.Len())
}

func TestLocationIndex_CloneIsDeep(t *testing.T) {
	index := NewLocationIndex()
	index.Add("Kalina", RawRow{Parameters: "Labour", MonthlyTarget: Float(100)})

	clone := index.Clone()
	*index.Rows("Kalina")[0].MonthlyTarget = 5
	index.Add("Sewri")

	assert.InDelta(t, 100, *clone.Rows("Kalina")[0].MonthlyTarget, 1e-9)
	assert.Equal(t, []string{"Kalina"}, clone.Locations())

	locations := clone.Locations()
	locations[0] = "changed"
	assert.Equal(t, []string{"Kalina"}, clone.Locations())
}

func TestCategory(t *testing.T) {
	assert.Equal(t, []Category{CategoryInflow, CategoryLabour, CategoryParts, CategoryEfficiency}, Categories())
	for _, c := range Categories() {
		assert.True(t, c.IsValid())
		assert.NotEqual(t, string(c), c.Title())
	}
	assert.False(t, Category("sales").IsValid())
	assert.Equal(t, "sales", Category("sales").Title())
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Achieved", StatusAchieved.Label())
	assert.Equal(t, "Below Target", StatusBelowTarget.Label())
	assert.Equal(t, "Needs Action", StatusNeedsAction.Label())
	assert.Equal(t, "N/A", StatusNotApplicable.Label())
}
