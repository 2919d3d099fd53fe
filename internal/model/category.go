package model

// Category is a business grouping a metric is assigned to by name matching.
type Category string

const (
	// CategoryInflow groups vehicle throughput and inflow metrics.
	CategoryInflow Category = "inflow"
	// CategoryLabour groups labour sale metrics.
	CategoryLabour Category = "labour"
	// CategoryParts groups parts, accessories and oil sale metrics.
	CategoryParts Category = "parts"
	// CategoryEfficiency groups conversion, service quality and other KPIs.
	CategoryEfficiency Category = "efficiency"
)

// Categories returns the closed set of categories in display order.
func Categories() []Category {
	return []Category{CategoryInflow, CategoryLabour, CategoryParts, CategoryEfficiency}
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryInflow, CategoryLabour, CategoryParts, CategoryEfficiency:
		return true
	}
	return false
}

// Title returns the human readable category label.
func (c Category) Title() string {
	switch c {
	case CategoryInflow:
		return "Inflow"
	case CategoryLabour:
		return "Labour"
	case CategoryParts:
		return "Parts"
	case CategoryEfficiency:
		return "Efficiency"
	}
	return string(c)
}
