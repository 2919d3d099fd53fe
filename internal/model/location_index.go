package model

// LocationIndex maps location names to their rows while remembering the
// order in which locations were first added.
type LocationIndex struct {
	rows  map[string][]RawRow
	order []string
}

// NewLocationIndex creates an empty index.
func NewLocationIndex() *LocationIndex {
	return &LocationIndex{rows: make(map[string][]RawRow)}
}

// Add appends rows to a location, registering the location on first use.
// Adding zero rows still registers the location.
func (li *LocationIndex) Add(location string, rows ...RawRow) {
	if li.rows == nil {
		li.rows = make(map[string][]RawRow)
	}
	if _, ok := li.rows[location]; !ok {
		li.order = append(li.order, location)
		li.rows[location] = nil
	}
	li.rows[location] = append(li.rows[location], rows...)
}

// Locations returns location names in insertion order.
func (li *LocationIndex) Locations() []string {
	if li == nil {
		return nil
	}
	out := make([]string, len(li.order))
	copy(out, li.order)
	return out
}

// Rows returns the rows for a location. Unknown locations yield nil.
func (li *LocationIndex) Rows(location string) []RawRow {
	if li == nil {
		return nil
	}
	return li.rows[location]
}

// Has reports whether the location is present.
func (li *LocationIndex) Has(location string) bool {
	if li == nil {
		return false
	}
	_, ok := li.rows[location]
	return ok
}

// Len returns the number of locations.
func (li *LocationIndex) Len() int {
	if li == nil {
		return 0
	}
	return len(li.order)
}

// Clone returns a deep copy so callers can hand out a stable snapshot.
func (li *LocationIndex) Clone() *LocationIndex {
	out := NewLocationIndex()
	if li == nil {
		return out
	}
	for _, loc := range li.order {
		src := li.rows[loc]
		rows := make([]RawRow, len(src))
		for i, r := range src {
			rows[i] = r.clone()
		}
		out.Add(loc, rows...)
	}
	return out
}

func (r RawRow) clone() RawRow {
	c := r
	c.MonthlyTarget = cloneFloat(r.MonthlyTarget)
	c.TargetMTD = cloneFloat(r.TargetMTD)
	c.ActualAsOnDate = cloneFloat(r.ActualAsOnDate)
	c.Shortfall = cloneFloat(r.Shortfall)
	c.PercentageAch = cloneFloat(r.PercentageAch)
	return c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
