package model

// Status is the achievement bucket a single metric falls into.
type Status string

// Status constants.
const (
	StatusAchieved      Status = "achieved"
	StatusBelowTarget   Status = "below_target"
	StatusNeedsAction   Status = "needs_action"
	StatusNotApplicable Status = "not_applicable"
)

// Label returns the text shown on badges.
func (s Status) Label() string {
	switch s {
	case StatusAchieved:
		return "Achieved"
	case StatusBelowTarget:
		return "Below Target"
	case StatusNeedsAction:
		return "Needs Action"
	default:
		return "N/A"
	}
}
