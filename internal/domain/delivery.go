package domain

// buildingsByCollege is the fixed campus delivery topology. Buildings are
// only meaningful relative to their college.
var buildingsByCollege = map[string][]string{
	"Shaw":       {"A", "B", "C", "D", "E", "F"},
	"Ling":       {"A", "B", "C"},
	"Muse":       {"A", "B", "C"},
	"Diligentia": {"A", "B", "C"},
	"Harmonia":   {"A", "B", "C", "D"},
	"Minerva":    {"A", "C"},
}

// collegeOrder keeps listings of colleges stable across calls.
var collegeOrder = []string{"Shaw", "Ling", "Muse", "Diligentia", "Harmonia", "Minerva"}

// Colleges returns the delivery colleges in display order.
func Colleges() []string {
	out := make([]string, len(collegeOrder))
	copy(out, collegeOrder)
	return out
}

// BuildingsFor returns the valid buildings for a college, or nil when the
// college is unknown.
func BuildingsFor(college string) []string {
	buildings, ok := buildingsByCollege[college]
	if !ok {
		return nil
	}
	out := make([]string, len(buildings))
	copy(out, buildings)
	return out
}

// ValidateDelivery checks a college/building pair against the topology.
func ValidateDelivery(college, building string) error {
	if college == "" {
		return ErrCollegeRequired
	}
	buildings, ok := buildingsByCollege[college]
	if !ok {
		return ErrUnknownCollege
	}
	if building == "" {
		return ErrBuildingRequired
	}
	for _, b := range buildings {
		if b == building {
			return nil
		}
	}
	return ErrInvalidBuilding
}
