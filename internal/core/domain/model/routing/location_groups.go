package routing

// LocationGroups maps destination-location names to the split items bound for
// them, preserving the order in which locations were first seen. Iteration
// order matters: the orchestrator issues one split per group, and an auditable
// run must process groups deterministically.
//
// The zero value is not usable; create instances with NewLocationGroups.
type LocationGroups struct {
	order  []string
	groups map[string][]SplitItem
}

// NewLocationGroups creates an empty, ready-to-use LocationGroups.
func NewLocationGroups() *LocationGroups {
	return &LocationGroups{
		groups: make(map[string][]SplitItem),
	}
}

// Add appends an item to the given location's group, creating the group on
// first use.
func (g *LocationGroups) Add(location string, item SplitItem) {
	if _, ok := g.groups[location]; !ok {
		g.order = append(g.order, location)
	}
	g.groups[location] = append(g.groups[location], item)
}

// Locations returns the group keys in first-seen order.
func (g *LocationGroups) Locations() []string {
	locations := make([]string, len(g.order))
	copy(locations, g.order)
	return locations
}

// Items returns the split items assigned to a location, nil if the location
// has no group.
func (g *LocationGroups) Items(location string) []SplitItem {
	return g.groups[location]
}

// Len returns the number of location groups.
func (g *LocationGroups) Len() int {
	return len(g.order)
}
