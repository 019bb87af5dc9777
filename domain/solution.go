package domain

// Represents a complete set of routes covering every customer exactly once.
// TotalCost is the sum of the route costs. It is planning output data and
// contains no behavior.
type Solution struct {
	Routes    []*Route
	TotalCost float64
}
