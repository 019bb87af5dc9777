package domain

// Represents one vehicle route as the node sequence Source, customers..., Sink.
//
// Cost is always maintained. Load and Time are present only when the route
// was built under a capacity or duration constraint; nil means the attribute
// was never tracked, not that it is zero. Name is a 1-based id assigned when
// a solution is assembled.
type Route struct {
	Nodes []string
	Cost  float64
	Load  *float64
	Time  *float64
	Name  int
}

// Customers returns the customer ids on the route in visiting order.
func (r *Route) Customers() []string {
	if len(r.Nodes) <= 2 {
		return nil
	}
	out := make([]string, len(r.Nodes)-2)
	copy(out, r.Nodes[1:len(r.Nodes)-1])
	return out
}

// NumCustomers returns the number of customers on the route.
func (r *Route) NumCustomers() int {
	if len(r.Nodes) <= 2 {
		return 0
	}
	return len(r.Nodes) - 2
}

// Contains reports whether the route visits the given node.
func (r *Route) Contains(id string) bool {
	for _, v := range r.Nodes {
		if v == id {
			return true
		}
	}
	return false
}
