package domain

import "fmt"

// Depot node identifiers. Every route starts at Source and ends at Sink; the
// two represent the same physical depot split into a departure side and a
// return side so routes stay simple directed paths.
const (
	Source = "Source"
	Sink   = "Sink"
)

type node struct {
	demand      *float64
	serviceTime *float64
}

// Edge is a directed connection with a travel cost. Travel time is optional
// and only required when routes are duration-constrained.
type Edge struct {
	From string
	To   string
	Cost float64

	travelTime *float64
}

// CustomerOption sets an optional attribute on a customer node.
type CustomerOption func(*node)

// WithDemand sets the quantity the customer must receive.
func WithDemand(demand float64) CustomerOption {
	return func(n *node) { n.demand = &demand }
}

// WithServiceTime sets the time spent at the customer's location.
func WithServiceTime(serviceTime float64) CustomerOption {
	return func(n *node) { n.serviceTime = &serviceTime }
}

// EdgeOption sets an optional attribute on an edge when it is added.
type EdgeOption func(*Edge)

// WithTravelTime sets the time needed to traverse the edge.
func WithTravelTime(travelTime float64) EdgeOption {
	return func(e *Edge) { e.travelTime = &travelTime }
}

// Network is the routing problem input: a directed graph over Source, Sink
// and customer nodes, with per-edge costs and optional per-edge travel times
// and per-node demands and service times.
//
// Enumeration order is part of the contract: Customers and Edges report in
// insertion order, which downstream algorithms rely on for deterministic
// tie-breaking. A Network is not safe for concurrent mutation.
type Network struct {
	nodes     map[string]*node
	customers []string
	out       map[string]map[string]*Edge
	edges     []*Edge
}

// NewNetwork creates an empty network containing only the depot nodes.
func NewNetwork() *Network {
	return &Network{
		nodes: map[string]*node{
			Source: {},
			Sink:   {},
		},
		out: make(map[string]map[string]*Edge),
	}
}

// AddCustomer adds a customer node.
func (n *Network) AddCustomer(id string, opts ...CustomerOption) error {
	if id == "" {
		return fmt.Errorf("add customer: %w", ErrEmptyNodeID)
	}
	if id == Source || id == Sink {
		return fmt.Errorf("add customer %q: %w", id, ErrReservedNodeID)
	}
	if _, ok := n.nodes[id]; ok {
		return fmt.Errorf("add customer %q: %w", id, ErrDuplicateNode)
	}
	n.addCustomer(id, opts...)
	return nil
}

func (n *Network) addCustomer(id string, opts ...CustomerOption) {
	nd := &node{}
	for _, opt := range opts {
		opt(nd)
	}
	n.nodes[id] = nd
	n.customers = append(n.customers, id)
}

// AddEdge adds the directed edge from -> to with the given travel cost,
// creating attribute-less customer nodes for unknown endpoints. Re-adding an
// existing edge updates its cost and applies the options in place, keeping
// the edge's original enumeration position.
//
// Structural rules: no edge may end at Source, start at Sink, or connect a
// node to itself.
func (n *Network) AddEdge(from, to string, cost float64, opts ...EdgeOption) error {
	if from == "" || to == "" {
		return fmt.Errorf("add edge %q -> %q: %w", from, to, ErrEmptyNodeID)
	}
	if to == Source {
		return fmt.Errorf("add edge %q -> %q: edge into Source: %w", from, to, ErrBadEdge)
	}
	if from == Sink {
		return fmt.Errorf("add edge %q -> %q: edge out of Sink: %w", from, to, ErrBadEdge)
	}
	if from == to {
		return fmt.Errorf("add edge %q -> %q: self loop: %w", from, to, ErrBadEdge)
	}

	if _, ok := n.nodes[from]; !ok {
		n.addCustomer(from)
	}
	if _, ok := n.nodes[to]; !ok {
		n.addCustomer(to)
	}

	if e, ok := n.out[from][to]; ok {
		e.Cost = cost
		for _, opt := range opts {
			opt(e)
		}
		return nil
	}

	e := &Edge{From: from, To: to, Cost: cost}
	for _, opt := range opts {
		opt(e)
	}
	if n.out[from] == nil {
		n.out[from] = make(map[string]*Edge)
	}
	n.out[from][to] = e
	n.edges = append(n.edges, e)
	return nil
}

// HasNode reports whether a node with the given id exists.
func (n *Network) HasNode(id string) bool {
	_, ok := n.nodes[id]
	return ok
}

// HasEdge reports whether the directed edge from -> to exists.
func (n *Network) HasEdge(from, to string) bool {
	_, ok := n.out[from][to]
	return ok
}

// Customers returns all customer node ids in insertion order.
func (n *Network) Customers() []string {
	out := make([]string, len(n.customers))
	copy(out, n.customers)
	return out
}

// Edges returns all edges in insertion order.
func (n *Network) Edges() []*Edge {
	out := make([]*Edge, len(n.edges))
	copy(out, n.edges)
	return out
}

// Cost returns the travel cost of the edge from -> to.
func (n *Network) Cost(from, to string) (float64, error) {
	e, ok := n.out[from][to]
	if !ok {
		return 0, fmt.Errorf("cost %q -> %q: %w", from, to, ErrEdgeNotFound)
	}
	return e.Cost, nil
}

// TravelTime returns the travel time of the edge from -> to.
func (n *Network) TravelTime(from, to string) (float64, error) {
	e, ok := n.out[from][to]
	if !ok {
		return 0, fmt.Errorf("travel time %q -> %q: %w", from, to, ErrEdgeNotFound)
	}
	if e.travelTime == nil {
		return 0, fmt.Errorf("travel time %q -> %q: %w", from, to, ErrNoTravelTime)
	}
	return *e.travelTime, nil
}

// Demand returns the demand of the given customer.
func (n *Network) Demand(id string) (float64, error) {
	nd, ok := n.nodes[id]
	if !ok {
		return 0, fmt.Errorf("demand of %q: %w", id, ErrNodeNotFound)
	}
	if nd.demand == nil {
		return 0, fmt.Errorf("demand of %q: %w", id, ErrNoDemand)
	}
	return *nd.demand, nil
}

// ServiceTime returns the service time of the given customer.
func (n *Network) ServiceTime(id string) (float64, error) {
	nd, ok := n.nodes[id]
	if !ok {
		return 0, fmt.Errorf("service time of %q: %w", id, ErrNodeNotFound)
	}
	if nd.serviceTime == nil {
		return 0, fmt.Errorf("service time of %q: %w", id, ErrNoServiceTime)
	}
	return *nd.serviceTime, nil
}
