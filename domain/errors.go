package domain

import "errors"

var (
	// ErrEmptyNodeID indicates an empty string was used as a node id.
	ErrEmptyNodeID = errors.New("domain: node id must be non-empty")
	// ErrReservedNodeID indicates an attempt to add a customer named Source or Sink.
	ErrReservedNodeID = errors.New("domain: node id is reserved for the depot")
	// ErrDuplicateNode indicates the node id is already taken.
	ErrDuplicateNode = errors.New("domain: node already exists")
	// ErrBadEdge indicates an edge into Source, out of Sink, or a self loop.
	ErrBadEdge = errors.New("domain: edge violates network structure")
)

// Lookup failures wrap these sentinels with the offending node or edge;
// callers match with errors.Is.
var (
	// ErrNodeNotFound indicates the referenced node does not exist.
	ErrNodeNotFound = errors.New("domain: node not found")
	// ErrEdgeNotFound indicates the referenced edge does not exist.
	ErrEdgeNotFound = errors.New("domain: edge not found")
	// ErrNoDemand indicates the node carries no demand attribute.
	ErrNoDemand = errors.New("domain: node has no demand")
	// ErrNoServiceTime indicates the node carries no service time attribute.
	ErrNoServiceTime = errors.New("domain: node has no service time")
	// ErrNoTravelTime indicates the edge carries no travel time attribute.
	ErrNoTravelTime = errors.New("domain: edge has no travel time")
)
