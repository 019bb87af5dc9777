package services

import (
	"errors"
	"fmt"
	"slices"

	"route-construction/domain"
)

// Saving is one merge candidate. Linking From's route tail to To's route head
// over the edge (From, To) saves Value compared to serving both separately.
type Saving struct {
	From  string
	To    string
	Value float64
}

// ComputeSavings scores every customer-to-customer edge and returns the
// candidates ordered by non-increasing savings, where
//
//	savings(i, j) = cost(i, Sink) + cost(Source, j) - cost(i, j)
//
// The sort is stable over the network's edge insertion order, so equal
// savings resolve the same way on every run. Scoring an edge requires the
// depot edges (i, Sink) and (Source, j) to exist; a missing one is reported
// as an input error rather than skipped.
func ComputeSavings(net *domain.Network) ([]Saving, error) {
	if net == nil {
		return nil, errors.New("compute savings: network must be non-nil")
	}

	var candidates []Saving
	for _, e := range net.Edges() {
		if e.From == domain.Source || e.To == domain.Sink {
			continue
		}

		toSink, err := net.Cost(e.From, domain.Sink)
		if err != nil {
			return nil, fmt.Errorf("compute savings: score edge (%s, %s): %w", e.From, e.To, err)
		}
		fromSource, err := net.Cost(domain.Source, e.To)
		if err != nil {
			return nil, fmt.Errorf("compute savings: score edge (%s, %s): %w", e.From, e.To, err)
		}

		candidates = append(candidates, Saving{
			From:  e.From,
			To:    e.To,
			Value: toSink + fromSource - e.Cost,
		})
	}

	slices.SortStableFunc(candidates, func(a, b Saving) int {
		if a.Value > b.Value {
			return -1
		}
		if a.Value < b.Value {
			return 1
		}
		return 0
	})

	return candidates, nil
}
