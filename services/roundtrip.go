package services

import (
	"context"
	"errors"
	"fmt"

	"route-construction/domain"
	"route-construction/internal/obs"
)

// PenaltyCost is the cost given to synthesized depot edges. It is high enough
// that any real connection beats a synthesized one.
const PenaltyCost = 1e10

// BuildRoundTrips returns the trivial solution with one round trip
// Source -> customer -> Sink per customer, in customer insertion order with
// 1-based route names.
//
// A customer missing one of its depot edges gets that edge synthesized at
// PenaltyCost. Synthesized edges are added to the network itself, so later
// passes over the same network see them and price them accordingly. No
// capacity or duration limits apply on this path; the resulting routes carry
// no Load or Time.
func BuildRoundTrips(ctx context.Context, net *domain.Network) (sol *domain.Solution, err error) {
	ctx, _ = obs.WithRunID(ctx)
	defer obs.Time(ctx, "roundtrip.Build")(&err)

	if net == nil {
		return nil, errors.New("build round trips: network must be non-nil")
	}

	sol = &domain.Solution{}
	name := 0
	for _, v := range net.Customers() {
		name++

		if !net.HasEdge(domain.Source, v) {
			if err = net.AddEdge(domain.Source, v, PenaltyCost); err != nil {
				return nil, fmt.Errorf("build round trips: synthesize depot edge to %q: %w", v, err)
			}
		}
		if !net.HasEdge(v, domain.Sink) {
			if err = net.AddEdge(v, domain.Sink, PenaltyCost); err != nil {
				return nil, fmt.Errorf("build round trips: synthesize depot edge from %q: %w", v, err)
			}
		}

		out, err := net.Cost(domain.Source, v)
		if err != nil {
			return nil, fmt.Errorf("build round trips: %w", err)
		}
		back, err := net.Cost(v, domain.Sink)
		if err != nil {
			return nil, fmt.Errorf("build round trips: %w", err)
		}

		route := &domain.Route{
			Nodes: []string{domain.Source, v, domain.Sink},
			Cost:  out + back,
			Name:  name,
		}
		sol.Routes = append(sol.Routes, route)
		sol.TotalCost += route.Cost
	}

	return sol, nil
}
