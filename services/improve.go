package services

import (
	"context"
	"errors"
	"fmt"

	"route-construction/config"
	"route-construction/domain"
	"route-construction/internal/obs"
)

// Cost changes smaller than this are treated as noise, not improvements.
const improveEps = 1e-9

// ImproveSolutionTwoOpt polishes each route of a constructed solution with a
// deterministic first-improvement 2-opt pass and returns how many routes got
// cheaper.
//
// A move reverses a contiguous block of customers; Source and Sink stay
// fixed. Moves are accepted only when every edge of the reordered path exists
// in the network, the recomputed cost strictly improves, and a configured
// duration limit still holds (customer load does not depend on visiting
// order, and the stop count is unchanged by a reversal). Accepted moves
// rewrite the route's node order, cost, and tracked time in place; the
// solution total is refreshed at the end. iterations below 1 means one pass.
func ImproveSolutionTwoOpt(
	ctx context.Context,
	net *domain.Network,
	sol *domain.Solution,
	cfg config.Config,
	iterations int,
) (improved int, err error) {
	ctx, _ = obs.WithRunID(ctx)
	defer obs.Time(ctx, "twoopt.Improve")(&err)

	if net == nil {
		return 0, errors.New("improve two opt: network must be non-nil")
	}
	if sol == nil {
		return 0, errors.New("improve two opt: solution must be non-nil")
	}
	if err = cfg.Validate(); err != nil {
		return 0, fmt.Errorf("improve two opt: %w", err)
	}
	if iterations <= 0 {
		iterations = 1
	}

	for _, route := range sol.Routes {
		if improveRoute(net, route, cfg, iterations) {
			improved++
		}
	}

	total := 0.0
	for _, r := range sol.Routes {
		total += r.Cost
	}
	sol.TotalCost = total

	return improved, nil
}

func improveRoute(net *domain.Network, route *domain.Route, cfg config.Config, iterations int) bool {
	nodes := route.Nodes
	if len(nodes) < 4 {
		return false
	}

	needTime := cfg.Duration != nil || route.Time != nil

	cost := route.Cost
	var pathTime float64
	if route.Time != nil {
		pathTime = *route.Time
	}

	changed := false
	for it := 0; it < iterations; it++ {
		betterPass := false
		m := len(nodes)
		for i := 1; i < m-2; i++ {
			for k := i + 1; k < m-1; k++ {
				cand := reverseBlock(nodes, i, k)
				candCost, ok := routeCost(net, cand)
				if !ok {
					continue
				}
				if candCost+improveEps >= cost {
					continue
				}
				if needTime {
					candTime, ok := routeTime(net, cand)
					if !ok {
						continue
					}
					if cfg.Duration != nil && candTime > *cfg.Duration {
						continue
					}
					pathTime = candTime
				}

				nodes = cand
				cost = candCost
				betterPass = true
				changed = true
			}
		}
		if !betterPass {
			break
		}
	}

	if changed {
		route.Nodes = nodes
		route.Cost = cost
		if route.Time != nil {
			*route.Time = pathTime
		}
	}
	return changed
}

// reverseBlock copies nodes with positions i..k reversed.
func reverseBlock(nodes []string, i, k int) []string {
	out := make([]string, len(nodes))
	copy(out, nodes)
	for a, b := i, k; a < b; a, b = a+1, b-1 {
		out[a], out[b] = out[b], out[a]
	}
	return out
}

// routeCost sums edge costs along the node sequence. ok is false when some
// edge does not exist, which disqualifies the sequence.
func routeCost(net *domain.Network, nodes []string) (float64, bool) {
	total := 0.0
	for i := 0; i < len(nodes)-1; i++ {
		c, err := net.Cost(nodes[i], nodes[i+1])
		if err != nil {
			return 0, false
		}
		total += c
	}
	return total, true
}

// routeTime sums travel times along the sequence plus customer service
// times. ok is false when an edge or attribute is missing.
func routeTime(net *domain.Network, nodes []string) (float64, bool) {
	total := 0.0
	for i := 0; i < len(nodes)-1; i++ {
		t, err := net.TravelTime(nodes[i], nodes[i+1])
		if err != nil {
			return 0, false
		}
		total += t
	}
	for _, v := range nodes[1 : len(nodes)-1] {
		s, err := net.ServiceTime(v)
		if err != nil {
			return 0, false
		}
		total += s
	}
	return total, true
}
