package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"route-construction/config"
	"route-construction/domain"
	"route-construction/internal/obs"
)

// RunStats summarizes a single route construction run.
type RunStats struct {
	Customers    int
	Candidates   int
	SinkMerges   int
	SourceMerges int
	Skipped      int
	Routes       int
	Duration     time.Duration
}

// ClarkWright builds an initial feasible solution with the savings heuristic.
//
// Every customer starts on its own round trip Source -> customer -> Sink.
// Merge candidates are scored and ordered once by ComputeSavings, then
// consumed in a single pass: each candidate may extend an existing route by
// one customer at the Sink end or the Source end, provided the configured
// limits still hold. Customers touched by a merge are never moved again.
//
// A ClarkWright is single-use state for one network and one configuration;
// it is not safe for concurrent use.
type ClarkWright struct {
	net *domain.Network
	cfg config.Config

	// routes is the arena of every route ever created; assignment maps a
	// customer to the arena index of the route currently serving it. Merged
	// customers share one index, so a route mutation is visible through every
	// customer on it. Abandoned round trips stay in the arena unreferenced.
	routes     []*domain.Route
	assignment map[string]int
	processed  map[string]struct{}

	stats RunStats
}

// NewClarkWright prepares a run on the given network under the given limits.
func NewClarkWright(net *domain.Network, cfg config.Config) *ClarkWright {
	return &ClarkWright{
		net:        net,
		cfg:        cfg,
		assignment: make(map[string]int),
		processed:  make(map[string]struct{}),
	}
}

// Run executes the heuristic and returns the constructed solution. Calling
// Run again restarts from scratch on the same network.
func (cw *ClarkWright) Run(ctx context.Context) (sol *domain.Solution, err error) {
	ctx, _ = obs.WithRunID(ctx)
	defer obs.Time(ctx, "clarkwright.Run")(&err)
	start := time.Now()

	if cw.net == nil {
		return nil, errors.New("clark wright: network must be non-nil")
	}
	if err = cw.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("clark wright: %w", err)
	}

	cw.routes = nil
	cw.assignment = make(map[string]int)
	cw.processed = make(map[string]struct{})
	cw.stats = RunStats{}

	if err = cw.initializeRoutes(); err != nil {
		return nil, fmt.Errorf("clark wright: %w", err)
	}

	candidates, err := ComputeSavings(cw.net)
	if err != nil {
		return nil, fmt.Errorf("clark wright: %w", err)
	}
	cw.stats.Candidates = len(candidates)

	for _, c := range candidates {
		if err = cw.processCandidate(c.From, c.To); err != nil {
			return nil, fmt.Errorf("clark wright: %w", err)
		}
	}

	sol = cw.finalize()
	cw.stats.Routes = len(sol.Routes)
	cw.stats.Duration = time.Since(start)
	return sol, nil
}

// RouteOf returns the route currently serving the customer. Routes are
// shared: after a merge, every customer on the merged route sees the same
// *Route. Before Run has initialized, no customer has a route.
func (cw *ClarkWright) RouteOf(id string) (*domain.Route, bool) {
	idx, ok := cw.assignment[id]
	if !ok {
		return nil, false
	}
	return cw.routes[idx], true
}

// Stats returns counters describing the most recent Run.
func (cw *ClarkWright) Stats() RunStats {
	return cw.stats
}

// initializeRoutes gives every customer its own round trip. Depot edges must
// exist for each customer; when a limit is configured, the attributes that
// limit depends on must exist as well.
func (cw *ClarkWright) initializeRoutes() error {
	for _, v := range cw.net.Customers() {
		fromSource, err := cw.net.Cost(domain.Source, v)
		if err != nil {
			return fmt.Errorf("initialize routes: round trip for %q: %w", v, err)
		}
		toSink, err := cw.net.Cost(v, domain.Sink)
		if err != nil {
			return fmt.Errorf("initialize routes: round trip for %q: %w", v, err)
		}

		route := &domain.Route{
			Nodes: []string{domain.Source, v, domain.Sink},
			Cost:  fromSource + toSink,
		}

		if cw.cfg.LoadCapacity != nil {
			d, err := cw.net.Demand(v)
			if err != nil {
				return fmt.Errorf("initialize routes: %w", err)
			}
			route.Load = &d
		}
		if cw.cfg.Duration != nil {
			service, err := cw.net.ServiceTime(v)
			if err != nil {
				return fmt.Errorf("initialize routes: %w", err)
			}
			timeOut, err := cw.net.TravelTime(domain.Source, v)
			if err != nil {
				return fmt.Errorf("initialize routes: %w", err)
			}
			timeBack, err := cw.net.TravelTime(v, domain.Sink)
			if err != nil {
				return fmt.Errorf("initialize routes: %w", err)
			}
			t := service + timeOut + timeBack
			route.Time = &t
		}

		cw.assignment[v] = len(cw.routes)
		cw.routes = append(cw.routes, route)
	}
	cw.stats.Customers = len(cw.routes)
	return nil
}

// processCandidate attempts the candidate's two merges in priority order.
//
// Sink side: customer j joins i's route right before Sink, which requires j
// untouched, i currently last on its route, and the limits to hold. Source
// side, tried only when the Sink side did not fire and the reverse edge
// (j, i) exists: customer i joins j's route right after Source. A candidate
// admitting neither merge is skipped.
func (cw *ClarkWright) processCandidate(i, j string) error {
	if _, done := cw.processed[j]; !done {
		ok, err := cw.constraintsMet(i, j)
		if err != nil {
			return fmt.Errorf("candidate (%s, %s): %w", i, j, err)
		}
		if ok && cw.endsRoute(i) {
			if err := cw.merge(i, j, domain.Sink); err != nil {
				return fmt.Errorf("candidate (%s, %s): %w", i, j, err)
			}
			cw.stats.SinkMerges++
			return nil
		}
	}

	if _, done := cw.processed[i]; !done && cw.net.HasEdge(j, i) {
		ok, err := cw.constraintsMet(j, i)
		if err != nil {
			return fmt.Errorf("candidate (%s, %s): %w", i, j, err)
		}
		if ok && cw.startsRoute(j) {
			if err := cw.merge(j, i, domain.Source); err != nil {
				return fmt.Errorf("candidate (%s, %s): %w", i, j, err)
			}
			cw.stats.SourceMerges++
			return nil
		}
	}

	cw.stats.Skipped++
	return nil
}

// endsRoute reports whether v is the last customer before Sink on its route.
func (cw *ClarkWright) endsRoute(v string) bool {
	nodes := cw.routes[cw.assignment[v]].Nodes
	return nodes[len(nodes)-2] == v
}

// startsRoute reports whether v is the first customer after Source on its route.
func (cw *ClarkWright) startsRoute(v string) bool {
	return cw.routes[cw.assignment[v]].Nodes[1] == v
}

// constraintsMet reports whether inserting a customer next to existing keeps
// existing's route within every configured limit.
func (cw *ClarkWright) constraintsMet(existing, inserted string) (bool, error) {
	route := cw.routes[cw.assignment[existing]]

	if route.Contains(inserted) {
		return false, nil
	}
	if cw.cfg.LoadCapacity != nil {
		d, err := cw.net.Demand(inserted)
		if err != nil {
			return false, err
		}
		if *route.Load+d > *cw.cfg.LoadCapacity {
			return false, nil
		}
	}
	if cw.cfg.Duration != nil {
		delta, err := cw.timeDelta(existing, inserted)
		if err != nil {
			return false, err
		}
		if *route.Time+delta > *cw.cfg.Duration {
			return false, nil
		}
	}
	if cw.cfg.NumStops != nil && route.NumCustomers()+1 > *cw.cfg.NumStops {
		return false, nil
	}
	return true, nil
}

// timeDelta is the route duration change from inserting a customer next to
// existing. One formula serves both insertion sides: it is exact for the Sink
// side and treats travel times as symmetric for the Source side.
func (cw *ClarkWright) timeDelta(existing, inserted string) (float64, error) {
	toInserted, err := cw.net.TravelTime(existing, inserted)
	if err != nil {
		return 0, err
	}
	toSink, err := cw.net.TravelTime(inserted, domain.Sink)
	if err != nil {
		return 0, err
	}
	service, err := cw.net.ServiceTime(inserted)
	if err != nil {
		return 0, err
	}
	wasToSink, err := cw.net.TravelTime(existing, domain.Sink)
	if err != nil {
		return 0, err
	}
	return toInserted + toSink + service - wasToSink, nil
}

// merge inserts a customer into existing's route on the given depot side and
// reassigns it to that route. Both customers count as processed afterwards.
func (cw *ClarkWright) merge(existing, inserted, depot string) error {
	route := cw.routes[cw.assignment[existing]]

	if depot == domain.Sink {
		// ... -> existing -> inserted -> Sink
		costIn, err := cw.net.Cost(existing, inserted)
		if err != nil {
			return err
		}
		costOut, err := cw.net.Cost(inserted, domain.Sink)
		if err != nil {
			return err
		}
		costWas, err := cw.net.Cost(existing, domain.Sink)
		if err != nil {
			return err
		}
		route.Nodes = slices.Insert(route.Nodes, len(route.Nodes)-1, inserted)
		route.Cost += costIn + costOut - costWas
	} else {
		// Source -> inserted -> existing -> ...
		costIn, err := cw.net.Cost(inserted, existing)
		if err != nil {
			return err
		}
		costOut, err := cw.net.Cost(domain.Source, inserted)
		if err != nil {
			return err
		}
		costWas, err := cw.net.Cost(domain.Source, existing)
		if err != nil {
			return err
		}
		route.Nodes = slices.Insert(route.Nodes, 1, inserted)
		route.Cost += costIn + costOut - costWas
	}

	if cw.cfg.LoadCapacity != nil {
		d, err := cw.net.Demand(inserted)
		if err != nil {
			return err
		}
		*route.Load += d
	}
	if cw.cfg.Duration != nil {
		delta, err := cw.timeDelta(existing, inserted)
		if err != nil {
			return err
		}
		*route.Time += delta
	}

	cw.processed[inserted] = struct{}{}
	cw.processed[existing] = struct{}{}
	cw.assignment[inserted] = cw.assignment[existing]
	return nil
}

// finalize collects the distinct surviving routes, visiting customers in
// network insertion order so route names come out the same on every run.
func (cw *ClarkWright) finalize() *domain.Solution {
	sol := &domain.Solution{}
	seen := make(map[int]struct{})
	name := 0
	for _, v := range cw.net.Customers() {
		idx := cw.assignment[v]
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}

		name++
		route := cw.routes[idx]
		route.Name = name
		sol.Routes = append(sol.Routes, route)
		sol.TotalCost += route.Cost
	}
	return sol
}
