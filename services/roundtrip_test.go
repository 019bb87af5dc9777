package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"route-construction/config"
	"route-construction/domain"
)

func TestBuildRoundTrips(t *testing.T) {
	net := domain.NewNetwork()
	require.NoError(t, net.AddCustomer("A"))
	require.NoError(t, net.AddCustomer("B"))
	require.NoError(t, net.AddEdge(domain.Source, "A", 7))
	require.NoError(t, net.AddEdge("A", domain.Sink, 3))
	require.NoError(t, net.AddEdge(domain.Source, "B", 2))
	require.NoError(t, net.AddEdge("B", domain.Sink, 8))

	sol, err := BuildRoundTrips(context.Background(), net)
	require.NoError(t, err)

	require.Len(t, sol.Routes, 2)
	require.Equal(t, []string{domain.Source, "A", domain.Sink}, sol.Routes[0].Nodes)
	require.Equal(t, []string{domain.Source, "B", domain.Sink}, sol.Routes[1].Nodes)
	require.Equal(t, 10.0, sol.Routes[0].Cost)
	require.Equal(t, 10.0, sol.Routes[1].Cost)
	require.Equal(t, 1, sol.Routes[0].Name)
	require.Equal(t, 2, sol.Routes[1].Name)
	require.Equal(t, 20.0, sol.TotalCost)
	require.Nil(t, sol.Routes[0].Load)
	require.Nil(t, sol.Routes[0].Time)
}

func TestBuildRoundTripsSynthesizesPenaltyEdges(t *testing.T) {
	net := domain.NewNetwork()
	require.NoError(t, net.AddCustomer("A"))
	require.NoError(t, net.AddCustomer("B"))
	require.NoError(t, net.AddCustomer("C"))
	require.NoError(t, net.AddEdge(domain.Source, "A", 10))
	require.NoError(t, net.AddEdge("A", domain.Sink, 10))
	require.NoError(t, net.AddEdge(domain.Source, "B", 5))
	// B has no edge to Sink; C has no depot edges at all.

	sol, err := BuildRoundTrips(context.Background(), net)
	require.NoError(t, err)
	require.Len(t, sol.Routes, 3)

	require.Equal(t, 20.0, sol.Routes[0].Cost)
	require.Equal(t, 5+1e10, sol.Routes[1].Cost)
	require.Equal(t, 2e10, sol.Routes[2].Cost)
	require.GreaterOrEqual(t, sol.Routes[1].Cost, PenaltyCost)

	// Synthesized edges now live in the network itself.
	require.True(t, net.HasEdge("B", domain.Sink))
	require.True(t, net.HasEdge(domain.Source, "C"))
	require.True(t, net.HasEdge("C", domain.Sink))
	c, err := net.Cost("B", domain.Sink)
	require.NoError(t, err)
	require.Equal(t, PenaltyCost, c)

	// Real depot edges are left alone.
	c, err = net.Cost(domain.Source, "B")
	require.NoError(t, err)
	require.Equal(t, 5.0, c)
}

func TestBuildRoundTripsSeedsClarkWright(t *testing.T) {
	net := domain.NewNetwork()
	require.NoError(t, net.AddCustomer("A"))
	require.NoError(t, net.AddCustomer("B"))
	require.NoError(t, net.AddEdge(domain.Source, "A", 10))
	require.NoError(t, net.AddEdge("A", domain.Sink, 10))
	require.NoError(t, net.AddEdge("A", "B", 4))

	// The merger alone would fail on B's missing depot edges.
	_, err := NewClarkWright(net, config.Config{}).Run(context.Background())
	require.ErrorIs(t, err, domain.ErrEdgeNotFound)

	// Building round trips first synthesizes them; the merger then prefers
	// the real (A, B) connection and pays the penalty only once.
	_, err = BuildRoundTrips(context.Background(), net)
	require.NoError(t, err)

	sol, err := NewClarkWright(net, config.Config{}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, sol.Routes, 1)
	require.Equal(t, []string{domain.Source, "A", "B", domain.Sink}, sol.Routes[0].Nodes)
	require.Equal(t, 14+1e10, sol.TotalCost)
}

func TestBuildRoundTripsEmptyNetwork(t *testing.T) {
	sol, err := BuildRoundTrips(context.Background(), domain.NewNetwork())
	require.NoError(t, err)
	require.Empty(t, sol.Routes)
	require.Equal(t, 0.0, sol.TotalCost)
}

func TestBuildRoundTripsNilNetwork(t *testing.T) {
	_, err := BuildRoundTrips(context.Background(), nil)
	require.Error(t, err)
}

func TestBuildRoundTripsLogsRunID(t *testing.T) {
	buf := captureLog(t)

	net := domain.NewNetwork()
	require.NoError(t, net.AddCustomer("A"))
	require.NoError(t, net.AddEdge(domain.Source, "A", 7))
	require.NoError(t, net.AddEdge("A", domain.Sink, 3))

	_, err := BuildRoundTrips(context.Background(), net)
	require.NoError(t, err)

	require.NotEmpty(t, loggedRunID(buf.String(), "roundtrip.Build"))
}
