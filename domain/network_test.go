package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNetworkAddCustomer(t *testing.T) {
	net := NewNetwork()

	require.NoError(t, net.AddCustomer("A", WithDemand(3), WithServiceTime(1)))
	require.NoError(t, net.AddCustomer("B"))

	require.True(t, net.HasNode("A"))
	require.True(t, net.HasNode(Source))
	require.True(t, net.HasNode(Sink))
	require.Equal(t, []string{"A", "B"}, net.Customers())

	d, err := net.Demand("A")
	require.NoError(t, err)
	require.Equal(t, 3.0, d)

	s, err := net.ServiceTime("A")
	require.NoError(t, err)
	require.Equal(t, 1.0, s)

	// B was added without attributes.
	_, err = net.Demand("B")
	require.ErrorIs(t, err, ErrNoDemand)
	_, err = net.ServiceTime("B")
	require.ErrorIs(t, err, ErrNoServiceTime)

	_, err = net.Demand("missing")
	require.ErrorIs(t, err, ErrNodeNotFound)
}

func TestNetworkAddCustomerRejectsBadIDs(t *testing.T) {
	net := NewNetwork()

	require.ErrorIs(t, net.AddCustomer(""), ErrEmptyNodeID)
	require.ErrorIs(t, net.AddCustomer(Source), ErrReservedNodeID)
	require.ErrorIs(t, net.AddCustomer(Sink), ErrReservedNodeID)

	require.NoError(t, net.AddCustomer("A"))
	require.ErrorIs(t, net.AddCustomer("A"), ErrDuplicateNode)
}

func TestNetworkAddEdge(t *testing.T) {
	net := NewNetwork()

	require.NoError(t, net.AddEdge(Source, "A", 10))
	require.NoError(t, net.AddEdge("A", Sink, 12, WithTravelTime(7)))

	require.True(t, net.HasEdge(Source, "A"))
	require.False(t, net.HasEdge("A", Source))

	c, err := net.Cost("A", Sink)
	require.NoError(t, err)
	require.Equal(t, 12.0, c)

	tt, err := net.TravelTime("A", Sink)
	require.NoError(t, err)
	require.Equal(t, 7.0, tt)

	// Cost-only edge has no travel time.
	_, err = net.TravelTime(Source, "A")
	require.ErrorIs(t, err, ErrNoTravelTime)

	_, err = net.Cost("A", "B")
	require.ErrorIs(t, err, ErrEdgeNotFound)
}

func TestNetworkAddEdgeAutoCreatesEndpoints(t *testing.T) {
	net := NewNetwork()

	require.NoError(t, net.AddEdge("A", "B", 4))

	require.True(t, net.HasNode("A"))
	require.True(t, net.HasNode("B"))
	require.Equal(t, []string{"A", "B"}, net.Customers())

	// Auto-created nodes carry no attributes.
	_, err := net.Demand("A")
	require.ErrorIs(t, err, ErrNoDemand)
}

func TestNetworkAddEdgeRejectsBadStructure(t *testing.T) {
	net := NewNetwork()

	require.ErrorIs(t, net.AddEdge("A", Source, 1), ErrBadEdge)
	require.ErrorIs(t, net.AddEdge(Sink, "A", 1), ErrBadEdge)
	require.ErrorIs(t, net.AddEdge("A", "A", 1), ErrBadEdge)
	require.ErrorIs(t, net.AddEdge("", "A", 1), ErrEmptyNodeID)
}

func TestNetworkReAddEdgeUpdatesInPlace(t *testing.T) {
	net := NewNetwork()

	require.NoError(t, net.AddEdge("A", "B", 5, WithTravelTime(2)))
	require.NoError(t, net.AddEdge("B", "C", 6))
	require.NoError(t, net.AddEdge("A", "B", 9))

	c, err := net.Cost("A", "B")
	require.NoError(t, err)
	require.Equal(t, 9.0, c)

	// Attributes not mentioned by the re-add survive.
	tt, err := net.TravelTime("A", "B")
	require.NoError(t, err)
	require.Equal(t, 2.0, tt)

	// Enumeration position and count are unchanged.
	edges := net.Edges()
	require.Len(t, edges, 2)
	require.Equal(t, "A", edges[0].From)
	require.Equal(t, "B", edges[0].To)
	require.Equal(t, 9.0, edges[0].Cost)
}

func TestNetworkEdgesInsertionOrder(t *testing.T) {
	net := NewNetwork()

	require.NoError(t, net.AddEdge("C", "D", 1))
	require.NoError(t, net.AddEdge("A", "B", 2))
	require.NoError(t, net.AddEdge(Source, "A", 3))

	edges := net.Edges()
	require.Len(t, edges, 3)
	require.Equal(t, "C", edges[0].From)
	require.Equal(t, "A", edges[1].From)
	require.Equal(t, Source, edges[2].From)

	// Auto-creation order follows edge insertion.
	require.Equal(t, []string{"C", "D", "A", "B"}, net.Customers())
}
