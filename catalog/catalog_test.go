package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddResourceDuplicateErrors(t *testing.T) {
	s := NewMemSink()
	ref := Ref{Type: "File", Title: "/etc/motd"}
	require.NoError(t, s.AddResource(ref, nil, Position{}))
	require.Error(t, s.AddResource(ref, nil, Position{}))
}

func TestUnresolvedEdges(t *testing.T) {
	s := NewMemSink()
	known := Ref{Type: "File", Title: "/a"}
	unknown := Ref{Type: "File", Title: "/b"}
	require.NoError(t, s.AddResource(known, nil, Position{}))
	require.NoError(t, s.AddEdge(Edge{Source: known, Target: unknown, Kind: Before}))

	require.Len(t, s.UnresolvedEdges(), 1)
}

func TestHasResource(t *testing.T) {
	s := NewMemSink()
	ref := Ref{Type: "File", Title: "/a"}
	require.False(t, s.HasResource(ref))
	require.NoError(t, s.AddResource(ref, nil, Position{}))
	require.True(t, s.HasResource(ref))
}

func TestEdgeKindStrings(t *testing.T) {
	cases := map[EdgeKind]string{Before: "before", Notify: "notify", Subscribe: "subscribe", Require: "require"}
	for k, want := range cases {
		require.Equal(t, want, k.String())
	}
}
