package gateway

import (
	"reflect"
	"testing"
)

func gw(name string, pairs ...[2]string) Gateway {
	g := Gateway{Name: name, NodeRef: name + "_node"}
	for _, p := range pairs {
		g.Routes = append(g.Routes, Route{Source: p[0], Target: p[1]})
	}
	return g
}

func TestResolveRoutes_SingleHop(t *testing.T) {
	routes := ResolveRoutes([]Gateway{gw("G1", [2]string{"a", "b"})})

	want := map[string]ResolvedRoute{
		"b": {Origin: "a", Gateways: []string{"G1"}},
	}
	if !reflect.DeepEqual(routes, want) {
		t.Errorf("ResolveRoutes = %v, want %v", routes, want)
	}
}

func TestResolveRoutes_Chain(t *testing.T) {
	routes := ResolveRoutes([]Gateway{
		gw("G1", [2]string{"a", "b"}),
		gw("G2", [2]string{"b", "c"}),
	})

	got, ok := routes["c"]
	if !ok {
		t.Fatal("target c should resolve")
	}
	if got.Origin != "a" {
		t.Errorf("origin = %q, want a", got.Origin)
	}
	if !reflect.DeepEqual(got.Gateways, []string{"G1", "G2"}) {
		t.Errorf("path = %v, want [G1 G2]", got.Gateways)
	}

	// The intermediate target resolves too, one hop deep.
	if got := routes["b"]; got.Origin != "a" || len(got.Gateways) != 1 {
		t.Errorf("routes[b] = %v", got)
	}
}

// TestResolveRoutes_TieBreak pins the deterministic tie-break: the
// lexicographically smaller (source, gateway) pair wins regardless of
// input order.
func TestResolveRoutes_TieBreak(t *testing.T) {
	forward := []Gateway{
		gw("G1", [2]string{"a", "z"}),
		gw("G2", [2]string{"b", "z"}),
	}
	backward := []Gateway{forward[1], forward[0]}

	for _, gateways := range [][]Gateway{forward, backward} {
		routes := ResolveRoutes(gateways)
		got, ok := routes["z"]
		if !ok {
			t.Fatal("target z should resolve")
		}
		if got.Origin != "a" || !reflect.DeepEqual(got.Gateways, []string{"G1"}) {
			t.Errorf("routes[z] = %v, want origin a via G1", got)
		}
	}
}

// Same source, different gateway names: the gateway name decides.
func TestResolveRoutes_TieBreakOnGatewayName(t *testing.T) {
	routes := ResolveRoutes([]Gateway{
		gw("GB", [2]string{"a", "z"}),
		gw("GA", [2]string{"a", "z"}),
	})

	if got := routes["z"]; !reflect.DeepEqual(got.Gateways, []string{"GA"}) {
		t.Errorf("routes[z] = %v, want via GA", got)
	}
}

func TestResolveRoutes_CycleRejected(t *testing.T) {
	routes := ResolveRoutes([]Gateway{
		gw("G1", [2]string{"x", "y"}),
		gw("G2", [2]string{"y", "x"}),
	})

	if _, ok := routes["x"]; ok {
		t.Error("x lies on a cycle and must be absent")
	}
	if _, ok := routes["y"]; ok {
		t.Error("y lies on a cycle and must be absent")
	}
}

func TestResolveRoutes_SelfLoopRejected(t *testing.T) {
	routes := ResolveRoutes([]Gateway{gw("G1", [2]string{"x", "x"})})

	if len(routes) != 0 {
		t.Errorf("self loop must resolve nothing, got %v", routes)
	}
}

// A cycle must not poison targets hanging off it only through the losing
// tie-break entry; targets reached from an acyclic origin still resolve.
func TestResolveRoutes_BranchBesideCycle(t *testing.T) {
	routes := ResolveRoutes([]Gateway{
		gw("G1", [2]string{"x", "y"}),
		gw("G2", [2]string{"y", "x"}),
		gw("G3", [2]string{"a", "b"}),
	})

	if got, ok := routes["b"]; !ok || got.Origin != "a" {
		t.Errorf("routes[b] = %v, want origin a", got)
	}
	if len(routes) != 1 {
		t.Errorf("expected exactly one resolved target, got %v", routes)
	}
}

func TestResolveRoutes_Branching(t *testing.T) {
	// One origin fans out to two targets through a shared first hop.
	routes := ResolveRoutes([]Gateway{
		gw("G1", [2]string{"a", "b"}),
		gw("G2", [2]string{"b", "c"}, [2]string{"b", "d"}),
	})

	for _, target := range []string{"c", "d"} {
		got, ok := routes[target]
		if !ok {
			t.Fatalf("target %s should resolve", target)
		}
		if got.Origin != "a" || !reflect.DeepEqual(got.Gateways, []string{"G1", "G2"}) {
			t.Errorf("routes[%s] = %v", target, got)
		}
	}
}

// Route ids are opaque strings; an empty id is a legal origin and must
// not be mistaken for an unresolved walk.
func TestResolveRoutes_EmptyOriginID(t *testing.T) {
	routes := ResolveRoutes([]Gateway{
		gw("G1", [2]string{"", "b"}),
		gw("G2", [2]string{"b", "c"}),
	})

	want := map[string]ResolvedRoute{
		"b": {Origin: "", Gateways: []string{"G1"}},
		"c": {Origin: "", Gateways: []string{"G1", "G2"}},
	}
	if !reflect.DeepEqual(routes, want) {
		t.Errorf("ResolveRoutes = %v, want %v", routes, want)
	}
}

func TestResolveRoutes_Empty(t *testing.T) {
	if routes := ResolveRoutes(nil); len(routes) != 0 {
		t.Errorf("no gateways should resolve nothing, got %v", routes)
	}
}
