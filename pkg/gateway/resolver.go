package gateway

// ResolvedRoute is the reconstructed end-to-end path for one target: the
// ultimate origin route id and the gateways traversed, origin first.
type ResolvedRoute struct {
	Origin   string
	Gateways []string
}

// hop is the direct predecessor of a target: the source route id and the
// gateway that forwards it.
type hop struct {
	source  string
	gateway string
}

// less orders hops lexicographically by (source, gateway).
func (h hop) less(other hop) bool {
	if h.source != other.source {
		return h.source < other.source
	}
	return h.gateway < other.gateway
}

// ResolveRoutes flattens a set of gateways into a routing table mapping
// every reachable target route id to its ultimate origin and the gateway
// path connecting them.
//
// When more than one gateway claims the same target, the lexicographically
// smaller (source, gateway-name) pair wins. The tie-break depends only on
// the set of routes, not on input order. Targets whose backward walk
// revisits a route id lie on a cycle and are omitted entirely.
func ResolveRoutes(gateways []Gateway) map[string]ResolvedRoute {
	directTo := make(map[string]hop)
	for _, gw := range gateways {
		for _, route := range gw.Routes {
			candidate := hop{source: route.Source, gateway: gw.Name}
			prev, ok := directTo[route.Target]
			if !ok || candidate.less(prev) {
				directTo[route.Target] = candidate
			}
		}
	}

	result := make(map[string]ResolvedRoute, len(directTo))
	for target := range directTo {
		var path []string
		seen := map[string]bool{target: true}

		origin := ""
		resolved := false
		prev, ok := directTo[target]
		for ok {
			if seen[prev.source] {
				// Cycle: discard the whole route for this target.
				resolved = false
				break
			}
			seen[prev.source] = true
			path = append(path, prev.gateway)
			origin = prev.source
			resolved = true
			prev, ok = directTo[prev.source]
		}
		if !resolved {
			continue
		}

		// The walk accumulated gateways target-to-origin; flip it so
		// the path reads origin first.
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		result[target] = ResolvedRoute{Origin: origin, Gateways: path}
	}
	return result
}
