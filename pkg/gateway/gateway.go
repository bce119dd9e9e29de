// Package gateway models CAN gateways and reconstructs end-to-end
// forwarding paths across a mesh of point-to-point relays.
package gateway

// Route is one relay rule: a frame arriving via Source is forwarded,
// unmodified in identity, to Target.
type Route struct {
	Source string
	Target string
}

// Gateway is a logical relay owned by a node, carrying an ordered list of
// forwarding rules. Route identifiers are opaque; multiple gateways may
// claim the same target.
type Gateway struct {
	Name    string
	NodeRef string
	Routes  []Route
}
