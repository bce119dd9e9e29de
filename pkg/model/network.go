package model

// DefaultBaudrate applies when a bus declares no bit rate.
const DefaultBaudrate = 500000

// Node is a network participant, referenced by name from message sender
// lists and signal receiver lists.
type Node struct {
	Name    string
	Comment string
}

// Bus is one physical CAN bus.
type Bus struct {
	Name     string
	Baudrate int
}

// Network is the aggregate definition model: an ordered message list, the
// participating nodes, the buses, and an optional document version. Each
// message records its owning bus by name; MessagesOnBus recovers the
// per-bus grouping.
type Network struct {
	Version  string
	Nodes    []*Node
	Buses    []*Bus
	Messages []*Message
}

// NodeByName returns the named node, or nil.
func (n *Network) NodeByName(name string) *Node {
	for _, node := range n.Nodes {
		if node.Name == name {
			return node
		}
	}
	return nil
}

// MessageByName returns the named message, or nil.
func (n *Network) MessageByName(name string) *Message {
	for _, m := range n.Messages {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// MessageByFrameID returns the first message with the given frame id, or
// nil.
func (n *Network) MessageByFrameID(id uint32) *Message {
	for _, m := range n.Messages {
		if m.FrameID == id {
			return m
		}
	}
	return nil
}

// MessagesOnBus returns the messages owned by the named bus, in network
// order.
func (n *Network) MessagesOnBus(name string) []*Message {
	var out []*Message
	for _, m := range n.Messages {
		if m.BusName == name {
			out = append(out, m)
		}
	}
	return out
}
