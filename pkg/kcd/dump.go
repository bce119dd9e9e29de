package kcd

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/dd0wney/cluso-candb/pkg/model"
)

// Dump serializes a network model as a KCD document: version marker first,
// then nodes with sequential 1-based ids, then a single Bus element
// aggregating every message in network order. Output is two-space
// indented, independent of however the model was produced.
func Dump(network *model.Network, opts DumpOptions) ([]byte, error) {
	doc := xmlNetworkDefinition{
		XSI:      "http://www.w3.org/2001/XMLSchema-instance",
		Xmlns:    Namespace,
		Location: "Definition.xsd",
	}

	if network.Version != "" {
		doc.Document = &xmlDocument{Version: network.Version}
	}

	// Node ids are assigned by stored order, 1-based. The same table
	// serializes sender and receiver references.
	refs := make(map[string]string, len(network.Nodes))
	for i, node := range network.Nodes {
		id := strconv.Itoa(i + 1)
		doc.Nodes = append(doc.Nodes, xmlNode{ID: id, Name: node.Name})
		refs[node.Name] = id
	}

	bus := xmlBus{Name: "Bus"}
	for _, message := range network.Messages {
		bus.Messages = append(bus.Messages, dumpMessage(message, refs, opts.SortSignals))
	}
	doc.Buses = []xmlBus{bus}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func dumpMessage(message *model.Message, refs map[string]string, sortSignals model.SortSignals) xmlMessage {
	elem := xmlMessage{
		ID:     fmt.Sprintf("0x%03X", message.FrameID),
		Name:   message.Name,
		Length: strconv.Itoa(message.Length),
	}
	if message.CycleTime != nil {
		elem.Interval = strconv.Itoa(*message.CycleTime)
	}
	if message.IsExtendedFrame {
		elem.Format = "extended"
	}
	if message.Comment != "" {
		elem.Notes = &xmlNotes{Text: message.Comment}
	}
	elem.Producer = dumpNodeRefs(message.Senders, refs)

	signals := message.Signals
	if sortSignals != nil {
		signals = sortSignals(signals)
	}

	for _, signal := range signals {
		switch {
		case signal.IsMultiplexer:
			mux := dumpSignal(signal, refs)
			mux.MuxGroups = dumpMuxGroups(signal.Name, signals, refs)
			elem.Multiplexes = append(elem.Multiplexes, mux)
		case !signal.IsMultiplexed():
			elem.Signals = append(elem.Signals, dumpSignal(signal, refs))
		}
	}

	return elem
}

// dumpMuxGroups flattens the members of one selector into MuxGroup
// elements, grouped by their singleton selector value in first-seen order
// with members in original order.
func dumpMuxGroups(selectorName string, signals []*model.Signal, refs map[string]string) []xmlMuxGroup {
	var order []int64
	members := make(map[int64][]*model.Signal)

	for _, signal := range signals {
		if signal.MultiplexerSignal != selectorName || !signal.IsMultiplexed() {
			continue
		}
		id := signal.MultiplexerIDs[0]
		if _, ok := members[id]; !ok {
			order = append(order, id)
		}
		members[id] = append(members[id], signal)
	}

	groups := make([]xmlMuxGroup, 0, len(order))
	for _, id := range order {
		group := xmlMuxGroup{Count: strconv.FormatInt(id, 10)}
		for _, signal := range members[id] {
			group.Signals = append(group.Signals, dumpSignal(signal, refs))
		}
		groups = append(groups, group)
	}
	return groups
}

// dumpSignal emits a signal element, leaving out every attribute that
// still carries its default (length 1, little-endian, identity
// conversion).
func dumpSignal(signal *model.Signal, refs map[string]string) xmlSignal {
	elem := xmlSignal{
		Name:   signal.Name,
		Offset: strconv.Itoa(model.ToFormat(signal.Start, signal.ByteOrder)),
	}
	if signal.Length != 1 {
		elem.Length = strconv.Itoa(signal.Length)
	}
	if signal.ByteOrder == model.BigEndian {
		elem.Endianess = "big"
	}
	if signal.Comment != "" {
		elem.Notes = &xmlNotes{Text: signal.Comment}
	}
	elem.Consumer = dumpNodeRefs(signal.Receivers, refs)

	value := xmlValue{Unit: signal.Unit}
	if signal.Minimum != nil {
		value.Min = formatNum(*signal.Minimum)
	}
	if signal.Maximum != nil {
		value.Max = formatNum(*signal.Maximum)
	}
	if c := signal.Conversion; c.Scale != 1 {
		value.Slope = formatNum(c.Scale)
	}
	if c := signal.Conversion; c.Offset != 0 {
		value.Intercept = formatNum(c.Offset)
	}
	switch {
	case signal.Conversion.IsFloat && signal.Length == 32:
		value.Type = "single"
	case signal.Conversion.IsFloat:
		value.Type = "double"
	case signal.IsSigned:
		value.Type = "signed"
	}
	// A Value sub-element appears only when it would carry at least one
	// non-default attribute.
	if !value.isZero() {
		elem.Value = &value
	}

	if choices := signal.Conversion.Choices; len(choices) > 0 {
		set := &xmlLabelSet{}
		for _, nv := range choices {
			set.Labels = append(set.Labels, xmlLabel{
				Name:  nv.Name,
				Value: strconv.FormatInt(nv.Value, 10),
			})
		}
		elem.LabelSet = set
	}

	return elem
}

// dumpNodeRefs serializes a name list through the name-to-id table. Names
// missing from the node table are skipped; the dump stays total.
func dumpNodeRefs(names []string, refs map[string]string) *xmlNodeRefs {
	if len(names) == 0 {
		return nil
	}
	out := &xmlNodeRefs{}
	for _, name := range names {
		id, ok := refs[name]
		if !ok {
			log.Debugf("kcd: dropping reference to unknown node %q", name)
			continue
		}
		out.Refs = append(out.Refs, xmlNodeRef{ID: id})
	}
	if len(out.Refs) == 0 {
		return nil
	}
	return out
}

// formatNum renders a float the shortest way that parses back exactly.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
