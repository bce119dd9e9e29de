package kcd

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/dd0wney/cluso-candb/pkg/model"
	"github.com/dd0wney/cluso-candb/pkg/validation"
)

// Load parses a KCD document into the shared network model. The only hard
// failure at this layer is a root element that is not the namespaced
// NetworkDefinition tag (or XML the parser cannot read at all); every
// other irregularity degrades per the configured options.
func Load(data []byte, opts LoadOptions) (*model.Network, error) {
	if err := checkRootTag(data); err != nil {
		return nil, err
	}

	var doc xmlNetworkDefinition
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Element: RootTag, Cause: err}
	}

	network := &model.Network{}
	if doc.Document != nil {
		network.Version = doc.Document.Version
	}

	byID := make(map[string]string, len(doc.Nodes))
	for _, n := range doc.Nodes {
		network.Nodes = append(network.Nodes, &model.Node{Name: n.Name})
		byID[n.ID] = n.Name
	}

	for _, b := range doc.Buses {
		bus := &model.Bus{Name: b.Name, Baudrate: model.DefaultBaudrate}
		if b.Baudrate != "" {
			if rate, err := strconv.Atoi(b.Baudrate); err == nil {
				bus.Baudrate = rate
			} else {
				log.Debugf("kcd: ignoring unparsable baudrate %q on bus %q", b.Baudrate, b.Name)
			}
		}
		network.Buses = append(network.Buses, bus)

		for i := range b.Messages {
			message, err := loadMessage(&b.Messages[i], bus.Name, byID, opts)
			if err != nil {
				return nil, err
			}
			network.Messages = append(network.Messages, message)
		}
	}

	if opts.Strict {
		if err := validation.ValidateNetwork(network); err != nil {
			return nil, err
		}
	}

	return network, nil
}

// checkRootTag scans to the first start element and verifies it is the
// namespaced NetworkDefinition tag.
func checkRootTag(data []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return &FormatError{Element: RootTag, Cause: ErrBadRootTag}
		}
		if err != nil {
			return &FormatError{Element: RootTag, Cause: err}
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Space != Namespace || start.Name.Local != RootTag {
			return &FormatError{
				Element: start.Name.Local,
				Cause:   fmt.Errorf("%w: expected {%s}%s", ErrBadRootTag, Namespace, RootTag),
			}
		}
		return nil
	}
}

func loadMessage(elem *xmlMessage, busName string, byID map[string]string, opts LoadOptions) (*model.Message, error) {
	if err := checkUnknownAttrs("Message", elem.Extra, opts.UnknownAttributes); err != nil {
		return nil, err
	}

	message := &model.Message{
		Name:             elem.Name,
		UnusedBitPattern: model.DefaultUnusedBitPattern,
		BusName:          busName,
	}

	if id, err := strconv.ParseUint(elem.ID, 0, 32); err == nil {
		message.FrameID = uint32(id)
	} else {
		log.Debugf("kcd: ignoring unparsable frame id %q on message %q", elem.ID, elem.Name)
	}

	message.IsExtendedFrame = elem.Format == "extended"

	if elem.Interval != "" {
		if interval, err := strconv.Atoi(elem.Interval); err == nil {
			message.CycleTime = &interval
		} else {
			log.Debugf("kcd: ignoring unparsable interval %q on message %q", elem.Interval, elem.Name)
		}
	}

	if elem.Notes != nil {
		message.Comment = elem.Notes.Text
	}
	message.Senders = resolveNodeRefs(elem.Producer, byID)

	// Multiplex elements contribute their signals first, standalone
	// Signal elements after, each set in document order.
	for i := range elem.Multiplexes {
		signals, err := loadMultiplex(&elem.Multiplexes[i], byID, opts)
		if err != nil {
			return nil, err
		}
		message.Signals = append(message.Signals, signals...)
	}
	for i := range elem.Signals {
		signal, err := loadSignal(&elem.Signals[i], byID, opts)
		if err != nil {
			return nil, err
		}
		message.Signals = append(message.Signals, signal)
	}

	if length, err := strconv.Atoi(elem.Length); err == nil {
		message.Length = length
	} else {
		// Absent or the "auto" sentinel: derive from the signals.
		message.Length = message.DeriveLength()
	}

	if opts.SortSignals != nil {
		message.Signals = opts.SortSignals(message.Signals)
	}

	return message, nil
}

// loadMultiplex returns the selector signal followed by the member signals
// of every MuxGroup, tagged with their selector value and a back-reference
// to the selector's name.
func loadMultiplex(elem *xmlSignal, byID map[string]string, opts LoadOptions) ([]*model.Signal, error) {
	selector, err := loadSignal(elem, byID, opts)
	if err != nil {
		return nil, err
	}
	selector.IsMultiplexer = true
	signals := []*model.Signal{selector}

	for _, group := range elem.MuxGroups {
		count, err := strconv.ParseInt(group.Count, 0, 64)
		if err != nil {
			log.Debugf("kcd: ignoring mux group with unparsable count %q under %q", group.Count, selector.Name)
			continue
		}

		for i := range group.Signals {
			signal, err := loadSignal(&group.Signals[i], byID, opts)
			if err != nil {
				return nil, err
			}
			signal.MultiplexerIDs = []int64{count}
			signal.MultiplexerSignal = selector.Name
			signals = append(signals, signal)
		}
	}

	return signals, nil
}

func loadSignal(elem *xmlSignal, byID map[string]string, opts LoadOptions) (*model.Signal, error) {
	if err := checkUnknownAttrs("Signal", elem.Extra, opts.UnknownAttributes); err != nil {
		return nil, err
	}

	signal := &model.Signal{
		Name:      elem.Name,
		Length:    1,
		ByteOrder: model.LittleEndian,
	}

	if elem.Length != "" {
		if length, err := strconv.Atoi(elem.Length); err == nil {
			signal.Length = length
		} else {
			log.Debugf("kcd: ignoring unparsable length %q on signal %q", elem.Length, elem.Name)
		}
	}
	if elem.Endianess == "big" {
		signal.ByteOrder = model.BigEndian
	}

	bitOffset := 0
	if elem.Offset != "" {
		if parsed, err := strconv.Atoi(elem.Offset); err == nil {
			bitOffset = parsed
		} else {
			log.Debugf("kcd: ignoring unparsable offset %q on signal %q", elem.Offset, elem.Name)
		}
	}
	signal.Start = model.ToCanonical(bitOffset, signal.ByteOrder)

	scale := 1.0
	offset := 0.0
	if v := elem.Value; v != nil {
		if err := checkUnknownAttrs("Value", v.Extra, opts.UnknownAttributes); err != nil {
			return nil, err
		}
		signal.Minimum = parseNum(v.Min, elem.Name, "min")
		signal.Maximum = parseNum(v.Max, elem.Name, "max")
		if n := parseNum(v.Slope, elem.Name, "slope"); n != nil {
			scale = *n
		}
		if n := parseNum(v.Intercept, elem.Name, "intercept"); n != nil {
			offset = *n
		}
		signal.Unit = v.Unit
		signal.IsSigned = v.Type == "signed"
	}

	isFloat := elem.Value != nil && (elem.Value.Type == "single" || elem.Value.Type == "double")

	var choices []model.NamedValue
	if elem.LabelSet != nil {
		choices = loadLabels(elem.LabelSet, elem.Name)
	}
	signal.Conversion = model.NewConversion(scale, offset, choices, isFloat)

	if elem.Notes != nil {
		signal.Comment = elem.Notes.Text
	}
	signal.Receivers = resolveNodeRefs(elem.Consumer, byID)

	return signal, nil
}

// loadLabels reads a LabelSet preserving first-seen order; a duplicate raw
// value overwrites the earlier name in place (last one wins).
func loadLabels(set *xmlLabelSet, signalName string) []model.NamedValue {
	var choices []model.NamedValue
	index := make(map[int64]int)
	for _, label := range set.Labels {
		value, err := strconv.ParseInt(label.Value, 0, 64)
		if err != nil {
			log.Debugf("kcd: ignoring label with unparsable value %q on signal %q", label.Value, signalName)
			continue
		}
		if at, ok := index[value]; ok {
			choices[at].Name = label.Name
			continue
		}
		index[value] = len(choices)
		choices = append(choices, model.NamedValue{Value: value, Name: label.Name})
	}
	return choices
}

// resolveNodeRefs maps node-id references to node names. An unresolved id
// is omitted rather than surfaced; degraded documents are common in the
// wild.
func resolveNodeRefs(refs *xmlNodeRefs, byID map[string]string) []string {
	if refs == nil {
		return nil
	}
	var names []string
	for _, ref := range refs.Refs {
		name, ok := byID[ref.ID]
		if !ok {
			log.Debugf("kcd: dropping reference to unknown node id %q", ref.ID)
			continue
		}
		names = append(names, name)
	}
	return names
}

func parseNum(s, signalName, attr string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Debugf("kcd: ignoring unparsable %s %q on signal %q", attr, s, signalName)
		return nil
	}
	return &v
}

// checkUnknownAttrs applies the unknown-attribute policy to the attributes
// no wire field claimed. Namespace declarations are not attributes of the
// format and never count.
func checkUnknownAttrs(element string, extra []xml.Attr, policy UnknownAttributePolicy) error {
	for _, attr := range extra {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		switch policy {
		case UnknownAttributeReject:
			return &FormatError{Element: element, Attr: attr.Name.Local, Cause: ErrUnknownAttribute}
		case UnknownAttributeWarn:
			log.Warnf("kcd: ignoring unsupported %s attribute %q", element, attr.Name.Local)
		default:
			log.Debugf("kcd: ignoring unsupported %s attribute %q", element, attr.Name.Local)
		}
	}
	return nil
}
