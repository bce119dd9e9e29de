package kcd

import "encoding/xml"

// Wire structs mirroring the KCD element set. Attribute and element names
// are the wire contract and must be preserved exactly. Numeric attributes
// stay strings so absent and zero-valued attributes remain
// distinguishable, and so dumping controls formatting.

type xmlNetworkDefinition struct {
	XMLName  xml.Name     `xml:"NetworkDefinition"`
	XSI      string       `xml:"xmlns:xsi,attr,omitempty"`
	Xmlns    string       `xml:"xmlns,attr,omitempty"`
	Location string       `xml:"xsi:noNamespaceSchemaLocation,attr,omitempty"`
	Document *xmlDocument `xml:"Document"`
	Nodes    []xmlNode    `xml:"Node"`
	Buses    []xmlBus     `xml:"Bus"`
}

type xmlDocument struct {
	Version string `xml:"version,attr,omitempty"`
}

type xmlNode struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type xmlBus struct {
	Name     string       `xml:"name,attr"`
	Baudrate string       `xml:"baudrate,attr,omitempty"`
	Messages []xmlMessage `xml:"Message"`
}

type xmlMessage struct {
	ID       string     `xml:"id,attr"`
	Name     string     `xml:"name,attr"`
	Length   string     `xml:"length,attr,omitempty"`
	Interval string     `xml:"interval,attr,omitempty"`
	Format   string     `xml:"format,attr,omitempty"`
	Extra    []xml.Attr `xml:",any,attr"`

	Notes       *xmlNotes    `xml:"Notes"`
	Producer    *xmlNodeRefs `xml:"Producer"`
	Multiplexes []xmlSignal  `xml:"Multiplex"`
	Signals     []xmlSignal  `xml:"Signal"`
}

// xmlSignal doubles as the Multiplex element, which carries the same
// attribute set plus MuxGroup children.
type xmlSignal struct {
	Name      string     `xml:"name,attr"`
	Offset    string     `xml:"offset,attr"`
	Length    string     `xml:"length,attr,omitempty"`
	Endianess string     `xml:"endianess,attr,omitempty"`
	Extra     []xml.Attr `xml:",any,attr"`

	Notes     *xmlNotes     `xml:"Notes"`
	Consumer  *xmlNodeRefs  `xml:"Consumer"`
	Value     *xmlValue     `xml:"Value"`
	LabelSet  *xmlLabelSet  `xml:"LabelSet"`
	MuxGroups []xmlMuxGroup `xml:"MuxGroup"`
}

type xmlMuxGroup struct {
	Count   string      `xml:"count,attr"`
	Signals []xmlSignal `xml:"Signal"`
}

type xmlValue struct {
	Min       string     `xml:"min,attr,omitempty"`
	Max       string     `xml:"max,attr,omitempty"`
	Slope     string     `xml:"slope,attr,omitempty"`
	Intercept string     `xml:"intercept,attr,omitempty"`
	Unit      string     `xml:"unit,attr,omitempty"`
	Type      string     `xml:"type,attr,omitempty"`
	Extra     []xml.Attr `xml:",any,attr"`
}

func (v *xmlValue) isZero() bool {
	return v.Min == "" && v.Max == "" && v.Slope == "" &&
		v.Intercept == "" && v.Unit == "" && v.Type == ""
}

type xmlLabelSet struct {
	Labels []xmlLabel `xml:"Label"`
}

type xmlLabel struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlNotes struct {
	Text string `xml:",chardata"`
}

// xmlNodeRefs backs both Producer and Consumer elements.
type xmlNodeRefs struct {
	Refs []xmlNodeRef `xml:"NodeRef"`
}

type xmlNodeRef struct {
	ID string `xml:"id,attr"`
}
