package model

// DefaultUnusedBitPattern is the fill value for bits no signal occupies.
const DefaultUnusedBitPattern = 0xff

// Message is one CAN frame definition.
type Message struct {
	FrameID          uint32
	IsExtendedFrame  bool
	Name             string
	Length           int
	UnusedBitPattern byte
	Senders          []string
	CycleTime        *int
	Signals          []*Signal
	Comment          string
	BusName          string
}

// DeriveLength computes the byte length implied by the message's signals:
// the canonical end bit of the signal with the highest start bit, rounded
// up to whole bytes. A message with no signals has length 0.
func (m *Message) DeriveLength() int {
	if len(m.Signals) == 0 {
		return 0
	}
	last := m.Signals[0]
	for _, s := range m.Signals[1:] {
		if s.Start > last.Start {
			last = s
		}
	}
	return (last.End() + 7) / 8
}

// SignalByName returns the named signal, or nil.
func (m *Message) SignalByName(name string) *Signal {
	for _, s := range m.Signals {
		if s.Name == name {
			return s
		}
	}
	return nil
}
