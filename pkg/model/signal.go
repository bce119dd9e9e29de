package model

// Signal is one signal within a message. Start is the canonical start bit
// index: bit 0 is the least significant bit of byte 0 under the
// big-endian-normalized addressing scheme, regardless of the signal's own
// byte order.
type Signal struct {
	Name       string
	Start      int
	Length     int
	ByteOrder  ByteOrder
	IsSigned   bool
	Conversion Conversion
	Minimum    *float64
	Maximum    *float64
	Unit       string
	Receivers  []string
	Comment    string

	// Multiplexing. A signal is either the selector for a group
	// (IsMultiplexer set) or a member referencing its selector by name
	// with the selector values under which it is active. The supported
	// subset carries exactly one selector value per member.
	IsMultiplexer     bool
	MultiplexerSignal string
	MultiplexerIDs    []int64
}

// IsMultiplexed reports whether the signal is a member of a multiplexer
// group.
func (s *Signal) IsMultiplexed() bool {
	return len(s.MultiplexerIDs) > 0
}

// End returns the canonical bit index one past the signal's last bit.
func (s *Signal) End() int {
	return s.Start + s.Length
}
