package model

// ByteOrder is the bit addressing convention of a signal.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (b ByteOrder) String() string {
	switch b {
	case BigEndian:
		return "big_endian"
	default:
		return "little_endian"
	}
}

// ToCanonical converts a format-native bit offset into the canonical start
// bit index. Little-endian offsets are already canonical. Big-endian offsets
// mirror the bit positions within each byte, so that bit 0 of a byte is its
// most significant bit.
func ToCanonical(offset int, byteOrder ByteOrder) int {
	if byteOrder == BigEndian {
		return 8*(offset/8) + (7 - offset%8)
	}
	return offset
}

// ToFormat converts a canonical start bit back into a format-native offset.
// The big-endian mirror is self-inverse per byte, so the same transform
// applies in both directions.
func ToFormat(start int, byteOrder ByteOrder) int {
	return ToCanonical(start, byteOrder)
}
