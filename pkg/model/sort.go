package model

import "sort"

// SortSignals orders a message's signals for serialization or model
// construction. A nil policy keeps document order. Policies must not
// mutate their input.
type SortSignals func([]*Signal) []*Signal

// SortSignalsByStartBit orders signals by canonical start bit, ties broken
// by length so shorter signals come first. The sort is stable.
func SortSignalsByStartBit(signals []*Signal) []*Signal {
	out := make([]*Signal, len(signals))
	copy(out, signals)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Length < out[j].Length
	})
	return out
}

// SortSignalsBy wraps an arbitrary comparator into a sort policy.
func SortSignalsBy(less func(a, b *Signal) bool) SortSignals {
	return func(signals []*Signal) []*Signal {
		out := make([]*Signal, len(signals))
		copy(out, signals)
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i], out[j])
		})
		return out
	}
}
