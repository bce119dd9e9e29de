// Package kcd loads and dumps CAN network definitions in the KCD XML
// format. Loading builds the shared model in pkg/model; dumping walks the
// model back into an indentation-normalized document. The two directions
// round-trip up to documented default collapsing.
package kcd

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-candb/pkg/logging"
	"github.com/dd0wney/cluso-candb/pkg/model"
)

var log = logging.Logger

// Namespace is the KCD XML namespace.
const Namespace = "http://kayak.2codeornot2code.org/1.0"

// RootTag is the local name of the expected root element.
const RootTag = "NetworkDefinition"

// UnknownAttributePolicy controls what happens when an element carries an
// attribute the format does not define.
type UnknownAttributePolicy int

const (
	// UnknownAttributeIgnore drops the attribute with a debug notice.
	UnknownAttributeIgnore UnknownAttributePolicy = iota
	// UnknownAttributeWarn drops the attribute with a warning.
	UnknownAttributeWarn
	// UnknownAttributeReject fails the load.
	UnknownAttributeReject
)

// LoadOptions configures a load pass. The zero value is permissive: no
// strict invariant checks, unknown attributes ignored. SortSignals nil
// keeps document order; DefaultLoadOptions sorts by canonical start bit.
type LoadOptions struct {
	Strict            bool
	SortSignals       model.SortSignals
	UnknownAttributes UnknownAttributePolicy
}

// DefaultLoadOptions mirror the loader's conventional configuration:
// strict invariant checks on, signals sorted by canonical start bit.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Strict:      true,
		SortSignals: model.SortSignalsByStartBit,
	}
}

// DumpOptions configures a dump pass. SortSignals nil keeps model order.
type DumpOptions struct {
	SortSignals model.SortSignals
}

// Sentinel errors.
var (
	ErrBadRootTag       = errors.New("unexpected root element")
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// FormatError is a structural failure: the document cannot be interpreted
// as KCD at all, or an element violates the format under the configured
// policy.
type FormatError struct {
	Element string // element that failed (e.g. "Signal", root tag name)
	Attr    string // offending attribute, if any
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Attr != "" {
		return fmt.Sprintf("kcd: element %s, attribute %q: %v", e.Element, e.Attr, e.Cause)
	}
	return fmt.Sprintf("kcd: element %s: %v", e.Element, e.Cause)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
