// Package validation enforces model invariants. It is only invoked when a
// caller requests strict loading; permissive loads accept whatever shape
// the document carried.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/cluso-candb/pkg/model"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

var (
	ErrDuplicateName    = errors.New("duplicate name")
	ErrSignalOutOfRange = errors.New("signal exceeds message length")
	ErrBadMuxLinkage    = errors.New("malformed multiplexer linkage")
)

// messageShape carries the struct-tag checks for a message.
type messageShape struct {
	Name   string `validate:"required"`
	Length int    `validate:"min=0"`
}

// signalShape carries the struct-tag checks for a signal.
type signalShape struct {
	Name   string `validate:"required"`
	Start  int    `validate:"min=0"`
	Length int    `validate:"min=1"`
}

// ValidateMessage checks one message and its signals: well-formed names
// and lengths, signals inside the frame, and multiplexer linkage (every
// member names a sibling selector flagged as multiplexer and carries
// exactly one selector value).
func ValidateMessage(message *model.Message) error {
	shape := messageShape{Name: message.Name, Length: message.Length}
	if err := validate.Struct(shape); err != nil {
		return fmt.Errorf("message %q: %w", message.Name, err)
	}

	seen := make(map[string]bool, len(message.Signals))
	for _, signal := range message.Signals {
		if err := validateSignal(message, signal); err != nil {
			return err
		}
		if seen[signal.Name] {
			return fmt.Errorf("message %q: signal %q: %w", message.Name, signal.Name, ErrDuplicateName)
		}
		seen[signal.Name] = true
	}
	return nil
}

func validateSignal(message *model.Message, signal *model.Signal) error {
	shape := signalShape{Name: signal.Name, Start: signal.Start, Length: signal.Length}
	if err := validate.Struct(shape); err != nil {
		return fmt.Errorf("message %q: signal %q: %w", message.Name, signal.Name, err)
	}

	if signal.End() > 8*message.Length {
		return fmt.Errorf("message %q: signal %q occupies bits [%d, %d) of a %d byte frame: %w",
			message.Name, signal.Name, signal.Start, signal.End(), message.Length, ErrSignalOutOfRange)
	}

	if signal.IsMultiplexer && signal.IsMultiplexed() {
		return fmt.Errorf("message %q: signal %q is both selector and member: %w",
			message.Name, signal.Name, ErrBadMuxLinkage)
	}

	if signal.IsMultiplexed() {
		if len(signal.MultiplexerIDs) != 1 {
			return fmt.Errorf("message %q: signal %q carries %d selector values, want 1: %w",
				message.Name, signal.Name, len(signal.MultiplexerIDs), ErrBadMuxLinkage)
		}
		selector := message.SignalByName(signal.MultiplexerSignal)
		if selector == nil || !selector.IsMultiplexer {
			return fmt.Errorf("message %q: signal %q references selector %q which is not a sibling multiplexer: %w",
				message.Name, signal.Name, signal.MultiplexerSignal, ErrBadMuxLinkage)
		}
	} else if signal.MultiplexerSignal != "" {
		return fmt.Errorf("message %q: signal %q names selector %q but has no selector values: %w",
			message.Name, signal.Name, signal.MultiplexerSignal, ErrBadMuxLinkage)
	}

	return nil
}

// ValidateNetwork checks network-level invariants (unique node and bus
// names) and every message.
func ValidateNetwork(network *model.Network) error {
	nodes := make(map[string]bool, len(network.Nodes))
	for _, node := range network.Nodes {
		if nodes[node.Name] {
			return fmt.Errorf("node %q: %w", node.Name, ErrDuplicateName)
		}
		nodes[node.Name] = true
	}

	buses := make(map[string]bool, len(network.Buses))
	for _, bus := range network.Buses {
		if buses[bus.Name] {
			return fmt.Errorf("bus %q: %w", bus.Name, ErrDuplicateName)
		}
		buses[bus.Name] = true
	}

	for _, message := range network.Messages {
		if err := ValidateMessage(message); err != nil {
			return err
		}
	}
	return nil
}
