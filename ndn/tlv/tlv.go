// Package tlv implements NDN Type-Length-Value (TLV) encoding.
package tlv

import "errors"

// Error conditions.
var (
	ErrIncomplete = errors.New("incomplete input")
	ErrTail       = errors.New("junk after end of TLV")
	ErrType       = errors.New("TLV-TYPE out of range")
	ErrRange      = errors.New("out of range")
	ErrErrorField = errors.New("Error(nil) field")
)

const (
	minType = 1
	maxType = 0xFFFFFFFF
)

// Fielder is the interface implemented by an object that can encode itself to a Field.
type Fielder interface {
	Field() Field
}

// Unmarshaler is the interface implemented by an object that can decode an TLV element representation of itself.
type Unmarshaler interface {
	UnmarshalTLV(typ uint32, value []byte) error
}
