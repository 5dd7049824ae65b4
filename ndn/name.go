// Package ndn implements NDN names.
package ndn

import (
	"strings"

	"github.com/usnistgov/ndn-autoreg/ndn/an"
	"github.com/usnistgov/ndn-autoreg/ndn/tlv"
)

// Name represents a name.
// The zero Name has zero components.
type Name []NameComponent

var _ tlv.Fielder = Name{}

// Length returns TLV-LENGTH.
// Use len(name) to get number of components.
func (name Name) Length() int {
	sum := 0
	for _, comp := range name {
		sum += comp.Size()
	}
	return sum
}

// Equal determines whether two names are the same.
func (name Name) Equal(other Name) bool {
	return len(name) == len(other) && name.compareCommonPrefix(other) == 0
}

// Compare returns negative when name<other, zero when name==other, positive when name>other.
func (name Name) Compare(other Name) int {
	if d := name.compareCommonPrefix(other); d != 0 {
		return d
	}
	return len(name) - len(other)
}

func (name Name) compareCommonPrefix(other Name) int {
	commonPrefixLen := len(name)
	if commonPrefixLen > len(other) {
		commonPrefixLen = len(other)
	}
	for i := 0; i < commonPrefixLen; i++ {
		if d := name[i].Compare(other[i]); d != 0 {
			return d
		}
	}
	return 0
}

func (name Name) fielders() []tlv.Fielder {
	list := make([]tlv.Fielder, len(name))
	for i, comp := range name {
		list[i] = comp
	}
	return list
}

// Field implements tlv.Fielder interface.
func (name Name) Field() tlv.Field {
	return tlv.TLVFrom(an.TtName, name.fielders()...)
}

// MarshalBinary encodes TLV-VALUE of this name.
func (name Name) MarshalBinary() (value []byte, e error) {
	return tlv.EncodeFrom(name.fielders()...)
}

// UnmarshalBinary decodes TLV-VALUE from wire format.
func (name *Name) UnmarshalBinary(wire []byte) error {
	*name = Name{}
	d := tlv.DecodingBuffer(wire)
	for _, element := range d.Elements() {
		var comp NameComponent
		if e := element.Unmarshal(&comp); e != nil {
			return e
		}
		*name = append(*name, comp)
	}
	return d.ErrUnlessEOF()
}

// MarshalText implements encoding.TextMarshaler interface.
func (name Name) MarshalText() (text []byte, e error) {
	return []byte(name.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (name *Name) UnmarshalText(text []byte) error {
	*name = ParseName(string(text))
	return nil
}

// String returns URI representation of this name.
func (name Name) String() string {
	if len(name) == 0 {
		return "/"
	}
	b := make([]byte, 0, 2*name.Length())
	for _, comp := range name {
		b = append(b, '/')
		b = comp.appendStringTo(b)
	}
	return string(b)
}

// ParseName parses URI representation of name.
// It uses best effort and can accept any input.
func ParseName(input string) (name Name) {
	input = strings.TrimPrefix(input, "ndn:")
	for _, token := range strings.Split(input, "/") {
		if token == "" {
			continue
		}
		comp := ParseNameComponent(token)
		name = append(name, comp)
	}
	return name
}
