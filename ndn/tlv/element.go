package tlv

// Element represents a TLV element.
// The zero Element is invalid.
type Element struct {
	// Type is the TLV-TYPE.
	Type uint32
	// Value is the TLV-VALUE.
	Value []byte
}

var (
	_ Fielder     = Element{}
	_ Unmarshaler = (*Element)(nil)
)

// Size returns encoded size.
func (element Element) Size() int {
	return VarNum(element.Type).Size() + VarNum(element.Length()).Size() + len(element.Value)
}

// Length returns TLV-LENGTH.
func (element Element) Length() int {
	return len(element.Value)
}

// Field implements Fielder interface.
func (element Element) Field() Field {
	return TLVBytes(element.Type, element.Value)
}

// UnmarshalTLV implements Unmarshaler interface.
func (element *Element) UnmarshalTLV(typ uint32, value []byte) error {
	element.Type = typ
	element.Value = value
	return nil
}

// Unmarshal decodes this element into an Unmarshaler.
func (element Element) Unmarshal(u Unmarshaler) error {
	return u.UnmarshalTLV(element.Type, element.Value)
}

// DecodeElement extracts the first element from the buffer.
func DecodeElement(wire []byte) (element Element, rest []byte, e error) {
	var typ, length VarNum
	if wire, e = typ.Decode(wire); e != nil {
		return Element{}, nil, e
	}
	if typ < minType || typ > maxType {
		return Element{}, nil, ErrType
	}
	if wire, e = length.Decode(wire); e != nil {
		return Element{}, nil, e
	}
	if uint64(len(wire)) < uint64(length) {
		return Element{}, nil, ErrIncomplete
	}
	element.Type = uint32(typ)
	element.Value = wire[:length]
	return element, wire[length:], nil
}
