package tlv

type fieldType uint8

const (
	fieldTypeEmpty fieldType = iota
	fieldTypeError
	fieldTypeBytes
	fieldTypeNNI
	fieldTypeTLV
)

// Field is an encodable field.
// Zero value encodes to nothing.
type Field struct {
	typ     fieldType
	integer uint64
	object  any
}

// Field implements Fielder interface.
func (f Field) Field() Field {
	return f
}

// Encode appends to the byte slice.
// Returns modified slice and error.
func (f Field) Encode(b []byte) ([]byte, error) {
	switch f.typ {
	case fieldTypeEmpty:
		return b, nil
	case fieldTypeError:
		return nil, f.object.(error)
	case fieldTypeBytes:
		return append(b, f.object.([]byte)...), nil
	case fieldTypeNNI:
		return NNI(f.integer).Encode(b), nil
	case fieldTypeTLV:
		return f.encodeTLV(b)
	default:
		panic(f.typ)
	}
}

func (f Field) encodeTLV(b []byte) ([]byte, error) {
	value, e := EncodeFrom(f.object.([]Fielder)...)
	if e != nil {
		return nil, e
	}
	b = VarNum(f.integer).Encode(b)
	b = VarNum(len(value)).Encode(b)
	return append(b, value...), nil
}

// FieldError creates a Field that generates an error.
func FieldError(e error) Field {
	if e == nil {
		e = ErrErrorField
	}
	return Field{
		typ:    fieldTypeError,
		object: e,
	}
}

// Bytes creates a Field that encodes to given bytes.
func Bytes(b []byte) Field {
	return Field{
		typ:    fieldTypeBytes,
		object: b,
	}
}

// TLVFrom creates a Field that encodes to TLV element from TLV-TYPE and TLV-VALUE Fielders.
func TLVFrom(typ uint32, values ...Fielder) Field {
	if typ < minType {
		return FieldError(ErrType)
	}
	return Field{
		typ:     fieldTypeTLV,
		integer: uint64(typ),
		object:  values,
	}
}

// TLVBytes creates a Field that encodes to TLV element from TLV-TYPE and TLV-VALUE byte slice.
func TLVBytes(typ uint32, value []byte) Field {
	return TLVFrom(typ, Bytes(value))
}

// TLVNNI creates a Field that encodes to TLV element from TLV-TYPE and TLV-VALUE NonNegativeInteger.
func TLVNNI(typ uint32, v uint64) Field {
	return TLVFrom(typ, NNI(v))
}

// EncodeFrom encodes a sequence of Fielders.
func EncodeFrom(fields ...Fielder) (wire []byte, e error) {
	for _, f := range fields {
		if wire, e = f.Field().Encode(wire); e != nil {
			return nil, e
		}
	}
	return wire, nil
}
