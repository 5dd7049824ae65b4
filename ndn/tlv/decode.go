package tlv

// DecodingBuffer recognizes a sequence of TLV elements.
type DecodingBuffer []byte

// EOF returns true if the buffer is at end of input.
func (d DecodingBuffer) EOF() bool {
	return len(d) == 0
}

// ErrUnlessEOF returns an error if there is unconsumed input.
func (d DecodingBuffer) ErrUnlessEOF() error {
	if d.EOF() {
		return nil
	}
	return ErrTail
}

// Element extracts the next element.
func (d *DecodingBuffer) Element() (element Element, e error) {
	element, rest, e := DecodeElement([]byte(*d))
	if e != nil {
		return Element{}, e
	}
	*d = rest
	return element, nil
}

// Elements extracts all elements until end of input or the first error.
// Use ErrUnlessEOF to check whether the whole input has been consumed.
func (d *DecodingBuffer) Elements() (list []Element) {
	for !d.EOF() {
		element, e := d.Element()
		if e != nil {
			break
		}
		list = append(list, element)
	}
	return list
}
