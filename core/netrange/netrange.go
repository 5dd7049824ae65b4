// Package netrange provides an IP address range type for allow/deny lists.
package netrange

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"inet.af/netaddr"
)

// Family identifies an address family.
type Family int

// Family values.
const (
	FamilyInvalid Family = 0
	FamilyIPv4    Family = 4
	FamilyIPv6    Family = 6
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "IPv4"
	case FamilyIPv6:
		return "IPv6"
	}
	return "invalid"
}

// FamilyOf returns address family of an IP address.
func FamilyOf(ip netaddr.IP) Family {
	switch {
	case ip.Is4():
		return FamilyIPv4
	case ip.Is6():
		return FamilyIPv6
	}
	return FamilyInvalid
}

// Range represents a CIDR address range.
// Zero value is invalid and contains nothing.
type Range struct {
	p netaddr.IPPrefix
}

// Parse parses a CIDR range such as "192.0.2.0/24" or "2001:db8::/32".
// A bare address is treated as a full-length range.
// Host bits after the prefix length are cleared.
func Parse(input string) (r Range, e error) {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "/") {
		ip, e := netaddr.ParseIP(input)
		if e != nil {
			return Range{}, fmt.Errorf("invalid network %q: %w", input, e)
		}
		return Range{netaddr.IPPrefixFrom(ip, ip.BitLen())}, nil
	}

	p, e := netaddr.ParseIPPrefix(input)
	if e != nil {
		return Range{}, fmt.Errorf("invalid network %q: %w", input, e)
	}
	return Range{p.Masked()}, nil
}

// MustParse parses a CIDR range, panics on error.
func MustParse(input string) Range {
	r, e := Parse(input)
	if e != nil {
		panic(e)
	}
	return r
}

// MaxRangeV4 returns the range containing every IPv4 address.
func MaxRangeV4() Range {
	return Range{netaddr.IPPrefixFrom(netaddr.IPv4(0, 0, 0, 0), 0)}
}

// MaxRangeV6 returns the range containing every IPv6 address.
func MaxRangeV6() Range {
	return Range{netaddr.IPPrefixFrom(netaddr.IPv6Unspecified(), 0)}
}

// Valid determines whether r is a valid range.
func (r Range) Valid() bool {
	return r.p.IsValid()
}

// Family returns address family.
func (r Range) Family() Family {
	if !r.Valid() {
		return FamilyInvalid
	}
	return FamilyOf(r.p.IP())
}

// Base returns the first address of the range.
func (r Range) Base() netaddr.IP {
	return r.p.IP()
}

// Bits returns prefix length.
func (r Range) Bits() int {
	return int(r.p.Bits())
}

// Contains determines whether ip is within the range.
// An address of a different family is never contained.
func (r Range) Contains(ip netaddr.IP) bool {
	return r.Valid() && FamilyOf(ip) == r.Family() && r.p.Contains(ip)
}

// String returns CIDR representation.
func (r Range) String() string {
	if !r.Valid() {
		return "invalid"
	}
	return r.p.String()
}

// MarshalText implements encoding.TextMarshaler interface.
func (r Range) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid network")
	}
	return []byte(r.p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (r *Range) UnmarshalText(text []byte) (e error) {
	*r, e = Parse(string(text))
	return e
}

// List is a list of ranges.
type List []Range

// Contains determines whether any range in the list contains ip.
func (list List) Contains(ip netaddr.IP) bool {
	for _, r := range list {
		if r.Contains(ip) {
			return true
		}
	}
	return false
}

// Strings returns CIDR representation of each range.
func (list List) Strings() (a []string) {
	for _, r := range list {
		a = append(a, r.String())
	}
	return a
}

// ParseList parses a list of CIDR ranges.
// Returns the valid ranges, and an error that combines every malformed input.
func ParseList(inputs []string) (list List, e error) {
	for _, input := range inputs {
		r, re := Parse(input)
		if re != nil {
			e = multierr.Append(e, re)
			continue
		}
		list = append(list, r)
	}
	return list, e
}
