// Package faceuri parses and validates FaceUri strings.
package faceuri

import (
	"errors"
	"fmt"
	"net/url"
)

// FaceUri is a URI identifying a face endpoint, such as "udp4://192.0.2.1:6363" or "unix:///run/nfd.sock".
type FaceUri struct {
	url.URL
}

// Parse parses and canonizes a FaceUri.
func Parse(raw string) (*FaceUri, error) {
	base, e := url.Parse(raw)
	if e != nil {
		return nil, e
	}

	if !base.IsAbs() {
		return nil, errors.New("FaceUri must be absolute")
	}

	impl, ok := implByScheme[base.Scheme]
	if !ok {
		return nil, fmt.Errorf("unknown scheme %s", base.Scheme)
	}

	u := &FaceUri{URL: *base}
	if e = impl.Verify(u); e != nil {
		return nil, e
	}
	return u, nil
}

// MustParse parses a FaceUri, panics on error.
func MustParse(raw string) *FaceUri {
	u, e := Parse(raw)
	if e != nil {
		panic(e)
	}
	return u
}

func (u FaceUri) String() string {
	return u.URL.String()
}

// Network returns network type suitable for net.Listen or net.ListenPacket.
// It returns empty string if the scheme is not a socket type.
func (u FaceUri) Network() string {
	switch u.Scheme {
	case "udp4", "udp6", "tcp4", "tcp6", "unix":
		return u.Scheme
	}
	return ""
}

// Address returns socket address suitable for net.Listen or net.ListenPacket.
func (u FaceUri) Address() string {
	if u.Scheme == "unix" {
		return u.Path
	}
	return u.Host
}

// IsDatagram determines whether the scheme is datagram-oriented.
func (u FaceUri) IsDatagram() bool {
	return u.Scheme == "udp4" || u.Scheme == "udp6"
}

// MarshalText implements encoding.TextMarshaler interface.
func (u FaceUri) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (u *FaceUri) UnmarshalText(text []byte) error {
	parsed, e := Parse(string(text))
	if e != nil {
		return e
	}
	*u = *parsed
	return nil
}

type iImpl interface {
	// Verify checks a FaceUri and canonizes its fields.
	Verify(u *FaceUri) error
}

var implByScheme = map[string]iImpl{}

// rejectUPQF returns an error if FaceUri contains User, Path, Query, or Fragment.
func rejectUPQF(u *FaceUri) error {
	if u.User != nil {
		return fmt.Errorf("%s URI cannot have user information", u.Scheme)
	}
	if u.Path != "" {
		if u.Path != "/" {
			return fmt.Errorf("%s URI cannot have path", u.Scheme)
		}
		u.Path = ""
	}
	if u.RawQuery != "" || u.ForceQuery {
		return fmt.Errorf("%s URI cannot have query", u.Scheme)
	}
	if u.Fragment != "" {
		return fmt.Errorf("%s URI cannot have fragment", u.Scheme)
	}
	return nil
}
