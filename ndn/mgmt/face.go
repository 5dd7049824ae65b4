package mgmt

import (
	"fmt"
	"strconv"
)

func parseEnum(input []byte, names []string, what string) (int, error) {
	s := string(input)
	for i, name := range names {
		if s == name {
			return i, nil
		}
	}
	if n, e := strconv.ParseUint(s, 10, 8); e == nil && int(n) < len(names) {
		return int(n), nil
	}
	return 0, fmt.Errorf("invalid %s %q", what, s)
}

func formatEnum(v int, names []string) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return strconv.Itoa(v)
}

// FaceScope indicates whether a face is local.
type FaceScope int

// FaceScope values.
const (
	FaceScopeNonLocal FaceScope = 0
	FaceScopeLocal    FaceScope = 1
)

var faceScopeNames = []string{"non-local", "local"}

func (s FaceScope) String() string {
	return formatEnum(int(s), faceScopeNames)
}

// MarshalText implements encoding.TextMarshaler interface.
func (s FaceScope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (s *FaceScope) UnmarshalText(text []byte) error {
	v, e := parseEnum(text, faceScopeNames, "FaceScope")
	*s = FaceScope(v)
	return e
}

// FacePersistency indicates face persistency.
type FacePersistency int

// FacePersistency values.
const (
	FacePersistencyPersistent FacePersistency = 0
	FacePersistencyOnDemand   FacePersistency = 1
	FacePersistencyPermanent  FacePersistency = 2
)

var facePersistencyNames = []string{"persistent", "on-demand", "permanent"}

func (p FacePersistency) String() string {
	return formatEnum(int(p), facePersistencyNames)
}

// MarshalText implements encoding.TextMarshaler interface.
func (p FacePersistency) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (p *FacePersistency) UnmarshalText(text []byte) error {
	v, e := parseEnum(text, facePersistencyNames, "FacePersistency")
	*p = FacePersistency(v)
	return e
}

// LinkType indicates face link type.
type LinkType int

// LinkType values.
const (
	LinkTypePointToPoint LinkType = 0
	LinkTypeMultiAccess  LinkType = 1
	LinkTypeAdHoc        LinkType = 2
)

var linkTypeNames = []string{"point-to-point", "multi-access", "ad-hoc"}

func (t LinkType) String() string {
	return formatEnum(int(t), linkTypeNames)
}

// MarshalText implements encoding.TextMarshaler interface.
func (t LinkType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (t *LinkType) UnmarshalText(text []byte) error {
	v, e := parseEnum(text, linkTypeNames, "LinkType")
	*t = LinkType(v)
	return e
}

// FaceEventKind indicates face event kind.
type FaceEventKind int

// FaceEventKind values.
const (
	FaceEventCreated   FaceEventKind = 1
	FaceEventDestroyed FaceEventKind = 2
	FaceEventUp        FaceEventKind = 3
	FaceEventDown      FaceEventKind = 4
)

var faceEventKindNames = []string{"", "created", "destroyed", "up", "down"}

func (k FaceEventKind) String() string {
	return formatEnum(int(k), faceEventKindNames)
}

// MarshalText implements encoding.TextMarshaler interface.
func (k FaceEventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (k *FaceEventKind) UnmarshalText(text []byte) error {
	v, e := parseEnum(text, faceEventKindNames, "FaceEventKind")
	if e == nil && v == 0 {
		e = fmt.Errorf("invalid FaceEventKind %q", text)
	}
	*k = FaceEventKind(v)
	return e
}

// FaceStatus describes a face in the face dataset.
type FaceStatus struct {
	ID          uint64          `json:"id"`
	RemoteURI   string          `json:"remoteUri"`
	LocalURI    string          `json:"localUri"`
	Scope       FaceScope       `json:"scope"`
	Persistency FacePersistency `json:"persistency"`
	LinkType    LinkType        `json:"linkType"`
}

// FaceEvent is a face event notification.
type FaceEvent struct {
	FaceStatus
	Kind FaceEventKind `json:"kind"`
}
