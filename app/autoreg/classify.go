package autoreg

import (
	"fmt"
	"time"

	"github.com/usnistgov/ndn-autoreg/iface/faceuri"
	"github.com/usnistgov/ndn-autoreg/ndn"
	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
)

// Source indicates which prefix list produced a Target.
type Source int

// Source values.
const (
	SourceAllFaces Source = iota
	SourceAutoreg
)

func (src Source) String() string {
	switch src {
	case SourceAllFaces:
		return "all-faces"
	case SourceAutoreg:
		return "autoreg"
	}
	return fmt.Sprintf("Source(%d)", int(src))
}

// Target is a route to be registered.
type Target struct {
	Prefix ndn.Name
	FaceID uint64
	Cost   int
	Origin int
	// Expires is route expiration period; zero means the route does not expire.
	Expires time.Duration
	Source  Source
}

// Command returns the rib/register command for this target.
func (t Target) Command() mgmt.RibRegisterCommand {
	return mgmt.RibRegisterCommand{
		Name:   t.Prefix,
		FaceID: t.FaceID,
		Origin: t.Origin,
		Cost:   t.Cost,
	}
}

func (t Target) String() string {
	return fmt.Sprintf("%s@%d", t.Prefix, t.FaceID)
}

// Classify determines which routes should be registered toward a face.
//  - Local faces, faces with non-IP remote URI, and multicast faces receive no routes.
//  - AllFacesPrefixes are registered regardless of persistency and network filters.
//  - AutoregPrefixes are registered on on-demand faces whose remote address is
//    whitelisted and not blacklisted. An empty whitelist allows every address.
// A prefix appearing in both lists is targeted once.
func Classify(face mgmt.FaceStatus, cfg *Config) (targets []Target) {
	if face.Scope == mgmt.FaceScopeLocal {
		return nil
	}

	remote, e := faceuri.Parse(face.RemoteURI)
	if e != nil || !remote.IsIP() {
		return nil
	}
	ip, ok := remote.IP()
	if !ok || ip.IsMulticast() {
		return nil
	}
	ip = ip.WithZone("")

	seen := map[string]bool{}
	add := func(prefix ndn.Name, src Source) {
		key := nameKey(prefix)
		if seen[key] {
			return
		}
		seen[key] = true
		targets = append(targets, Target{
			Prefix: prefix,
			FaceID: face.ID,
			Cost:   cfg.Cost,
			Origin: mgmt.RouteOriginAutoReg,
			Source: src,
		})
	}

	for _, prefix := range cfg.AllFacesPrefixes {
		add(prefix, SourceAllFaces)
	}

	if face.Persistency == mgmt.FacePersistencyOnDemand && !cfg.Blacklist.Contains(ip) &&
		(len(cfg.Whitelist) == 0 || cfg.Whitelist.Contains(ip)) {
		for _, prefix := range cfg.AutoregPrefixes {
			add(prefix, SourceAutoreg)
		}
	}
	return targets
}
