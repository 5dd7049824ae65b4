package faceuri

import (
	"fmt"
	"net"
	"strconv"

	"inet.af/netaddr"
)

// Default port numbers.
const (
	DefaultUDPPort = 6363
	DefaultTCPPort = 6363
)

type ipImpl struct {
	transport   string
	family      int // 0 means either
	defaultPort int
}

func (impl ipImpl) Verify(u *FaceUri) error {
	if e := rejectUPQF(u); e != nil {
		return e
	}

	ip, e := netaddr.ParseIP(u.Hostname())
	if e != nil {
		return fmt.Errorf("%s FaceUri must contain IP address: %w", u.Scheme, e)
	}

	family := 4
	if !ip.Is4() {
		family = 6
	}
	if impl.family != 0 && impl.family != family {
		return fmt.Errorf("%s FaceUri cannot contain IPv%d address", u.Scheme, family)
	}

	port := impl.defaultPort
	if p := u.Port(); p != "" {
		n, e := strconv.ParseUint(p, 10, 16)
		if e != nil || n == 0 {
			return fmt.Errorf("%s FaceUri has invalid port number %q", u.Scheme, p)
		}
		port = int(n)
	}

	u.Scheme = impl.transport + strconv.Itoa(family)
	u.Host = net.JoinHostPort(ip.String(), strconv.Itoa(port))
	return nil
}

func init() {
	implByScheme["udp"] = ipImpl{"udp", 0, DefaultUDPPort}
	implByScheme["udp4"] = ipImpl{"udp", 4, DefaultUDPPort}
	implByScheme["udp6"] = ipImpl{"udp", 6, DefaultUDPPort}
	implByScheme["tcp"] = ipImpl{"tcp", 0, DefaultTCPPort}
	implByScheme["tcp4"] = ipImpl{"tcp", 4, DefaultTCPPort}
	implByScheme["tcp6"] = ipImpl{"tcp", 6, DefaultTCPPort}
}

// IsIP determines whether the scheme is one of udp4, udp6, tcp4, tcp6.
func (u FaceUri) IsIP() bool {
	switch u.Scheme {
	case "udp4", "udp6", "tcp4", "tcp6":
		return true
	}
	return false
}

// IPPort returns IP address and port number.
// ok is false if the scheme is not IP-based.
func (u FaceUri) IPPort() (ipp netaddr.IPPort, ok bool) {
	if !u.IsIP() {
		return ipp, false
	}
	ipp, e := netaddr.ParseIPPort(u.Host)
	return ipp, e == nil
}

// IP returns the IP address.
// ok is false if the scheme is not IP-based.
func (u FaceUri) IP() (ip netaddr.IP, ok bool) {
	ipp, ok := u.IPPort()
	return ipp.IP(), ok
}
