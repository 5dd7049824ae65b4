// Package channel manages local listening endpoints.
package channel

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gogf/greuse"
	"github.com/usnistgov/ndn-autoreg/core/logging"
	"github.com/usnistgov/ndn-autoreg/iface/faceuri"
	"go.uber.org/zap"
)

var logger = logging.New("channel")

// EndpointKey identifies a local listening endpoint.
// It is written in FaceUri form, such as "unix:///run/nfd.sock" or "tcp4://127.0.0.1:6363".
// Two keys are equal if and only if their strings are equal.
type EndpointKey string

// CreationError indicates a channel cannot be created.
type CreationError struct {
	Key EndpointKey
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("cannot create channel %s: %v", e.Key, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// Error conditions.
var (
	ErrNotSocket     = errors.New("scheme is not a listenable socket type")
	ErrSocketInUse   = errors.New("unix socket is in use by another process")
	ErrNotSocketFile = errors.New("path exists and is not a socket")
)

// Channel owns a listening socket.
// It is shared among callers and closed only by its Registry.
type Channel struct {
	key      EndpointKey
	uri      *faceuri.FaceUri
	listener net.Listener
	conn     net.PacketConn
}

// Key returns the EndpointKey.
func (ch *Channel) Key() EndpointKey {
	return ch.key
}

// URI returns the parsed EndpointKey.
func (ch *Channel) URI() *faceuri.FaceUri {
	return ch.uri
}

// Listener returns the stream listener, or nil on a datagram channel.
func (ch *Channel) Listener() net.Listener {
	return ch.listener
}

// PacketConn returns the datagram socket, or nil on a stream channel.
func (ch *Channel) PacketConn() net.PacketConn {
	return ch.conn
}

// LocalAddr returns the bound address.
func (ch *Channel) LocalAddr() net.Addr {
	if ch.listener != nil {
		return ch.listener.Addr()
	}
	return ch.conn.LocalAddr()
}

func (ch *Channel) String() string {
	return string(ch.key)
}

func (ch *Channel) close() error {
	if ch.listener != nil {
		return ch.listener.Close()
	}
	return ch.conn.Close()
}

func open(key EndpointKey) (ch *Channel, e error) {
	ch = &Channel{key: key}
	if ch.uri, e = faceuri.Parse(string(key)); e != nil {
		return nil, e
	}

	network, address := ch.uri.Network(), ch.uri.Address()
	switch {
	case network == "":
		return nil, ErrNotSocket
	case ch.uri.IsDatagram():
		ch.conn, e = greuse.ListenPacket(network, address)
	case network == "unix":
		if e = prepareUnixSocket(address); e != nil {
			return nil, e
		}
		ch.listener, e = net.Listen(network, address)
	default:
		ch.listener, e = net.Listen(network, address)
	}

	if e != nil {
		return nil, e
	}
	return ch, nil
}

// prepareUnixSocket creates the parent directory and removes a stale socket file.
func prepareUnixSocket(path string) error {
	if e := os.MkdirAll(filepath.Dir(path), 0o755); e != nil {
		return e
	}

	fi, e := os.Lstat(path)
	switch {
	case errors.Is(e, os.ErrNotExist):
		return nil
	case e != nil:
		return e
	case fi.Mode()&os.ModeSocket == 0:
		return ErrNotSocketFile
	}

	conn, e := net.DialTimeout("unix", path, time.Second)
	if e == nil {
		conn.Close()
		return ErrSocketInUse
	}

	logger.Info("removing stale unix socket", zap.String("path", path))
	return os.Remove(path)
}
