// Package mgmttest provides an in-memory management client for unit testing.
package mgmttest

import (
	"context"
	"sync"

	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
)

// RespondFunc produces a response for a control command.
type RespondFunc func(ctx context.Context, cmd mgmt.ControlCommand) (mgmt.ControlResponse, error)

// RespondOK is a RespondFunc that accepts every command.
func RespondOK(context.Context, mgmt.ControlCommand) (mgmt.ControlResponse, error) {
	return mgmt.ControlResponse{StatusCode: mgmt.StatusOK, StatusText: "OK"}, nil
}

// Client is an in-memory mgmt.Client.
type Client struct {
	mutex        sync.Mutex
	faces        []mgmt.FaceStatus
	listErr      error
	listGate     chan struct{}
	subscribeErr error
	respond      RespondFunc
	streams      []*stream
	commands     []mgmt.ControlCommand
	nListCalls   int
}

var _ mgmt.Client = (*Client)(nil)

// SetFaces sets the face dataset.
func (c *Client) SetFaces(faces ...mgmt.FaceStatus) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.faces = append([]mgmt.FaceStatus{}, faces...)
}

// SetListError causes ListFaces to fail.
func (c *Client) SetListError(e error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.listErr = e
}

// HoldList causes ListFaces to block until the returned function is called.
func (c *Client) HoldList() (release func()) {
	gate := make(chan struct{})
	c.mutex.Lock()
	c.listGate = gate
	c.mutex.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// SetSubscribeError causes SubscribeFaceEvents to fail.
func (c *Client) SetSubscribeError(e error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.subscribeErr = e
}

// SetRespond sets the function that responds to control commands.
func (c *Client) SetRespond(f RespondFunc) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.respond = f
}

// ListFaces implements mgmt.Client interface.
func (c *Client) ListFaces(ctx context.Context) ([]mgmt.FaceStatus, error) {
	c.mutex.Lock()
	c.nListCalls++
	gate := c.listGate
	c.mutex.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.listErr != nil {
		return nil, c.listErr
	}
	return append([]mgmt.FaceStatus{}, c.faces...), nil
}

// NListCalls returns how many times ListFaces has been invoked.
func (c *Client) NListCalls() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.nListCalls
}

// SubscribeFaceEvents implements mgmt.Client interface.
func (c *Client) SubscribeFaceEvents(ctx context.Context) (mgmt.FaceEventStream, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.subscribeErr != nil {
		return nil, c.subscribeErr
	}

	s := &stream{events: make(chan mgmt.FaceEvent, 1024)}
	c.streams = append(c.streams, s)
	go func() {
		<-ctx.Done()
		s.end(nil)
	}()
	return s, nil
}

// NSubscribers returns number of open streams.
func (c *Client) NSubscribers() (n int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, s := range c.streams {
		if !s.isClosed() {
			n++
		}
	}
	return n
}

// Emit delivers a face event to every open stream.
func (c *Client) Emit(evt mgmt.FaceEvent) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, s := range c.streams {
		s.send(evt)
	}
}

// EndStreams ends every open stream with an error.
func (c *Client) EndStreams(e error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, s := range c.streams {
		s.end(e)
	}
}

// Invoke implements mgmt.Client interface.
func (c *Client) Invoke(ctx context.Context, cmd mgmt.ControlCommand) (mgmt.ControlResponse, error) {
	c.mutex.Lock()
	c.commands = append(c.commands, cmd)
	respond := c.respond
	c.mutex.Unlock()

	if respond == nil {
		respond = RespondOK
	}
	return respond(ctx, cmd)
}

// Commands returns invoked control commands.
func (c *Client) Commands() []mgmt.ControlCommand {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]mgmt.ControlCommand{}, c.commands...)
}

// RibRegistrations returns invoked rib/register commands.
func (c *Client) RibRegistrations() (list []mgmt.RibRegisterCommand) {
	for _, cmd := range c.Commands() {
		if reg, ok := cmd.(mgmt.RibRegisterCommand); ok {
			list = append(list, reg)
		}
	}
	return list
}

// Close ends every open stream.
func (c *Client) Close() error {
	c.EndStreams(nil)
	return nil
}

// New creates a Client with empty face dataset.
func New() *Client {
	return &Client{}
}

type stream struct {
	mutex  sync.Mutex
	events chan mgmt.FaceEvent
	closed bool
	err    error
}

func (s *stream) send(evt mgmt.FaceEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.closed {
		s.events <- evt
	}
}

func (s *stream) end(e error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.closed {
		s.closed, s.err = true, e
		close(s.events)
	}
}

func (s *stream) isClosed() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.closed
}

func (s *stream) Events() <-chan mgmt.FaceEvent {
	return s.events
}

func (s *stream) Err() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.err
}

func (s *stream) Close() error {
	s.end(nil)
	return nil
}
