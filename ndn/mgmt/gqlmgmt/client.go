// Package gqlmgmt provides access to forwarder management over GraphQL API.
package gqlmgmt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/usnistgov/ndn-autoreg/core/gqlclient"
	"github.com/usnistgov/ndn-autoreg/core/logging"
	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
	"go.uber.org/zap"
)

var logger = logging.New("gqlmgmt")

const faceFields = `
	id
	remoteUri
	localUri
	scope
	persistency
	linkType
`

// Client provides access to forwarder management over GraphQL API.
type Client struct {
	*gqlclient.Client
}

var _ mgmt.Client = (*Client)(nil)

// ListFaces retrieves the face dataset.
func (c *Client) ListFaces(ctx context.Context) (faces []mgmt.FaceStatus, e error) {
	e = c.Do(ctx, `
		query faces {
			faces {`+faceFields+`}
		}
	`, nil, "faces", &faces)
	return
}

// SubscribeFaceEvents opens a face event notification stream.
// WebSocket connection errors are reported synchronously.
func (c *Client) SubscribeFaceEvents(ctx context.Context) (mgmt.FaceEventStream, error) {
	if e := c.Connect(); e != nil {
		return nil, fmt.Errorf("gqlclient.Connect: %w", e)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &faceEventStream{
		cancel: cancel,
		events: make(chan mgmt.FaceEvent),
		done:   make(chan struct{}),
	}
	raw := make(chan mgmt.FaceEvent)
	go func() {
		s.err = c.Subscribe(ctx, `
			subscription faceEvents {
				faceEvents {
					kind`+faceFields+`}
			}
		`, nil, "faceEvents", raw)
		close(s.done)
	}()
	go s.forward(ctx, raw)
	return s, nil
}

// Invoke issues a control command.
func (c *Client) Invoke(ctx context.Context, cmd mgmt.ControlCommand) (cr mgmt.ControlResponse, e error) {
	params, e := json.Marshal(cmd)
	if e != nil {
		return cr, fmt.Errorf("json.Marshal: %w", e)
	}

	e = c.Do(ctx, `
		mutation invokeCommand($verb: String!, $parameters: JSON!) {
			invokeCommand(verb: $verb, parameters: $parameters) {
				statusCode
				statusText
				body
			}
		}
	`, map[string]any{
		"verb":       cmd.Verb(),
		"parameters": json.RawMessage(params),
	}, "invokeCommand", &cr)
	return cr, e
}

// New creates a Client.
func New(cfg gqlclient.Config) (*Client, error) {
	c, e := gqlclient.New(cfg)
	if e != nil {
		return nil, e
	}
	return &Client{Client: c}, nil
}

type faceEventStream struct {
	cancel context.CancelFunc
	events chan mgmt.FaceEvent
	done   chan struct{}
	err    error
}

func (s *faceEventStream) forward(ctx context.Context, raw <-chan mgmt.FaceEvent) {
	defer close(s.events)
	for evt := range raw {
		select {
		case s.events <- evt:
		case <-ctx.Done():
		}
	}
	<-s.done
	if s.err != nil && !errors.Is(s.err, gqlclient.ErrClosed) {
		logger.Warn("face event subscription ended", zap.Error(s.err))
	}
}

func (s *faceEventStream) Events() <-chan mgmt.FaceEvent {
	return s.events
}

func (s *faceEventStream) Err() error {
	<-s.done
	return s.err
}

func (s *faceEventStream) Close() error {
	s.cancel()
	<-s.done
	return nil
}
