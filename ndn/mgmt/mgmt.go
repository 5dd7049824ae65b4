// Package mgmt defines interface of forwarder management features.
package mgmt

import (
	"context"
	"io"
)

// Client provides access to forwarder management features.
type Client interface {
	io.Closer

	// ListFaces retrieves the face dataset.
	ListFaces(ctx context.Context) ([]FaceStatus, error)

	// SubscribeFaceEvents opens a face event notification stream.
	// The stream is canceled when ctx is canceled or the stream is closed.
	SubscribeFaceEvents(ctx context.Context) (FaceEventStream, error)

	// Invoke issues a control command.
	// Error is returned only if no response was received.
	Invoke(ctx context.Context, cmd ControlCommand) (ControlResponse, error)
}

// FaceEventStream represents a face event notification stream.
type FaceEventStream interface {
	io.Closer

	// Events returns a channel that delivers events in arrival order.
	// It is closed when the stream ends.
	Events() <-chan FaceEvent

	// Err returns the reason of stream ending.
	// It should be called after Events() channel is closed.
	// It returns nil if the stream was closed or canceled locally.
	Err() error
}
