package mgmt

import (
	"encoding/json"
	"fmt"

	"github.com/usnistgov/ndn-autoreg/core/nnduration"
	"github.com/usnistgov/ndn-autoreg/ndn"
)

// RouteOrigin assigned numbers.
const (
	RouteOriginApp     = 0
	RouteOriginAutoReg = 64
	RouteOriginClient  = 65
	RouteOriginStatic  = 255
)

// Status codes.
// Codes at or above 10000 are reported locally when no response was received.
const (
	StatusOK             = 200
	StatusTransportError = 10000
	StatusTimeout        = 10060
)

// ControlCommand represents a control command.
type ControlCommand interface {
	// Verb returns module and command name, such as "rib/register".
	Verb() string
}

// RibRegisterCommand is a command to register a route.
type RibRegisterCommand struct {
	Name      ndn.Name                `json:"name"`
	FaceID    uint64                  `json:"faceID,omitempty"`
	Origin    int                     `json:"origin"`
	Cost      int                     `json:"cost"`
	NoInherit bool                    `json:"noInherit"`
	Capture   bool                    `json:"capture"`
	Expires   nnduration.Milliseconds `json:"expires,omitempty"`
}

var _ ControlCommand = RibRegisterCommand{}

// Verb returns "rib/register".
func (RibRegisterCommand) Verb() string {
	return "rib/register"
}

// ControlResponse represents a control response.
type ControlResponse struct {
	StatusCode int             `json:"statusCode"`
	StatusText string          `json:"statusText"`
	Body       json.RawMessage `json:"body,omitempty"`
}

// OK determines whether the command succeeded.
func (cr ControlResponse) OK() bool {
	return cr.StatusCode == StatusOK
}

func (cr ControlResponse) String() string {
	return fmt.Sprintf("%d %s", cr.StatusCode, cr.StatusText)
}
