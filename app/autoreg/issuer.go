package autoreg

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
	"go.uber.org/zap"
)

// Outcome is the result of registering a Target.
type Outcome struct {
	Target
	Code int
	Text string
	RTT  time.Duration
}

// OK determines whether the route was registered.
func (o Outcome) OK() bool {
	return o.Code == mgmt.StatusOK
}

// Issuer sends registration commands.
// Each command is attempted once, without retry.
type Issuer struct {
	client  mgmt.Client
	timeout time.Duration
	post    func(Outcome)
	wg      sync.WaitGroup
}

// Dispatch sends a rib/register command for each target in its own goroutine.
// Outcomes are passed to the post function given to NewIssuer.
func (is *Issuer) Dispatch(ctx context.Context, targets []Target) {
	for _, t := range targets {
		is.wg.Add(1)
		go func(t Target) {
			defer is.wg.Done()
			is.post(is.issue(ctx, t))
		}(t)
	}
}

func (is *Issuer) issue(ctx context.Context, t Target) (o Outcome) {
	ctx, cancel := context.WithTimeout(ctx, is.timeout)
	defer cancel()

	o.Target = t
	t0 := time.Now()
	cr, e := is.client.Invoke(ctx, t.Command())
	o.RTT = time.Since(t0)
	switch {
	case e == nil:
		o.Code, o.Text = cr.StatusCode, cr.StatusText
	case errors.Is(e, context.DeadlineExceeded):
		o.Code, o.Text = mgmt.StatusTimeout, "Timeout"
	default:
		o.Code, o.Text = mgmt.StatusTransportError, e.Error()
	}
	return o
}

// Wait blocks until every dispatched command has completed.
func (is *Issuer) Wait() {
	is.wg.Wait()
}

// NewIssuer creates an Issuer.
func NewIssuer(client mgmt.Client, timeout time.Duration, post func(Outcome)) *Issuer {
	return &Issuer{
		client:  client,
		timeout: timeout,
		post:    post,
	}
}

func logOutcome(o Outcome) {
	if o.OK() {
		logger.Info("SUCCESS",
			zap.Uint64("face", o.FaceID),
			zap.Stringer("prefix", o.Prefix),
			zap.Stringer("source", o.Source),
			zap.Duration("rtt", o.RTT),
		)
		return
	}
	logger.Warn("FAILED",
		zap.Uint64("face", o.FaceID),
		zap.Stringer("prefix", o.Prefix),
		zap.Int("code", o.Code),
		zap.String("reason", o.Text),
	)
}
