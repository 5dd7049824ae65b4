// Package autoreg registers routes toward newly created faces.
package autoreg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/usnistgov/ndn-autoreg/core/events"
	"github.com/usnistgov/ndn-autoreg/core/logging"
	"github.com/usnistgov/ndn-autoreg/core/runningstat"
	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var logger = logging.New("autoreg")

// State indicates engine state.
type State int32

// State values.
const (
	StateIdle State = iota
	StateSnapshotFetching
	StateSubscribed
	StateShuttingDown
	StateStopped
)

var stateNames = []string{"idle", "snapshot-fetching", "subscribed", "shutting-down", "stopped"}

func (st State) String() string {
	if int(st) < len(stateNames) {
		return stateNames[st]
	}
	return fmt.Sprintf("State(%d)", int32(st))
}

// ErrRunning indicates Engine.Run was called more than once.
var ErrRunning = errors.New("engine has been started")

// SubscriptionError indicates the face event subscription cannot be opened or has ended unexpectedly.
type SubscriptionError struct {
	Err error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("face event subscription failed: %v", e.Err)
}

func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

const (
	evtStateChange = "StateChange"
	evtOutcome     = "Outcome"
)

// Counters contains engine counters.
type Counters struct {
	NEvents        uint64 `json:"nEvents" xml:"nEvents"`               // received face events
	NIgnored       uint64 `json:"nIgnored" xml:"nIgnored"`             // face events other than non-local face creation
	NSnapshotFaces uint64 `json:"nSnapshotFaces" xml:"nSnapshotFaces"` // faces in the face dataset
	NProcessed     uint64 `json:"nProcessed" xml:"nProcessed"`         // classified faces
	NDuplicates    uint64 `json:"nDuplicates" xml:"nDuplicates"`       // faces skipped because they were already classified
	NCommands      uint64 `json:"nCommands" xml:"nCommands"`           // dispatched commands
	NSuccess       uint64 `json:"nSuccess" xml:"nSuccess"`             // registered routes
	NFailure       uint64 `json:"nFailure" xml:"nFailure"`             // failed commands
	NDropped       uint64 `json:"nDropped" xml:"nDropped"`             // outcomes arriving after shutdown
}

// Engine reconciles routes with the forwarder's faces.
// It bootstraps from the face dataset, then follows face creation events.
// All events, dataset results, and command outcomes are handled on a single goroutine.
type Engine struct {
	cfg     Config
	client  mgmt.Client
	issuer  *Issuer
	emitter *events.Emitter
	helpers sync.WaitGroup
	posts   chan func()
	stopped chan struct{}
	seen    map[uint64]bool

	latencyLock sync.Mutex
	latency     runningstat.IntStat

	started atomic.Bool
	state   atomic.Int32
	cnt     struct {
		nEvents, nIgnored, nSnapshotFaces, nProcessed, nDuplicates atomic.Uint64
		nCommands, nSuccess, nFailure, nDropped                    atomic.Uint64
	}
}

// Config returns effective configuration.
func (eng *Engine) Config() Config {
	return eng.cfg
}

// State returns current state.
func (eng *Engine) State() State {
	return State(eng.state.Load())
}

func (eng *Engine) setState(st State) {
	eng.state.Store(int32(st))
	logger.Debug("state change", zap.Stringer("state", st))
	eng.emitter.Emit(evtStateChange, st)
}

// Counters retrieves counters.
func (eng *Engine) Counters() Counters {
	return Counters{
		NEvents:        eng.cnt.nEvents.Load(),
		NIgnored:       eng.cnt.nIgnored.Load(),
		NSnapshotFaces: eng.cnt.nSnapshotFaces.Load(),
		NProcessed:     eng.cnt.nProcessed.Load(),
		NDuplicates:    eng.cnt.nDuplicates.Load(),
		NCommands:      eng.cnt.nCommands.Load(),
		NSuccess:       eng.cnt.nSuccess.Load(),
		NFailure:       eng.cnt.nFailure.Load(),
		NDropped:       eng.cnt.nDropped.Load(),
	}
}

// CommandLatency returns round-trip time statistics of completed commands, in nanoseconds.
func (eng *Engine) CommandLatency() runningstat.Snapshot {
	eng.latencyLock.Lock()
	defer eng.latencyLock.Unlock()
	return eng.latency.Read()
}

// OnStateChange registers a callback when engine state changes.
// The engine waits for the callback to return, so it must not block.
func (eng *Engine) OnStateChange(cb func(st State)) io.Closer {
	return eng.emitter.On(evtStateChange, cb)
}

// OnOutcome registers a callback when a registration command completes.
// The engine waits for the callback to return, so it must not block.
func (eng *Engine) OnOutcome(cb func(o Outcome)) io.Closer {
	return eng.emitter.On(evtOutcome, cb)
}

// Run executes the engine until ctx is canceled or the face event subscription fails.
// It opens the subscription before requesting the face dataset, so that no face is missed.
// Returns nil upon cancellation, or *SubscriptionError.
func (eng *Engine) Run(ctx context.Context) (e error) {
	if eng.started.Swap(true) {
		return ErrRunning
	}
	logger.Info("starting", eng.cfg.LogFields()...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, e := eng.client.SubscribeFaceEvents(ctx)
	if e != nil {
		logger.Error("face event subscription error", zap.Error(e))
		eng.setState(StateStopped)
		close(eng.stopped)
		return &SubscriptionError{Err: e}
	}

	eng.setState(StateSnapshotFetching)
	eng.helpers.Add(1)
	go func() {
		defer eng.helpers.Done()
		faces, e := eng.client.ListFaces(ctx)
		eng.post(func() { eng.handleSnapshot(ctx, faces, e) })
	}()

	e = eng.loop(ctx, stream)

	eng.setState(StateShuttingDown)
	close(eng.stopped)
	cancel()
	stream.Close()
	eng.helpers.Wait()
	eng.issuer.Wait()
	eng.setState(StateStopped)
	if e != nil {
		logger.Error("engine stopped", zap.Error(e))
	} else {
		logger.Info("engine stopped")
	}
	return e
}

func (eng *Engine) loop(ctx context.Context, stream mgmt.FaceEventStream) error {
	events := stream.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				e := stream.Err()
				if e == nil {
					e = io.EOF
				}
				return &SubscriptionError{Err: e}
			}
			eng.handleEvent(ctx, evt)
		case fn := <-eng.posts:
			fn()
		}
	}
}

// post schedules fn to run on the engine goroutine.
// It is dropped if the engine has stopped.
func (eng *Engine) post(fn func()) {
	select {
	case eng.posts <- fn:
	case <-eng.stopped:
		eng.cnt.nDropped.Inc()
	}
}

func (eng *Engine) handleSnapshot(ctx context.Context, faces []mgmt.FaceStatus, e error) {
	if e != nil {
		logger.Warn("face dataset fetch error", zap.Error(e))
	} else {
		logger.Info("face dataset received", zap.Int("n-faces", len(faces)))
		for _, face := range faces {
			eng.cnt.nSnapshotFaces.Inc()
			eng.evaluate(ctx, face)
		}
	}

	if eng.State() == StateSnapshotFetching {
		eng.setState(StateSubscribed)
	}
}

func (eng *Engine) handleEvent(ctx context.Context, evt mgmt.FaceEvent) {
	eng.cnt.nEvents.Inc()
	if evt.Kind == mgmt.FaceEventDestroyed {
		delete(eng.seen, evt.ID)
	}

	if evt.Kind != mgmt.FaceEventCreated || evt.Scope != mgmt.FaceScopeNonLocal {
		eng.cnt.nIgnored.Inc()
		logger.Info("IGNORED",
			zap.Uint64("face", evt.ID),
			zap.Stringer("kind", evt.Kind),
			zap.Stringer("scope", evt.Scope),
			zap.String("remote", evt.RemoteURI),
		)
		return
	}

	logger.Info("PROCESSING",
		zap.Uint64("face", evt.ID),
		zap.String("remote", evt.RemoteURI),
		zap.Stringer("persistency", evt.Persistency),
	)
	eng.evaluate(ctx, evt.FaceStatus)
}

func (eng *Engine) evaluate(ctx context.Context, face mgmt.FaceStatus) {
	if eng.seen[face.ID] {
		eng.cnt.nDuplicates.Inc()
		logger.Debug("face already processed", zap.Uint64("face", face.ID))
		return
	}
	eng.seen[face.ID] = true
	eng.cnt.nProcessed.Inc()

	targets := Classify(face, &eng.cfg)
	if len(targets) == 0 {
		logger.Debug("no route for face", zap.Uint64("face", face.ID), zap.String("remote", face.RemoteURI))
		return
	}
	eng.cnt.nCommands.Add(uint64(len(targets)))
	eng.issuer.Dispatch(ctx, targets)
}

func (eng *Engine) handleOutcome(o Outcome) {
	if o.OK() {
		eng.cnt.nSuccess.Inc()
	} else {
		eng.cnt.nFailure.Inc()
	}
	eng.latencyLock.Lock()
	eng.latency.Push(uint64(o.RTT))
	eng.latencyLock.Unlock()
	logOutcome(o)
	eng.emitter.Emit(evtOutcome, o)
}

// New creates an Engine.
// cfg is completed with defaults and validated; an invalid cfg yields *ConfigError.
func New(client mgmt.Client, cfg Config) (*Engine, error) {
	cfg.ApplyDefaults()
	if e := cfg.Validate(); e != nil {
		return nil, e
	}

	eng := &Engine{
		cfg:     cfg,
		client:  client,
		emitter: events.NewEmitter(),
		posts:   make(chan func()),
		stopped: make(chan struct{}),
		seen:    map[uint64]bool{},
	}
	eng.latency.Init(1)
	eng.issuer = NewIssuer(client, cfg.CommandTimeout.Duration(), func(o Outcome) {
		eng.post(func() { eng.handleOutcome(o) })
	})
	return eng, nil
}
