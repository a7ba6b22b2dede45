package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/metrics"
	"github.com/btmgmt/btmgmt-go/pkg/subscription"
	"github.com/btmgmt/btmgmt-go/pkg/transport"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// TracerName is the instrumentation name used for the default tracer.
const TracerName = "github.com/btmgmt/btmgmt-go/pkg/dispatch"

// State is the lifecycle state of a submitted command.
type State uint8

const (
	StateSubmitted State = iota
	StateAwaitingReply
	StateResolved
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateSubmitted:
		return "SUBMITTED"
	case StateAwaitingReply:
		return "AWAITING_REPLY"
	case StateResolved:
		return "RESOLVED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// key is the correlation key of a command.
type key struct {
	opcode wire.Opcode
	index  wire.ControllerIndex
}

type result struct {
	reply catalog.Reply
	err   error
}

type pendingCmd struct {
	cmd  catalog.Command
	sent time.Time
	done chan result // buffered, receives exactly one result
}

// Dispatcher correlates commands with replies and fans out events.
type Dispatcher struct {
	transport transport.Transport
	config    Config
	logger    *slog.Logger
	plog      log.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	subs      *subscription.Manager

	mu         sync.Mutex
	pending    map[key]*pendingCmd
	tombstones map[key]time.Time
	closed     bool
	closeErr   error

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a dispatcher over t. Zero Config fields take their defaults.
func New(t transport.Transport, config Config) *Dispatcher {
	defaults := DefaultConfig()
	if config.CommandTimeout <= 0 {
		config.CommandTimeout = defaults.CommandTimeout
	}
	if config.StaleTTL == 0 {
		config.StaleTTL = defaults.StaleTTL
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(TracerName)
	}

	logger := config.Logger
	if config.ConnectionID != "" {
		logger = logger.With("conn_id", config.ConnectionID)
	}

	return &Dispatcher{
		transport: t,
		config:    config,
		logger:    logger,
		plog:      log.OrNoop(config.ProtocolLogger),
		metrics:   config.Metrics,
		tracer:    config.Tracer,
		subs: subscription.NewManagerWithConfig(subscription.Config{
			QueueSize: config.QueueSize,
			Logger:    logger,
		}),
		pending:    make(map[key]*pendingCmd),
		tombstones: make(map[key]time.Time),
		done:       make(chan struct{}),
	}
}

// Run reads frames until the transport closes or ctx is done, then fails
// every pending command and closes every subscription. It returns an
// error wrapping ErrTransportClosed, or ctx's error.
func (d *Dispatcher) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(d.done)

	stop := context.AfterFunc(ctx, func() { d.transport.Close() })
	defer stop()

	d.logger.Info("dispatcher started")
	d.logState(log.StateEntityConnection, nil, "", "RUNNING", "")

	runErr := ErrTransportClosed
	for frame, err := range d.transport.Frames() {
		if err != nil {
			runErr = err
			break
		}
		d.handleFrame(frame)
	}

	if !errors.Is(runErr, ErrTransportClosed) {
		runErr = fmt.Errorf("%w: %w", ErrTransportClosed, runErr)
	}
	d.shutdown(runErr)
	d.logger.Info("dispatcher stopped", "reason", runErr)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return runErr
}

// Done is closed when Run returns.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// Close closes the transport, which ends Run. If Run was never started
// the pending set and subscriptions are shut down directly.
func (d *Dispatcher) Close() error {
	var err error
	d.closeOnce.Do(func() {
		err = d.transport.Close()
		if !d.running.Load() {
			d.shutdown(ErrTransportClosed)
		}
	})
	return err
}

// Subscribe returns a subscription for unmatched frames of one controller
// index. Subscribing to wire.NonController receives those of every index.
func (d *Dispatcher) Subscribe(index wire.ControllerIndex, opts ...subscription.Option) *subscription.Subscription {
	return d.subs.Subscribe(index, opts...)
}

// SubscribeAll is Subscribe(wire.NonController).
func (d *Dispatcher) SubscribeAll(opts ...subscription.Option) *subscription.Subscription {
	return d.subs.SubscribeAll(opts...)
}

// Pending returns the number of commands awaiting a reply.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Exec submits cmd for controller index and waits for its reply.
//
// Invalid parameters fail with catalog.ErrInvalidParameter before any I/O.
// Non-success statuses, timeouts, cancellations and key conflicts fail
// with a *CommandError.
func (d *Dispatcher) Exec(ctx context.Context, index wire.ControllerIndex, cmd catalog.Command) (catalog.Reply, error) {
	op := cmd.Opcode()
	ctx, span := d.tracer.Start(ctx, "btmgmt "+op.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("btmgmt.opcode", op.String()),
			attribute.Int("btmgmt.opcode_value", int(op)),
			attribute.String("btmgmt.index", index.String()),
		),
	)
	defer span.End()

	reply, err := d.exec(ctx, index, cmd)
	if err != nil {
		if status, ok := StatusOf(err); ok {
			span.SetAttributes(attribute.String("btmgmt.status", status.String()))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("btmgmt.status", wire.StatusSuccess.String()))
	span.SetStatus(codes.Ok, "")
	return reply, nil
}

func (d *Dispatcher) exec(ctx context.Context, index wire.ControllerIndex, cmd catalog.Command) (catalog.Reply, error) {
	op := cmd.Opcode()
	data, err := catalog.EncodeCommand(index, cmd)
	if err != nil {
		d.metrics.CommandRefused(op, metrics.OutcomeError)
		return nil, err
	}

	k := key{opcode: op, index: index}
	p := &pendingCmd{cmd: cmd, done: make(chan result, 1)}

	d.mu.Lock()
	if d.closed {
		closeErr := d.closeErr
		d.mu.Unlock()
		d.metrics.CommandRefused(op, metrics.OutcomeTransportClosed)
		return nil, closeErr
	}
	if _, busy := d.pending[k]; busy {
		d.mu.Unlock()
		d.metrics.CommandRefused(op, metrics.OutcomeInFlightConflict)
		return nil, &CommandError{Kind: KindInFlightConflict, Opcode: op, Index: index}
	}
	p.sent = time.Now()
	d.pending[k] = p
	d.mu.Unlock()

	d.metrics.CommandStarted()
	d.logMessage(log.DirectionOut, index, &log.MessageEvent{Type: log.MessageTypeCommand, Opcode: &op, Payload: cmd})

	if err := d.transport.Send(data); err != nil {
		d.release(k, p, false)
		d.metrics.CommandFinished(op, outcome(err), time.Since(p.sent))
		return nil, fmt.Errorf("send %s: %w", op, err)
	}
	d.logState(log.StateEntityCommand, &index, StateSubmitted.String(), StateAwaitingReply.String(), op.String())

	res := d.wait(ctx, k, p)
	elapsed := time.Since(p.sent)
	d.metrics.CommandFinished(op, outcome(res.err), elapsed)

	if res.err != nil {
		d.logState(log.StateEntityCommand, &index, StateAwaitingReply.String(), StateFailed.String(), res.err.Error())
		d.logger.Debug("command failed", "opcode", op.String(), "index", index.String(), "error", res.err)
		return nil, res.err
	}
	d.logState(log.StateEntityCommand, &index, StateAwaitingReply.String(), StateResolved.String(), op.String())
	d.logger.Debug("command resolved", "opcode", op.String(), "index", index.String(), "latency", elapsed)
	return res.reply, nil
}

// wait blocks until the reader resolves p or the wait is bounded out. A
// deadline on ctx is the bound; CommandTimeout applies only without one.
func (d *Dispatcher) wait(ctx context.Context, k key, p *pendingCmd) result {
	var expired <-chan time.Time
	if _, ok := ctx.Deadline(); !ok {
		timer := time.NewTimer(d.config.CommandTimeout)
		defer timer.Stop()
		expired = timer.C
	}

	var failure *CommandError
	select {
	case res := <-p.done:
		return res
	case <-expired:
		failure = &CommandError{Kind: KindTimeout, Opcode: k.opcode, Index: k.index}
	case <-ctx.Done():
		failure = &CommandError{Kind: KindCancelled, Opcode: k.opcode, Index: k.index, Err: ctx.Err()}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			failure.Kind = KindTimeout
		}
	}

	if !d.release(k, p, true) {
		// The reader or shutdown resolved p while we were giving up.
		return <-p.done
	}
	return result{err: failure}
}

// release removes p from the pending set if it is still there. With
// tombstone set, the key remembers that a late reply may still arrive.
func (d *Dispatcher) release(k key, p *pendingCmd, tombstone bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending[k] != p {
		return false
	}
	delete(d.pending, k)
	if tombstone && d.config.StaleTTL > 0 {
		now := time.Now()
		d.pruneTombstones(now)
		d.tombstones[k] = now.Add(d.config.StaleTTL)
	}
	return true
}

// pruneTombstones drops expired tombstones. Callers hold d.mu.
func (d *Dispatcher) pruneTombstones(now time.Time) {
	for k, expiry := range d.tombstones {
		if now.After(expiry) {
			delete(d.tombstones, k)
		}
	}
}

// handleFrame decodes one inbound frame. Decoding failures are reported
// and the frame is skipped.
func (d *Dispatcher) handleFrame(data []byte) {
	f, err := wire.DecodeFrame(data)
	if err != nil {
		d.protocolError(err, "decode frame")
		return
	}
	ev, err := catalog.DecodeEvent(f)
	if err != nil {
		d.protocolError(err, "decode event")
		return
	}

	switch e := ev.(type) {
	case *catalog.CommandComplete:
		if d.resolve(f.Index, e.Opcode, e.Status, e.Params, true) {
			return
		}
	case *catalog.CommandStatus:
		if d.resolve(f.Index, e.Opcode, e.Status, nil, false) {
			return
		}
	}
	d.deliver(f.Index, ev)
}

// resolve hands a reply to the command waiting on (op, index). It reports
// whether the reply was consumed, either by a waiter or as a stale reply.
func (d *Dispatcher) resolve(index wire.ControllerIndex, op wire.Opcode, status wire.Status, params []byte, complete bool) bool {
	k := key{opcode: op, index: index}
	now := time.Now()

	d.mu.Lock()
	if expiry, ok := d.tombstones[k]; ok {
		delete(d.tombstones, k)
		if !now.After(expiry) {
			d.mu.Unlock()
			d.stale(index, op, status)
			return true
		}
	}
	p, ok := d.pending[k]
	if ok {
		delete(d.pending, k)
	}
	d.mu.Unlock()

	if !ok {
		return false
	}

	latency := now.Sub(p.sent)
	st := status
	d.logMessage(log.DirectionIn, index, &log.MessageEvent{
		Type: log.MessageTypeReply, Opcode: &op, Status: &st, Latency: &latency,
	})

	var res result
	switch {
	case !status.IsSuccess():
		res.err = &CommandError{Kind: KindRejected, Opcode: op, Index: index, Status: status}
	case complete:
		reply, err := catalog.DecodeReply(p.cmd, index, params)
		if err != nil {
			d.protocolError(err, "decode reply")
			res.err = err
			break
		}
		res.reply = reply
	default:
		// Status-only acknowledgement carries no return parameters.
		res.reply = p.cmd.NewReply()
	}

	if complete && res.err == nil && d.config.Observer != nil {
		d.config.Observer.ApplyReply(index, p.cmd, res.reply)
	}
	p.done <- res
	return true
}

func (d *Dispatcher) stale(index wire.ControllerIndex, op wire.Opcode, status wire.Status) {
	d.logger.Warn("discarding stale reply",
		"opcode", op.String(),
		"index", index.String(),
		"status", status.String())
	d.metrics.StaleReply(op)
	d.logState(log.StateEntityCommand, &index, StateFailed.String(), "STALE_REPLY", op.String())
}

// deliver passes an event to the observer and then to subscribers.
func (d *Dispatcher) deliver(index wire.ControllerIndex, ev catalog.Event) {
	code := ev.Code()
	d.logMessage(log.DirectionIn, index, &log.MessageEvent{Type: log.MessageTypeEvent, EventCode: &code, Payload: ev})
	d.metrics.Event(code)

	if d.config.Observer != nil {
		d.config.Observer.ApplyEvent(index, ev)
	}

	_, dropped := d.subs.Publish(subscription.Notification{
		Index:     index,
		Event:     ev,
		Timestamp: time.Now(),
	})
	d.metrics.DroppedEvents(code, dropped)
}

// shutdown fails every pending command with err and closes subscriptions.
func (d *Dispatcher) shutdown(err error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.closeErr = err
	pending := d.pending
	d.pending = make(map[key]*pendingCmd)
	d.tombstones = make(map[key]time.Time)
	d.mu.Unlock()

	for k, p := range pending {
		p.done <- result{err: fmt.Errorf("%s on %s: %w", k.opcode, k.index, err)}
	}
	d.subs.CloseAll(ErrTransportClosed)
	d.logState(log.StateEntityConnection, nil, "RUNNING", "CLOSED", err.Error())
}

func (d *Dispatcher) protocolError(err error, where string) {
	kind := "other"
	var code *int
	var pe *wire.ProtocolError
	if errors.As(err, &pe) {
		kind = protocolErrorKind(pe.Err)
		c := int(pe.Code)
		code = &c
	}

	d.logger.Warn("skipping undecodable frame", "error", err, "context", where)
	d.metrics.ProtocolError(kind)
	d.plog.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: d.config.ConnectionID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerDispatch,
		Category:     log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerCodec,
			Message: err.Error(),
			Code:    code,
			Context: where,
		},
	})
	if d.config.OnProtocolError != nil {
		d.config.OnProtocolError(err)
	}
}

func protocolErrorKind(err error) string {
	switch {
	case errors.Is(err, wire.ErrTruncatedFrame):
		return "truncated"
	case errors.Is(err, wire.ErrMalformedFrame):
		return "malformed"
	case errors.Is(err, wire.ErrUnknownOpcode):
		return "unknown_code"
	default:
		return "other"
	}
}

func (d *Dispatcher) logMessage(dir log.Direction, index wire.ControllerIndex, msg *log.MessageEvent) {
	d.plog.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: d.config.ConnectionID,
		Direction:    dir,
		Layer:        log.LayerCodec,
		Category:     log.CategoryMessage,
		Index:        &index,
		Message:      msg,
	})
}

func (d *Dispatcher) logState(entity log.StateEntity, index *wire.ControllerIndex, from, to, reason string) {
	d.plog.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: d.config.ConnectionID,
		Layer:        log.LayerDispatch,
		Category:     log.CategoryState,
		Index:        index,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			OldState: from,
			NewState: to,
			Reason:   reason,
		},
	})
}

// outcome maps a command result to its metrics label.
func outcome(err error) string {
	var ce *CommandError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &ce):
		switch ce.Kind {
		case KindRejected:
			return metrics.OutcomeRejected
		case KindTimeout:
			return metrics.OutcomeTimeout
		case KindCancelled:
			return metrics.OutcomeCancelled
		case KindInFlightConflict:
			return metrics.OutcomeInFlightConflict
		}
	case errors.Is(err, ErrTransportClosed):
		return metrics.OutcomeTransportClosed
	}
	return metrics.OutcomeError
}
