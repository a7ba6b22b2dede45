package dispatch

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/transport"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// fakeKernel plays the kernel side of the management socket.
type fakeKernel struct {
	t        *testing.T
	peer     net.Conn
	commands chan wire.Frame
	writeMu  sync.Mutex
}

type harness struct {
	d       *Dispatcher
	kernel  *fakeKernel
	runDone chan error
}

func newHarness(t *testing.T, config Config) *harness {
	t.Helper()
	local, peer := net.Pipe()
	conn := transport.NewConn(local, transport.Options{ConnectionID: "test"})
	d := New(conn, config)

	k := &fakeKernel{t: t, peer: peer, commands: make(chan wire.Frame, 16)}
	go k.readLoop()

	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{d: d, kernel: k, runDone: make(chan error, 1)}
	go func() { h.runDone <- d.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		d.Close()
		peer.Close()
		select {
		case <-h.runDone:
		case <-time.After(2 * time.Second):
			t.Error("Run did not return")
		}
	})
	return h
}

func (k *fakeKernel) readLoop() {
	r := transport.NewFrameReader(k.peer)
	for {
		data, err := r.ReadFrame()
		if err != nil {
			close(k.commands)
			return
		}
		f, err := wire.DecodeFrame(data)
		if err != nil {
			continue
		}
		k.commands <- f
	}
}

// next returns the next command the dispatcher sent.
func (k *fakeKernel) next() wire.Frame {
	k.t.Helper()
	select {
	case f, ok := <-k.commands:
		require.True(k.t, ok, "socket closed")
		return f
	case <-time.After(2 * time.Second):
		k.t.Fatal("no command received")
		return wire.Frame{}
	}
}

func (k *fakeKernel) write(data []byte) {
	k.writeMu.Lock()
	defer k.writeMu.Unlock()
	_, err := k.peer.Write(data)
	require.NoError(k.t, err)
}

func (k *fakeKernel) event(index wire.ControllerIndex, ev catalog.Event) {
	k.t.Helper()
	data, err := catalog.EncodeEvent(index, ev)
	require.NoError(k.t, err)
	k.write(data)
}

func (k *fakeKernel) complete(index wire.ControllerIndex, op wire.Opcode, status wire.Status, params []byte) {
	k.t.Helper()
	k.event(index, &catalog.CommandComplete{Opcode: op, Status: status, Params: params})
}

func (k *fakeKernel) status(index wire.ControllerIndex, op wire.Opcode, status wire.Status) {
	k.t.Helper()
	k.event(index, &catalog.CommandStatus{Opcode: op, Status: status})
}

type execResult struct {
	reply catalog.Reply
	err   error
}

// goExec runs Exec in a goroutine.
func (h *harness) goExec(ctx context.Context, index wire.ControllerIndex, cmd catalog.Command) <-chan execResult {
	ch := make(chan execResult, 1)
	go func() {
		reply, err := h.d.Exec(ctx, index, cmd)
		ch <- execResult{reply, err}
	}()
	return ch
}

func await(t *testing.T, ch <-chan execResult) execResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(3 * time.Second):
		t.Fatal("Exec did not return")
		return execResult{}
	}
}

func settingsParams(s wire.Settings) []byte {
	w := wire.NewWriter(4)
	w.U32(uint32(s))
	return w.Bytes()
}

type recordingObserver struct {
	mu      sync.Mutex
	events  []catalog.Event
	replies []catalog.Reply
}

func (o *recordingObserver) ApplyEvent(_ wire.ControllerIndex, ev catalog.Event) {
	o.mu.Lock()
	o.events = append(o.events, ev)
	o.mu.Unlock()
}

func (o *recordingObserver) ApplyReply(_ wire.ControllerIndex, _ catalog.Command, reply catalog.Reply) {
	o.mu.Lock()
	o.replies = append(o.replies, reply)
	o.mu.Unlock()
}

func (o *recordingObserver) counts() (events, replies int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events), len(o.replies)
}

type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordingLogger) Log(e log.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recordingLogger) messages(typ log.MessageType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Message != nil && e.Message.Type == typ {
			n++
		}
	}
	return n
}
