package btmgmt

import (
	"context"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/connection"
	"github.com/btmgmt/btmgmt-go/pkg/dispatch"
	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/registry"
	"github.com/btmgmt/btmgmt-go/pkg/transport"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// fakeKernel emulates one powered controller at index 0.
type fakeKernel struct {
	t *testing.T

	mu       sync.Mutex
	revision uint16
	settings wire.Settings
	peers    []net.Conn
	sent     []wire.Opcode
	dials    int
}

func newFakeKernel(t *testing.T) *fakeKernel {
	return &fakeKernel{t: t, revision: 8, settings: wire.SettingPowered | wire.SettingBondable}
}

func (k *fakeKernel) dial(_ context.Context, opts transport.Options) (transport.Transport, error) {
	local, peer := net.Pipe()
	k.mu.Lock()
	k.peers = append(k.peers, peer)
	k.dials++
	k.mu.Unlock()
	go k.serve(peer)
	return transport.NewConn(local, opts), nil
}

func (k *fakeKernel) serve(peer net.Conn) {
	r := transport.NewFrameReader(peer)
	for {
		data, err := r.ReadFrame()
		if err != nil {
			return
		}
		f, err := wire.DecodeFrame(data)
		if err != nil {
			continue
		}
		cmd, err := catalog.DecodeCommand(f)
		if err != nil {
			continue
		}
		op := cmd.Opcode()
		k.mu.Lock()
		k.sent = append(k.sent, op)
		reply, status := k.handle(f.Index, cmd)
		k.mu.Unlock()

		var ev catalog.Event = &catalog.CommandStatus{Opcode: op, Status: status}
		if status.IsSuccess() {
			ev = &catalog.CommandComplete{Opcode: op, Status: status, Params: catalog.MarshalParams(reply)}
		}
		out, err := catalog.EncodeEvent(f.Index, ev)
		if err != nil {
			k.t.Errorf("encode: %v", err)
			return
		}
		if _, err := peer.Write(out); err != nil {
			return
		}
	}
}

func (k *fakeKernel) handle(index wire.ControllerIndex, cmd catalog.Command) (catalog.Reply, wire.Status) {
	if !index.IsGlobal() && index != 0 {
		return nil, wire.StatusInvalidIndex
	}
	switch c := cmd.(type) {
	case *catalog.ReadVersionInfo:
		return &catalog.VersionReply{Version: 1, Revision: k.revision}, wire.StatusSuccess
	case *catalog.ReadExtendedIndexList:
		return &catalog.ExtendedIndexListReply{Entries: []catalog.ExtendedIndex{
			{Index: 0, Type: catalog.ControllerPrimary, Bus: 1},
			{Index: 1, Type: catalog.ControllerUnconfigured, Bus: 1},
		}}, wire.StatusSuccess
	case *catalog.ReadControllerIndexList:
		return &catalog.IndexListReply{Indexes: []wire.ControllerIndex{0}}, wire.StatusSuccess
	case *catalog.ReadControllerInfo:
		return &catalog.ControllerInfoReply{
			Address:           wire.MustParseAddress("00:11:22:33:44:55"),
			SupportedSettings: 0x3ffff,
			CurrentSettings:   k.settings,
			Name:              "fake",
		}, wire.StatusSuccess
	case *catalog.SetDiscoverable:
		if c.Mode == catalog.DiscoverableOff {
			k.settings = k.settings.Without(wire.SettingDiscoverable)
		} else {
			k.settings = k.settings.With(wire.SettingDiscoverable)
		}
		return &catalog.SettingsReply{Settings: k.settings}, wire.StatusSuccess
	case *catalog.SetBondable:
		if c.Enable {
			k.settings = k.settings.With(wire.SettingBondable)
		} else {
			k.settings = k.settings.Without(wire.SettingBondable)
		}
		return &catalog.SettingsReply{Settings: k.settings}, wire.StatusSuccess
	default:
		return nil, wire.StatusNotSupported
	}
}

func (k *fakeKernel) opcodes() []wire.Opcode {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]wire.Opcode(nil), k.sent...)
}

// drop closes the kernel side of the newest socket.
func (k *fakeKernel) drop() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.peers[len(k.peers)-1].Close()
}

func (k *fakeKernel) dialCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.dials
}

func testConfig(k *fakeKernel) Config {
	config := DefaultConfig()
	config.Dial = k.dial
	config.Reconnect = connection.BackoffConfig{Initial: time.Millisecond, Max: 5 * time.Millisecond, Multiplier: 2}
	return config
}

func openClient(t *testing.T, config Config) *Client {
	t.Helper()
	c, err := Open(context.Background(), config)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOpenLoadsControllers(t *testing.T) {
	k := newFakeKernel(t)
	c := openClient(t, testConfig(k))

	assert.Equal(t, connection.StateConnected, c.State())
	require.Len(t, c.Controllers(), 1)

	s, err := c.Controller(0)
	require.NoError(t, err)
	assert.True(t, s.InfoLoaded)
	assert.Equal(t, "fake", s.Name)
	assert.True(t, s.Has(wire.SettingPowered))

	_, err = c.Controller(1)
	assert.ErrorIs(t, err, registry.ErrNotFound)
	assert.Equal(t, []wire.Opcode{wire.OpReadVersionInfo, wire.OpReadControllerIndexList, wire.OpReadControllerInfo}, k.opcodes())
	assert.Equal(t, "1.8", c.Version().String())
}

func TestOpenUsesExtendedIndexList(t *testing.T) {
	k := newFakeKernel(t)
	k.revision = 22
	c := openClient(t, testConfig(k))

	assert.Contains(t, k.opcodes(), wire.OpReadExtendedIndexList)
	require.Len(t, c.Controllers(), 2)

	s, err := c.Controller(1)
	require.NoError(t, err)
	assert.False(t, s.Configured)
	assert.False(t, s.InfoLoaded)

	s, err = c.Controller(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), s.Bus)
	assert.True(t, s.InfoLoaded)
}

func TestOpenInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.CommandTimeout = 0
	_, err := Open(context.Background(), config)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOpenDialError(t *testing.T) {
	config := DefaultConfig()
	config.Dial = func(context.Context, transport.Options) (transport.Transport, error) {
		return nil, transport.ErrPermissionDenied
	}
	_, err := Open(context.Background(), config)
	assert.ErrorIs(t, err, transport.ErrPermissionDenied)
}

func TestSetSetting(t *testing.T) {
	k := newFakeKernel(t)
	c := openClient(t, testConfig(k))
	ctx := context.Background()

	settings, err := c.SetSetting(ctx, 0, wire.SettingDiscoverable, true)
	require.NoError(t, err)
	assert.True(t, settings.Has(wire.SettingDiscoverable))

	s, err := c.Controller(0)
	require.NoError(t, err)
	assert.True(t, s.Has(wire.SettingDiscoverable))

	// Already on: nothing is sent.
	before := len(k.opcodes())
	_, err = c.SetSetting(ctx, 0, wire.SettingDiscoverable, true)
	require.NoError(t, err)
	assert.Len(t, k.opcodes(), before)

	_, err = c.SetSetting(ctx, 0, wire.SettingPrivacy, true)
	assert.ErrorIs(t, err, ErrUnsupportedSetting)
}

func TestToggleSetting(t *testing.T) {
	k := newFakeKernel(t)
	c := openClient(t, testConfig(k))
	ctx := context.Background()

	settings, err := c.ToggleSetting(ctx, 0, wire.SettingBondable)
	require.NoError(t, err)
	assert.False(t, settings.Has(wire.SettingBondable))

	settings, err = c.ToggleSetting(ctx, 0, wire.SettingBondable)
	require.NoError(t, err)
	assert.True(t, settings.Has(wire.SettingBondable))

	_, err = c.ToggleSetting(ctx, 3, wire.SettingBondable)
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestExecRejected(t *testing.T) {
	k := newFakeKernel(t)
	c := openClient(t, testConfig(k))

	_, err := c.Exec(context.Background(), 0, &catalog.SetLE{Enable: true})
	assert.ErrorIs(t, err, dispatch.ErrRejected)
	st, ok := dispatch.StatusOf(err)
	assert.True(t, ok)
	assert.Equal(t, wire.StatusNotSupported, st)
}

func TestSubscribe(t *testing.T) {
	k := newFakeKernel(t)
	c := openClient(t, testConfig(k))

	sub, err := c.Subscribe(0)
	require.NoError(t, err)
	defer sub.Close()
	all, err := c.SubscribeAll()
	require.NoError(t, err)
	defer all.Close()

	// Replies go to the waiter only.
	_, err = c.SetSetting(context.Background(), 0, wire.SettingDiscoverable, true)
	require.NoError(t, err)
	assert.Equal(t, 0, sub.Len())
	assert.Equal(t, 0, all.Len())
}

func TestReconnectRebuildsRegistry(t *testing.T) {
	k := newFakeKernel(t)
	c := openClient(t, testConfig(k))

	sub, err := c.Subscribe(0)
	require.NoError(t, err)

	k.drop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = sub.Next(ctx)
	assert.ErrorIs(t, err, dispatch.ErrTransportClosed)

	require.Eventually(t, func() bool {
		return k.dialCount() == 2 && c.State() == connection.StateConnected
	}, 2*time.Second, time.Millisecond)

	s, err := c.Controller(0)
	require.NoError(t, err)
	assert.True(t, s.InfoLoaded)

	_, err = c.SetSetting(context.Background(), 0, wire.SettingDiscoverable, true)
	assert.NoError(t, err)
}

func TestProtocolLogAndMetrics(t *testing.T) {
	k := newFakeKernel(t)
	config := testConfig(k)
	config.ProtocolLog = filepath.Join(t.TempDir(), "capture"+log.FileExtension)
	config.Registerer = prometheus.NewRegistry()

	c, err := Open(context.Background(), config)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	r, err := log.NewReader(config.ProtocolLog)
	require.NoError(t, err)
	defer r.Close()

	var frames, messages int
	for ev, err := range r.All() {
		require.NoError(t, err)
		switch {
		case ev.Frame != nil:
			frames++
		case ev.Message != nil:
			messages++
		}
	}
	assert.Positive(t, frames)
	assert.Positive(t, messages)

	families, err := config.Registerer.(*prometheus.Registry).Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestCloseIsIdempotent(t *testing.T) {
	k := newFakeKernel(t)
	c, err := Open(context.Background(), testConfig(k))
	require.NoError(t, err)

	require.NoError(t, c.Close())
	assert.NoError(t, c.Close())

	_, err = c.Exec(context.Background(), 0, &catalog.ReadControllerInfo{})
	assert.ErrorIs(t, err, dispatch.ErrTransportClosed)
}
