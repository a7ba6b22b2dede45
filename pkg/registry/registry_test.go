package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func TestEmptyRegistry(t *testing.T) {
	r := New()

	_, err := r.Snapshot(0)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, r.Indexes())
	assert.Empty(t, r.All())
	assert.Equal(t, 0, r.Len())
}

func TestIndexListReplySeedsEntries(t *testing.T) {
	r := New()

	r.ApplyReply(wire.NonController, &catalog.ReadControllerIndexList{},
		&catalog.IndexListReply{Indexes: []wire.ControllerIndex{2, 0}})

	assert.Equal(t, []wire.ControllerIndex{0, 2}, r.Indexes())
	for _, idx := range []wire.ControllerIndex{0, 2} {
		s, err := r.Snapshot(idx)
		require.NoError(t, err)
		assert.Equal(t, idx, s.Index)
		assert.True(t, s.Configured)
		assert.False(t, s.InfoLoaded)
	}
}

func TestIndexListReplyIsAuthoritative(t *testing.T) {
	r := New()
	r.ApplyEvent(0, &catalog.IndexAdded{})
	r.ApplyEvent(1, &catalog.IndexAdded{})
	r.ApplyEvent(5, &catalog.UnconfiguredIndexAdded{})

	r.ApplyReply(wire.NonController, &catalog.ReadControllerIndexList{},
		&catalog.IndexListReply{Indexes: []wire.ControllerIndex{1}})

	// Configured controller 0 is gone, unconfigured 5 is untouched.
	assert.Equal(t, []wire.ControllerIndex{1, 5}, r.Indexes())

	r.ApplyReply(wire.NonController, &catalog.ReadUnconfiguredIndexList{},
		&catalog.IndexListReply{})
	assert.Equal(t, []wire.ControllerIndex{1}, r.Indexes())
}

func TestExtendedIndexList(t *testing.T) {
	r := New()
	r.ApplyEvent(7, &catalog.IndexAdded{})

	r.ApplyReply(wire.NonController, &catalog.ReadExtendedIndexList{},
		&catalog.ExtendedIndexListReply{Entries: []catalog.ExtendedIndex{
			{Index: 0, Type: catalog.ControllerPrimary, Bus: 1},
			{Index: 1, Type: catalog.ControllerUnconfigured, Bus: 2},
		}})

	assert.Equal(t, []wire.ControllerIndex{0, 1}, r.Indexes())

	s, err := r.Snapshot(0)
	require.NoError(t, err)
	assert.True(t, s.Configured)
	assert.Equal(t, uint8(1), s.Bus)
	assert.Equal(t, "primary", s.TypeName())

	s, err = r.Snapshot(1)
	require.NoError(t, err)
	assert.False(t, s.Configured)
	assert.Equal(t, "unconfigured", s.TypeName())
}

func TestControllerInfoReply(t *testing.T) {
	r := New()
	addr := wire.MustParseAddress("00:1A:7D:DA:71:13")
	class := wire.NewClassOfDevice(wire.MajorComputer, 3, 0)

	r.ApplyReply(0, &catalog.ReadControllerInfo{}, &catalog.ControllerInfoReply{
		Address:           addr,
		Version:           9,
		Manufacturer:      2,
		SupportedSettings: wire.SettingPowered | wire.SettingLE | wire.SettingDiscoverable,
		CurrentSettings:   wire.SettingPowered,
		Class:             class,
		Name:              "laptop",
		ShortName:         "lap",
	})

	s, err := r.Snapshot(0)
	require.NoError(t, err)
	assert.True(t, s.InfoLoaded)
	assert.Equal(t, addr, s.Address)
	assert.Equal(t, uint8(9), s.Version)
	assert.Equal(t, uint16(2), s.Manufacturer)
	assert.True(t, s.Has(wire.SettingPowered))
	assert.False(t, s.Has(wire.SettingLE))
	assert.True(t, s.Supports(wire.SettingLE))
	assert.Equal(t, class, s.Class)
	assert.Equal(t, "laptop", s.Name)
	assert.Equal(t, "lap", s.ShortName)
	assert.False(t, s.UpdatedAt.IsZero())
}

func eirBytes(fields ...[]byte) []byte {
	var out []byte
	for _, f := range fields {
		out = append(out, byte(len(f)))
		out = append(out, f...)
	}
	return out
}

func TestExtendedControllerInfo(t *testing.T) {
	r := New()
	eir := eirBytes(
		[]byte{byte(wire.EIRClassOfDevice), 0x0c, 0x01, 0x00},
		[]byte{byte(wire.EIRAppearance), 0x80, 0x00},
		append([]byte{byte(wire.EIRNameComplete)}, "desk"...),
		append([]byte{byte(wire.EIRNameShort)}, "dk"...),
	)

	r.ApplyReply(0, &catalog.ReadExtendedControllerInfo{}, &catalog.ExtendedControllerInfoReply{
		Version:         10,
		CurrentSettings: wire.SettingLE,
		EIR:             eir,
	})

	s, err := r.Snapshot(0)
	require.NoError(t, err)
	assert.True(t, s.InfoLoaded)
	assert.Equal(t, "desk", s.Name)
	assert.Equal(t, "dk", s.ShortName)
	assert.Equal(t, wire.ClassOfDevice(0x00010c), s.Class)
	assert.Equal(t, uint16(0x0080), s.Appearance)

	r.ApplyEvent(0, &catalog.ExtendedControllerInfoChanged{
		EIR: eirBytes(append([]byte{byte(wire.EIRNameComplete)}, "renamed"...)),
	})
	s, _ = r.Snapshot(0)
	assert.Equal(t, "renamed", s.Name)
	assert.Equal(t, "dk", s.ShortName)

	// Malformed data leaves the entry alone.
	r.ApplyEvent(0, &catalog.ExtendedControllerInfoChanged{EIR: []byte{9, 0x09, 'x'}})
	s, _ = r.Snapshot(0)
	assert.Equal(t, "renamed", s.Name)
}

func TestEventsUpdateState(t *testing.T) {
	tests := []struct {
		name  string
		event catalog.Event
		check func(t *testing.T, s ControllerState)
	}{
		{
			name:  "new settings",
			event: &catalog.NewSettings{Settings: wire.SettingPowered | wire.SettingDiscoverable},
			check: func(t *testing.T, s ControllerState) {
				assert.True(t, s.Has(wire.SettingDiscoverable))
				assert.True(t, s.Has(wire.SettingPowered))
			},
		},
		{
			name:  "local name",
			event: &catalog.LocalNameChanged{Name: "kitchen", ShortName: "kit"},
			check: func(t *testing.T, s ControllerState) {
				assert.Equal(t, "kitchen", s.Name)
				assert.Equal(t, "kit", s.ShortName)
			},
		},
		{
			name:  "class of device",
			event: &catalog.ClassOfDeviceChanged{Class: 0x5a020c},
			check: func(t *testing.T, s ControllerState) {
				assert.Equal(t, wire.ClassOfDevice(0x5a020c), s.Class)
			},
		},
		{
			name:  "discovering",
			event: &catalog.Discovering{Types: wire.DiscoverLE, Discovering: true},
			check: func(t *testing.T, s ControllerState) {
				assert.True(t, s.Discovering)
				assert.Equal(t, wire.DiscoverLE, s.DiscoveryTypes)
			},
		},
		{
			name:  "extended index added",
			event: &catalog.ExtendedIndexAdded{Type: catalog.ControllerAMP, Bus: 3},
			check: func(t *testing.T, s ControllerState) {
				assert.Equal(t, "amp", s.TypeName())
				assert.Equal(t, uint8(3), s.Bus)
				assert.True(t, s.Configured)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			r.ApplyEvent(0, &catalog.IndexAdded{})
			r.ApplyEvent(0, tt.event)

			s, err := r.Snapshot(0)
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestEventsOnGlobalIndexIgnored(t *testing.T) {
	r := New()
	r.ApplyEvent(wire.NonController, &catalog.NewSettings{Settings: wire.SettingPowered})
	r.ApplyEvent(wire.NonController, &catalog.IndexAdded{})
	assert.Equal(t, 0, r.Len())
}

func TestRemoveEvents(t *testing.T) {
	for _, ev := range []catalog.Event{
		&catalog.IndexRemoved{},
		&catalog.UnconfiguredIndexRemoved{},
		&catalog.ExtendedIndexRemoved{},
	} {
		r := New()
		r.ApplyEvent(3, &catalog.IndexAdded{})
		r.ApplyEvent(3, ev)

		_, err := r.Snapshot(3)
		assert.ErrorIs(t, err, ErrNotFound, "%T", ev)
	}
}

func TestSettingsUpsertsUnknownController(t *testing.T) {
	r := New()
	r.ApplyEvent(4, &catalog.NewSettings{Settings: wire.SettingConnectable})

	s, err := r.Snapshot(4)
	require.NoError(t, err)
	assert.True(t, s.Configured)
	assert.True(t, s.Has(wire.SettingConnectable))
}

func TestCommandReplies(t *testing.T) {
	r := New()
	r.ApplyEvent(0, &catalog.IndexAdded{})

	r.ApplyReply(0, &catalog.SetPowered{Enable: true}, &catalog.SettingsReply{Settings: wire.SettingPowered})
	s, _ := r.Snapshot(0)
	assert.True(t, s.Has(wire.SettingPowered))

	r.ApplyReply(0, &catalog.SetLocalName{Name: "hub", ShortName: "h"}, &catalog.LocalNameReply{Name: "hub", ShortName: "h"})
	s, _ = r.Snapshot(0)
	assert.Equal(t, "hub", s.Name)

	r.ApplyReply(0, &catalog.SetDeviceClass{}, &catalog.ClassReply{Class: 0x000104})
	s, _ = r.Snapshot(0)
	assert.Equal(t, wire.ClassOfDevice(0x000104), s.Class)

	r.ApplyReply(0, catalog.NewStartDiscovery(wire.DiscoverAll), &catalog.DiscoveryTypeReply{Types: wire.DiscoverAll})
	s, _ = r.Snapshot(0)
	assert.True(t, s.Discovering)
	assert.Equal(t, wire.DiscoverAll, s.DiscoveryTypes)

	r.ApplyReply(0, catalog.NewStopDiscovery(wire.DiscoverAll), &catalog.DiscoveryTypeReply{Types: wire.DiscoverAll})
	s, _ = r.Snapshot(0)
	assert.False(t, s.Discovering)
	assert.Zero(t, s.DiscoveryTypes)

	// Replies with nothing to cache do not create entries.
	r.ApplyReply(1, &catalog.ReadControllerConfigInfo{}, &catalog.ControllerConfigInfoReply{})
	assert.Equal(t, 1, r.Len())
}

func TestSnapshotIsImmutable(t *testing.T) {
	r := New()
	r.ApplyEvent(0, &catalog.NewSettings{Settings: wire.SettingPowered})

	before, err := r.Snapshot(0)
	require.NoError(t, err)
	all := r.All()

	r.ApplyEvent(0, &catalog.NewSettings{Settings: 0})

	assert.True(t, before.Has(wire.SettingPowered))
	assert.True(t, all[0].Has(wire.SettingPowered))
	after, _ := r.Snapshot(0)
	assert.False(t, after.Has(wire.SettingPowered))
}

func TestCallbacks(t *testing.T) {
	r := New()
	var added []wire.ControllerIndex
	var removed []wire.ControllerIndex
	r.OnControllerAdded(func(s ControllerState) { added = append(added, s.Index) })
	r.OnControllerRemoved(func(idx wire.ControllerIndex) { removed = append(removed, idx) })

	r.ApplyEvent(0, &catalog.IndexAdded{})
	r.ApplyEvent(0, &catalog.NewSettings{})
	r.ApplyEvent(0, &catalog.IndexRemoved{})
	r.ApplyEvent(0, &catalog.IndexRemoved{})

	assert.Equal(t, []wire.ControllerIndex{0}, added)
	assert.Equal(t, []wire.ControllerIndex{0}, removed)
}

type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (l *recordingLogger) Log(e log.Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func TestProtocolLogRecordsLifecycle(t *testing.T) {
	plog := &recordingLogger{}
	r := NewWithConfig(Config{ProtocolLogger: plog, ConnectionID: "c1"})

	r.ApplyEvent(2, &catalog.IndexAdded{})
	r.ApplyEvent(2, &catalog.IndexRemoved{})

	require.Len(t, plog.events, 2)
	for i, want := range []string{"added", "removed"} {
		e := plog.events[i]
		assert.Equal(t, log.CategoryState, e.Category)
		assert.Equal(t, "c1", e.ConnectionID)
		require.NotNil(t, e.Index)
		assert.Equal(t, wire.ControllerIndex(2), *e.Index)
		require.NotNil(t, e.StateChange)
		assert.Equal(t, log.StateEntityController, e.StateChange.Entity)
		assert.Equal(t, want, e.StateChange.NewState)
	}
}

func TestReset(t *testing.T) {
	r := New()
	r.ApplyEvent(0, &catalog.IndexAdded{})
	r.Reset()
	assert.Equal(t, 0, r.Len())
}

func TestConcurrentReadersSeeWholeUpdates(t *testing.T) {
	r := New()
	r.ApplyEvent(0, &catalog.IndexAdded{})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				s, err := r.Snapshot(0)
				if err != nil {
					continue
				}
				// Name and short name are always written together.
				if s.Name != "" {
					assert.Equal(t, s.Name+"-short", s.ShortName)
				}
			}
		}()
	}

	for i := range 200 {
		name := string(rune('a' + i%26))
		r.ApplyEvent(0, &catalog.LocalNameChanged{Name: name, ShortName: name + "-short"})
	}
	close(stop)
	wg.Wait()
}
