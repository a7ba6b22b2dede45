package registry

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// ErrNotFound is returned by Snapshot for an index the registry does not know.
var ErrNotFound = errors.New("controller not found")

type controllers = map[wire.ControllerIndex]ControllerState

// Config configures a Registry.
type Config struct {
	// Logger receives controller lifecycle messages. Defaults to slog.Default().
	Logger *slog.Logger

	// ProtocolLogger records controllers appearing and disappearing.
	ProtocolLogger log.Logger

	// ConnectionID is stamped on protocol log events.
	ConnectionID string
}

// Registry caches controller state fed from decoded events and replies.
// It implements dispatch.Observer.
type Registry struct {
	mu    sync.Mutex // serializes writers
	state atomic.Pointer[controllers]

	logger *slog.Logger
	plog   log.Logger
	connID string
	now    func() time.Time

	onAdded   func(ControllerState)
	onRemoved func(wire.ControllerIndex)
}

// New creates an empty registry with default configuration.
func New() *Registry {
	return NewWithConfig(Config{})
}

// NewWithConfig creates an empty registry.
func NewWithConfig(config Config) *Registry {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	r := &Registry{
		logger: config.Logger,
		plog:   log.OrNoop(config.ProtocolLogger),
		connID: config.ConnectionID,
		now:    time.Now,
	}
	r.state.Store(&controllers{})
	return r
}

// OnControllerAdded sets a callback invoked after a controller first appears.
// The callback runs on the goroutine that applied the change and must not block.
func (r *Registry) OnControllerAdded(fn func(ControllerState)) {
	r.mu.Lock()
	r.onAdded = fn
	r.mu.Unlock()
}

// OnControllerRemoved sets a callback invoked after a controller disappears.
func (r *Registry) OnControllerRemoved(fn func(wire.ControllerIndex)) {
	r.mu.Lock()
	r.onRemoved = fn
	r.mu.Unlock()
}

// Snapshot returns the state of one controller.
func (r *Registry) Snapshot(index wire.ControllerIndex) (ControllerState, error) {
	s, ok := (*r.state.Load())[index]
	if !ok {
		return ControllerState{}, ErrNotFound
	}
	return s, nil
}

// Indexes returns the known controller indexes in ascending order.
func (r *Registry) Indexes() []wire.ControllerIndex {
	return slices.Sorted(maps.Keys(*r.state.Load()))
}

// All returns every controller state ordered by index.
func (r *Registry) All() []ControllerState {
	m := *r.state.Load()
	out := make([]ControllerState, 0, len(m))
	for _, idx := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[idx])
	}
	return out
}

// Len returns the number of known controllers.
func (r *Registry) Len() int {
	return len(*r.state.Load())
}

// Reset forgets every controller. Used when the management socket is
// reopened and state is rebuilt from the kernel.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.state.Store(&controllers{})
	r.mu.Unlock()
}

// ApplyEvent folds an unsolicited event into the cache.
func (r *Registry) ApplyEvent(index wire.ControllerIndex, ev catalog.Event) {
	if index.IsGlobal() {
		return
	}

	switch e := ev.(type) {
	case *catalog.IndexAdded:
		r.update(func(tx *txn) {
			s := tx.upsert(index)
			s.Configured = true
			s.Type = catalog.ControllerPrimary
		})
	case *catalog.UnconfiguredIndexAdded:
		r.update(func(tx *txn) {
			s := tx.upsert(index)
			s.Configured = false
			s.Type = catalog.ControllerUnconfigured
		})
	case *catalog.ExtendedIndexAdded:
		r.update(func(tx *txn) {
			s := tx.upsert(index)
			s.Type = e.Type
			s.Bus = e.Bus
			s.Configured = e.Type != catalog.ControllerUnconfigured
		})
	case *catalog.IndexRemoved, *catalog.UnconfiguredIndexRemoved, *catalog.ExtendedIndexRemoved:
		r.update(func(tx *txn) { tx.remove(index) })
	case *catalog.NewSettings:
		r.update(func(tx *txn) { tx.upsert(index).CurrentSettings = e.Settings })
	case *catalog.LocalNameChanged:
		r.update(func(tx *txn) {
			s := tx.upsert(index)
			s.Name = e.Name
			s.ShortName = e.ShortName
		})
	case *catalog.ClassOfDeviceChanged:
		r.update(func(tx *txn) { tx.upsert(index).Class = e.Class })
	case *catalog.Discovering:
		r.update(func(tx *txn) {
			s := tx.upsert(index)
			s.Discovering = e.Discovering
			s.DiscoveryTypes = e.Types
		})
	case *catalog.ExtendedControllerInfoChanged:
		r.update(func(tx *txn) { tx.upsert(index).applyEIR(e.EIR) })
	}
}

// ApplyReply folds a successful command reply into the cache.
func (r *Registry) ApplyReply(index wire.ControllerIndex, cmd catalog.Command, reply catalog.Reply) {
	switch cmd.(type) {
	case *catalog.ReadControllerIndexList:
		if rep, ok := reply.(*catalog.IndexListReply); ok {
			r.replaceIndexes(rep.Indexes, true)
		}
		return
	case *catalog.ReadUnconfiguredIndexList:
		if rep, ok := reply.(*catalog.IndexListReply); ok {
			r.replaceIndexes(rep.Indexes, false)
		}
		return
	case *catalog.ReadExtendedIndexList:
		if rep, ok := reply.(*catalog.ExtendedIndexListReply); ok {
			r.replaceExtended(rep.Entries)
		}
		return
	case *catalog.StopDiscovery:
		if !index.IsGlobal() {
			r.update(func(tx *txn) {
				s := tx.upsert(index)
				s.Discovering = false
				s.DiscoveryTypes = 0
			})
		}
		return
	case *catalog.StartDiscovery, *catalog.StartLimitedDiscovery, *catalog.StartServiceDiscovery:
		rep, ok := reply.(*catalog.DiscoveryTypeReply)
		if ok && !index.IsGlobal() {
			r.update(func(tx *txn) {
				s := tx.upsert(index)
				s.Discovering = true
				s.DiscoveryTypes = rep.Types
			})
		}
		return
	}

	if index.IsGlobal() {
		return
	}
	switch rep := reply.(type) {
	case *catalog.ControllerInfoReply:
		r.update(func(tx *txn) { tx.upsert(index).applyInfo(rep) })
	case *catalog.ExtendedControllerInfoReply:
		r.update(func(tx *txn) { tx.upsert(index).applyExtendedInfo(rep) })
	case *catalog.SettingsReply:
		r.update(func(tx *txn) { tx.upsert(index).CurrentSettings = rep.Settings })
	case *catalog.LocalNameReply:
		r.update(func(tx *txn) {
			s := tx.upsert(index)
			s.Name = rep.Name
			s.ShortName = rep.ShortName
		})
	case *catalog.ClassReply:
		r.update(func(tx *txn) { tx.upsert(index).Class = rep.Class })
	}
}

// replaceIndexes treats list as the complete set of configured (or
// unconfigured) controllers. Controllers of the other kind are untouched.
func (r *Registry) replaceIndexes(list []wire.ControllerIndex, configured bool) {
	r.update(func(tx *txn) {
		keep := make(map[wire.ControllerIndex]struct{}, len(list))
		for _, idx := range list {
			if idx.IsGlobal() {
				continue
			}
			keep[idx] = struct{}{}
			s := tx.upsert(idx)
			s.Configured = configured
			if !configured {
				s.Type = catalog.ControllerUnconfigured
			} else if s.Type == catalog.ControllerUnconfigured {
				s.Type = catalog.ControllerPrimary
			}
		}
		for idx, s := range tx.next {
			if _, ok := keep[idx]; !ok && s.Configured == configured {
				tx.remove(idx)
			}
		}
	})
}

func (r *Registry) replaceExtended(entries []catalog.ExtendedIndex) {
	r.update(func(tx *txn) {
		keep := make(map[wire.ControllerIndex]struct{}, len(entries))
		for _, e := range entries {
			if e.Index.IsGlobal() {
				continue
			}
			keep[e.Index] = struct{}{}
			s := tx.upsert(e.Index)
			s.Type = e.Type
			s.Bus = e.Bus
			s.Configured = e.Type != catalog.ControllerUnconfigured
		}
		for idx := range tx.next {
			if _, ok := keep[idx]; !ok {
				tx.remove(idx)
			}
		}
	})
}

// txn is one copy-on-write update.
type txn struct {
	next    controllers
	now     time.Time
	added   []wire.ControllerIndex
	removed []wire.ControllerIndex
	dirty   map[wire.ControllerIndex]*ControllerState
}

// upsert returns a mutable copy of the entry for index, creating it if
// needed. Changes are written back when the transaction commits.
func (tx *txn) upsert(index wire.ControllerIndex) *ControllerState {
	if s, ok := tx.dirty[index]; ok {
		return s
	}
	s, ok := tx.next[index]
	if !ok {
		s = ControllerState{Index: index, Configured: true}
		tx.added = append(tx.added, index)
	}
	p := &s
	tx.dirty[index] = p
	return p
}

func (tx *txn) remove(index wire.ControllerIndex) {
	_, known := tx.next[index]
	_, pending := tx.dirty[index]
	if !known && !pending {
		return
	}
	delete(tx.next, index)
	delete(tx.dirty, index)
	if i := slices.Index(tx.added, index); i >= 0 {
		tx.added = slices.Delete(tx.added, i, i+1)
		return
	}
	tx.removed = append(tx.removed, index)
}

func (r *Registry) update(fn func(tx *txn)) {
	r.mu.Lock()
	tx := &txn{
		next:  maps.Clone(*r.state.Load()),
		now:   r.now(),
		dirty: make(map[wire.ControllerIndex]*ControllerState),
	}
	fn(tx)
	for idx, s := range tx.dirty {
		s.UpdatedAt = tx.now
		tx.next[idx] = *s
	}
	r.state.Store(&tx.next)
	onAdded, onRemoved := r.onAdded, r.onRemoved
	r.mu.Unlock()

	for _, idx := range tx.added {
		r.logger.Info("controller added", "index", idx.String())
		r.logState(idx, "", "added", tx.now)
		if onAdded != nil {
			onAdded(tx.next[idx])
		}
	}
	for _, idx := range tx.removed {
		r.logger.Info("controller removed", "index", idx.String())
		r.logState(idx, "added", "removed", tx.now)
		if onRemoved != nil {
			onRemoved(idx)
		}
	}
}

func (r *Registry) logState(index wire.ControllerIndex, oldState, newState string, at time.Time) {
	r.plog.Log(log.Event{
		Timestamp:    at,
		ConnectionID: r.connID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerDispatch,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityController,
			OldState: oldState,
			NewState: newState,
		},
	}.WithIndex(index))
}
