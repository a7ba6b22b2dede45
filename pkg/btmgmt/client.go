package btmgmt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/connection"
	"github.com/btmgmt/btmgmt-go/pkg/dispatch"
	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/metrics"
	"github.com/btmgmt/btmgmt-go/pkg/registry"
	"github.com/btmgmt/btmgmt-go/pkg/subscription"
	"github.com/btmgmt/btmgmt-go/pkg/transport"
	"github.com/btmgmt/btmgmt-go/pkg/version"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Client is a connection to the kernel's Bluetooth management interface.
// It is safe for concurrent use.
type Client struct {
	config   Config
	logger   *slog.Logger
	plog     log.Logger
	fileLog  *log.FileLogger
	metrics  *metrics.Metrics
	registry *registry.Registry
	conn     *connection.Manager
	version  atomic.Pointer[version.APIVersion]
}

// Open opens the management socket and loads the controller list.
func Open(ctx context.Context, config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Dial == nil {
		config.Dial = func(ctx context.Context, opts transport.Options) (transport.Transport, error) {
			conn, err := transport.Open(ctx, opts)
			if err != nil {
				return nil, err
			}
			return conn, nil
		}
	}

	c := &Client{config: config, logger: config.Logger}

	loggers := []log.Logger{config.ProtocolLogger}
	if config.ProtocolLog != "" {
		fl, err := log.NewFileLogger(config.ProtocolLog)
		if err != nil {
			return nil, fmt.Errorf("protocol log: %w", err)
		}
		c.fileLog = fl
		loggers = append(loggers, fl)
	}
	if ml := log.NewMultiLogger(loggers...); ml.Len() > 0 {
		c.plog = ml
	}

	if config.Registerer != nil {
		c.metrics = metrics.New(
			metrics.WithRegistry(config.Registerer),
			metrics.WithNamespace(config.MetricsNamespace),
		)
	}

	c.registry = registry.NewWithConfig(registry.Config{
		Logger:         config.Logger,
		ProtocolLogger: c.plog,
	})

	c.conn = connection.NewManager(c.dial, connection.Config{
		Backoff:       config.Reconnect,
		AutoReconnect: config.AutoReconnect,
		Logger:        config.Logger,
		Metrics:       c.metrics,
	})
	c.conn.OnReady(func(ctx context.Context, s connection.Session) error {
		c.registry.Reset()
		return c.refresh(ctx, s.(*dispatch.Dispatcher))
	})

	if err := c.conn.Connect(ctx); err != nil {
		c.closeLog()
		return nil, err
	}
	c.logger.Info("management socket open", "controllers", c.registry.Len())
	return c, nil
}

// dial opens a socket and wraps it in a dispatcher that feeds the registry.
func (c *Client) dial(ctx context.Context) (connection.Session, error) {
	id := uuid.NewString()
	t, err := c.config.Dial(ctx, transport.Options{
		ConnectionID:   id,
		ProtocolLogger: c.plog,
		Logger:         c.logger,
	})
	if err != nil {
		return nil, err
	}
	return dispatch.New(t, dispatch.Config{
		CommandTimeout: c.config.CommandTimeout,
		StaleTTL:       c.config.StaleTTL,
		QueueSize:      c.config.QueueSize,
		Logger:         c.logger,
		ProtocolLogger: c.plog,
		ConnectionID:   id,
		Metrics:        c.metrics,
		Tracer:         c.config.Tracer,
		Observer:       c.registry,
	}), nil
}

func (c *Client) dispatcher() (*dispatch.Dispatcher, error) {
	s, err := c.conn.Session()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dispatch.ErrTransportClosed, err)
	}
	return s.(*dispatch.Dispatcher), nil
}

// Exec sends cmd to controller index and waits for its reply.
func (c *Client) Exec(ctx context.Context, index wire.ControllerIndex, cmd catalog.Command) (catalog.Reply, error) {
	d, err := c.dispatcher()
	if err != nil {
		return nil, err
	}
	return d.Exec(ctx, index, cmd)
}

// Subscribe returns a subscription to the events of one controller index.
// wire.NonController subscribes to the global index, which receives events
// of every controller too.
func (c *Client) Subscribe(index wire.ControllerIndex, opts ...subscription.Option) (*subscription.Subscription, error) {
	d, err := c.dispatcher()
	if err != nil {
		return nil, err
	}
	return d.Subscribe(index, opts...), nil
}

// SubscribeAll is Subscribe(wire.NonController).
func (c *Client) SubscribeAll(opts ...subscription.Option) (*subscription.Subscription, error) {
	d, err := c.dispatcher()
	if err != nil {
		return nil, err
	}
	return d.SubscribeAll(opts...), nil
}

// Controllers returns the cached state of every known controller.
func (c *Client) Controllers() []registry.ControllerState {
	return c.registry.All()
}

// Controller returns the cached state of one controller.
func (c *Client) Controller(index wire.ControllerIndex) (registry.ControllerState, error) {
	return c.registry.Snapshot(index)
}

// Registry returns the controller registry.
func (c *Client) Registry() *registry.Registry {
	return c.registry
}

// State returns the connection state.
func (c *Client) State() connection.State {
	return c.conn.State()
}

// Refresh rereads the controller list and every controller's information.
func (c *Client) Refresh(ctx context.Context) error {
	d, err := c.dispatcher()
	if err != nil {
		return err
	}
	return c.refresh(ctx, d)
}

// Version returns the management API version of the kernel, read when the
// socket was opened.
func (c *Client) Version() version.APIVersion {
	if v := c.version.Load(); v != nil {
		return *v
	}
	return version.APIVersion{}
}

func (c *Client) refresh(ctx context.Context, d *dispatch.Dispatcher) error {
	reply, err := d.Exec(ctx, wire.NonController, &catalog.ReadVersionInfo{})
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	v := version.FromReply(reply.(*catalog.VersionReply))
	c.version.Store(&v)

	reply, err = d.Exec(ctx, wire.NonController, &catalog.ReadControllerIndexList{})
	if err != nil {
		return fmt.Errorf("read index list: %w", err)
	}
	if v.AtLeast(version.ExtendedIndexList) {
		// Adds controller type, bus and unconfigured controllers.
		if _, err := d.Exec(ctx, wire.NonController, &catalog.ReadExtendedIndexList{}); err != nil {
			return fmt.Errorf("read extended index list: %w", err)
		}
	}
	for _, idx := range reply.(*catalog.IndexListReply).Indexes {
		_, err := d.Exec(ctx, idx, &catalog.ReadControllerInfo{})
		switch {
		case err == nil:
		case errors.Is(err, dispatch.ErrRejected):
			// Removed between the list and the read.
			st, _ := dispatch.StatusOf(err)
			c.logger.Debug("controller info rejected", "index", idx.String(), "status", st.String())
		default:
			return fmt.Errorf("read info %s: %w", idx, err)
		}
	}
	return nil
}

// Close closes the management socket and the protocol log.
func (c *Client) Close() error {
	err := c.conn.Close()
	if lerr := c.closeLog(); err == nil {
		err = lerr
	}
	return err
}

func (c *Client) closeLog() error {
	if c.fileLog == nil {
		return nil
	}
	return c.fileLog.Close()
}
