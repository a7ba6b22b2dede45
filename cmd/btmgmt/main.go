// Command btmgmt controls Bluetooth controllers through the Linux kernel's
// management interface.
//
// Usage:
//
//	btmgmt [flags] <command> [args]
//
// Examples:
//
//	# List controllers
//	btmgmt list
//
//	# Power on hci1 and make it discoverable
//	btmgmt -i 1 power on
//	btmgmt -i 1 discoverable on
//
//	# Scan for LE devices for ten seconds
//	btmgmt find --le --duration 10s
//
//	# Print every management event, exposing metrics on :9102
//	btmgmt --metrics-addr :9102 monitor
//
//	# Interactive session
//	btmgmt shell
//
// The management socket needs CAP_NET_ADMIN.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/btmgmt/btmgmt-go/pkg/btmgmt"
	"github.com/btmgmt/btmgmt-go/pkg/log"
	"github.com/btmgmt/btmgmt-go/pkg/transport"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

// Version information set at build time.
var (
	commit = "none"
	date   = "unknown"
)

// app holds global flags and the client shared by every command of one
// process, including the commands run from the shell.
type app struct {
	configPath    string
	logLevel      string
	logFormat     string
	protocolLog   string
	protocolTrace bool
	metricsAddr   string
	timeout       time.Duration
	index         uint16

	logger   *slog.Logger
	client   *btmgmt.Client
	dial     btmgmt.DialFunc
	metrics  *http.Server
	inShell  bool
	stderr   io.Writer
	registry *prometheus.Registry
}

func main() {
	a := &app{logLevel: "warn", logFormat: "text", stderr: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(a).ExecuteContext(ctx)
	stop()
	a.close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		if errors.Is(err, transport.ErrPermissionDenied) {
			fmt.Fprintln(os.Stderr, "The management socket needs CAP_NET_ADMIN; try running as root.")
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "btmgmt",
		Short: "Bluetooth management interface client",
		Long: `btmgmt talks to the Linux kernel's Bluetooth management interface.

It lists controllers, changes their settings, runs discovery, pairs and
blocks devices and prints management events as they arrive.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging()
		},
	}

	// Defaults come from a so commands run from the shell keep the
	// values of earlier lines.
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", a.configPath, "YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", a.logLevel, "Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", a.logFormat, "Log format: text, json")
	flags.StringVar(&a.protocolLog, "protocol-log", a.protocolLog, "Capture protocol events to a "+log.FileExtension+" file")
	flags.BoolVar(&a.protocolTrace, "trace", a.protocolTrace, "Log every frame and message at debug level")
	flags.StringVar(&a.metricsAddr, "metrics-addr", a.metricsAddr, "Serve Prometheus metrics on this address")
	flags.DurationVar(&a.timeout, "timeout", a.timeout, "Command timeout (default from config)")
	flags.Uint16VarP(&a.index, "index", "i", a.index, "Controller index")

	root.AddCommand(
		versionCmd(a),
		commandsCmd(a),
		listCmd(a),
		infoCmd(a),
		settingCmd(a, "power", "Power a controller on or off", wire.SettingPowered),
		discoverableCmd(a),
		settingCmd(a, "connectable", "Toggle page scan", wire.SettingConnectable),
		settingCmd(a, "bondable", "Toggle bonding on pairing", wire.SettingBondable),
		settingCmd(a, "le", "Toggle Low Energy support", wire.SettingLE),
		settingCmd(a, "bredr", "Toggle BR/EDR support", wire.SettingBREDR),
		settingCmd(a, "ssp", "Toggle Secure Simple Pairing", wire.SettingSSP),
		nameCmd(a),
		classCmd(a),
		findCmd(a),
		stopFindCmd(a),
		pairCmd(a),
		unpairCmd(a),
		deviceCmd(a, "disconnect", "Disconnect a device"),
		deviceCmd(a, "block", "Block a device"),
		deviceCmd(a, "unblock", "Unblock a device"),
		conCmd(a),
		monitorCmd(a),
		shellCmd(a),
	)
	return root
}

func (a *app) setupLogging() error {
	if a.logger != nil {
		return nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q", a.logLevel)
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(a.logFormat) {
	case "text":
		handler = slog.NewTextHandler(a.stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(a.stderr, opts)
	default:
		return fmt.Errorf("invalid --log-format %q (must be text or json)", a.logFormat)
	}
	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)
	return nil
}

// config merges the configuration file with command line flags.
func (a *app) config() (btmgmt.Config, error) {
	config := btmgmt.DefaultConfig()
	if a.configPath != "" {
		var err error
		if config, err = btmgmt.LoadConfig(a.configPath); err != nil {
			return config, err
		}
	}
	if a.timeout > 0 {
		config.CommandTimeout = a.timeout
	}
	if a.protocolLog != "" {
		config.ProtocolLog = a.protocolLog
	}
	config.Logger = a.logger
	if a.protocolTrace {
		config.ProtocolLogger = log.NewSlogAdapter(a.logger)
	}
	if a.registry != nil {
		config.Registerer = a.registry
	}
	config.Dial = a.dial
	return config, config.Validate()
}

// open returns the shared client, opening it on first use.
func (a *app) open(ctx context.Context) (*btmgmt.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	if err := a.serveMetrics(); err != nil {
		return nil, err
	}
	config, err := a.config()
	if err != nil {
		return nil, err
	}
	c, err := btmgmt.Open(ctx, config)
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

func (a *app) serveMetrics() error {
	if a.metricsAddr == "" || a.metrics != nil {
		return nil
	}
	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	a.metrics = &http.Server{
		Addr:              a.metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "addr", a.metricsAddr, "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", a.metricsAddr)
	return nil
}

func (a *app) close() {
	if a.client != nil {
		if err := a.client.Close(); err != nil && a.logger != nil {
			a.logger.Warn("close failed", "error", err)
		}
		a.client = nil
	}
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = a.metrics.Shutdown(ctx)
		a.metrics = nil
	}
}

func (a *app) controllerIndex() wire.ControllerIndex {
	return wire.ControllerIndex(a.index)
}
