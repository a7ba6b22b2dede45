package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestCommandLifecycle(t *testing.T) {
	m := New(WithRegistry(prometheus.NewRegistry()))
	op := wire.OpSetPowered

	m.CommandStarted()
	m.CommandStarted()
	if got := metricGaugeValue(t, m.pending); got != 2 {
		t.Errorf("pending: got %v, want 2", got)
	}

	m.CommandFinished(op, OutcomeSuccess, 3*time.Millisecond)
	m.CommandFinished(op, OutcomeTimeout, 2*time.Second)
	m.CommandRefused(op, OutcomeInFlightConflict)

	if got := metricGaugeValue(t, m.pending); got != 0 {
		t.Errorf("pending: got %v, want 0", got)
	}
	if got := metricCounterValue(t, m.commandsTotal.WithLabelValues(op.String(), OutcomeSuccess)); got != 1 {
		t.Errorf("success: got %v, want 1", got)
	}
	if got := metricCounterValue(t, m.commandsTotal.WithLabelValues(op.String(), OutcomeInFlightConflict)); got != 1 {
		t.Errorf("conflict: got %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.commandDuration.WithLabelValues(op.String())); got != 2 {
		t.Errorf("duration samples: got %d, want 2", got)
	}
}

func TestEventCounters(t *testing.T) {
	m := New(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
	code := wire.EvDeviceFound

	m.Event(code)
	m.DroppedEvents(code, 3)
	m.DroppedEvents(code, 0)
	m.StaleReply(wire.OpStartDiscovery)
	m.ProtocolError("truncated")
	m.Reconnect()

	if got := metricCounterValue(t, m.eventsTotal.WithLabelValues(code.String())); got != 1 {
		t.Errorf("events: got %v, want 1", got)
	}
	if got := metricCounterValue(t, m.droppedEvents.WithLabelValues(code.String())); got != 3 {
		t.Errorf("dropped: got %v, want 3", got)
	}
	if got := metricCounterValue(t, m.staleReplies.WithLabelValues(wire.OpStartDiscovery.String())); got != 1 {
		t.Errorf("stale: got %v, want 1", got)
	}
	if got := metricCounterValue(t, m.protocolErrors.WithLabelValues("truncated")); got != 1 {
		t.Errorf("protocol errors: got %v, want 1", got)
	}
	if got := metricCounterValue(t, m.reconnectsTotal); got != 1 {
		t.Errorf("reconnects: got %v, want 1", got)
	}
}

func TestRegistryExposesNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(WithRegistry(reg), WithNamespace("bt"), WithSubsystem("mgmt"))
	m.Reconnect()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "bt_mgmt_reconnects_total" {
			found = true
		}
	}
	if !found {
		t.Error("bt_mgmt_reconnects_total not registered")
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.CommandStarted()
	m.CommandFinished(wire.OpSetPowered, OutcomeSuccess, time.Millisecond)
	m.CommandRefused(wire.OpSetPowered, OutcomeError)
	m.Event(wire.EvNewSettings)
	m.DroppedEvents(wire.EvNewSettings, 1)
	m.StaleReply(wire.OpSetPowered)
	m.ProtocolError("x")
	m.Reconnect()
	m.ResetPending()
}
