package subscription

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
	"github.com/btmgmt/btmgmt-go/pkg/wire"
)

var errGone = errors.New("gone")

func settingsNotification(index wire.ControllerIndex, s wire.Settings) Notification {
	return Notification{
		Index:     index,
		Event:     &catalog.NewSettings{Settings: s},
		Timestamp: time.Now(),
	}
}

func TestSubscriptionFIFO(t *testing.T) {
	m := NewManager()
	sub := m.Subscribe(0)

	for i := range 3 {
		m.Publish(settingsNotification(0, wire.Settings(i)))
	}
	assert.Equal(t, 3, sub.Len())

	ctx := context.Background()
	for i := range 3 {
		n, err := sub.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, sub.ID, n.SubscriptionID)
		assert.Equal(t, wire.Settings(i), n.Event.(*catalog.NewSettings).Settings)
	}
}

func TestSubscriptionDropOldest(t *testing.T) {
	m := NewManager()
	sub := m.Subscribe(0, WithQueueSize(2))

	var dropped int
	for i := range 5 {
		_, d := m.Publish(settingsNotification(0, wire.Settings(i)))
		dropped += d
	}
	assert.Equal(t, 3, dropped)
	assert.Equal(t, uint64(3), sub.Dropped())

	ctx := context.Background()
	n, err := sub.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, wire.Settings(3), n.Event.(*catalog.NewSettings).Settings)
	n, err = sub.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, wire.Settings(4), n.Event.(*catalog.NewSettings).Settings)
}

func TestRouting(t *testing.T) {
	m := NewManager()
	hci0 := m.Subscribe(0)
	hci1 := m.Subscribe(1)
	global := m.Subscribe(wire.NonController)
	all := m.SubscribeAll()
	filtered := m.SubscribeAll(WithEventCodes(wire.EvIndexAdded))

	delivered, _ := m.Publish(settingsNotification(0, 0))
	assert.Equal(t, 3, delivered)
	m.Publish(Notification{Index: 1, Event: &catalog.IndexAdded{}})
	m.Publish(Notification{Index: wire.NonController, Event: &catalog.IndexAdded{}})

	assert.Equal(t, 1, hci0.Len())
	assert.Equal(t, 1, hci1.Len())
	assert.Equal(t, 3, global.Len())
	assert.True(t, global.All)
	assert.Equal(t, 3, all.Len())
	assert.Equal(t, 2, filtered.Len())
}

func TestNextBlocksUntilPublish(t *testing.T) {
	m := NewManager()
	sub := m.Subscribe(0)

	got := make(chan Notification, 1)
	go func() {
		n, err := sub.Next(context.Background())
		if err == nil {
			got <- n
		}
	}()

	time.Sleep(10 * time.Millisecond)
	m.Publish(settingsNotification(0, wire.SettingPowered))

	select {
	case n := <-got:
		assert.Equal(t, wire.ControllerIndex(0), n.Index)
	case <-time.After(time.Second):
		t.Fatal("Next did not return after Publish")
	}
}

func TestNextContextCancel(t *testing.T) {
	sub := NewManager().Subscribe(0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := sub.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseDrainsThenEnds(t *testing.T) {
	m := NewManager()
	sub := m.Subscribe(0)
	m.Publish(settingsNotification(0, 1))
	sub.Close()
	sub.Close()

	assert.Equal(t, 0, m.Count())
	delivered, _ := m.Publish(settingsNotification(0, 2))
	assert.Equal(t, 0, delivered)

	var got []Notification
	for n := range sub.Events(context.Background()) {
		got = append(got, n)
	}
	assert.Len(t, got, 1)
	assert.ErrorIs(t, sub.Err(), ErrSubscriptionClosed)
}

func TestCloseAll(t *testing.T) {
	m := NewManager()
	a := m.Subscribe(0)
	b := m.SubscribeAll()

	m.CloseAll(errGone)
	assert.True(t, m.IsClosed())
	assert.Equal(t, 0, m.Count())

	_, err := a.Next(context.Background())
	assert.ErrorIs(t, err, errGone)
	assert.ErrorIs(t, b.Err(), errGone)

	late := m.Subscribe(1)
	_, err = late.Next(context.Background())
	assert.ErrorIs(t, err, errGone)
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager()
	sub := m.Subscribe(0)

	got, err := m.Get(sub.ID)
	require.NoError(t, err)
	assert.Same(t, sub, got)

	require.NoError(t, m.Unsubscribe(sub.ID))
	assert.ErrorIs(t, m.Unsubscribe(sub.ID), ErrSubscriptionNotFound)
	_, err = m.Get(sub.ID)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	assert.ErrorIs(t, sub.Err(), ErrSubscriptionClosed)
}

func TestConcurrentPublishAndConsume(t *testing.T) {
	m := NewManager()
	sub := m.Subscribe(0, WithQueueSize(1024))

	const producers, perProducer = 4, 100
	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perProducer {
				m.Publish(settingsNotification(0, 0))
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := 0
	for received < producers*perProducer {
		if _, err := sub.Next(ctx); err != nil {
			t.Fatalf("Next failed after %d: %v", received, err)
		}
		received++
	}
	wg.Wait()
	assert.Zero(t, sub.Dropped())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.ErrorIs(t, Config{}.Validate(), ErrInvalidQueueSize)
}
