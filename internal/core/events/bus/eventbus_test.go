package bus

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(_ string, _ Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_ string, handlers int, err error, _ int64) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got []Event
	sub, err := b.Subscribe("key_pickup", func(e Event) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID())

	require.NoError(t, b.Publish(NewEvent("key_pickup", "interact", 1.5, "red")))
	require.NoError(t, b.Publish(NewEvent("footstep", "player", 1.6, nil)))

	require.Len(t, got, 1)
	assert.Equal(t, "interact", got[0].Source())
	assert.Equal(t, 1.5, got[0].At())
	assert.Equal(t, "red", got[0].Data())
}

func TestDeliveryFollowsSubscriptionOrder(t *testing.T) {
	b := New()
	var order []int
	for i := 0; i < 5; i++ {
		_, err := b.Subscribe("gunshot", func(Event) error {
			order = append(order, i)
			return nil
		})
		require.NoError(t, err)
	}
	require.NoError(t, b.Publish(NewEvent("gunshot", "combat", 0, nil)))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestWildcardSeesEveryType(t *testing.T) {
	b := New()
	var types []string
	_, err := b.Subscribe(Any, func(e Event) error {
		types = append(types, e.Type())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.PublishBatch(
		NewEvent("door_unlock", "interact", 0, nil),
		NewEvent("enemy_death", "combat", 0, nil),
	))
	assert.Equal(t, []string{"door_unlock", "enemy_death"}, types)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	calls := 0
	sub, err := b.Subscribe("decal", func(Event) error { calls++; return nil })
	require.NoError(t, err)

	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel(), "second cancel is harmless")
	assert.False(t, sub.IsActive())
	require.NoError(t, b.Publish(NewEvent("decal", "combat", 0, nil)))
	assert.Zero(t, calls)
	assert.NoError(t, b.Unsubscribe(nil))
}

func TestCancelDuringPublish(t *testing.T) {
	b := New()
	var calls atomic.Int64
	subs := make([]Subscription, 50)
	for i := range subs {
		sub, err := b.Subscribe("footstep", func(Event) error {
			calls.Add(1)
			return nil
		})
		require.NoError(t, err)
		subs[i] = sub
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.NoError(t, b.Publish(NewEvent("footstep", "player", float64(i), nil)))
		}
	}()
	go func() {
		defer wg.Done()
		for _, sub := range subs {
			assert.NoError(t, sub.Cancel())
		}
	}()
	wg.Wait()

	for _, sub := range subs {
		assert.False(t, sub.IsActive())
	}
	settled := calls.Load()
	require.NoError(t, b.Publish(NewEvent("footstep", "player", 999, nil)))
	assert.Equal(t, settled, calls.Load(), "no handler runs once cancelled")
}

func TestHandlerErrorsAreJoined(t *testing.T) {
	b := New()
	first, second := errors.New("first"), errors.New("second")
	_, _ = b.Subscribe("exit_locked", func(Event) error { return first })
	_, _ = b.Subscribe("exit_locked", func(Event) error { return nil })
	_, _ = b.Subscribe("exit_locked", func(Event) error { return second })

	err := b.Publish(NewEvent("exit_locked", "interact", 0, nil))
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)

	err = b.PublishBatch(NewEvent("exit_locked", "interact", 0, nil), NewEvent("other", "x", 0, nil))
	assert.ErrorIs(t, err, first)
}

func TestNilHandlerRejected(t *testing.T) {
	_, err := New().Subscribe("x", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
}

func TestFiltersDropSilently(t *testing.T) {
	b := New()
	calls := 0
	_, _ = b.Subscribe("footstep", func(Event) error { calls++; return nil })
	obs := &testObserver{}
	b.AddObserver(obs)

	sprintOnly := func(e Event) bool { return e.Data() == true }
	require.NoError(t, b.PublishWithFilters(NewEvent("footstep", "player", 0, false), sprintOnly))
	require.NoError(t, b.PublishWithFilters(NewEvent("footstep", "player", 0, true), sprintOnly))

	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(1), b.GetMetrics().DroppedByFilters)
}

func TestObserverMetricsOptional(t *testing.T) {
	b := New()
	_, _ = b.Subscribe("e", func(e Event) error { return nil })
	_ = b.Publish(NewEvent("e", "s", 0, nil))
	assert.Zero(t, b.GetMetrics().Published, "no metrics without observers")

	obs := &testObserver{}
	b.AddObserver(obs)
	_ = b.Publish(NewEvent("e", "s", 0, nil))
	m := b.GetMetrics()
	assert.Equal(t, uint64(1), m.Published)
	assert.Equal(t, uint64(1), m.DeliveredHandlers)
	assert.Equal(t, uint64(1), m.SubscribersActive)
	assert.Equal(t, 1, obs.publishCount)
	assert.Equal(t, 1, obs.deliveredCount)

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent("e", "s", 0, nil))
	assert.Equal(t, 1, obs.publishCount)
}
