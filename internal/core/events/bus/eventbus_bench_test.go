package bus

import (
	"strconv"
	"sync/atomic"
	"testing"
)

func benchEvt(t string) Event {
	return NewEvent(t, "bench", 0, nil)
}

func makeHandler(c *int64) EventHandler {
	return func(e Event) error {
		atomic.AddInt64(c, 1)
		return nil
	}
}

type nopObserver struct{}

func (nopObserver) OnPublish(eventType string, event Event)                                {}
func (nopObserver) OnDelivered(eventType string, handlers int, err error, durMicros int64) {}

func BenchmarkPublishManySubscribers(b *testing.B) {
	for _, subs := range []int{1, 4, 16, 64} {
		b.Run("subs="+strconv.Itoa(subs), func(b *testing.B) {
			bus := New()
			var c int64
			for i := 0; i < subs; i++ {
				_, _ = bus.Subscribe("tick", makeHandler(&c))
			}
			e := benchEvt("tick")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = bus.Publish(e)
			}
		})
	}
}

func BenchmarkConcurrentPublishers(b *testing.B) {
	bus := New()
	var c int64
	for i := 0; i < 64; i++ {
		_, _ = bus.Subscribe("tick", makeHandler(&c))
	}
	e := benchEvt("tick")
	b.ReportAllocs()
	b.SetParallelism(4)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = bus.Publish(e)
		}
	})
}

func BenchmarkObserverOverhead(b *testing.B) {
	bus := New()
	var c int64
	for i := 0; i < 32; i++ {
		_, _ = bus.Subscribe("tick", makeHandler(&c))
	}
	e := benchEvt("tick")
	b.Run("no-observer", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = bus.Publish(e)
		}
	})
	b.Run("with-observer", func(b *testing.B) {
		bus.AddObserver(nopObserver{})
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = bus.Publish(e)
		}
		bus.RemoveObserver(nopObserver{})
	})
}
