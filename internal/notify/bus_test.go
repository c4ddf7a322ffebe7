package notify

import (
	"testing"
)

func TestEmitRegistrationOrder(t *testing.T) {
	b := NewBus()
	var order []int
	b.Subscribe(EventNew, func(Payload) { order = append(order, 1) })
	b.Subscribe(EventNew, func(Payload) { order = append(order, 2) })
	b.Subscribe(EventNew, func(Payload) { order = append(order, 3) })

	b.Emit(EventNew, Payload{})
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected registration order, got %v", order)
	}
}

func TestEmitOnlyMatchingEvent(t *testing.T) {
	b := NewBus()
	calls := 0
	b.Subscribe(EventRead, func(Payload) { calls++ })
	b.Emit(EventNew, Payload{})
	b.Emit(EventUpdated, Payload{})
	if calls != 0 {
		t.Fatalf("handler invoked for foreign events")
	}
	b.Emit(EventRead, Payload{})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestUnsubscribeDetaches(t *testing.T) {
	b := NewBus()
	calls := 0
	sub := b.Subscribe(EventNew, func(Payload) { calls++ })
	b.Emit(EventNew, Payload{})
	sub.Unsubscribe()
	b.Emit(EventNew, Payload{})
	if calls != 1 {
		t.Fatalf("expected handler not to run after unsubscribe, got %d calls", calls)
	}
}

func TestUnsubscribeDuringEmission(t *testing.T) {
	b := NewBus()
	var sub2 *Subscription
	secondCalls := 0
	b.Subscribe(EventNew, func(Payload) { sub2.Unsubscribe() })
	sub2 = b.Subscribe(EventNew, func(Payload) { secondCalls++ })

	// The first handler detaches the second mid-emission; the snapshotted
	// list must not invoke it afterwards.
	b.Emit(EventNew, Payload{})
	if secondCalls != 0 {
		t.Fatalf("handler invoked after unsubscription during emission")
	}
}

func TestSubscribeDuringEmissionNotInvoked(t *testing.T) {
	b := NewBus()
	lateCalls := 0
	b.Subscribe(EventNew, func(Payload) {
		b.Subscribe(EventNew, func(Payload) { lateCalls++ })
	})
	b.Emit(EventNew, Payload{})
	if lateCalls != 0 {
		t.Fatalf("subscriber added mid-emission ran in the same emission")
	}
	b.Emit(EventNew, Payload{})
	if lateCalls != 1 {
		t.Fatalf("late subscriber should run on the next emission, got %d", lateCalls)
	}
}
