// Package watch fans committed write results out to live subscribers.
//
// Every publish carries the full current snapshot for its topic, never a
// diff; consumers replace their local state wholesale on each delivery.
package watch

import (
	"context"
	"sync"
)

// Hub is a topic-keyed snapshot broadcaster. Subscribers always observe the
// newest snapshot; intermediate snapshots may be skipped for slow consumers.
type Hub[T any] struct {
	mu     sync.Mutex
	nextID int
	topics map[string]map[int]chan T
}

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{topics: make(map[string]map[int]chan T)}
}

// Subscribe registers for snapshots on topic. The returned channel closes
// when ctx is cancelled; callers must cancel on teardown or the
// subscription lives forever.
func (h *Hub[T]) Subscribe(ctx context.Context, topic string) <-chan T {
	ch := make(chan T, 1)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[int]chan T)
	}
	h.topics[topic][id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		if subs, ok := h.topics[topic]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Publish delivers snapshot to every subscriber of topic. A pending
// undelivered snapshot is replaced rather than queued.
func (h *Hub[T]) Publish(topic string, snapshot T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.topics[topic] {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// SubscriberCount reports the number of live subscriptions for a topic.
func (h *Hub[T]) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}
