package pubsub

import (
	"context"
	"sync"

	model "auction-engine/internal/models"
)

// Publisher fans committed lot changes out to realtime subscribers. Each lot
// is an independent broadcast topic. Delivery is at-least-once with a
// monotonic guarantee per subscriber: an update carrying a lower sequence
// than one already delivered for the same lot is dropped, never sent late.
// Slow subscribers lose intermediate updates (latest wins) and can never
// block the commit path.
type Publisher struct {
	mu     sync.RWMutex
	topics map[string]map[*subscriber]struct{} // key: lotID
	all    map[*subscriber]struct{}
	buffer int
}

type subscriber struct {
	mu      sync.Mutex
	ch      chan model.LotUpdate
	lastSeq map[string]uint64 // key: lotID, highest delivered sequence
	closed  bool
}

// NewPublisher creates a publisher whose subscriber channels buffer up to
// buffer pending updates before latest-wins dropping kicks in.
func NewPublisher(buffer int) *Publisher {
	if buffer < 1 {
		buffer = 1
	}
	return &Publisher{
		topics: make(map[string]map[*subscriber]struct{}),
		all:    make(map[*subscriber]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a watcher on one lot. The returned channel closes when
// cancel is called or ctx ends; cancelling releases all publisher resources
// for this subscription and never blocks the write path.
func (p *Publisher) Subscribe(ctx context.Context, lotID string) (<-chan model.LotUpdate, func()) {
	sub := &subscriber{
		ch:      make(chan model.LotUpdate, p.buffer),
		lastSeq: make(map[string]uint64),
	}

	p.mu.Lock()
	if p.topics[lotID] == nil {
		p.topics[lotID] = make(map[*subscriber]struct{})
	}
	p.topics[lotID][sub] = struct{}{}
	p.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.topics[lotID], sub)
			if len(p.topics[lotID]) == 0 {
				delete(p.topics, lotID)
			}
			sub.close()
			p.mu.Unlock()
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return sub.ch, cancel
}

// SubscribeAll registers a firehose subscription across every lot; the
// notification dispatcher consumes committed events through it.
func (p *Publisher) SubscribeAll(ctx context.Context) (<-chan model.LotUpdate, func()) {
	sub := &subscriber{
		ch:      make(chan model.LotUpdate, p.buffer),
		lastSeq: make(map[string]uint64),
	}

	p.mu.Lock()
	p.all[sub] = struct{}{}
	p.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.all, sub)
			sub.close()
			p.mu.Unlock()
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return sub.ch, cancel
}

// Publish broadcasts a committed update. Called only from the admission
// commit path and the lifecycle evaluator.
func (p *Publisher) Publish(update model.LotUpdate) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for sub := range p.topics[update.LotID] {
		sub.deliver(update)
	}
	for sub := range p.all {
		sub.deliver(update)
	}
}

// deliver enforces the per-subscriber monotonic guarantee and applies
// latest-wins dropping when the channel is full.
func (s *subscriber) deliver(update model.LotUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if last, ok := s.lastSeq[update.LotID]; ok && update.SeqNo < last {
		return // stale: a newer price already went out on this connection
	}
	s.lastSeq[update.LotID] = update.SeqNo

	for {
		select {
		case s.ch <- update:
			return
		default:
		}
		// full buffer: evict the oldest pending update and retry
		select {
		case <-s.ch:
		default:
		}
	}
}

// close is called with the publisher lock held, so no deliver is in flight.
func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
