package room

import (
	"sync"

	"chipmaster-server/pkg/game"
)

// Broker fans every locally produced snapshot out to in-process subscribers,
// so every view of a room on this server sees a mutation immediately without
// a round trip through the store. A nil snapshot announces room teardown.
type Broker struct {
	lock sync.RWMutex
	subs map[string]map[chan *game.GameState]bool
}

// NewBroker returns a new broker
func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan *game.GameState]bool),
	}
}

// Subscribe starts delivery of snapshots for the room code. The returned
// cancel func must be called to release the subscription.
func (b *Broker) Subscribe(code string) (<-chan *game.GameState, func()) {
	ch := make(chan *game.GameState, 256)

	b.lock.Lock()
	if b.subs[code] == nil {
		b.subs[code] = make(map[chan *game.GameState]bool)
	}
	b.subs[code][ch] = true
	b.lock.Unlock()

	cancel := func() {
		b.lock.Lock()
		defer b.lock.Unlock()

		if subs, ok := b.subs[code]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(b.subs, code)
			}
		}
	}

	return ch, cancel
}

// Publish delivers a snapshot to every subscriber of the room. Slow
// subscribers are skipped rather than blocked on. Publish a nil state to
// announce that the room was torn down.
func (b *Broker) Publish(code string, state *game.GameState) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	for ch := range b.subs[code] {
		select {
		case ch <- state:
		default:
		}
	}
}
