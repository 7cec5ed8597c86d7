package room

import (
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// roomChangedChannel is the NOTIFY channel raised by the rooms table trigger
const roomChangedChannel = "room_changed"

const feedMinReconnect = time.Second * 2
const feedMaxReconnect = time.Minute

// Feed relays remote room changes into the process. Postgres raises a NOTIFY
// for every write to the rooms table, including our own, so subscribers must
// tolerate redundant deliveries; they receive the room code and fetch the
// snapshot themselves.
type Feed struct {
	listener *pq.Listener
	lock     sync.RWMutex
	subs     map[string]map[chan string]bool
}

// StartFeed connects a listener to the database and starts relaying
func StartFeed(dsn string) (*Feed, error) {
	listener := pq.NewListener(dsn, feedMinReconnect, feedMaxReconnect, func(event pq.ListenerEventType, err error) {
		if err != nil {
			logrus.WithError(err).Error("room feed listener error")
		}
	})

	if err := listener.Listen(roomChangedChannel); err != nil {
		_ = listener.Close()
		return nil, err
	}

	f := &Feed{
		listener: listener,
		subs:     make(map[string]map[chan string]bool),
	}

	go f.runLoop()
	return f, nil
}

func (f *Feed) runLoop() {
	for notification := range f.listener.Notify {
		// nil is delivered after a reconnect; there is nothing to relay
		if notification == nil {
			continue
		}

		f.deliver(notification.Extra)
	}
}

func (f *Feed) deliver(code string) {
	f.lock.RLock()
	defer f.lock.RUnlock()

	for ch := range f.subs[code] {
		select {
		case ch <- code:
		default:
		}
	}
}

// Subscribe starts delivery of change notifications for the room code. The
// returned cancel func must be called to release the subscription.
func (f *Feed) Subscribe(code string) (<-chan string, func()) {
	ch := make(chan string, 16)

	f.lock.Lock()
	if f.subs[code] == nil {
		f.subs[code] = make(map[chan string]bool)
	}
	f.subs[code][ch] = true
	f.lock.Unlock()

	cancel := func() {
		f.lock.Lock()
		defer f.lock.Unlock()

		if subs, ok := f.subs[code]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(f.subs, code)
			}
		}
	}

	return ch, cancel
}

// Close shuts the feed down
func (f *Feed) Close() error {
	return f.listener.Close()
}
