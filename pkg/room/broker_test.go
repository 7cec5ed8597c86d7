package room

import (
	"testing"
	"time"

	"chipmaster-server/pkg/game"

	"github.com/stretchr/testify/assert"
)

func TestBroker_PublishAndSubscribe(t *testing.T) {
	b := NewBroker()

	ch, cancel := b.Subscribe("ABCDEF")
	defer cancel()

	state := game.New("ABCDEF", "owner", "Owner", 1000, "")
	b.Publish("ABCDEF", state)

	select {
	case got := <-ch:
		assert.Equal(t, state, got)
	case <-time.After(time.Second):
		t.Fatal("expected a state on the channel")
	}

	// a different room must not be delivered here
	b.Publish("GHJKLM", state)
	select {
	case <-ch:
		t.Fatal("received a state for another room")
	default:
	}
}

func TestBroker_NilStateSignalsTeardown(t *testing.T) {
	b := NewBroker()

	ch, cancel := b.Subscribe("ABCDEF")
	defer cancel()

	b.Publish("ABCDEF", nil)

	select {
	case got := <-ch:
		assert.Nil(t, got)
	case <-time.After(time.Second):
		t.Fatal("expected a teardown signal on the channel")
	}
}

func TestBroker_CancelStopsDelivery(t *testing.T) {
	b := NewBroker()

	ch, cancel := b.Subscribe("ABCDEF")
	cancel()

	b.Publish("ABCDEF", game.New("ABCDEF", "owner", "Owner", 1000, ""))

	select {
	case <-ch:
		t.Fatal("received a state after cancel")
	default:
	}
}
