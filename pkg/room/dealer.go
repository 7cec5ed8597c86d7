package room

import (
	"context"
	"errors"
	"sync"

	"chipmaster-server/pkg/game"

	"github.com/sirupsen/logrus"
)

// Dealer is responsible for running a single room
// All game transitions for the room are serialized through its run loop
type Dealer struct {
	pitBoss *PitBoss
	code    string
	broker  *Broker
	feed    *Feed
	clients map[*Client]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, code string, broker *Broker, feed *Feed) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		code:          code,
		broker:        broker,
		feed:          feed,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithField("room", d.code)
	log.Debug("creating dealer run loop")

	states, cancelStates := d.broker.Subscribe(d.code)
	defer cancelStates()

	// the feed is nil when the server runs without a remote change listener
	var changes <-chan string
	if d.feed != nil {
		var cancelChanges func()
		changes, cancelChanges = d.feed.Subscribe(d.code)
		defer cancelChanges()
	}

	for {
		select {
		case state := <-states:
			if state == nil {
				d.sendRoomEnded()
				return
			}

			d.sendState(state)
		case <-changes:
			state, err := FetchState(context.Background(), d.code)
			if err != nil {
				if errors.Is(err, ErrRoomNotFound) {
					d.broker.Publish(d.code, nil)
					continue
				}

				log.WithError(err).Error("could not fetch room state")
				continue
			}

			d.sendState(state)
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		state, err := FetchState(context.Background(), d.code)
		if err != nil {
			logrus.WithField("room", d.code).WithError(err).Error("could not fetch room state")
			return
		}

		client.Send(&Response{
			Key:  "state",
			Data: state,
		})
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	return nClients == 0
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendState(state *game.GameState) {
	for _, client := range d.Clients() {
		client.Send(&Response{
			Key:  "state",
			Data: state,
		})
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendRoomEnded() {
	for _, client := range d.Clients() {
		client.Send(&Response{
			Key: "roomEnded",
		})
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	profileID := c.profile.ID

	switch msg.Action {
	case "start":
		d.apply(c, msg.Context, func(s *game.GameState) (*game.GameState, error) {
			return s.Start(profileID, msg.BBAmount)
		})
	case "act":
		action, err := game.ActionFromString(msg.Subject, msg.Amount)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		d.apply(c, msg.Context, func(s *game.GameState) (*game.GameState, error) {
			return s.Act(profileID, action)
		})
	case "reorderSeat":
		d.apply(c, msg.Context, func(s *game.GameState) (*game.GameState, error) {
			return s.ReorderSeat(profileID, msg.Index, game.Direction(msg.Direction))
		})
	case "advanceStreet":
		d.apply(c, msg.Context, func(s *game.GameState) (*game.GameState, error) {
			return s.AdvanceStreet(profileID)
		})
	case "resolveShowdown":
		d.apply(c, msg.Context, func(s *game.GameState) (*game.GameState, error) {
			return s.ResolveShowdown(profileID, game.ManualSelection(msg.Winners))
		})
	case "leave":
		d.apply(c, msg.Context, func(s *game.GameState) (*game.GameState, error) {
			return s.Leave(profileID)
		})
	case "endRoom":
		d.execInRunLoop <- func() {
			if err := d.endRoom(profileID); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
		}
	default:
		c.Send(newErrorResponse(msg.Context, game.ValidationError("unknown action: "+msg.Action)))
	}
}

// apply runs a game transition through the store and fans the new state out
func (d *Dealer) apply(c *Client, ctx string, transition func(*game.GameState) (*game.GameState, error)) {
	d.execInRunLoop <- func() {
		state, err := UpdateState(context.Background(), d.code, transition)
		if err != nil {
			c.Send(newErrorResponse(ctx, err))
			return
		}

		c.Send(OK(ctx))
		d.broker.Publish(d.code, state)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) endRoom(profileID string) error {
	state, err := FetchState(context.Background(), d.code)
	if err != nil {
		return err
	}

	if state.Owner().ID != profileID {
		return game.AuthorizationError("only the owner may end the room")
	}

	if err := DeleteRoom(context.Background(), d.code); err != nil {
		return err
	}

	d.broker.Publish(d.code, nil)
	return nil
}
