package room

import (
	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching clients to dealers
type PitBoss struct {
	broker     *Broker
	feed       *Feed
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
}

// NewPitBoss returns a new dispatch object
// The feed may be nil if the server runs without a remote change listener
func NewPitBoss(broker *Broker, feed *Feed) *PitBoss {
	return &PitBoss{
		broker:     broker,
		feed:       feed,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.roomCode]
			if !found {
				dealer = NewDealer(p, client.roomCode, p.broker, p.feed)
				dealer.StartShift()
				p.dealers[client.roomCode] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.roomCode]
			if !found {
				logrus.WithField("room", client.roomCode).WithField("type", "exception").Error("dealer not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.roomCode)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
