package room

import (
	"fmt"

	"chipmaster-server/pkg/model"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	profile  *model.Profile
	roomCode string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, profile *model.Profile, roomCode string) *Client {
	return &Client{
		send:     make(chan interface{}, 256),
		Close:    make(chan string),
		Conn:     conn,
		profile:  profile,
		roomCode: roomCode,
	}
}

// Send sends a message to the web client
// If the client's buffer is full, the message is dropped and false is returned
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the profile and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.profile.ID, c.roomCode)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
