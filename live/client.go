// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package live

import (
	"cogentcore.org/huecurve/base/errors"
	"cogentcore.org/huecurve/shader"
	"github.com/gorilla/websocket"
)

// MessageTypes are the types of WebSocket messages.
type MessageTypes int

const (
	// TextMessage is a UTF-8 text message.
	TextMessage MessageTypes = websocket.TextMessage

	// BinaryMessage is a binary message, as used for parameter blocks.
	BinaryMessage MessageTypes = websocket.BinaryMessage
)

// Client is a WebSocket client connection to a [Hub].
// You can use [Connect] to create a new Client.
type Client struct {

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// done is closed when the connection is closed.
	done chan struct{}
}

// Connect connects to a hub and returns a [Client].
func Connect(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, done: make(chan struct{})}, nil
}

// OnMessage sets a callback function to be called when a message is received.
// This function can only be called once.
func (c *Client) OnMessage(f func(typ MessageTypes, msg []byte)) {
	go func() {
		for {
			typ, msg, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					errors.Log(err)
				}
				close(c.done)
				return
			}
			f(MessageTypes(typ), msg)
		}
	}()
}

// OnParams calls f with every parameter block received in the given
// layout. Messages that do not decode are logged and skipped.
func (c *Client) OnParams(layout shader.Layouts, f func(p shader.Params)) {
	c.OnMessage(func(typ MessageTypes, msg []byte) {
		if typ != BinaryMessage {
			return
		}
		p, err := shader.Unmarshal(layout, msg)
		if errors.Log(err) != nil {
			return
		}
		f(p)
	})
}

// Close cleanly closes the WebSocket connection.
// It does not directly trigger [Client.OnClose], but once the connection
// is closed, [Client.OnMessage] will trigger it.
func (c *Client) Close() error {
	return c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// OnClose sets a callback function to be called when the connection is closed.
// This function can only be called once.
func (c *Client) OnClose(f func()) {
	go func() {
		<-c.done
		f()
	}()
}
