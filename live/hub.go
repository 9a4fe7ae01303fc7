// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package live streams the parameter block of an effect to remote
// renderers over WebSocket, sending it on connect and after every edit.
package live

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cogentcore.org/huecurve/anim"
	"cogentcore.org/huecurve/base/errors"
	"cogentcore.org/huecurve/hue"
	"cogentcore.org/huecurve/shader"
	"github.com/gorilla/websocket"
)

// Hub is an [http.Handler] that upgrades requests to WebSocket
// connections and keeps every connection up to date with the
// parameter block of its effect.
type Hub struct {
	effect *hue.Effect
	layout shader.Layouts
	time   anim.Time

	upgrader websocket.Upgrader
	unsub    func()

	mu    sync.Mutex
	conns map[*websocket.Conn]chan []byte
}

// NewHub returns a hub for ef, packing the parameter block in the
// given layout at time t.
func NewHub(ef *hue.Effect, layout shader.Layouts, t anim.Time) *Hub {
	h := &Hub{effect: ef, layout: layout, time: t, conns: map[*websocket.Conn]chan []byte{}}
	h.unsub = ef.Subscribe(func(ch hue.Change) {
		if ch.Kind == hue.ProgressChanged {
			return
		}
		h.broadcast(h.pack(ch.Snapshot))
	})
	return h
}

func (h *Hub) pack(s *hue.Snapshot) []byte {
	p := shader.Pack(s, h.time)
	return p.Marshal(h.layout)
}

// Len returns the number of connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// broadcast queues msg on every connection without blocking.
// A connection that has not sent its previous block yet gets
// the new one instead.
func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, out := range h.conns {
		select {
		case <-out:
		default:
		}
		out <- msg
	}
}

// ServeHTTP implements [http.Handler].
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if errors.Log(err) != nil {
		return
	}
	out := make(chan []byte, 1)
	h.mu.Lock()
	h.conns[conn] = out
	out <- h.pack(h.effect.Snapshot())
	h.mu.Unlock()
	slog.Debug("live: connected", "remote", r.RemoteAddr)

	go func() {
		// reads only to notice the close
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
	for msg := range out {
		if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			h.drop(conn)
			return
		}
	}
}

// drop removes conn and ends its writer.
func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if out, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		close(out)
		conn.Close()
	}
}

// Close stops following the effect and closes every connection.
func (h *Hub) Close() {
	h.unsub()
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()
	for _, c := range conns {
		c.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(time.Second))
		h.drop(c)
	}
}
