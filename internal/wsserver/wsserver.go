// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wsserver

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/kaleido-io/rewardd/internal/log"
)

// AllTopics is the topic a client listens on to receive every broadcast
const AllTopics = "*"

// WebSocketServer pushes broadcasts to every connected client listening on the topic.
// Delivery never blocks the broadcaster. A client that falls behind by more than the
// buffer size misses messages.
type WebSocketServer interface {
	Handler() http.HandlerFunc
	Broadcast(topic string, payload interface{})
	Connections() int
	Close()
}

type webSocketServer struct {
	ctx         context.Context
	mux         sync.Mutex
	upgrader    *websocket.Upgrader
	connections map[string]*webSocketConnection
	bufferSize  int
}

// NewWebSocketServer create a new server with a simplified interface
func NewWebSocketServer(ctx context.Context, bufferSize int) WebSocketServer {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &webSocketServer{
		ctx:         ctx,
		connections: make(map[string]*webSocketConnection),
		bufferSize:  bufferSize,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (s *webSocketServer) handler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.L(s.ctx).Errorf("WebSocket upgrade failed: %s", err)
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	c := newConnection(s, conn)
	s.connections[c.id] = c
}

func (s *webSocketServer) connectionClosed(c *webSocketConnection) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.connections, c.id)
}

func (s *webSocketServer) Handler() http.HandlerFunc {
	return s.handler
}

func (s *webSocketServer) Broadcast(topic string, payload interface{}) {
	s.mux.Lock()
	conns := make([]*webSocketConnection, 0, len(s.connections))
	for _, c := range s.connections {
		conns = append(conns, c)
	}
	s.mux.Unlock()

	for _, c := range conns {
		c.deliver(topic, payload)
	}
}

func (s *webSocketServer) Connections() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.connections)
}

func (s *webSocketServer) Close() {
	s.mux.Lock()
	conns := make([]*webSocketConnection, 0, len(s.connections))
	for _, c := range s.connections {
		conns = append(conns, c)
	}
	s.mux.Unlock()

	for _, c := range conns {
		c.close()
	}
}
