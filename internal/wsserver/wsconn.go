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
	"sync"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
)

type webSocketConnection struct {
	id       string
	ctx      context.Context
	server   *webSocketServer
	conn     *ws.Conn
	mux      sync.Mutex
	closed   bool
	topics   map[string]bool
	outbound chan interface{}
	closing  chan struct{}
}

type webSocketCommandMessage struct {
	Type    string `json:"type,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Message string `json:"message,omitempty"`
}

func newConnection(server *webSocketServer, conn *ws.Conn) *webSocketConnection {
	id := uuid.NewString()
	wsc := &webSocketConnection{
		id:       id,
		server:   server,
		conn:     conn,
		topics:   make(map[string]bool),
		outbound: make(chan interface{}, server.bufferSize),
		closing:  make(chan struct{}),
		ctx:      log.WithLogField(server.ctx, "ws", id),
	}
	go wsc.listen()
	go wsc.sender()
	return wsc
}

func (c *webSocketConnection) close() {
	c.mux.Lock()
	wasClosed := c.closed
	if !c.closed {
		c.closed = true
		c.conn.Close()
		close(c.closing)
	}
	c.mux.Unlock()

	if !wasClosed {
		c.server.connectionClosed(c)
		log.L(c.ctx).Infof("WS/%s: Disconnected", c.id)
	}
}

func (c *webSocketConnection) listening(topic string) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	return !c.closed && (c.topics[AllTopics] || c.topics[topic])
}

func (c *webSocketConnection) deliver(topic string, payload interface{}) {
	if !c.listening(topic) {
		return
	}
	select {
	case c.outbound <- payload:
	default:
		log.L(c.ctx).Warnf("WS/%s: Client not keeping up. Dropped message on topic '%s'", c.id, topic)
	}
}

func (c *webSocketConnection) sender() {
	defer c.close()
	for {
		select {
		case payload := <-c.outbound:
			if err := c.conn.WriteJSON(payload); err != nil {
				log.L(c.ctx).Errorf("Websocket write failed: %s", err)
				return
			}
		case <-c.closing:
			log.L(c.ctx).Infof("Websocket closing")
			return
		}
	}
}

func (c *webSocketConnection) setListening(topic string, listen bool) {
	if topic == "" {
		topic = AllTopics
	}
	c.mux.Lock()
	defer c.mux.Unlock()
	if listen {
		c.topics[topic] = true
	} else {
		delete(c.topics, topic)
	}
}

func (c *webSocketConnection) listen() {
	defer c.close()
	log.L(c.ctx).Infof("Websocket connected")
	for {
		var msg webSocketCommandMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			log.L(c.ctx).Infof("Websocket error: %s", err)
			return
		}
		log.L(c.ctx).Debugf("Websocket received: %+v", msg)

		switch msg.Type {
		case "listen":
			c.setListening(msg.Topic, true)
		case "unlisten":
			c.setListening(msg.Topic, false)
		case "error":
			log.L(c.ctx).Errorf("%s", i18n.NewError(c.ctx, i18n.MsgWebsocketClientError, msg.Message))
		default:
			log.L(c.ctx).Errorf("Unexpected message type: %+v", msg)
		}
	}
}
