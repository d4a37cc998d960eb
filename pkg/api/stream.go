/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/carverauto/meshradar/pkg/models"
	"github.com/carverauto/meshradar/pkg/refresh"
)

const (
	streamReadDeadline  = 90 * time.Second
	streamWriteDeadline = 10 * time.Second
)

// handleStream pushes the selected network's graph on connect and after every refresh.
func (s *APIServer) handleStream(w http.ResponseWriter, r *http.Request) {
	network := models.NetworkThread

	if raw := r.URL.Query().Get("network"); raw != "" {
		network = models.ParseNetworkType(raw)
		if network == models.NetworkUnknown {
			writeError(w, "unsupported network type: "+raw, http.StatusBadRequest)
			return
		}
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkWebSocketOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("remote_addr", r.RemoteAddr).Msg("Failed to upgrade to WebSocket")
		return
	}

	defer func() {
		_ = conn.Close()
	}()

	s.logger.Info().
		Str("remote_addr", r.RemoteAddr).
		Str("network", string(network)).
		Msg("Topology stream connected")

	// Subscribe before reading the current state so no refresh slips between the two.
	updates, cancelSub := s.topology.Subscribe(streamBufferSize)
	defer cancelSub()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go s.handleClientMessages(ctx, conn, cancel)

	if err := s.streamGraphs(ctx, conn, network, updates); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("Topology stream ended")
	}
}

func (s *APIServer) streamGraphs(
	ctx context.Context, conn *websocket.Conn, network models.NetworkType, updates <-chan *refresh.State) error {
	var lastSeq uint64

	if state := s.topology.Current(); state != nil {
		if err := sendGraphMessage(conn, state, network); err != nil {
			return err
		}

		lastSeq = state.Sequence
	} else if err := sendErrorMessage(conn, refresh.ErrNoSnapshot.Error()); err != nil {
		return err
	}

	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := sendPingMessage(conn); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
		case state, ok := <-updates:
			if !ok {
				return nil
			}

			if state.Sequence <= lastSeq {
				continue
			}

			if err := sendGraphMessage(conn, state, network); err != nil {
				return err
			}

			lastSeq = state.Sequence
		}
	}
}

// handleClientMessages drains client frames so closes are noticed promptly.
func (s *APIServer) handleClientMessages(ctx context.Context, conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	for {
		if ctx.Err() != nil {
			return
		}

		if err := conn.SetReadDeadline(time.Now().Add(streamReadDeadline)); err != nil {
			return
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug().Err(err).Msg("Topology stream closed unexpectedly")
			}

			return
		}
	}
}

func (s *APIServer) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || originAllowed(s.allowedOrigins, origin) {
		return true
	}

	// Same-host connections are always fine.
	if origin == "http://"+r.Host || origin == "https://"+r.Host {
		return true
	}

	s.logger.Warn().Str("origin", origin).Msg("WebSocket origin not allowed")

	return false
}

func writeStreamMessage(conn *websocket.Conn, msg StreamMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteDeadline)); err != nil {
		return err
	}

	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send %s message: %w", msg.Type, err)
	}

	return nil
}

func sendGraphMessage(conn *websocket.Conn, state *refresh.State, network models.NetworkType) error {
	return writeStreamMessage(conn, StreamMessage{
		Type:      "graph",
		Sequence:  state.Sequence,
		Graph:     state.Graph(network),
		Timestamp: state.BuiltAt,
	})
}

func sendErrorMessage(conn *websocket.Conn, errMsg string) error {
	return writeStreamMessage(conn, StreamMessage{Type: "error", Error: errMsg, Timestamp: time.Now()})
}

func sendPingMessage(conn *websocket.Conn) error {
	return writeStreamMessage(conn, StreamMessage{Type: "ping", Timestamp: time.Now()})
}
