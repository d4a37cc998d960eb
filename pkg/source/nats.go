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

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/models"
)

// PollRequest is the payload sent on the poll subject.
type PollRequest struct {
	NodeIDs []string `json:"node_ids"`
}

// PollReply is the controller's answer to a PollRequest.
type PollReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NATSSource fetches snapshots and requests polls from the device controller
// over NATS request/reply.
type NATSSource struct {
	nc              *nats.Conn
	snapshotSubject string
	pollSubject     string
	logger          logger.Logger
	ownsConn        bool
}

// NewNATSSource wraps an existing connection. Close leaves nc open.
func NewNATSSource(nc *nats.Conn, snapshotSubject, pollSubject string, log logger.Logger) (*NATSSource, error) {
	if snapshotSubject == "" {
		return nil, ErrSnapshotSubjectEmpty
	}

	return &NATSSource{
		nc:              nc,
		snapshotSubject: snapshotSubject,
		pollSubject:     pollSubject,
		logger:          log,
	}, nil
}

// ConnectNATS dials natsURL and returns a NATSSource owning the connection.
func ConnectNATS(
	natsURL, snapshotSubject, pollSubject string, log logger.Logger, extraOpts ...nats.Option) (*NATSSource, error) {
	cfg := models.NATSConfig{URL: natsURL}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []nats.Option{
		nats.Name("meshradar"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(cfg.URL, append(opts, extraOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	src, err := NewNATSSource(nc, snapshotSubject, pollSubject, log)
	if err != nil {
		nc.Close()
		return nil, err
	}

	src.ownsConn = true

	return src, nil
}

// FetchSnapshot implements refresh.SnapshotSource.
func (s *NATSSource) FetchSnapshot(ctx context.Context) ([]*models.NodeDiagnostic, error) {
	msg, err := s.nc.RequestWithContext(ctx, s.snapshotSubject, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot request on %s failed: %w", s.snapshotSubject, err)
	}

	nodes, err := models.DecodeSnapshot(msg.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot reply: %w", err)
	}

	return nodes, nil
}

// RequestPoll implements refresh.PollRequester.
func (s *NATSSource) RequestPoll(ctx context.Context, nodeIDs []string) error {
	if s.pollSubject == "" {
		return ErrPollSubjectEmpty
	}

	payload, err := json.Marshal(PollRequest{NodeIDs: nodeIDs})
	if err != nil {
		return fmt.Errorf("failed to marshal poll request: %w", err)
	}

	msg, err := s.nc.RequestWithContext(ctx, s.pollSubject, payload)
	if err != nil {
		return fmt.Errorf("poll request on %s failed: %w", s.pollSubject, err)
	}

	var reply PollReply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return fmt.Errorf("failed to decode poll reply: %w", err)
	}

	if !reply.OK {
		return fmt.Errorf("%w: %s", ErrPollRejected, reply.Error)
	}

	s.logger.Debug().Strs("node_ids", nodeIDs).Msg("Poll request acknowledged")

	return nil
}

// Close drains the connection if this source dialed it.
func (s *NATSSource) Close() error {
	if !s.ownsConn || s.nc == nil {
		return nil
	}

	return s.nc.Drain()
}
