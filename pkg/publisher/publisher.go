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

// Package publisher forwards topology graphs to NATS JetStream as CloudEvents.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/models"
)

const (
	eventSource      = "meshradar/topology"
	eventTypePrefix  = "com.carverauto.meshradar.topology."
	eventContentType = "application/json"
)

var (
	errStreamEmpty  = errors.New("stream name is required")
	errSubjectEmpty = errors.New("subject prefix is required")
	errNilGraph     = errors.New("graph is nil")
)

// JetStreamPublisher publishes one CloudEvent per graph build.
type JetStreamPublisher struct {
	js            jetstream.JetStream
	nc            *nats.Conn
	stream        string
	subjectPrefix string
	logger        logger.Logger
	now           func() time.Time
}

// NewJetStreamPublisher creates a publisher on an existing JetStream context.
func NewJetStreamPublisher(js jetstream.JetStream, stream, subjectPrefix string, log logger.Logger) *JetStreamPublisher {
	return &JetStreamPublisher{
		js:            js,
		stream:        stream,
		subjectPrefix: subjectPrefix,
		logger:        log,
		now:           time.Now,
	}
}

// Connect dials NATS, makes sure the stream captures <subjectPrefix>.> and
// returns a publisher owning the connection.
func Connect(
	ctx context.Context, natsURL, stream, subjectPrefix string, log logger.Logger, opts ...nats.Option,
) (*JetStreamPublisher, error) {
	cfg := models.NATSConfig{URL: natsURL}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if stream == "" {
		return nil, errStreamEmpty
	}

	if subjectPrefix == "" {
		return nil, errSubjectEmpty
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	// Ensure the stream exists
	if _, err = js.Stream(ctx, stream); err != nil {
		_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     stream,
			Subjects: []string{subjectPrefix + ".>"},
			MaxMsgs:  1000,
		})
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create or get stream %s: %w", stream, err)
		}
	}

	p := NewJetStreamPublisher(js, stream, subjectPrefix, log)
	p.nc = nc

	return p, nil
}

// Subject returns the subject graphs of a network type are published on.
func (p *JetStreamPublisher) Subject(network models.NetworkType) string {
	return p.subjectPrefix + "." + string(network)
}

// PublishGraph implements refresh.GraphPublisher.
func (p *JetStreamPublisher) PublishGraph(ctx context.Context, graph *models.Graph) error {
	if graph == nil {
		return errNilGraph
	}

	now := p.now().UTC()
	event := models.CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource,
		Type:            eventTypePrefix + string(graph.NetworkType),
		DataContentType: eventContentType,
		Subject:         p.Subject(graph.NetworkType),
		Time:            &now,
		Data: models.TopologyEventData{
			NetworkType: graph.NetworkType,
			BuiltAt:     now,
			Graph:       graph,
		},
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal topology event: %w", err)
	}

	ack, err := p.js.Publish(ctx, event.Subject, eventBytes, jetstream.WithMsgID(event.ID))
	if err != nil {
		return fmt.Errorf("failed to publish topology event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", event.Subject).
		Uint64("seq", ack.Sequence).
		Msg("Published topology event")

	return nil
}

// Close drains the connection if Connect created it.
func (p *JetStreamPublisher) Close() error {
	if p.nc == nil {
		return nil
	}

	return p.nc.Drain()
}
