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

// Package refresh keeps the current topology graphs up to date. It fetches
// diagnostics snapshots, rebuilds both graphs, keeps serving the last good
// state when a refresh fails and turns re-poll requests into controller calls.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/models"
	"github.com/carverauto/meshradar/pkg/topology"
)

const refreshKey = "refresh"

// Config bounds the time spent waiting on collaborators.
type Config struct {
	RefreshTimeout time.Duration
	RepollTimeout  time.Duration
}

// State is one successfully built topology. It is never mutated after publication.
type State struct {
	Sequence uint64
	BuiltAt  time.Time
	Snapshot *topology.Snapshot
	Thread   *models.Graph
	WiFi     *models.Graph
}

// Graph returns the graph for a network type, building the empty graph for
// types that have no topology.
func (s *State) Graph(network models.NetworkType) *models.Graph {
	switch network {
	case models.NetworkThread:
		return s.Thread
	case models.NetworkWiFi:
		return s.WiFi
	case models.NetworkEthernet, models.NetworkUnknown:
	}

	return s.Snapshot.Graph(network)
}

// Status reports refresh health for dashboards.
type Status struct {
	Sequence     uint64     `json:"sequence"`
	LastRefresh  *time.Time `json:"last_refresh,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
	LastErrorAt  *time.Time `json:"last_error_at,omitempty"`
	Stale        bool       `json:"stale"`
	NodeCount    int        `json:"node_count"`
	UnknownCount int        `json:"unknown_count"`
}

// RepollResult describes a completed re-poll.
type RepollResult struct {
	NodeID  string   `json:"node_id"`
	Polled  []string `json:"polled"`
	State   *State   `json:"-"`
	Refresh string   `json:"refresh"`
}

// Option customizes a Manager.
type Option func(*Manager)

// WithPollRequester enables Repoll.
func WithPollRequester(p PollRequester) Option {
	return func(m *Manager) { m.poller = p }
}

// WithPublisher forwards every new graph to p.
func WithPublisher(p GraphPublisher) Option {
	return func(m *Manager) { m.publisher = p }
}

// WithMeterProvider records metrics on provider instead of the global one.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(m *Manager) { m.metrics = newMetrics(provider) }
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// Manager owns the current topology state.
type Manager struct {
	source    SnapshotSource
	poller    PollRequester
	publisher GraphPublisher
	config    Config
	logger    logger.Logger
	metrics   *metrics
	clock     Clock

	group singleflight.Group

	mu        sync.RWMutex
	state     *State
	lastErr   error
	lastErrAt time.Time

	subMu   sync.Mutex
	subs    map[uint64]chan *State
	nextSub uint64
}

// NewManager creates a Manager. Nothing is fetched until Refresh or Run is called.
func NewManager(source SnapshotSource, config Config, log logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		source: source,
		config: config,
		logger: log,
		clock:  realClock{},
		subs:   make(map[uint64]chan *State),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.metrics == nil {
		m.metrics = newMetrics(nil)
	}

	return m
}

// Current returns the latest good state, or nil before the first successful refresh.
func (m *Manager) Current() *State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}

// Status summarizes the last refresh outcome.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := Status{Stale: m.lastErr != nil}

	if m.lastErr != nil {
		errAt := m.lastErrAt
		st.LastError = m.lastErr.Error()
		st.LastErrorAt = &errAt
	}

	if m.state != nil {
		st.Sequence = m.state.Sequence
		builtAt := m.state.BuiltAt
		st.LastRefresh = &builtAt
		st.NodeCount = len(m.state.Snapshot.Nodes())
		st.UnknownCount = m.state.Thread.Stats.UnknownCount
	}

	return st
}

// Refresh fetches a snapshot and rebuilds the graphs. Concurrent callers share
// one fetch. The shared fetch is bounded by RefreshTimeout only, so a caller
// giving up returns ctx.Err() without failing the fetch for the others. On
// failure the previous state keeps being served and the error wraps
// ErrRefreshFailed.
func (m *Manager) Refresh(ctx context.Context) (*State, error) {
	detached := context.WithoutCancel(ctx)

	ch := m.group.DoChan(refreshKey, func() (interface{}, error) {
		return m.refresh(detached)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			m.logger.Debug().Msg("Joined in-flight topology refresh")
		}

		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(*State), nil
	}
}

func (m *Manager) refresh(ctx context.Context) (*State, error) {
	start := m.clock.Now()

	fetchCtx := ctx

	if m.config.RefreshTimeout > 0 {
		var cancel context.CancelFunc

		fetchCtx, cancel = context.WithTimeout(ctx, m.config.RefreshTimeout)
		defer cancel()
	}

	nodes, err := m.source.FetchSnapshot(fetchCtx)
	if err != nil {
		return nil, m.fail(ctx, err)
	}

	snap := topology.NewSnapshot(nodes)
	builtAt := m.clock.Now()

	m.mu.Lock()

	seq := uint64(1)
	if m.state != nil {
		seq = m.state.Sequence + 1
	}

	state := &State{
		Sequence: seq,
		BuiltAt:  builtAt,
		Snapshot: snap,
		Thread:   snap.Graph(models.NetworkThread),
		WiFi:     snap.Graph(models.NetworkWiFi),
	}

	m.state = state
	m.lastErr = nil
	m.lastErrAt = time.Time{}
	m.mu.Unlock()

	m.metrics.recordBuild(ctx, state, builtAt.Sub(start))

	m.logger.Info().
		Uint64("sequence", seq).
		Int("thread_nodes", state.Thread.Stats.NodeCount).
		Int("thread_edges", state.Thread.Stats.EdgeCount).
		Int("unknown_devices", state.Thread.Stats.UnknownCount).
		Int("wifi_nodes", state.WiFi.Stats.NodeCount).
		Msg("Topology refreshed")

	m.broadcast(state)
	m.publish(ctx, state)

	return state, nil
}

func (m *Manager) fail(ctx context.Context, cause error) error {
	reason := "source"
	if errors.Is(cause, context.DeadlineExceeded) {
		reason = "timeout"
	}

	m.mu.Lock()
	m.lastErr = cause
	m.lastErrAt = m.clock.Now()
	stale := m.state != nil
	m.mu.Unlock()

	m.metrics.recordFailure(ctx, reason)

	m.logger.Warn().
		Err(cause).
		Str("reason", reason).
		Bool("serving_stale", stale).
		Msg("Topology refresh failed")

	return fmt.Errorf("%w: %w", ErrRefreshFailed, cause)
}

func (m *Manager) publish(ctx context.Context, state *State) {
	if m.publisher == nil {
		return
	}

	for _, g := range []*models.Graph{state.Thread, state.WiFi} {
		if err := m.publisher.PublishGraph(ctx, g); err != nil {
			m.logger.Warn().
				Err(err).
				Str("network", string(g.NetworkType)).
				Msg("Failed to publish topology graph")
		}
	}
}

// Subscribe returns a channel receiving every new state. Slow subscribers miss
// states rather than blocking refreshes. The returned func unsubscribes and
// closes the channel.
func (m *Manager) Subscribe(buffer int) (<-chan *State, func()) {
	if buffer < 1 {
		buffer = 1
	}

	ch := make(chan *State, buffer)

	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.subMu.Unlock()

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subs, id)
			m.subMu.Unlock()
			close(ch)
		})
	}
}

func (m *Manager) broadcast(state *State) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for id, ch := range m.subs {
		select {
		case ch <- state:
		default:
			m.logger.Debug().Uint64("subscriber", id).Msg("Dropping topology update for slow subscriber")
		}
	}
}

// PlanRepoll returns the nodes a re-poll of nodeID would query, without sending anything.
func (m *Manager) PlanRepoll(nodeID string, includeNeighbors bool) ([]string, error) {
	state := m.Current()
	if state == nil {
		return nil, ErrNoSnapshot
	}

	return state.Snapshot.RepollSet(nodeID, includeNeighbors), nil
}

// Repoll asks the controller to re-query the re-poll set of nodeID and then
// refreshes. A refresh failure after a successful poll is reported with the
// polled ids so callers can tell the two apart.
func (m *Manager) Repoll(ctx context.Context, nodeID string, includeNeighbors bool) (*RepollResult, error) {
	ids, err := m.PlanRepoll(nodeID, includeNeighbors)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNothingToPoll, nodeID)
	}

	if m.poller == nil {
		return nil, fmt.Errorf("%w: %w", ErrRepollFailed, errNoPollRequester)
	}

	pollCtx := ctx

	if m.config.RepollTimeout > 0 {
		var cancel context.CancelFunc

		pollCtx, cancel = context.WithTimeout(ctx, m.config.RepollTimeout)
		defer cancel()
	}

	if err := m.poller.RequestPoll(pollCtx, ids); err != nil {
		m.metrics.recordRepoll(ctx, "failed")

		m.logger.Warn().Err(err).Str("node_id", nodeID).Strs("targets", ids).Msg("Re-poll request failed")

		return nil, fmt.Errorf("%w: %w", ErrRepollFailed, err)
	}

	m.metrics.recordRepoll(ctx, "sent")

	m.logger.Info().Str("node_id", nodeID).Strs("targets", ids).Msg("Re-poll requested")

	result := &RepollResult{NodeID: nodeID, Polled: ids}

	state, err := m.Refresh(ctx)
	if err != nil {
		result.Refresh = "failed"

		return result, err
	}

	result.State = state
	result.Refresh = "ok"

	return result, nil
}

// Run refreshes immediately and then on every tick until ctx is done.
// Refresh failures are logged and the loop keeps going.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := m.clock.Ticker(interval)
	defer ticker.Stop()

	m.logger.Info().Dur("interval", interval).Msg("Starting topology refresh loop")

	if _, err := m.Refresh(ctx); err != nil {
		m.logger.Error().Err(err).Msg("Initial topology refresh failed")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			if _, err := m.Refresh(ctx); err != nil {
				m.logger.Error().Err(err).Msg("Periodic topology refresh failed")
			}
		}
	}
}
