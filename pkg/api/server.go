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

// Package api provides the HTTP API server for meshradar
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/models"
	"github.com/carverauto/meshradar/pkg/refresh"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	shutdownTimeout     = 10 * time.Second
	streamBufferSize    = 4
	defaultPingInterval = 30 * time.Second
)

// APIServer serves the topology graphs and node views over HTTP.
type APIServer struct {
	router         *mux.Router
	topology       TopologyService
	logger         logger.Logger
	allowedOrigins []string
	apiKey         string
	pingInterval   time.Duration
}

// WithAllowedOrigins sets the CORS and websocket origin allow-list.
func WithAllowedOrigins(origins []string) func(*APIServer) {
	return func(server *APIServer) {
		server.allowedOrigins = origins
	}
}

// WithAPIKey requires the X-API-Key header on every route.
func WithAPIKey(key string) func(*APIServer) {
	return func(server *APIServer) {
		server.apiKey = key
	}
}

// WithPingInterval sets how often idle websocket streams are pinged.
func WithPingInterval(d time.Duration) func(*APIServer) {
	return func(server *APIServer) {
		server.pingInterval = d
	}
}

// NewAPIServer creates a new API server instance.
func NewAPIServer(topology TopologyService, log logger.Logger, options ...func(server *APIServer)) *APIServer {
	s := &APIServer{
		router:       mux.NewRouter(),
		topology:     topology,
		logger:       log,
		pingInterval: defaultPingInterval,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// Handler returns the router wrapped in CORS handling. Preflight requests
// never reach the router, which would answer them with 405.
func (s *APIServer) Handler() http.Handler {
	return corsMiddleware(s.allowedOrigins)(s.router)
}

func (s *APIServer) setupRoutes() {
	s.router.Use(requestLogMiddleware(s.logger))

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(apiKeyMiddleware(s.apiKey, s.logger))

	api.HandleFunc("/status", s.getStatus).Methods(http.MethodGet)
	api.HandleFunc("/topology/unknown", s.getUnknownDevices).Methods(http.MethodGet)
	api.HandleFunc("/topology/stream", s.handleStream).Methods(http.MethodGet)
	api.HandleFunc("/topology/refresh", s.postRefresh).Methods(http.MethodPost)
	api.HandleFunc("/topology/nodes/{id}/connections", s.getNodeConnections).Methods(http.MethodGet)
	api.HandleFunc("/topology/nodes/{id}/repoll", s.getRepollPlan).Methods(http.MethodGet)
	api.HandleFunc("/topology/nodes/{id}/repoll", s.postRepoll).Methods(http.MethodPost)
	api.HandleFunc("/topology/{network}", s.getGraph).Methods(http.MethodGet)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *APIServer) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: defaultReadTimeout,
		IdleTimeout:       defaultIdleTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting HTTP API")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *APIServer) currentState(w http.ResponseWriter) (*refresh.State, bool) {
	state := s.topology.Current()
	if state == nil {
		writeError(w, refresh.ErrNoSnapshot.Error(), http.StatusServiceUnavailable)
		return nil, false
	}

	return state, true
}

func (s *APIServer) getStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.topology.Status())
}

func (s *APIServer) getGraph(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["network"]

	network := models.ParseNetworkType(raw)
	if network == models.NetworkUnknown && !strings.EqualFold(raw, string(models.NetworkUnknown)) {
		writeError(w, "unsupported network type: "+raw, http.StatusBadRequest)
		return
	}

	state, ok := s.currentState(w)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, state.Graph(network))
}

func (s *APIServer) getUnknownDevices(w http.ResponseWriter, _ *http.Request) {
	state, ok := s.currentState(w)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, state.Snapshot.UnknownDevices())
}

func (s *APIServer) getNodeConnections(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	state, ok := s.currentState(w)
	if !ok {
		return
	}

	_, managed := state.Snapshot.Node(id)
	_, unknown := state.Snapshot.UnknownDevice(id)

	if !managed && !unknown {
		writeError(w, "node not found: "+id, http.StatusNotFound)
		return
	}

	s.writeJSON(w, http.StatusOK, ConnectionsResponse{
		NodeID:      id,
		Connections: state.Snapshot.NodeConnections(id),
	})
}

func parseIncludeNeighbors(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("include_neighbors")
	if raw == "" {
		return false, nil
	}

	return strconv.ParseBool(raw)
}

func (s *APIServer) getRepollPlan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	include, err := parseIncludeNeighbors(r)
	if err != nil {
		writeError(w, "invalid include_neighbors value", http.StatusBadRequest)
		return
	}

	ids, err := s.topology.PlanRepoll(id, include)
	if err != nil {
		writeError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.writeJSON(w, http.StatusOK, RepollPlan{NodeID: id, IncludeNeighbors: include, NodeIDs: ids})
}

func (s *APIServer) postRepoll(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	include, err := parseIncludeNeighbors(r)
	if err != nil {
		writeError(w, "invalid include_neighbors value", http.StatusBadRequest)
		return
	}

	result, err := s.topology.Repoll(r.Context(), id, include)

	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, RepollResponse{
			NodeID:   id,
			Polled:   result.Polled,
			Status:   "ok",
			Sequence: result.State.Sequence,
		})
	case errors.Is(err, refresh.ErrNoSnapshot):
		writeError(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, refresh.ErrNothingToPoll):
		writeError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, refresh.ErrRefreshFailed) && result != nil:
		s.writeJSON(w, http.StatusBadGateway, RepollResponse{
			NodeID: id,
			Polled: result.Polled,
			Status: "refresh_failed",
			Stale:  s.topology.Current() != nil,
		})
	default:
		writeError(w, err.Error(), http.StatusBadGateway)
	}
}

func (s *APIServer) postRefresh(w http.ResponseWriter, r *http.Request) {
	state, err := s.topology.Refresh(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusBadGateway, RefreshResponse{
			Status: "refresh_failed",
			Stale:  s.topology.Current() != nil,
			Error:  err.Error(),
		})

		return
	}

	s.writeJSON(w, http.StatusOK, RefreshResponse{
		Status:   "ok",
		Sequence: state.Sequence,
		BuiltAt:  state.BuiltAt,
	})
}

func (s *APIServer) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)

	errResponse := ErrorResponse{
		Message: message,
		Status:  statusCode,
	}

	if err := json.NewEncoder(w).Encode(errResponse); err != nil {
		// Fallback in case encoding fails
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
