/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server hosts table widgets over HTTP. Each browser session owns
// one widget; DOM events are posted back as JSON and answered with the
// re-rendered markup.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/events"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/rendering"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/views"
	"github.com/google/tabula/core/widget"
)

const (
	// SessionCookie names the cookie holding the session ID.
	SessionCookie = "tabula_session"
	// StateURLHeader carries the bookmarkable URL of the state after an event.
	StateURLHeader = "X-Tabula-State-URL"
	// HandledHeader reports whether an event reached a handler.
	HandledHeader = "X-Tabula-Handled"

	// DefaultMaxSessions bounds the session map until SetMaxSessions is called.
	DefaultMaxSessions = 1024

	maxEventBytes = 64 << 10
)

// Dataset is what every session's widget presents.
type Dataset struct {
	Title   string
	Columns []columns.Column
	Rows    []columns.Row
}

// session is one browser's widget. The widget is single-threaded, so all
// access goes through mu.
type session struct {
	mu       sync.Mutex
	widget   *widget.TableWidget
	lastSeen atomic.Uint64 // server clock tick of the latest request
}

// Server represents the application server with all its dependencies
type Server struct {
	dataset  Dataset
	renderer *rendering.TableRenderer
	options  []widget.Option
	logger   zerolog.Logger

	mu          sync.RWMutex
	sessions    map[string]*session
	maxSessions int
	clock       atomic.Uint64
}

// NewServer creates a server presenting dataset. Options apply to every
// session's widget.
func NewServer(dataset Dataset, logger zerolog.Logger, opts ...widget.Option) (*Server, error) {
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if dataset.Title == "" {
		dataset.Title = "Tabula"
	}
	options := append([]widget.Option{widget.WithRenderer(renderer), widget.WithLogger(logger)}, opts...)

	s := &Server{
		dataset:  dataset,
		renderer: renderer,
		options:  options,
		logger:   logger,
		sessions: make(map[string]*session),

		maxSessions: DefaultMaxSessions,
	}

	// Fail at startup rather than on the first request.
	if _, err := s.newWidget(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /events", s.handleEvent)
	mux.HandleFunc("GET /state", s.handleState)
	return mux
}

// SetMaxSessions bounds the number of live sessions. Once the bound is
// reached, starting a session evicts the least recently used one. Values
// below one are treated as one.
func (s *Server) SetMaxSessions(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSessions = max(n, 1)
	for len(s.sessions) > s.maxSessions {
		s.evictOldest()
	}
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) newWidget() (*widget.TableWidget, error) {
	return widget.New(s.dataset.Columns, s.dataset.Rows, &widget.BufferMount{}, s.options...)
}

// lookup returns the session named by the request cookie, if any.
func (s *Server) lookup(r *http.Request) (*session, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[c.Value]
	if ok {
		sess.lastSeen.Store(s.clock.Add(1))
	}
	return sess, ok
}

// handlePage serves the full page. A URL with a query string starts the
// session over from the state it encodes; a plain reload keeps the session.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok || r.URL.RawQuery != "" {
		tw, err := s.newWidget()
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to create widget")
			http.Error(w, "Failed to create table", http.StatusInternalServerError)
			return
		}
		if r.URL.RawQuery != "" {
			if err := tw.Restore(query.NewQuery(r.URL)); err != nil {
				s.logger.Error().Err(err).Msg("failed to restore state")
				http.Error(w, "Failed to restore table state", http.StatusInternalServerError)
				return
			}
		}
		sess = s.store(w, r, tw)
	}

	sess.mu.Lock()
	markup := sess.widget.Markup()
	sess.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderPage(w, views.PageViewModel{Title: s.dataset.Title, Markup: markup}); err != nil {
		s.logger.Error().Err(err).Msg("page rendering error")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// store installs tw as the widget of the request's session, creating the
// session and its cookie when needed.
func (s *Server) store(w http.ResponseWriter, r *http.Request, tw *widget.TableWidget) *session {
	id := ""
	if c, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			id = c.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	sess := &session{widget: tw}
	sess.lastSeen.Store(s.clock.Add(1))
	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		for len(s.sessions) >= s.maxSessions {
			s.evictOldest()
		}
	}
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Debug().Str("session", id).Msg("session started")
	return sess
}

// evictOldest drops the least recently used session. Callers hold s.mu.
func (s *Server) evictOldest() {
	oldestID := ""
	var oldest uint64
	for id, sess := range s.sessions {
		if seen := sess.lastSeen.Load(); oldestID == "" || seen < oldest {
			oldestID, oldest = id, seen
		}
	}
	if oldestID == "" {
		return
	}
	delete(s.sessions, oldestID)
	s.logger.Info().Str("session", oldestID).Int("limit", s.maxSessions).Msg("session evicted")
}

// handleEvent dispatches one DOM event and answers with the new markup.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		http.Error(w, "Unknown session", http.StatusBadRequest)
		return
	}

	var ev events.Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes)).Decode(&ev); err != nil {
		http.Error(w, fmt.Sprintf("Invalid event: %v", err), http.StatusBadRequest)
		return
	}

	sess.mu.Lock()
	handled, err := sess.widget.Dispatch(ev)
	markup := sess.widget.Markup()
	stateURL := sess.widget.Query("/").ToSafeURL().String()
	sess.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Str("type", ev.Type).Msg("event handling error")
		http.Error(w, "Failed to handle event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(StateURLHeader, stateURL)
	w.Header().Set(HandledHeader, fmt.Sprint(handled))
	_, _ = w.Write([]byte(markup.String()))
}

// StateResponse is the body of GET /state.
type StateResponse struct {
	State     tables.ViewState `json:"state"`
	URL       string           `json:"url"`
	PageCount int              `json:"pageCount"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		http.Error(w, "Unknown session", http.StatusNotFound)
		return
	}

	sess.mu.Lock()
	resp := StateResponse{
		State:     sess.widget.State(),
		URL:       sess.widget.Query("/").ToSafeURL().String(),
		PageCount: sess.widget.PageCount(),
	}
	sess.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode state")
	}
}
