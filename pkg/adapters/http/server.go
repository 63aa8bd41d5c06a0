package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/aretw0/tasklist"
	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/aretw0/tasklist/pkg/runner"
	"github.com/aretw0/tasklist/pkg/view"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Session is the part of a task session served over HTTP.
type Session interface {
	Create(ctx context.Context, text string) (domain.Task, error)
	Toggle(ctx context.Context, id int64) bool
	Remove(ctx context.Context, id int64) bool
	ClearAll(ctx context.Context) bool
	ClearCompleted(ctx context.Context) int
	Get(id int64) (domain.Task, bool)
	Tasks() []domain.Task
	Count() domain.Counts
	Degraded() bool
}

var _ Session = (*tasklist.Session)(nil)

// Server serves one task list. Every session call holds mu, so requests are applied
// one at a time.
type Server struct {
	mu       sync.Mutex
	session  Session
	Streams  *StreamManager
	registry *prometheus.Registry
	metrics  *Metrics
}

// Option configures the Server.
type Option func(*Server)

// WithRegistry uses reg for the /metrics collectors instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewServer creates a server without a session. Pass Publish to the session as its
// on-change callback, then call Handler.
func NewServer(opts ...Option) *Server {
	s := &Server{Streams: NewStreamManager()}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)
	return s
}

// Publish pushes the model to SSE clients. It is meant to be the session's on-change
// callback and runs while the mutating request holds the lock.
func (s *Server) Publish(m view.Model) {
	data, err := json.Marshal(m)
	if err != nil {
		slog.Error("Failed to encode list update", "err", err)
		return
	}
	s.Streams.Broadcast(string(data))
}

// Handler binds session and returns the router.
func (s *Server) Handler(session Session) http.Handler {
	s.session = session
	s.metrics.observe(session.Count(), session.Degraded())

	r := chi.NewRouter()
	r.Get("/", s.Page)
	r.Get("/health", s.GetHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", s.ListTasks)
		r.Post("/tasks", s.CreateTask)
		r.Delete("/tasks", s.ClearAll)
		r.Delete("/tasks/completed", s.ClearCompleted)
		r.Post("/tasks/{id}/toggle", s.ToggleTask)
		r.Delete("/tasks/{id}", s.DeleteTask)
		r.Get("/stats", s.GetStats)
		r.Get("/events", s.SubscribeEvents)
	})
	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

type createRequest struct {
	Text string `json:"text"`
}

type clearResponse struct {
	Removed int `json:"removed"`
}

type statsResponse struct {
	domain.Counts
	Degraded bool `json:"degraded"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// done records the outcome and the new counts. Callers hold mu.
func (s *Server) done(op string, ok bool) {
	s.metrics.mutation(op, ok)
	s.metrics.observe(s.session.Count(), s.session.Degraded())
}

func (s *Server) model(term string) view.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Build(domain.Filter(s.session.Tasks(), term), s.session.Count(), term)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return id, true
}

// Page renders the HTML list, filtered by ?q=.
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	data := pageData{Model: s.model(r.URL.Query().Get("q")), Placeholder: view.EmptyPlaceholder}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		slog.Error("Page render failed", "err", err)
	}
}

// ListTasks handles GET /api/tasks?q=.
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.model(r.URL.Query().Get("q")))
}

// CreateTask handles POST /api/tasks.
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		slog.Warn("CreateTask: Invalid request body", "err", err)
		return
	}

	text, err := runner.SanitizeInput(body.Text)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid input: %v", err))
		slog.Warn("CreateTask: Input rejected", "err", err, "size", len(body.Text))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.session.Create(r.Context(), text)
	s.done("add", err == nil)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, tasklist.NoticeEmptyText)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, t.Serialize())
}

// ToggleTask handles POST /api/tasks/{id}/toggle.
func (s *Server) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok = s.session.Toggle(r.Context(), id)
	s.done("toggle", ok)
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	t, _ := s.session.Get(id)
	writeJSON(w, http.StatusOK, t.Serialize())
}

// DeleteTask handles DELETE /api/tasks/{id}. Clients confirm before calling it.
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok = s.session.Remove(r.Context(), id)
	s.done("remove", ok)
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearAll handles DELETE /api/tasks. Clients confirm before calling it.
func (s *Server) ClearAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.session.Count().Total
	ok := s.session.ClearAll(r.Context())
	s.done("clear_all", ok)
	if !ok {
		n = 0
	}
	writeJSON(w, http.StatusOK, clearResponse{Removed: n})
}

// ClearCompleted handles DELETE /api/tasks/completed.
func (s *Server) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.session.ClearCompleted(r.Context())
	s.done("clear_completed", n > 0)
	writeJSON(w, http.StatusOK, clearResponse{Removed: n})
}

// GetStats handles GET /api/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := statsResponse{Counts: s.session.Count(), Degraded: s.session.Degraded()}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// GetHealth handles GET /health. A degraded list still answers 200.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	degraded := s.session.Degraded()
	s.mu.Unlock()

	status := "ok"
	if degraded {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status, "version": tasklist.Version})
}

// SubscribeEvents handles GET /api/events (SSE). Each event carries the full list.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		slog.Error("SubscribeEvents: Streaming not supported")
		return
	}

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	slog.Debug("SSE client connected")

	for {
		select {
		case <-r.Context().Done():
			slog.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
