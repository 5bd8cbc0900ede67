package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/aretw0/marquee/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the settings form, its JSON twin and the display stream.
type Server struct {
	Engine   ports.Engine
	Streams  *StreamManager
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStreams shares a StreamManager, typically one also registered as engine display.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithGatherer exposes the given registry on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// PreviewRequest is the body of POST /api/preview.
// Empty numeric fields keep the current layout value.
type PreviewRequest struct {
	Message  string `json:"message"`
	Width    string `json:"width,omitempty"`
	Lines    string `json:"lines,omitempty"`
	Interval string `json:"interval,omitempty"`
	Indent   string `json:"indent,omitempty"`
}

// PreviewResponse is the body returned by POST /api/preview.
type PreviewResponse struct {
	Layout domain.Layout `json:"layout"`
	Chunks []string      `json:"chunks"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Engine, opts ...Option) http.Handler {
	server := &Server{Engine: engine}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.Default()
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.Logger)
	}

	r := chi.NewRouter()
	r.Get("/", server.GetForm)
	r.Post("/", server.PostForm)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", server.GetState)
		r.Post("/submit", server.PostSubmit)
		r.Post("/preview", server.PostPreview)
	})
	r.Get("/events", server.SubscribeEvents)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetForm handles GET /: the settings form with the stored text and current preview.
func (s *Server) GetForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, s.Engine.View(r.Context()))
}

// PostForm handles POST /: a form submission from one of the three buttons.
func (s *Server) PostForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		s.Logger.Warn("PostForm: Invalid form body", "err", err)
		return
	}

	sub := submissionFromForm(r.PostForm)
	clean, err := runner.SanitizeInput(sub.Message)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.Logger.Warn("PostForm: Input rejected", "err", err, "size", len(sub.Message))
		return
	}
	sub.Message = clean

	s.renderForm(w, s.Engine.Submit(r.Context(), sub))
}

// GetState handles GET /api/state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Engine.View(r.Context()))
}

// PostSubmit handles POST /api/submit.
func (s *Server) PostSubmit(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("PostSubmit: Invalid request body", "err", err)
		return
	}

	clean, err := runner.SanitizeInput(sub.Message)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.Logger.Warn("PostSubmit: Input rejected", "err", err, "size", len(sub.Message))
		return
	}
	sub.Message = clean

	s.writeJSON(w, s.Engine.Submit(r.Context(), sub))
}

// PostPreview handles POST /api/preview: chunks text against the current layout
// overridden by the request fields, without saving anything.
func (s *Server) PostPreview(w http.ResponseWriter, r *http.Request) {
	var body PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("PostPreview: Invalid request body", "err", err)
		return
	}

	clean, err := runner.SanitizeInput(body.Message)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		return
	}

	sub := domain.Submission{
		Width:    body.Width,
		Lines:    body.Lines,
		Interval: body.Interval,
		Indent:   body.Indent,
	}
	layout := sub.Apply(s.Engine.Layout()).Normalize()
	chunks := s.Engine.Preview(clean, layout)

	s.writeJSON(w, PreviewResponse{Layout: layout, Chunks: domain.ChunkStrings(chunks)})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	snap := s.Engine.Snapshot()
	s.writeJSON(w, map[string]any{
		"app":     "marquee-http",
		"version": strings.TrimSpace(marquee.Version),
		"phase":   snap.Phase(),
		"chunks":  len(snap.Chunks),
	})
}

// SubscribeEvents handles the GET /events request (SSE).
// Every subscriber first receives the last known text of each slot.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	s.Logger.Info("SSE: Client subscribed")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	for _, ev := range s.Streams.Current() {
		if bytes, err := json.Marshal(ev); err == nil {
			fmt.Fprintf(w, "data: %s\n\n", bytes)
		}
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected")
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

func (s *Server) renderForm(w http.ResponseWriter, view domain.View) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := formData{View: view, MaxIndent: domain.MaxIndentFor(view.Layout.Width)}
	if err := formTemplate.Execute(w, data); err != nil {
		s.Logger.Error("Form render failed", "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "err", err)
	}
}

// submissionFromForm maps form values to a Submission.
// The enabled checkbox is on when present at all, whatever its value.
func submissionFromForm(form url.Values) domain.Submission {
	_, enabled := form["enabled"]
	return domain.Submission{
		Message:  form.Get("message"),
		Enabled:  enabled,
		Width:    form.Get("width"),
		Lines:    form.Get("lines"),
		Interval: form.Get("interval"),
		Indent:   form.Get("indent"),
		Action:   domain.Action(form.Get("action")),
	}
}
