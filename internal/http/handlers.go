package http

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"menoassist-chatbot/internal/consult"
	"menoassist-chatbot/internal/core"
	"menoassist-chatbot/internal/funnel"
	"menoassist-chatbot/internal/session"
	"menoassist-chatbot/pkg"
)

// IDAllocator hands out the next unused user identifier when a chat request
// arrives without one.
type IDAllocator interface {
	NextUserID(ctx context.Context) (int64, error)
}

// Notifier publishes consultation bookings for staff-side consumers.
type Notifier interface {
	Notify(ctx context.Context, consultationID string) error
}

// Server bundles together the dependencies required by HTTP handlers.  It
// implements http.Handler so it can be passed to http.ListenAndServe.
type Server struct {
	Store     *session.Store
	Engine    *funnel.Engine
	Allocator IDAllocator
	Consult   *consult.Service
	Ask       *core.AskService
	Notifier  Notifier
	Templates *template.Template
}

// NewServer constructs a Server.  It loads HTML templates from the
// internal/http/templates directory relative to the current working directory.
func NewServer(store *session.Store, engine *funnel.Engine, allocator IDAllocator, consultSvc *consult.Service, ask *core.AskService, notifier Notifier) (*Server, error) {
	tmplPath := filepath.Join("internal", "http", "templates", "*.html")
	tmpl, err := template.ParseGlob(tmplPath)
	if err != nil {
		return nil, err
	}
	return &Server{
		Store:     store,
		Engine:    engine,
		Allocator: allocator,
		Consult:   consultSvc,
		Ask:       ask,
		Notifier:  notifier,
		Templates: tmpl,
	}, nil
}

// ServeHTTP dispatches incoming requests based on the URL path.  Minimal
// routing logic is implemented here to keep dependencies light.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/" && r.Method == http.MethodGet:
		s.handleHome(w, r)
	case r.URL.Path == "/chat" && r.Method == http.MethodPost:
		s.handleChat(w, r)
	case r.URL.Path == "/ask" && r.Method == http.MethodPost:
		s.handleAsk(w, r)
	case r.URL.Path == "/consultation" && r.Method == http.MethodGet:
		s.handleConsultationPage(w, r)
	case r.URL.Path == "/consultation" && r.Method == http.MethodPost:
		s.handleConsultationSubmit(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleHome renders the chat interface.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if err := s.Templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleChat runs one dialogue turn.  A missing query is a precondition
// failure and is rejected before the engine is consulted; a missing user id
// is filled in by the allocator collaborator.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req pkg.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}

	// Quit is handled before any session is created or touched.
	if funnel.IsQuit(funnel.Normalize(req.Query)) {
		writeJSON(w, pkg.ChatResponse{Answer: funnel.FarewellReply})
		return
	}

	var userID int64
	if req.UserID != nil {
		userID = *req.UserID
	} else {
		id, err := s.Allocator.NextUserID(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		userID = id
	}

	var resp pkg.ChatResponse
	err := s.Store.WithSession(userID, func(sess *pkg.Session) error {
		var herr error
		resp, herr = s.Engine.Handle(ctx, sess, req.Query)
		return herr
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, resp)
}

// handleAsk answers a free-form question through the retrieval path.  The
// service degrades to a canned reply when the LLM fails, so the user always
// gets an answer.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req pkg.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}
	answer, err := s.Ask.Ask(r.Context(), req.Query)
	if err != nil {
		log.Println("ask failed:", err)
	}
	writeJSON(w, pkg.AskResponse{Answer: answer})
}

// handleConsultationPage renders the booking form.
func (s *Server) handleConsultationPage(w http.ResponseWriter, r *http.Request) {
	if err := s.Templates.ExecuteTemplate(w, "consultation.html", nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleConsultationSubmit books the consultation and confirms it to the
// user.  Booked consultations are announced on the notify channel so staff
// tooling can pick them up.
func (s *Server) handleConsultationSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	userID, err := strconv.ParseInt(r.FormValue("user_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if name == "" || email == "" {
		http.Error(w, "name and email are required", http.StatusBadRequest)
		return
	}

	id, appointmentAt, err := s.Consult.Book(ctx, userID, name, email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Announce the booking (fire and forget).
	if s.Notifier != nil {
		go func() {
			if err := s.Notifier.Notify(context.Background(), id); err != nil {
				log.Println("failed to notify consultation:", err)
			}
		}()
	}

	writeJSON(w, map[string]interface{}{
		"message":          "Your consultation is confirmed!",
		"appointment_time": appointmentAt.Format(consult.AppointmentTimeFormat),
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("failed to encode response:", err)
	}
}
