package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/antoniostano/amara/internal/chat"
	"github.com/antoniostano/amara/internal/config"
	"github.com/antoniostano/amara/internal/memory"
	"github.com/antoniostano/amara/internal/observability"
	"github.com/antoniostano/amara/internal/trending"
)

type Server struct {
	cfg      config.Config
	chat     *chat.Service
	manager  *memory.Manager
	trends   trending.Store
	metrics  *observability.Metrics
	upgrader websocket.Upgrader
}

func New(cfg config.Config, chatSvc *chat.Service, manager *memory.Manager, trends trending.Store, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		chat:    chatSvc,
		manager: manager,
		trends:  trends,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Default: only allow browser websocket connections
				// from the same origin. Non-browser clients usually
				// omit Origin and are allowed.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/chat", s.handleChat)
	r.Get("/v1/chat/ws", s.handleChatWS)
	r.Get("/v1/profile/{userID}", s.handleProfile)
	r.Get("/v1/trending", s.handleTrending)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

type chatRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		respondError(w, http.StatusBadRequest, "missing_user_id", "user_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "missing_message", "message is required")
		return
	}

	reply, err := s.chat.Respond(r.Context(), req.UserID, req.Username, req.Message)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ChatRequests.WithLabelValues("http", "error").Inc()
		}
		respondError(w, http.StatusBadGateway, "chat_failed", err.Error())
		return
	}
	if s.metrics != nil {
		s.metrics.ChatRequests.WithLabelValues("http", "ok").Inc()
	}
	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if strings.TrimSpace(userID) == "" {
		respondError(w, http.StatusBadRequest, "missing_user_id", "user id is required")
		return
	}
	// Retrieve with an empty query: tolerant of absent users and store
	// hiccups, same as the chat read path.
	res := s.manager.Retrieve(r.Context(), userID, "")
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	g, err := s.trends.Find(r.Context())
	if err != nil {
		if errors.Is(err, trending.ErrNotFound) {
			respondJSON(w, http.StatusOK, trending.GlobalProfile{RecentGlobalTopics: []string{}})
			return
		}
		respondError(w, http.StatusInternalServerError, "trending_unavailable", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, g)
}

type wsError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// handleChatWS runs the same loop as POST /v1/chat over a websocket: one
// JSON request in, one JSON reply out, sequential per connection.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(1 << 20)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Message) == "" {
			_ = conn.WriteJSON(wsError{Error: "user_id and message are required", Code: "invalid_request"})
			continue
		}

		reply, err := s.chat.Respond(r.Context(), req.UserID, req.Username, req.Message)
		if err != nil {
			if s.metrics != nil {
				s.metrics.ChatRequests.WithLabelValues("ws", "error").Inc()
			}
			_ = conn.WriteJSON(wsError{Error: err.Error(), Code: "chat_failed"})
			continue
		}
		if s.metrics != nil {
			s.metrics.ChatRequests.WithLabelValues("ws", "ok").Inc()
		}
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
