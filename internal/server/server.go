package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"knowledgebot/internal/config"
	"knowledgebot/internal/helper"
	"knowledgebot/internal/models"
)

// Answerer is the one operation the HTTP layer needs from the RAG engine.
type Answerer interface {
	Query(ctx context.Context, query string) (*models.QueryResponse, error)
}

// CORSHeaders is the fixed header set attached to every response, success or
// error, so a browser caller can always read the body.
type CORSHeaders map[string]string

func DefaultCORSHeaders() CORSHeaders {
	return CORSHeaders{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
		"Access-Control-Max-Age":       "3600",
	}
}

type Server struct {
	rag        Answerer
	cfg        *config.Config
	cors       CORSHeaders
	credential func() string
}

func New(cfg *config.Config, rag Answerer) *Server {
	return &Server{
		rag:        rag,
		cfg:        cfg,
		cors:       DefaultCORSHeaders(),
		credential: cfg.LLM.ResolveKey,
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.withRequestID(s.queryHandler))
	mux.HandleFunc("/query", s.withRequestID(s.queryHandler))
	mux.HandleFunc("/healthz", s.healthHandler)
	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

// queryHandler is the single RAG entry point. CORS headers go on before any
// branch so that every outcome, including errors, carries them.
func (s *Server) queryHandler(w http.ResponseWriter, r *http.Request) {
	s.applyCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.credential() == "" || s.rag == nil {
		s.writeError(w, http.StatusInternalServerError, "OpenAI API key not set")
		return
	}

	query := parseQuery(r, s.cfg.RAG.DefaultQuery)

	resp, err := s.rag.Query(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Error answering query")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// parseQuery never fails: a missing or malformed body falls back to the
// configured default question.
func parseQuery(r *http.Request, fallback string) string {
	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fallback
	}
	if req.Prompt != "" {
		return req.Prompt
	}
	if req.Query != "" {
		return req.Query
	}
	return fallback
}

func (s *Server) applyCORS(w http.ResponseWriter) {
	for k, v := range s.cors {
		w.Header().Set(k, v)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Error encoding response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, models.ErrorResponse{Error: msg})
}

// withRequestID tags every request with a UUID for log correlation.
func (s *Server) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := helper.GenerateUUID()
		if err == nil {
			w.Header().Set("X-Request-ID", id)
		}
		log.Debug().Str("request_id", id).Str("method", r.Method).Str("path", r.URL.Path).Msg("Handling request")
		next(w, r)
	}
}
