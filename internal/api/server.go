package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/nounkey/internal/config"
	"github.com/knowledge-engine/nounkey/internal/key"
	"github.com/knowledge-engine/nounkey/internal/normalizer"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Normalizer *normalizer.Normalizer
	Config     config.ServerConfig
	Logger     *logrus.Entry
	Router     *http.ServeMux
}

func NewServer(n *normalizer.Normalizer, cfg config.ServerConfig, logger *logrus.Entry) *Server {
	s := &Server{
		Normalizer: n,
		Config:     cfg,
		Logger:     logger,
		Router:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/api/v1/parse", s.handleParse)
	s.Router.HandleFunc("/api/v1/parse/batch", s.handleParseBatch)
	s.Router.HandleFunc("/api/v1/build", s.handleBuild)
	s.Router.HandleFunc("/api/v1/status", s.handleStatus)
}

func (s *Server) Start() error {
	s.Logger.Infof("Starting API Server on %s", s.Config.Addr)
	srv := &http.Server{
		Addr:         s.Config.Addr,
		Handler:      s.Router,
		ReadTimeout:  s.Config.ReadTimeout,
		WriteTimeout: s.Config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Responses
type ErrorResponse struct {
	Error string `json:"error"`
}

type ParseResponse struct {
	Key   string `json:"key"`
	Index int    `json:"index"`
}

type BatchRequest struct {
	Items []normalizer.Request `json:"items"`
}

type BatchResponse struct {
	Results []BatchResultView `json:"results"`
}

type BatchResultView struct {
	Raw   string `json:"raw"`
	Key   string `json:"key,omitempty"`
	Index int    `json:"index"`
	Error string `json:"error,omitempty"`
}

type BuildResponse struct {
	Key string `json:"key"`
}

type StatusResponse struct {
	Parsed     int64  `json:"parsed"`
	Mismatches int64  `json:"mismatches"`
	Rejected   int64  `json:"rejected"`
	Uptime     string `json:"uptime"`
}

// Handlers

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req normalizer.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}

	res := s.Normalizer.Normalize(req.Key, req.Index)
	if res.Err != nil {
		s.jsonResponse(w, statusFor(res.Err), ErrorResponse{Error: res.Err.Error()})
		return
	}

	s.jsonResponse(w, http.StatusOK, ParseResponse{Key: res.Key, Index: res.Index})
}

func (s *Server) handleParseBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}

	results, err := s.Normalizer.NormalizeBatch(r.Context(), req.Items)
	if err != nil {
		if errors.Is(err, normalizer.ErrBatchTooLarge) {
			s.jsonResponse(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()})
			return
		}
		s.Logger.WithError(err).Warn("Batch interrupted")
		s.jsonResponse(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}

	response := BatchResponse{Results: make([]BatchResultView, len(results))}
	for i, res := range results {
		view := BatchResultView{Raw: res.Raw, Key: res.Key, Index: res.Index}
		if res.Err != nil {
			view = BatchResultView{Raw: res.Raw, Error: res.Err.Error()}
		}
		response.Results[i] = view
	}

	s.jsonResponse(w, http.StatusOK, response)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	index, err := strconv.Atoi(query.Get("index"))
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'index' must be an integer"})
		return
	}

	built, err := s.Normalizer.Build(query.Get("key"), index)
	if err != nil {
		s.jsonResponse(w, statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	s.jsonResponse(w, http.StatusOK, BuildResponse{Key: built})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := s.Normalizer.Stats()
	s.jsonResponse(w, http.StatusOK, StatusResponse{
		Parsed:     stats.Parsed,
		Mismatches: stats.Mismatches,
		Rejected:   stats.Rejected,
		Uptime:     time.Since(stats.StartTime).Round(time.Second).String(),
	})
}

// statusFor maps normalization errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, key.ErrArgumentMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, key.ErrNegativeIndex), errors.Is(err, key.ErrIndexOutOfRange), errors.Is(err, normalizer.ErrEmptyKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		s.Logger.WithError(err).Error("Failed to encode response")
		code = http.StatusInternalServerError
		response = []byte(`{"error":"internal error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		s.Logger.WithError(err).Warn("Failed to write response")
	}
}
