package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/log2seq/log2seq-go/pkg/log2seq"
	"github.com/log2seq/log2seq-go/pkg/log2seq/matcher"
	"github.com/log2seq/log2seq-go/pkg/log2seq/rule"
)

type diagramRequest struct {
	Rules       string `json:"rules"`
	Log         string `json:"log"`
	Annotations *bool  `json:"annotations,omitempty"`
	Dialect     string `json:"dialect,omitempty"`
}

type diagramResponse struct {
	Diagram      string          `json:"diagram"`
	MatchedLines []int           `json:"matched_lines"`
	Participants []string        `json:"participants"`
	Events       []matcher.Event `json:"events"`
	Warnings     []string        `json:"warnings"`
}

type highlightResponse struct {
	MatchedLines []int    `json:"matched_lines"`
	Warnings     []string `json:"warnings"`
}

type parseRulesRequest struct {
	Rules string `json:"rules"`
}

type parseRulesResponse struct {
	Rules    []rule.Rule `json:"rules"`
	Warnings []string    `json:"warnings"`
}

type formatRulesRequest struct {
	Rules []rule.Rule `json:"rules"`
}

type formatRulesResponse struct {
	CSV string `json:"csv"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts, err := s.options(req.Annotations, req.Dialect)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res := log2seq.Generate(req.Rules, req.Log, opts...)
	if err := r.Context().Err(); err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}

	writeJSON(w, http.StatusOK, diagramResponse{
		Diagram:      res.Diagram,
		MatchedLines: res.MatchedLines,
		Participants: res.Participants,
		Events:       res.Events,
		Warnings:     res.WarningMessages(),
	})
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts, err := s.options(nil, req.Dialect)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res := log2seq.Generate(req.Rules, req.Log, opts...)
	writeJSON(w, http.StatusOK, highlightResponse{
		MatchedLines: res.MatchedLines,
		Warnings:     res.WarningMessages(),
	})
}

func (s *Server) handleParseRules(w http.ResponseWriter, r *http.Request) {
	var req parseRulesRequest
	if !s.decode(w, r, &req) {
		return
	}

	rules, diags := rule.ParseWithDiagnostics(req.Rules)
	warnings := make([]string, len(diags))
	for i, d := range diags {
		warnings[i] = d.Error()
	}
	writeJSON(w, http.StatusOK, parseRulesResponse{Rules: rules, Warnings: warnings})
}

func (s *Server) handleFormatRules(w http.ResponseWriter, r *http.Request) {
	var req formatRulesRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, formatRulesResponse{CSV: rule.Format(req.Rules)})
}

// options layers per-request overrides on the configured defaults.
func (s *Server) options(annotations *bool, dialect string) ([]log2seq.Option, error) {
	opts := slices.Clone(s.cfg.Generate)
	opts = append(opts, log2seq.WithLogger(s.logger))
	if annotations != nil {
		opts = append(opts, log2seq.WithLineAnnotations(*annotations))
	}
	if dialect != "" {
		d, err := matcher.ParseDialect(dialect)
		if err != nil {
			return nil, err
		}
		opts = append(opts, log2seq.WithDialect(d))
	}
	return opts, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Debug("request failed",
		slog.String("request_id", GetRequestID(r.Context())),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: GetRequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
