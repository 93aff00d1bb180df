package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/server/middleware"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/jonathan/resume-ats/internal/worker"
)

// validatable is a request body with struct-tag validation
type validatable interface {
	Validate() error
}

// decodeRequest reads a size-limited JSON body into dst and validates it
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst validatable) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return &ErrUnsupportedFormat{ContentType: ct}
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	return dst.Validate()
}

// handleScore grades a résumé
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	resume, err := schemas.DecodeResume(req.Resume)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	score := s.scorer.Score(resume)
	s.metrics.ObserveScore(score.Overall)
	s.jsonResponse(w, http.StatusOK, score)
}

// handleExtractKeywords extracts ranked keywords from a job description
func (s *Server) handleExtractKeywords(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractKeywordsRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	text, err := ingestion.Normalize(req.JobDescription, req.Format)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ExtractKeywordsResponse{
		Keywords: s.matcher.ExtractJobKeywords(text),
	})
}

// handleAnalyzeKeywords matches job-description keywords against a résumé
func (s *Server) handleAnalyzeKeywords(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeKeywordsRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	resume, err := schemas.DecodeResume(req.Resume)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	text, err := ingestion.Normalize(req.JobDescription, req.Format)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	analysis := s.matcher.Analyze(resume, text)
	s.metrics.ObserveKeywords(analysis.MatchPercentage)
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handlePlacement advises where to add a single keyword
func (s *Server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	var req types.PlacementRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	resume, err := schemas.DecodeResume(req.Resume)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.matcher.SuggestPlacement(req.Keyword, resume))
}

// handleBatch scores and matches several résumés concurrently
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req types.BatchRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	if limit := s.cfg.Analysis.MaxBatchSize; len(req.Items) > limit {
		s.errorResponse(w, r, &ErrBatchTooLarge{Size: len(req.Items), Max: limit})
		return
	}

	jobs, err := worker.NewJobs(req.Items)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	results, err := s.pool.Run(r.Context(), jobs)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.logger.Debug("batch analyzed",
		zap.String(logger.FieldRequestID, middleware.GetRequestID(r.Context())),
		zap.Int("items", len(results)),
	)
	s.jsonResponse(w, http.StatusOK, types.BatchResponse{Results: results})
}
