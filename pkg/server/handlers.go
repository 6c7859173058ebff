package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/looptrace/pkg/buildinfo"
	"github.com/matzehuels/looptrace/pkg/errors"
	"github.com/matzehuels/looptrace/pkg/grid"
	"github.com/matzehuels/looptrace/pkg/history"
	"github.com/matzehuels/looptrace/pkg/pipeline"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type solveResponse struct {
	Hash          string            `json:"hash"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	Start         grid.Coordinate   `json:"start"`
	StartKind     string            `json:"start_kind"`
	LoopLength    int               `json:"loop_length"`
	HalfLength    int               `json:"half_length"`
	InteriorCount int               `json:"interior_count"`
	Artifacts     map[string]string `json:"artifacts,omitempty"`
	CacheHit      bool              `json:"cache_hit"`
	RecordID      string            `json:"record_id,omitempty"`
}

type historyListResponse struct {
	Records []history.Record `json:"records"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:  splitFormats(q.Get("format")),
		Refresh:  queryBool(q.Get("refresh")),
		Record:   queryBool(q.Get("record")),
		Detailed: queryBool(q.Get("detailed")),
		Source:   "api",
	}
	raw := queryBool(q.Get("raw"))
	if raw && len(opts.Formats) != 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "raw output needs exactly one format"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Code:    errors.ErrCodeInvalidInput,
				Message: "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
			})
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	res, err := s.runner.Solve(r.Context(), body, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if raw {
		format := opts.Formats[0]
		w.Header().Set("Content-Type", pipeline.ContentTypes[format])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Artifacts[format])
		return
	}

	resp := solveResponse{
		Hash:          res.Hash,
		Width:         res.Width,
		Height:        res.Height,
		Start:         res.Start,
		StartKind:     res.StartKind,
		LoopLength:    res.LoopLength,
		HalfLength:    res.HalfLength,
		InteriorCount: res.InteriorCount,
		CacheHit:      res.CacheInfo.ResultHit,
		RecordID:      res.RecordID,
	}
	if len(res.Artifacts) > 0 {
		resp.Artifacts = make(map[string]string, len(res.Artifacts))
		for k, v := range res.Artifacts {
			resp.Artifacts[k] = string(v)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	recs, err := s.runner.History.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []history.Record{}
	}
	writeJSON(w, http.StatusOK, historyListResponse{Records: recs})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.runner.History.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func splitFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func queryBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}
