package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/seoscope/seoscope/pkg/domain"
)

// analyzeHandler runs a full analysis on the posted content
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	res, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		log.Printf("[ERROR] analysis failed: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, res)
}

// semanticRequest is the analyze-markup payload
type semanticRequest struct {
	HTML             string `json:"html"`
	IsArticleContent bool   `json:"isArticleContent"`
}

// semanticHandler audits the posted markup structure
func (s *Server) semanticHandler(w http.ResponseWriter, r *http.Request) {
	var req semanticRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	res, err := s.semantic.AnalyzeHTML(req.HTML, domain.SemanticOptions{IsArticleContent: req.IsArticleContent})
	if err != nil {
		log.Printf("[ERROR] semantic analysis failed: %v", err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, res)
}

// analyzeURLRequest is the analyze-by-URL payload
type analyzeURLRequest struct {
	URL               string   `json:"url"`
	FocusKeyword      string   `json:"focusKeyword,omitempty"`      // overrides the scraped keyword
	SecondaryKeywords []string `json:"secondaryKeywords,omitempty"` // overrides the scraped keyword list
}

// analyzeURLResponse pairs the fetched page with its analysis
type analyzeURLResponse struct {
	URL      string                 `json:"url"`
	Metadata domain.SEOMetadata     `json:"metadata"`
	Result   *domain.AnalysisResult `json:"result"`
}

// analyzeURLHandler fetches a live page and analyzes it
func (s *Server) analyzeURLHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		RenderError(w, r, fmt.Errorf("url is required"), http.StatusBadRequest)
		return
	}

	page, err := s.fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		log.Printf("[WARN] fetch failed for %s: %v", req.URL, err)
		RenderError(w, r, err, http.StatusBadGateway)
		return
	}

	if req.FocusKeyword != "" {
		page.Metadata.FocusKeyword = req.FocusKeyword
	}
	if len(req.SecondaryKeywords) > 0 {
		page.Metadata.SecondaryKeywords = req.SecondaryKeywords
	}

	res, err := s.analyzer.Analyze(r.Context(), domain.AnalysisRequest{
		Content:  page.Content,
		Metadata: page.Metadata,
	})
	if err != nil {
		log.Printf("[ERROR] analysis failed for %s: %v", req.URL, err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	RenderJSON(w, r, http.StatusOK, analyzeURLResponse{URL: page.URL, Metadata: page.Metadata, Result: res})
}

// draftHandler schedules a debounced analysis for an article draft. The
// analysis runs after the quiet interval; rapid successive saves collapse
// into one run.
func (s *Server) draftHandler(w http.ResponseWriter, r *http.Request) {
	articleID := r.PathValue("id")
	if articleID == "" {
		RenderError(w, r, fmt.Errorf("article id is required"), http.StatusBadRequest)
		return
	}

	var req domain.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	req.ArticleID = articleID

	s.debouncer.Trigger(articleID, func() {
		// detached from the request; the draft save already returned
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.analyzer.Analyze(ctx, req); err != nil {
			log.Printf("[WARN] draft analysis failed for %q: %v", articleID, err)
		}
	})

	RenderJSON(w, r, http.StatusAccepted, map[string]string{
		"status":    "scheduled",
		"articleId": articleID,
	})
}

// historyHandler returns persisted snapshots for an article, newest first
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		RenderError(w, r, fmt.Errorf("history is disabled"), http.StatusNotFound)
		return
	}

	articleID := r.PathValue("id")
	limit := s.historyLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			RenderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
			return
		}
		if n < limit {
			limit = n
		}
	}

	recs, err := s.history.GetByArticle(r.Context(), articleID, limit)
	if err != nil {
		log.Printf("[ERROR] failed to get history for %q: %v", articleID, err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"articleId": articleID,
		"history":   recs,
	})
}
