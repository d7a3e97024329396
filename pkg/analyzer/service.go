// Package analyzer orchestrates the scoring pipeline: text extraction,
// readability, keyword, technical and experience scoring, aggregation and
// recommendations. It fronts the pipeline with a content-hash cache and
// collapses concurrent identical requests.
package analyzer

import (
	"context"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"golang.org/x/sync/singleflight"

	"github.com/seoscope/seoscope/pkg/domain"
	"github.com/seoscope/seoscope/pkg/metrics"
	"github.com/seoscope/seoscope/pkg/readability"
	"github.com/seoscope/seoscope/pkg/scoring"
)

// HistoryStore persists analysis snapshots for trend display
type HistoryStore interface {
	Save(ctx context.Context, rec domain.AnalysisRecord) error
}

// Params configures the analysis service
type Params struct {
	Weights         scoring.Weights
	Thresholds      scoring.Thresholds
	ReadingSpeed    int // words per minute
	CacheTTL        time.Duration
	CacheMaxEntries int
	History         HistoryStore // optional, best effort
}

// Service runs full SEO analyses. Safe for concurrent use; identical
// concurrent requests share a single computation.
type Service struct {
	extractor   *metrics.Extractor
	readability *readability.Scorer
	content     *scoring.ContentScorer
	keyword     *scoring.KeywordAnalyzer
	technical   *scoring.TechnicalScorer
	experience  *scoring.ExperienceScorer
	aggregator  *scoring.Aggregator
	recommender *scoring.Generator

	cache   *Cache
	history HistoryStore
	group   singleflight.Group
}

// NewService creates the analysis service from params
func NewService(p Params) *Service {
	if !p.Weights.Validate() {
		log.Printf("[WARN] invalid score weights, using defaults")
		p.Weights = scoring.DefaultWeights()
	}
	return &Service{
		extractor:   metrics.NewExtractor(),
		readability: readability.NewScorer(p.ReadingSpeed),
		content:     scoring.NewContentScorer(p.Thresholds),
		keyword:     scoring.NewKeywordAnalyzer(p.Thresholds),
		technical:   scoring.NewTechnicalScorer(p.Thresholds),
		experience:  scoring.NewExperienceScorer(p.Thresholds),
		aggregator:  scoring.NewAggregator(p.Weights),
		recommender: scoring.NewGenerator(p.Weights, p.Thresholds),
		cache:       NewCache(p.CacheTTL, p.CacheMaxEntries),
		history:     p.History,
	}
}

// Analyze runs the full pipeline for the request. Results are cached by
// content hash; an unchanged article returns the cached result with
// FromCache set and zero processing time. ForceRefresh bypasses the cache.
func (s *Service) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	hash := ContentHash(req.Content, req.Metadata)
	cacheKey := req.ArticleID
	if cacheKey == "" {
		cacheKey = hash
	}

	if !req.ForceRefresh {
		if cached, ok := s.cache.Get(cacheKey, hash); ok {
			hit := *cached
			hit.FromCache = true
			hit.ProcessingTime = 0
			return &hit, nil
		}
	}

	// concurrent requests for the same article revision share one run
	v, err, _ := s.group.Do(cacheKey+"|"+hash, func() (any, error) {
		res, err := s.compute(req, hash)
		if err != nil {
			return nil, err
		}
		s.cache.Set(cacheKey, hash, res)
		s.saveHistory(ctx, req, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.AnalysisResult), nil
}

// Invalidate drops the cached result for an article
func (s *Service) Invalidate(articleID string) { s.cache.Invalidate(articleID) }

// compute runs the scoring pipeline. A panic in any scorer is converted to
// an error instead of taking the process down.
func (s *Service) compute(req domain.AnalysisRequest, hash string) (res *domain.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] analysis panic for article %q: %v", req.ArticleID, r)
			res, err = nil, fmt.Errorf("analysis failed: %v", r)
		}
	}()

	st := time.Now()

	plain := s.extractor.PlainText(req.Content)
	tm := s.extractor.Extract(req.Content)
	rs := s.readability.Score(plain, tm)

	cs := s.content.Score(tm, rs)
	ks := s.keyword.Analyze(req.Content, plain, req.Metadata)
	ts := s.technical.Score(req.Metadata)
	ux := s.experience.Score(req.Content, plain, req.Metadata, tm)

	breakdown := domain.ScoreBreakdown{
		Readability:         cs.Readability,
		ContentLength:       cs.Length,
		ParagraphStructure:  cs.Paragraphs,
		SentenceComplexity:  cs.Sentences,
		KeywordDensity:      ks.Density,
		KeywordDistribution: ks.Distribution,
		LSIKeywords:         ks.LSI,
		TitleOptimization:   ts.Title,
		MetaDescription:     ts.Meta,
		URLStructure:        ts.URL,
		ContentEngagement:   ux.Engagement,
		VisualContent:       ux.Visual,
		ContentScannability: ux.Scannability,
	}

	scores := s.aggregator.Aggregate(breakdown)
	recs := s.recommender.Generate(breakdown, req.Metadata, tm)

	return &domain.AnalysisResult{
		Scores:          scores,
		Recommendations: recs,
		Metrics:         domain.AnalysisMetrics{TextMetrics: tm, ReadabilityScores: rs},
		ContentHash:     hash,
		ProcessingTime:  time.Since(st).Milliseconds(),
	}, nil
}

// saveHistory persists a snapshot when a store is configured. Failures are
// logged, not returned; history is advisory.
func (s *Service) saveHistory(ctx context.Context, req domain.AnalysisRequest, res *domain.AnalysisResult) {
	if s.history == nil || req.ArticleID == "" {
		return
	}
	rec := domain.AnalysisRecord{
		ArticleID:           req.ArticleID,
		ContentHash:         res.ContentHash,
		Overall:             res.Scores.Overall,
		ContentQuality:      res.Scores.ContentQuality,
		KeywordOptimization: res.Scores.KeywordOptimization,
		TechnicalSEO:        res.Scores.TechnicalSEO,
		UserExperience:      res.Scores.UserExperience,
		WordCount:           res.Metrics.TextMetrics.WordCount,
		Recommendations:     len(res.Recommendations),
	}
	if err := s.history.Save(ctx, rec); err != nil {
		log.Printf("[WARN] failed to save analysis history for %q: %v", req.ArticleID, err)
	}
}
