// Package service implements the two logical operations the HTTP layer
// exposes: search and details. Each inbound request maps to exactly one
// upstream HTML fetch followed by synchronous, in-memory extraction;
// there is no shared mutable state across requests.
package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/vidproxy/vidproxy/internal/config"
	"github.com/vidproxy/vidproxy/internal/extract"
	"github.com/vidproxy/vidproxy/internal/fetch"
	"github.com/vidproxy/vidproxy/internal/monitoring"
	"github.com/vidproxy/vidproxy/internal/normalize"
	"github.com/vidproxy/vidproxy/internal/records"
	"github.com/vidproxy/vidproxy/internal/utils"
)

// Fetcher retrieves one HTML page. Satisfied by *fetch.Client; tests
// substitute fixtures.
type Fetcher interface {
	FetchHTML(ctx context.Context, targetURL string, timeout time.Duration) (string, error)
}

// SearchResult is the payload of the search operation.
type SearchResult struct {
	Results    []records.VideoRecord  `json:"results"`
	Pagination records.PaginationInfo `json:"pagination"`
	Stats      records.Stats          `json:"stats"`
}

// DetailsResult is the payload of the details operation.
type DetailsResult struct {
	Detail    *records.DetailRecord `json:"detail"`
	Metadata  records.PageMetadata  `json:"metadata"`
	StreamURL *string               `json:"streamUrl"`
	Related   []records.VideoRecord `json:"related"`
	Stats     records.Stats         `json:"stats"`
}

// Service wires the fetcher, extraction pipelines, cleaner, and metrics.
type Service struct {
	fetcher        Fetcher
	baseURL        string
	searchTimeout  time.Duration
	detailsTimeout time.Duration

	searchPipeline  *extract.Pipeline
	relatedPipeline *extract.Pipeline
	detailExtractor *extract.DetailExtractor
	cleaner         *records.Cleaner
	norm            normalize.Normalizer

	logger  utils.Logger
	metrics *monitoring.Metrics
}

// New builds a Service from configuration. Logger and metrics may be nil.
func New(cfg *config.Config, fetcher Fetcher, logger utils.Logger, metrics *monitoring.Metrics) *Service {
	if logger == nil {
		logger = utils.NopLogger()
	}
	if fetcher == nil {
		fetcher = fetch.NewClient(fetch.Options{
			UserAgent: cfg.Source.UserAgent,
			RateLimit: cfg.Source.RateLimit,
			RateBurst: cfg.Source.RateBurst,
			Logger:    logger,
		})
	}
	norm := normalize.Normalizer{CDNHost: cfg.CDN.Host}
	return &Service{
		fetcher:         fetcher,
		baseURL:         strings.TrimRight(cfg.Source.BaseURL, "/"),
		searchTimeout:   cfg.Source.SearchTimeout,
		detailsTimeout:  cfg.Source.DetailsTimeout,
		searchPipeline:  extract.NewSearchPipeline(logger),
		relatedPipeline: extract.NewRelatedPipeline(logger),
		detailExtractor: extract.NewDetailExtractor(norm, logger),
		cleaner:         records.NewCleaner(norm, logger),
		norm:            norm,
		logger:          logger,
		metrics:         metrics,
	}
}

// Search fetches one page of search results and extracts valid records.
// An empty result set is a valid, non-error response.
func (s *Service) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.NewError(utils.ErrCodeInvalidInput, "search query cannot be empty")
	}
	if page < 1 {
		page = 1
	}

	target := fmt.Sprintf("%s/search/%s?page=%d", s.baseURL, url.PathEscape(query), page)
	fetchStart := time.Now()
	html, err := s.fetcher.FetchHTML(ctx, target, s.searchTimeout)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveFetch("search", time.Since(fetchStart))

	doc := extract.NewPage(html)
	candidates, strategy := s.searchPipeline.Run(doc)
	results, stats := s.finalize(candidates, records.DedupeAnyField)
	s.metrics.ObserveExtraction("search", strategy, stats.Found, stats.Unique, stats.Complete)

	s.logger.WithFields(map[string]interface{}{
		"query":    query,
		"page":     page,
		"strategy": strategy,
		"found":    stats.Found,
		"complete": stats.Complete,
	}).Info("search extraction complete")

	return &SearchResult{
		Results:    results,
		Pagination: extract.ExtractPagination(doc),
		Stats:      stats,
	}, nil
}

// Details fetches one video detail page. A total extraction failure maps
// to NOT_FOUND even when the fetch itself succeeded; every secondary
// extractor degrades silently instead.
func (s *Service) Details(ctx context.Context, path string) (*DetailsResult, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "/")
	if !strings.HasPrefix(path, "videos/") {
		return nil, utils.NewErrorf(utils.ErrCodeInvalidInput, "path must start with videos/, got %q", path)
	}

	target := s.baseURL + "/" + path
	fetchStart := time.Now()
	html, err := s.fetcher.FetchHTML(ctx, target, s.detailsTimeout)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveFetch("details", time.Since(fetchStart))

	doc := extract.NewPage(html)
	detail := s.detailExtractor.Extract(doc, path)
	if detail == nil {
		return nil, utils.NewErrorf(utils.ErrCodeNotFound, "no usable record on detail page %s", path)
	}

	candidates, strategy := s.relatedPipeline.Run(doc)
	related, stats := s.finalize(candidates, records.DedupeExact)
	s.metrics.ObserveExtraction("details", strategy, stats.Found, stats.Unique, stats.Complete)

	var streamURL *string
	if u := extract.ExtractStreamURL(doc); u != "" {
		streamURL = &u
	}

	s.logger.WithFields(map[string]interface{}{
		"path":     path,
		"strategy": strategy,
		"related":  stats.Complete,
	}).Info("details extraction complete")

	return &DetailsResult{
		Detail:    detail,
		Metadata:  extract.ExtractMetadata(doc, s.norm),
		StreamURL: streamURL,
		Related:   related,
		Stats:     stats,
	}, nil
}

// finalize runs the candidate collection through deduplication and the
// validity gate, producing records plus exact per-stage stats.
func (s *Service) finalize(candidates []records.Candidate, dedupe func([]records.Candidate) ([]records.Candidate, int)) ([]records.VideoRecord, records.Stats) {
	unique, removed := dedupe(candidates)

	out := make([]records.VideoRecord, 0, len(unique))
	for _, cand := range unique {
		if rec := s.cleaner.Clean(cand); rec != nil {
			out = append(out, *rec)
		}
	}

	stats := records.Stats{
		Found:             len(candidates),
		DuplicatesRemoved: removed,
		Unique:            len(unique),
		FilteredOut:       len(unique) - len(out),
		Complete:          len(out),
	}
	return out, stats
}
