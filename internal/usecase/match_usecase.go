package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"solar-match/internal/domain/candidate"
	"solar-match/internal/domain/job"
	"solar-match/internal/domain/match"
	"solar-match/internal/domain/matching"
	"solar-match/internal/pipeline"
	"solar-match/internal/repository"
	"solar-match/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTopK     = 10
	DefaultMinScore = 0.0

	// MatchList statuses. An empty pool is a reportable outcome, not
	// an error; callers must be able to tell it apart from a failure
	// to compute scores.
	StatusOK                   = "ok"
	StatusNoEligibleCandidates = "no eligible candidates"
)

type MatchParams struct {
	TopK     int
	MinScore float64
}

// MatchResult is one ranked candidate: identity, aggregate score,
// per-dimension breakdown, and reviewer-facing reasons.
type MatchResult struct {
	CandidateID   uuid.UUID       `json:"candidate_id"`
	CandidateName string          `json:"candidate_name"`
	Score         float64         `json:"match_score"`
	Breakdown     match.Breakdown `json:"breakdown"`
	Reasons       []string        `json:"reasons"`
}

type MatchList struct {
	JobPostingID uuid.UUID     `json:"job_posting_id"`
	Status       string        `json:"status"`
	Results      []MatchResult `json:"results"`
}

type MatcherUsecase interface {
	MatchJob(ctx context.Context, jobPostingID uuid.UUID, params MatchParams) (MatchList, error)
}

type Matcher struct {
	jobs       repository.JobPostingRepository
	candidates repository.CandidateRepository
	matches    repository.MatchRepository
	cache      MatchCache
	logger     *zap.Logger
	recorder   *metrics.Recorder

	weights  matching.Weights
	workers  int
	cacheTTL time.Duration
}

type MatcherOption func(*Matcher)

func WithWeights(w matching.Weights) MatcherOption {
	return func(m *Matcher) { m.weights = w }
}

func WithScoringWorkers(n int) MatcherOption {
	return func(m *Matcher) {
		if n > 0 {
			m.workers = n
		}
	}
}

func WithMatchCache(c MatchCache, ttl time.Duration) MatcherOption {
	return func(m *Matcher) {
		m.cache = c
		if ttl > 0 {
			m.cacheTTL = ttl
		}
	}
}

func WithRecorder(r *metrics.Recorder) MatcherOption {
	return func(m *Matcher) { m.recorder = r }
}

func NewMatcher(
	jobs repository.JobPostingRepository,
	candidates repository.CandidateRepository,
	matches repository.MatchRepository,
	logger *zap.Logger,
	opts ...MatcherOption,
) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Matcher{
		jobs:       jobs,
		candidates: candidates,
		matches:    matches,
		logger:     logger,
		weights:    matching.DefaultWeights(),
		workers:    4,
		cacheTTL:   600 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MatchJob ranks the available candidate pool against one active
// posting: validate, score concurrently, sort (stable on ties), apply
// the minimum-score filter, truncate to top-K, and persist every
// scored pair as an idempotent upsert.
func (m *Matcher) MatchJob(ctx context.Context, jobPostingID uuid.UUID, params MatchParams) (MatchList, error) {
	start := time.Now()

	if jobPostingID == uuid.Nil {
		m.recorder.ObserveMatch("invalid", 0, time.Since(start))
		return MatchList{}, ErrInvalidInput
	}

	topK := params.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	minScore := params.MinScore
	if minScore < 0 {
		minScore = DefaultMinScore
	}
	if minScore > 1 {
		m.recorder.ObserveMatch("invalid", 0, time.Since(start))
		return MatchList{}, fmt.Errorf("%w: min score above 1", ErrInvalidInput)
	}

	cacheKey := fmt.Sprintf("matches:%s:top%d:min%.4f", jobPostingID, topK, minScore)
	if m.cache != nil {
		var cached MatchList
		if ok, err := m.cache.GetJSON(ctx, cacheKey, &cached); err == nil && ok {
			m.recorder.ObserveMatch("cache_hit", 0, time.Since(start))
			return cached, nil
		}
	}

	posting, err := m.jobs.FindByID(ctx, jobPostingID)
	if err != nil {
		if errors.Is(err, repository.ErrJobPostingNotFound) {
			m.recorder.ObserveMatch("not_found", 0, time.Since(start))
			return MatchList{}, ErrJobNotFound
		}
		m.logger.Error("load job posting failed", zap.String("job_id", jobPostingID.String()), zap.Error(err))
		m.recorder.ObserveMatch("error", 0, time.Since(start))
		return MatchList{}, ErrInternal
	}
	if !posting.IsActive() {
		m.recorder.ObserveMatch("inactive", 0, time.Since(start))
		return MatchList{}, ErrJobNotActive
	}
	if !posting.HasLocation() {
		// Malformed posting: reject before any candidate is scored.
		m.recorder.ObserveMatch("invalid", 0, time.Since(start))
		return MatchList{}, fmt.Errorf("%w: posting is missing city/state", ErrInvalidInput)
	}

	pool, err := m.candidates.ListAvailable(ctx)
	if err != nil {
		m.logger.Error("load candidate pool failed", zap.Error(err))
		m.recorder.ObserveMatch("error", 0, time.Since(start))
		return MatchList{}, ErrInternal
	}

	eligible := pool[:0:0]
	for _, c := range pool {
		if c.ID == uuid.Nil || !c.IsAvailable() {
			continue
		}
		eligible = append(eligible, c)
	}

	if len(eligible) == 0 {
		m.recorder.ObserveMatch("empty_pool", 0, time.Since(start))
		return MatchList{
			JobPostingID: jobPostingID,
			Status:       StatusNoEligibleCandidates,
			Results:      []MatchResult{},
		}, nil
	}

	scored := m.scorePool(ctx, posting, eligible)
	if ctx.Err() != nil {
		m.recorder.ObserveMatch("canceled", 0, time.Since(start))
		return MatchList{}, ctx.Err()
	}

	if err := m.matches.UpsertBatch(ctx, jobPostingID, scored); err != nil {
		// Scores were computed fine; a storage conflict or outage must
		// not turn a valid ranking into a hard failure.
		m.logger.Error("persist matches failed",
			zap.String("job_id", jobPostingID.String()),
			zap.Int("pairs", len(scored)),
			zap.Error(err),
		)
	}

	// Stable sort keeps original pool order on exact score ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	nameByID := make(map[uuid.UUID]string, len(eligible))
	for _, c := range eligible {
		nameByID[c.ID] = c.Name
	}

	results := make([]MatchResult, 0, topK)
	for _, s := range scored {
		if s.Score < minScore {
			continue
		}
		results = append(results, MatchResult{
			CandidateID:   s.CandidateID,
			CandidateName: nameByID[s.CandidateID],
			Score:         s.Score,
			Breakdown:     s.Breakdown,
			Reasons:       s.Reasons,
		})
		if len(results) == topK {
			break
		}
	}

	list := MatchList{
		JobPostingID: jobPostingID,
		Status:       StatusOK,
		Results:      results,
	}

	if m.cache != nil {
		if err := m.cache.SetJSON(ctx, cacheKey, list, m.cacheTTL); err != nil {
			m.logger.Debug("cache set failed", zap.Error(err))
		}
	}

	m.recorder.ObserveMatch("ok", len(scored), time.Since(start))
	return list, nil
}

// ListActiveJobs pages through the postings currently open for
// matching.
func (m *Matcher) ListActiveJobs(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	postings, err := m.jobs.ListActive(ctx, limit, offset)
	if err != nil {
		m.logger.Error("list active postings failed", zap.Error(err))
		return nil, ErrInternal
	}
	return postings, nil
}

// ListMatches returns the persisted ranking for one posting, best
// scores first. Reads what MatchJob upserted; it never rescores.
func (m *Matcher) ListMatches(ctx context.Context, jobPostingID uuid.UUID) ([]match.Match, error) {
	if jobPostingID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	out, err := m.matches.ListByJob(ctx, jobPostingID)
	if err != nil {
		m.logger.Error("list matches failed", zap.String("job_id", jobPostingID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// scorePool runs the engine for each candidate on the worker pool.
// Each task writes its own slot, so there is no shared mutable state.
func (m *Matcher) scorePool(ctx context.Context, posting job.Posting, pool []candidate.Candidate) []matching.Scored {
	scored := make([]matching.Scored, len(pool))

	wp := pipeline.NewWorkerPool(m.workers, len(pool))
	out := wp.Run(ctx)

	go func() {
		for i := range pool {
			i := i
			wp.Submit(func(ctx context.Context) error {
				scored[i] = matching.Score(pool[i], posting, m.weights)
				return nil
			})
		}
		wp.Close()
	}()

	for range out {
	}

	return scored
}
