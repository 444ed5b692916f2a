package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"solar-match/internal/domain/matching"
	"solar-match/internal/ml"
	"solar-match/internal/repository"
	"solar-match/pkg/metrics"

	"go.uber.org/zap"
)

// Trainer owns the model lifecycle: it trains from the full candidate
// pool, publishes the resulting bundle atomically, and guarantees at
// most one in-flight training run. Encoders are mutated during fit, so
// a second concurrent request is rejected, never interleaved.
type Trainer struct {
	candidates repository.CandidateRepository
	cache      MatchCache
	logger     *zap.Logger
	recorder   *metrics.Recorder

	opts     ml.TrainOptions
	modelDir string

	training atomic.Bool
	current  atomic.Pointer[ml.Model]
}

type TrainerOption func(*Trainer)

func WithTrainerCache(c MatchCache) TrainerOption {
	return func(t *Trainer) { t.cache = c }
}

func WithTrainerRecorder(r *metrics.Recorder) TrainerOption {
	return func(t *Trainer) { t.recorder = r }
}

func WithModelDir(dir string) TrainerOption {
	return func(t *Trainer) { t.modelDir = dir }
}

func NewTrainer(candidates repository.CandidateRepository, logger *zap.Logger, opts ml.TrainOptions, topts ...TrainerOption) *Trainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Trainer{
		candidates: candidates,
		logger:     logger,
		opts:       opts,
	}
	for _, o := range topts {
		o(t)
	}
	return t
}

// IsTrained reports whether a model bundle is available. Callers check
// this instead of retraining on every request.
func (t *Trainer) IsTrained() bool {
	return t.current.Load() != nil
}

// ModelInfo summarizes the published bundle for status reporting.
type ModelInfo struct {
	TrainedAt      time.Time
	SampleCount    int
	FeatureColumns int
	Neighbors      int
	Seed           int64
}

// Info describes the current bundle. Unlike the insight queries it
// never trains; with no bundle published or restored from disk it
// returns ErrModelNotTrained.
func (t *Trainer) Info() (ModelInfo, error) {
	m := t.current.Load()
	if m == nil {
		return ModelInfo{}, ErrModelNotTrained
	}
	return ModelInfo{
		TrainedAt:      m.TrainedAt,
		SampleCount:    m.SampleCount,
		FeatureColumns: len(m.FeatureColumns),
		Neighbors:      m.Neighbors,
		Seed:           m.Seed,
	}, nil
}

// Model returns the current bundle, or nil before the first training.
func (t *Trainer) Model() *ml.Model {
	return t.current.Load()
}

// Train fits a fresh bundle from the full candidate pool and publishes
// it. Returns ErrTrainingInProgress when another run is active.
func (t *Trainer) Train(ctx context.Context) (*ml.Model, error) {
	if !t.training.CompareAndSwap(false, true) {
		return nil, ErrTrainingInProgress
	}
	defer t.training.Store(false)

	start := time.Now()

	pool, err := t.candidates.ListAll(ctx)
	if err != nil {
		t.logger.Error("load training pool failed", zap.Error(err))
		t.recorder.ObserveTraining("error", 0, time.Since(start))
		return nil, ErrInternal
	}

	features := make([]matching.Features, 0, len(pool))
	fallbacks := 0
	for _, c := range pool {
		f := matching.BuildFeatures(c)
		fallbacks += len(f.Fallbacks)
		features = append(features, f)
	}

	model, err := ml.Train(features, t.opts)
	if err != nil {
		t.recorder.ObserveTraining("error", 0, time.Since(start))
		return nil, err
	}

	if t.modelDir != "" {
		if err := model.Save(t.modelDir); err != nil {
			// The in-memory bundle is still valid; persistence is for
			// reload across restarts.
			t.logger.Error("persist model failed", zap.String("dir", t.modelDir), zap.Error(err))
		}
	}

	t.current.Store(model)

	if t.cache != nil {
		if err := t.cache.DeleteByPattern(ctx, "matches:*"); err != nil {
			t.logger.Debug("cache invalidation failed", zap.Error(err))
		}
	}

	t.logger.Info("model trained",
		zap.Int("samples", model.SampleCount),
		zap.Int("feature_columns", len(model.FeatureColumns)),
		zap.Int("field_fallbacks", fallbacks),
		zap.Duration("elapsed", time.Since(start)),
	)
	t.recorder.ObserveTraining("ok", model.SampleCount, time.Since(start))

	return model, nil
}

// LoadFromDisk restores a previously persisted bundle so a restart
// does not force an immediate retrain. Missing bundle is not an error.
func (t *Trainer) LoadFromDisk() error {
	if t.modelDir == "" {
		return nil
	}
	model, err := ml.Load(t.modelDir)
	if err != nil {
		if err == ml.ErrNotTrained {
			return nil
		}
		return err
	}
	t.current.Store(model)
	t.logger.Info("model loaded from disk",
		zap.String("dir", t.modelDir),
		zap.Time("trained_at", model.TrainedAt),
		zap.Int("samples", model.SampleCount),
	)
	return nil
}

// EnsureTrained returns the current model, training once if none
// exists yet. An untrained model is a recoverable condition, not a
// fatal error.
func (t *Trainer) EnsureTrained(ctx context.Context) (*ml.Model, error) {
	if m := t.current.Load(); m != nil {
		return m, nil
	}
	m, err := t.Train(ctx)
	if err != nil {
		return nil, err
	}
	return m, nil
}
