package app

import (
	"context"
	"time"

	"solar-match/internal/config"
	"solar-match/internal/database"
	dbpostgres "solar-match/internal/database/postgres"
	"solar-match/internal/infrastructure/cache"
	"solar-match/internal/ml"
	"solar-match/internal/repository"
	"solar-match/internal/usecase"
	"solar-match/pkg/metrics"

	"go.uber.org/zap"
)

// Container wires configuration, infrastructure, repositories, and
// usecases together once, at startup. Commands pull what they need
// from it instead of constructing their own stacks.
type Container struct {
	Config   config.Config
	Logger   *zap.Logger
	DB       database.DB
	Cache    *cache.Redis
	Recorder *metrics.Recorder

	Candidates repository.CandidateRepository
	Jobs       repository.JobPostingRepository
	Matches    repository.MatchRepository

	Matcher  *usecase.Matcher
	Trainer  *usecase.Trainer
	Insights *usecase.Insights
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	matchCache := cache.NewRedis(cfg.Redis, logger)

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder(nil)
	}

	candidates := repository.NewPostgresCandidateRepository(db)
	jobs := repository.NewPostgresJobPostingRepository(db)
	matches := repository.NewPostgresMatchRepository(db)

	matcher := usecase.NewMatcher(jobs, candidates, matches, logger,
		usecase.WithScoringWorkers(cfg.Engine.ScoringWorkers),
		usecase.WithMatchCache(matchCache, cfg.Redis.TTL),
		usecase.WithRecorder(recorder),
	)

	trainer := usecase.NewTrainer(candidates, logger,
		ml.TrainOptions{
			Neighbors: cfg.Engine.Neighbors,
			Seed:      cfg.Engine.TrainingSeed,
		},
		usecase.WithModelDir(cfg.Engine.ModelDir),
		usecase.WithTrainerCache(matchCache),
		usecase.WithTrainerRecorder(recorder),
	)
	if err := trainer.LoadFromDisk(); err != nil {
		logger.Warn("could not restore model bundle", zap.Error(err))
	}

	insights := usecase.NewInsights(candidates, trainer, logger)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Cache:      matchCache,
		Recorder:   recorder,
		Candidates: candidates,
		Jobs:       jobs,
		Matches:    matches,
		Matcher:    matcher,
		Trainer:    trainer,
		Insights:   insights,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
