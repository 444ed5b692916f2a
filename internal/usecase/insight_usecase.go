package usecase

import (
	"context"
	"errors"

	"solar-match/internal/domain/matching"
	"solar-match/internal/ml"
	"solar-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimilarCandidate is one hit from the nearest-neighbor index, with
// similarity = 1 - cosine distance for readability.
type SimilarCandidate struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Similarity  float64   `json:"similarity"`
}

// Insights answers candidate-level questions from the learned model:
// "who looks like this candidate" and "how likely is placement". Both
// are supplementary signals outside single-job matching and are never
// blended into the aggregate match score.
type Insights struct {
	candidates repository.CandidateRepository
	trainer    *Trainer
	logger     *zap.Logger
}

func NewInsights(candidates repository.CandidateRepository, trainer *Trainer, logger *zap.Logger) *Insights {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Insights{candidates: candidates, trainer: trainer, logger: logger}
}

// SimilarCandidates returns the k most similar candidates. Trains the
// model on first use if no bundle exists yet.
func (u *Insights) SimilarCandidates(ctx context.Context, candidateID uuid.UUID, k int) ([]SimilarCandidate, error) {
	if candidateID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if k <= 0 {
		k = ml.DefaultNeighbors
	}

	model, err := u.trainer.EnsureTrained(ctx)
	if err != nil {
		return nil, err
	}

	neighbors, ok := model.SimilarToID(candidateID, k)
	if !ok {
		// Candidate joined after the last training run; vectorize it
		// with the trained encoders instead of failing.
		c, err := u.candidates.FindByID(ctx, candidateID)
		if err != nil {
			if errors.Is(err, repository.ErrCandidateNotFound) {
				return nil, ErrCandidateNotFound
			}
			u.logger.Error("load candidate failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
			return nil, ErrInternal
		}
		neighbors = model.SimilarCandidates(matching.BuildFeatures(c), k)
	}

	out := make([]SimilarCandidate, 0, len(neighbors))
	for _, n := range neighbors {
		out = append(out, SimilarCandidate{
			CandidateID: n.CandidateID,
			Similarity:  1 - n.Distance,
		})
	}
	return out, nil
}

// PlacementLikelihood estimates how much a candidate resembles
// previously placed candidates, in [0,1].
func (u *Insights) PlacementLikelihood(ctx context.Context, candidateID uuid.UUID) (float64, error) {
	if candidateID == uuid.Nil {
		return 0, ErrInvalidInput
	}

	model, err := u.trainer.EnsureTrained(ctx)
	if err != nil {
		return 0, err
	}

	c, err := u.candidates.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return 0, ErrCandidateNotFound
		}
		u.logger.Error("load candidate failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return 0, ErrInternal
	}

	return model.PlacementLikelihood(matching.BuildFeatures(c)), nil
}
