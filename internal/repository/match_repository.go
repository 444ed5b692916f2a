package repository

import (
	"context"
	"encoding/json"
	"time"

	"solar-match/internal/database"
	"solar-match/internal/domain/match"
	"solar-match/internal/domain/matching"

	"github.com/google/uuid"
)

type MatchRepository interface {
	// UpsertBatch persists scored pairs for one posting. The
	// (job_posting_id, job_seeker_id) pair is unique; re-running
	// matching updates scores in place instead of duplicating rows.
	UpsertBatch(ctx context.Context, jobPostingID uuid.UUID, scored []matching.Scored) error
	ListByJob(ctx context.Context, jobPostingID uuid.UUID) ([]match.Match, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) UpsertBatch(ctx context.Context, jobPostingID uuid.UUID, scored []matching.Scored) error {
	if jobPostingID == uuid.Nil || len(scored) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	for _, s := range scored {
		if s.CandidateID == uuid.Nil {
			continue
		}

		reasons, err := json.Marshal(s.Reasons)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO job_matches (
				id, job_posting_id, job_seeker_id, match_score, match_reasons,
				skill_score, location_score, salary_score, experience_score, qualification_score,
				created_at
			 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			 ON CONFLICT (job_posting_id, job_seeker_id) DO UPDATE SET
				match_score = EXCLUDED.match_score,
				match_reasons = EXCLUDED.match_reasons,
				skill_score = EXCLUDED.skill_score,
				location_score = EXCLUDED.location_score,
				salary_score = EXCLUDED.salary_score,
				experience_score = EXCLUDED.experience_score,
				qualification_score = EXCLUDED.qualification_score`,
			uuid.New(), jobPostingID, s.CandidateID, s.Score, string(reasons),
			s.Breakdown.Skill, s.Breakdown.Location, s.Breakdown.Salary,
			s.Breakdown.Experience, s.Breakdown.Qualification,
			now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresMatchRepository) ListByJob(ctx context.Context, jobPostingID uuid.UUID) ([]match.Match, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_posting_id, job_seeker_id, match_score, COALESCE(match_reasons, '[]'),
			skill_score, location_score, salary_score, experience_score, qualification_score,
			created_at
		 FROM job_matches
		 WHERE job_posting_id = $1
		 ORDER BY match_score DESC, created_at`,
		jobPostingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		var m match.Match
		var reasonsRaw string
		err := rows.Scan(
			&m.ID, &m.JobPostingID, &m.CandidateID, &m.Score, &reasonsRaw,
			&m.Breakdown.Skill, &m.Breakdown.Location, &m.Breakdown.Salary,
			&m.Breakdown.Experience, &m.Breakdown.Qualification,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(reasonsRaw), &m.Reasons); err != nil {
			// Reasons are advisory; a bad row should not sink the list.
			m.Reasons = nil
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
