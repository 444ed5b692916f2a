package repository

import (
	"context"
	"errors"

	"solar-match/internal/database"
	"solar-match/internal/domain/candidate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
)

type CandidateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
	ListAvailable(ctx context.Context) ([]candidate.Candidate, error)
	ListAll(ctx context.Context) ([]candidate.Candidate, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `id, COALESCE(name, ''), phone_number, email,
	COALESCE(city, ''), COALESCE(state, ''), qualifications,
	diploma_score, experience_years, skills, category, gender,
	training_result, placement_status,
	preferred_salary_min, preferred_salary_max,
	COALESCE(availability_status, 'available'), created_at, updated_at`

func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM job_seekers WHERE id = $1`,
		id,
	)

	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, ErrCandidateNotFound
		}
		return candidate.Candidate{}, err
	}
	return c, nil
}

func (r *PostgresCandidateRepository) ListAvailable(ctx context.Context) ([]candidate.Candidate, error) {
	return r.list(ctx,
		`SELECT `+candidateColumns+` FROM job_seekers
		 WHERE availability_status = $1
		 ORDER BY created_at, id`,
		candidate.AvailabilityAvailable,
	)
}

func (r *PostgresCandidateRepository) ListAll(ctx context.Context) ([]candidate.Candidate, error) {
	return r.list(ctx,
		`SELECT `+candidateColumns+` FROM job_seekers ORDER BY created_at, id`,
	)
}

func (r *PostgresCandidateRepository) list(ctx context.Context, query string, args ...any) ([]candidate.Candidate, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCandidate(row database.Row) (candidate.Candidate, error) {
	var c candidate.Candidate
	err := row.Scan(
		&c.ID, &c.Name, &c.PhoneNumber, &c.Email,
		&c.City, &c.State, &c.Qualifications,
		&c.DiplomaScore, &c.ExperienceYears, &c.SkillsRaw, &c.Category, &c.Gender,
		&c.TrainingResult, &c.PlacementStatus,
		&c.PreferredSalaryMin, &c.PreferredSalaryMax,
		&c.AvailabilityStatus, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return candidate.Candidate{}, err
	}
	return c, nil
}
