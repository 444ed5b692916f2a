package repository

import (
	"context"
	"errors"

	"solar-match/internal/database"
	"solar-match/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobPostingNotFound = errors.New("job posting not found")
)

type JobPostingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	ListActive(ctx context.Context, limit, offset int) ([]job.Posting, error)
}

type PostgresJobPostingRepository struct {
	db database.DB
}

func NewPostgresJobPostingRepository(db database.DB) *PostgresJobPostingRepository {
	return &PostgresJobPostingRepository{db: db}
}

const postingColumns = `id, employer_id, COALESCE(title, ''), description,
	required_qualifications, required_skills, preferred_skills,
	COALESCE(city, ''), COALESCE(state, ''),
	salary_min, salary_max,
	COALESCE(experience_required, 0), minimum_diploma_score,
	COALESCE(status, 'active'), created_at, updated_at`

func (r *PostgresJobPostingRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+postingColumns+` FROM job_postings WHERE id = $1`,
		id,
	)

	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobPostingNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobPostingRepository) ListActive(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+postingColumns+` FROM job_postings
		 WHERE status = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		job.StatusActive, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPosting(row database.Row) (job.Posting, error) {
	var p job.Posting
	err := row.Scan(
		&p.ID, &p.EmployerID, &p.Title, &p.Description,
		&p.RequiredQualifications, &p.RequiredSkillsRaw, &p.PreferredSkillsRaw,
		&p.City, &p.State,
		&p.SalaryMin, &p.SalaryMax,
		&p.ExperienceRequired, &p.MinimumDiplomaScore,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return job.Posting{}, err
	}
	return p, nil
}
