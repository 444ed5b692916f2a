package match

import (
	"time"

	"github.com/google/uuid"
)

// Breakdown carries the five dimension scores behind an aggregate
// match score, each in [0,1].
type Breakdown struct {
	Skill         float64
	Location      float64
	Salary        float64
	Experience    float64
	Qualification float64
}

// Match is a scored, explained (posting, candidate) pairing. At most
// one exists per pair; regeneration updates in place.
type Match struct {
	ID           uuid.UUID
	JobPostingID uuid.UUID
	CandidateID  uuid.UUID
	Score        float64
	Breakdown    Breakdown
	Reasons      []string
	CreatedAt    time.Time
}
