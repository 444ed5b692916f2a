package job

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusClosed   = "closed"
)

// Posting is an employer's open role. Postings are soft-retired via
// Status; they are never hard-deleted while matches reference them.
type Posting struct {
	ID                     uuid.UUID
	EmployerID             *uuid.UUID
	Title                  string
	Description            *string
	RequiredQualifications *string
	RequiredSkillsRaw      *string // serialized list, parsed tolerantly
	PreferredSkillsRaw     *string
	City                   string
	State                  string
	SalaryMin              *int
	SalaryMax              *int
	ExperienceRequired     int
	MinimumDiplomaScore    *float64
	Status                 string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (p Posting) IsActive() bool {
	return p.Status == StatusActive
}

// HasLocation reports whether the posting carries the location fields
// scoring depends on. A posting without them is rejected before any
// candidate is scored.
func (p Posting) HasLocation() bool {
	return p.City != "" && p.State != ""
}
