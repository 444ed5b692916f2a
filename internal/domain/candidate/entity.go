package candidate

import (
	"time"

	"github.com/google/uuid"
)

const (
	AvailabilityAvailable   = "available"
	AvailabilityUnavailable = "unavailable"

	TrainingPass = "Pass"
	TrainingFail = "Fail"

	PlacementPlaced    = "Placed"
	PlacementNotPlaced = "Not Placed"
	PlacementUnknown   = "Unknown"
)

// Candidate is a solar-technician trainee seeking placement. Optional
// fields are pointers; the feature builder supplies documented
// fallbacks for anything missing.
type Candidate struct {
	ID                 uuid.UUID
	Name               string
	PhoneNumber        *string
	Email              *string
	City               string
	State              string
	Qualifications     *string
	DiplomaScore       *float64
	ExperienceYears    *int
	SkillsRaw          *string // serialized list, parsed tolerantly
	Category           *string
	Gender             *string
	TrainingResult     *string
	PlacementStatus    *string
	PreferredSalaryMin *int
	PreferredSalaryMax *int
	AvailabilityStatus string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (c Candidate) IsAvailable() bool {
	return c.AvailabilityStatus == AvailabilityAvailable
}

func (c Candidate) PassedTraining() bool {
	return c.TrainingResult != nil && *c.TrainingResult == TrainingPass
}

func (c Candidate) WasPlaced() bool {
	return c.PlacementStatus != nil && *c.PlacementStatus == PlacementPlaced
}
