package matching

import (
	"fmt"

	"solar-match/internal/domain/candidate"
	"solar-match/internal/domain/job"
	"solar-match/internal/domain/match"

	"github.com/google/uuid"
)

// Weights combine the five dimension scores into one aggregate score.
// PassBonus is added flat for candidates who passed training and is
// not normalized away; the final score is clamped to 1.0, so the bonus
// can saturate top candidates. Tunable, not a law.
type Weights struct {
	Skills        float64
	Location      float64
	Salary        float64
	Experience    float64
	Qualification float64
	PassBonus     float64
}

func DefaultWeights() Weights {
	return Weights{
		Skills:        0.35,
		Location:      0.20,
		Salary:        0.15,
		Experience:    0.15,
		Qualification: 0.15,
		PassBonus:     0.10,
	}
}

// Scored is one candidate's result against one posting.
type Scored struct {
	CandidateID uuid.UUID
	Score       float64
	Breakdown   match.Breakdown
	Reasons     []string
}

// Aggregate computes the weighted sum of the dimension scores plus the
// pass-training bonus, clamped to [0,1].
func Aggregate(b match.Breakdown, passedTraining bool, w Weights) float64 {
	total := b.Skill*w.Skills +
		b.Location*w.Location +
		b.Salary*w.Salary +
		b.Experience*w.Experience +
		b.Qualification*w.Qualification

	if passedTraining {
		total += w.PassBonus
	}

	if total > 1 {
		return 1
	}
	if total < 0 {
		return 0
	}
	return total
}

// Reasons produces the ordered, human-readable explanation list for a
// breakdown. Advisory text for a reviewer; never fed back into
// scoring. rawDiploma is the unnormalized 0-100 score.
func Reasons(b match.Breakdown, rawDiploma float64, placed bool) []string {
	reasons := make([]string, 0, 6)

	if b.Skill > 0.7 {
		reasons = append(reasons, fmt.Sprintf("Strong skills match (%.1f%%)", b.Skill*100))
	}
	if b.Location == 1.0 {
		reasons = append(reasons, "Same city location")
	} else if b.Location > 0.5 {
		reasons = append(reasons, "Same state location")
	}
	if b.Salary > 0.8 {
		reasons = append(reasons, "Excellent salary compatibility")
	}
	if rawDiploma >= 85 {
		reasons = append(reasons, "High diploma score")
	}
	if placed {
		reasons = append(reasons, "Previously placed successfully")
	}

	return reasons
}

// Score runs the full engine for one (candidate, posting) pair:
// feature extraction, the four dimension scorers, aggregation, and
// reason generation. Pure and deterministic.
func Score(c candidate.Candidate, p job.Posting, w Weights) Scored {
	f := BuildFeatures(c)

	required, _ := ParseSkills(p.RequiredSkillsRaw)
	preferred, _ := ParseSkills(p.PreferredSkillsRaw)

	minDiploma := DefaultMinimumDiplomaScore
	if p.MinimumDiplomaScore != nil {
		minDiploma = *p.MinimumDiplomaScore
	}

	b := match.Breakdown{
		Skill:         SkillScore(f.Skills, required, preferred),
		Location:      LocationScore(f.City, f.State, p.City, p.State),
		Salary:        SalaryScore(c.PreferredSalaryMin, c.PreferredSalaryMax, p.SalaryMin, p.SalaryMax),
		Experience:    ExperienceScore(f.ExperienceYears, p.ExperienceRequired),
		Qualification: QualificationScore(f.DiplomaScore, minDiploma),
	}

	return Scored{
		CandidateID: c.ID,
		Score:       Aggregate(b, f.PassedTraining == 1, w),
		Breakdown:   b,
		Reasons:     Reasons(b, f.DiplomaScore, f.IsPlaced == 1),
	}
}
