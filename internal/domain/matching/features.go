package matching

import (
	"encoding/json"
	"strings"

	"solar-match/internal/domain/candidate"

	"github.com/google/uuid"
)

const (
	DefaultDiplomaScore = 75.0
	DefaultSalaryMin    = 20000
	DefaultSalaryMax    = 35000

	// Postings without an explicit diploma threshold fall back to this.
	DefaultMinimumDiplomaScore = 60.0
)

// Skill vocabulary for the binary presence flags. Matching is a
// case-insensitive substring test against each candidate skill.
var skillFlagTerms = map[string]string{
	"has_solar_installation": "solar panel installation",
	"has_maintenance":        "maintenance",
	"has_electrical":         "electrical",
	"has_safety":             "safety",
	"has_technical_doc":      "technical documentation",
	"has_project_mgmt":       "project management",
}

// SkillFlagColumns is the fixed, ordered column list for the flag part
// of a feature vector.
var SkillFlagColumns = []string{
	"has_solar_installation",
	"has_maintenance",
	"has_electrical",
	"has_safety",
	"has_technical_doc",
	"has_project_mgmt",
}

// FieldFallback records one field that could not be used as-is and was
// replaced by a documented default, so data-quality issues stay
// countable instead of being silently swallowed.
type FieldFallback struct {
	Field  string
	Reason string
}

// Features is the fixed-shape record the scorers and the learned model
// consume. Every field is populated; missing inputs are defaulted and
// recorded in Fallbacks.
type Features struct {
	CandidateID uuid.UUID

	DiplomaScore       float64
	ExperienceYears    int
	PreferredSalaryMin int
	PreferredSalaryMax int
	SkillsCount        int
	SalaryRange        int

	Skills     []string
	SkillFlags map[string]int

	IsPlaced       int
	PassedTraining int

	// Categorical values, encoded downstream by the learned model.
	State           string
	City            string
	Category        string
	Gender          string
	TrainingResult  string
	PlacementStatus string

	Fallbacks []FieldFallback
}

// CategoricalColumns is the fixed set of categorical feature names, in
// encoding order.
var CategoricalColumns = []string{"state", "city", "category", "gender", "training_result", "placement_status"}

func (f Features) Categorical(name string) string {
	switch name {
	case "state":
		return f.State
	case "city":
		return f.City
	case "category":
		return f.Category
	case "gender":
		return f.Gender
	case "training_result":
		return f.TrainingResult
	case "placement_status":
		return f.PlacementStatus
	}
	return ""
}

// BuildFeatures turns a raw candidate record into a Features value.
// It never fails: malformed or missing fields fall back to defaults.
func BuildFeatures(c candidate.Candidate) Features {
	f := Features{
		CandidateID: c.ID,
		SkillFlags:  make(map[string]int, len(skillFlagTerms)),
	}

	if c.DiplomaScore != nil {
		f.DiplomaScore = clampScore(*c.DiplomaScore)
	} else {
		f.DiplomaScore = DefaultDiplomaScore
		f.Fallbacks = append(f.Fallbacks, FieldFallback{Field: "diploma_score", Reason: "missing"})
	}

	if c.ExperienceYears != nil && *c.ExperienceYears >= 0 {
		f.ExperienceYears = *c.ExperienceYears
	} else if c.ExperienceYears != nil {
		f.Fallbacks = append(f.Fallbacks, FieldFallback{Field: "experience_years", Reason: "negative"})
	}

	if c.PreferredSalaryMin != nil {
		f.PreferredSalaryMin = *c.PreferredSalaryMin
	} else {
		f.PreferredSalaryMin = DefaultSalaryMin
		f.Fallbacks = append(f.Fallbacks, FieldFallback{Field: "preferred_salary_min", Reason: "missing"})
	}
	if c.PreferredSalaryMax != nil {
		f.PreferredSalaryMax = *c.PreferredSalaryMax
	} else {
		f.PreferredSalaryMax = DefaultSalaryMax
		f.Fallbacks = append(f.Fallbacks, FieldFallback{Field: "preferred_salary_max", Reason: "missing"})
	}
	f.SalaryRange = f.PreferredSalaryMax - f.PreferredSalaryMin

	skills, ok := ParseSkills(c.SkillsRaw)
	if !ok {
		f.Fallbacks = append(f.Fallbacks, FieldFallback{Field: "skills", Reason: "unparseable"})
	}
	f.Skills = skills
	f.SkillsCount = len(skills)
	for col, term := range skillFlagTerms {
		f.SkillFlags[col] = 0
		for _, s := range skills {
			if strings.Contains(strings.ToLower(s), term) {
				f.SkillFlags[col] = 1
				break
			}
		}
	}

	if c.WasPlaced() {
		f.IsPlaced = 1
	}
	if c.PassedTraining() {
		f.PassedTraining = 1
	}

	f.State = c.State
	f.City = c.City
	f.Category = stringOrUnknown(c.Category)
	f.Gender = stringOrUnknown(c.Gender)
	f.TrainingResult = stringOrUnknown(c.TrainingResult)
	f.PlacementStatus = stringOrUnknown(c.PlacementStatus)

	return f
}

// ParseSkills decodes a serialized skill list. Upstream data is known
// to be inconsistent, so any decode failure yields an empty set with
// ok=false rather than an error.
func ParseSkills(raw *string) ([]string, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return []string{}, true
	}

	var skills []string
	if err := json.Unmarshal([]byte(*raw), &skills); err != nil {
		return []string{}, false
	}

	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out, true
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func stringOrUnknown(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return candidate.PlacementUnknown
	}
	return strings.TrimSpace(*v)
}
