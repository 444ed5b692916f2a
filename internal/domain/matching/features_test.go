package matching

import (
	"testing"

	"solar-match/internal/domain/candidate"

	"github.com/google/uuid"
)

func TestBuildFeatures_Defaults(t *testing.T) {
	c := candidate.Candidate{
		ID:    uuid.New(),
		City:  "Coimbatore",
		State: "Tamil Nadu",
	}

	f := BuildFeatures(c)

	if f.DiplomaScore != DefaultDiplomaScore {
		t.Fatalf("expected diploma default %v, got %v", DefaultDiplomaScore, f.DiplomaScore)
	}
	if f.PreferredSalaryMin != DefaultSalaryMin || f.PreferredSalaryMax != DefaultSalaryMax {
		t.Fatalf("expected salary defaults, got %d/%d", f.PreferredSalaryMin, f.PreferredSalaryMax)
	}
	if f.SkillsCount != 0 {
		t.Fatalf("expected empty skill set, got %d", f.SkillsCount)
	}
	if f.SalaryRange != DefaultSalaryMax-DefaultSalaryMin {
		t.Fatalf("unexpected salary range %d", f.SalaryRange)
	}

	fallbackFields := map[string]bool{}
	for _, fb := range f.Fallbacks {
		fallbackFields[fb.Field] = true
	}
	for _, want := range []string{"diploma_score", "preferred_salary_min", "preferred_salary_max"} {
		if !fallbackFields[want] {
			t.Fatalf("expected fallback recorded for %s, got %v", want, f.Fallbacks)
		}
	}
}

func TestBuildFeatures_SkillFlags(t *testing.T) {
	raw := `["Solar Panel Installation","Electrical Wiring","Safety Protocols"]`
	c := candidate.Candidate{ID: uuid.New(), SkillsRaw: &raw}

	f := BuildFeatures(c)

	if f.SkillsCount != 3 {
		t.Fatalf("expected 3 skills, got %d", f.SkillsCount)
	}
	if f.SkillFlags["has_solar_installation"] != 1 {
		t.Fatalf("expected has_solar_installation=1")
	}
	if f.SkillFlags["has_electrical"] != 1 {
		t.Fatalf("expected has_electrical=1")
	}
	if f.SkillFlags["has_safety"] != 1 {
		t.Fatalf("expected has_safety=1")
	}
	if f.SkillFlags["has_project_mgmt"] != 0 {
		t.Fatalf("expected has_project_mgmt=0")
	}
}

func TestBuildFeatures_MalformedSkills(t *testing.T) {
	raw := `not json at all`
	c := candidate.Candidate{ID: uuid.New(), SkillsRaw: &raw}

	f := BuildFeatures(c)

	if f.SkillsCount != 0 {
		t.Fatalf("expected empty skill set for malformed input, got %d", f.SkillsCount)
	}
	found := false
	for _, fb := range f.Fallbacks {
		if fb.Field == "skills" && fb.Reason == "unparseable" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unparseable skills fallback recorded, got %v", f.Fallbacks)
	}
}

func TestBuildFeatures_DiplomaClamped(t *testing.T) {
	over := 130.0
	c := candidate.Candidate{ID: uuid.New(), DiplomaScore: &over}
	if f := BuildFeatures(c); f.DiplomaScore != 100 {
		t.Fatalf("expected clamp to 100, got %v", f.DiplomaScore)
	}

	under := -4.0
	c = candidate.Candidate{ID: uuid.New(), DiplomaScore: &under}
	if f := BuildFeatures(c); f.DiplomaScore != 0 {
		t.Fatalf("expected clamp to 0, got %v", f.DiplomaScore)
	}
}

func TestBuildFeatures_DerivedBinaries(t *testing.T) {
	pass := candidate.TrainingPass
	placed := candidate.PlacementPlaced
	c := candidate.Candidate{
		ID:              uuid.New(),
		TrainingResult:  &pass,
		PlacementStatus: &placed,
	}

	f := BuildFeatures(c)
	if f.PassedTraining != 1 {
		t.Fatalf("expected passed_training=1")
	}
	if f.IsPlaced != 1 {
		t.Fatalf("expected is_placed=1")
	}
	if f.TrainingResult != candidate.TrainingPass {
		t.Fatalf("expected categorical training result preserved, got %q", f.TrainingResult)
	}
}

func TestBuildFeatures_MissingCategoricals(t *testing.T) {
	f := BuildFeatures(candidate.Candidate{ID: uuid.New()})
	if f.Category != "Unknown" || f.Gender != "Unknown" || f.PlacementStatus != "Unknown" {
		t.Fatalf("expected Unknown for missing categoricals, got %q %q %q", f.Category, f.Gender, f.PlacementStatus)
	}
}
