package matching

import (
	"strings"
	"testing"

	"solar-match/internal/domain/candidate"
	"solar-match/internal/domain/job"
	"solar-match/internal/domain/match"

	"github.com/google/uuid"
)

func TestAggregate_Weighting(t *testing.T) {
	b := match.Breakdown{Skill: 1, Location: 1, Salary: 1, Experience: 1, Qualification: 1}

	got := Aggregate(b, false, DefaultWeights())
	if !almostEqual(got, 1.0) {
		t.Fatalf("expected 1.0 for perfect breakdown, got %v", got)
	}

	b = match.Breakdown{Skill: 0.5}
	got = Aggregate(b, false, DefaultWeights())
	if !almostEqual(got, 0.175) {
		t.Fatalf("expected 0.175, got %v", got)
	}
}

func TestAggregate_PassBonusClamped(t *testing.T) {
	b := match.Breakdown{Skill: 1, Location: 1, Salary: 1, Experience: 1, Qualification: 1}

	// The flat bonus would push past 1.0; the clamp holds.
	got := Aggregate(b, true, DefaultWeights())
	if got != 1.0 {
		t.Fatalf("expected clamp at 1.0, got %v", got)
	}

	// Below saturation, the bonus is additive.
	b = match.Breakdown{Skill: 0.5, Location: 0.5, Salary: 0.5, Experience: 0.5, Qualification: 0.5}
	without := Aggregate(b, false, DefaultWeights())
	with := Aggregate(b, true, DefaultWeights())
	if !almostEqual(with-without, 0.10) {
		t.Fatalf("expected +0.10 bonus, got delta %v", with-without)
	}
}

func TestReasons_Thresholds(t *testing.T) {
	b := match.Breakdown{Skill: 0.9, Location: 1.0, Salary: 0.85}
	got := Reasons(b, 90, true)

	want := []string{
		"Strong skills match (90.0%)",
		"Same city location",
		"Excellent salary compatibility",
		"High diploma score",
		"Previously placed successfully",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d reasons, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reason %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestReasons_SameState(t *testing.T) {
	got := Reasons(match.Breakdown{Location: 0.7}, 0, false)
	if len(got) != 1 || got[0] != "Same state location" {
		t.Fatalf("expected only same-state reason, got %v", got)
	}
}

func TestReasons_NoneTriggered(t *testing.T) {
	got := Reasons(match.Breakdown{Skill: 0.7, Location: 0.3, Salary: 0.8}, 84, false)
	if len(got) != 0 {
		t.Fatalf("expected no reasons at the thresholds, got %v", got)
	}
}

func TestScore_FullPair(t *testing.T) {
	skills := `["Solar Panel Installation","Electrical Wiring","Safety Protocols"]`
	pass := candidate.TrainingPass
	diploma := 88.0
	years := 3

	c := candidate.Candidate{
		ID:                 uuid.New(),
		City:               "Coimbatore",
		State:              "Tamil Nadu",
		SkillsRaw:          &skills,
		DiplomaScore:       &diploma,
		ExperienceYears:    &years,
		TrainingResult:     &pass,
		PreferredSalaryMin: ptrInt(18000),
		PreferredSalaryMax: ptrInt(30000),
		AvailabilityStatus: candidate.AvailabilityAvailable,
	}

	required := `["solar panel installation","electrical"]`
	preferred := `["safety"]`
	minDiploma := 60.0
	p := job.Posting{
		ID:                  uuid.New(),
		Title:               "Solar Technician",
		City:                "Coimbatore",
		State:               "Tamil Nadu",
		RequiredSkillsRaw:   &required,
		PreferredSkillsRaw:  &preferred,
		SalaryMin:           ptrInt(20000),
		SalaryMax:           ptrInt(35000),
		ExperienceRequired:  2,
		MinimumDiplomaScore: &minDiploma,
		Status:              job.StatusActive,
	}

	s := Score(c, p, DefaultWeights())

	if s.CandidateID != c.ID {
		t.Fatalf("candidate id mismatch")
	}
	if s.Score < 0 || s.Score > 1 {
		t.Fatalf("aggregate score out of [0,1]: %v", s.Score)
	}
	if s.Breakdown.Skill != 1.0 {
		t.Fatalf("expected full skill coverage, got %v", s.Breakdown.Skill)
	}
	if s.Breakdown.Location != 1.0 {
		t.Fatalf("expected same-city location score, got %v", s.Breakdown.Location)
	}
	if s.Breakdown.Experience != 1.0 {
		t.Fatalf("expected full experience score, got %v", s.Breakdown.Experience)
	}
	if !almostEqual(s.Breakdown.Qualification, 0.88) {
		t.Fatalf("expected qualification 0.88, got %v", s.Breakdown.Qualification)
	}

	joined := strings.Join(s.Reasons, "|")
	if !strings.Contains(joined, "Same city location") {
		t.Fatalf("expected same-city reason, got %v", s.Reasons)
	}
	if !strings.Contains(joined, "High diploma score") {
		t.Fatalf("expected high-diploma reason, got %v", s.Reasons)
	}
}

func TestScore_MalformedSkillsDoesNotFail(t *testing.T) {
	bad := `{{not a list`
	c := candidate.Candidate{ID: uuid.New(), City: "Chennai", State: "Tamil Nadu", SkillsRaw: &bad}
	p := job.Posting{ID: uuid.New(), City: "Chennai", State: "Tamil Nadu", Status: job.StatusActive}

	s := Score(c, p, DefaultWeights())
	if s.Breakdown.Skill != 0 {
		t.Fatalf("expected skill score 0 for unparseable skills, got %v", s.Breakdown.Skill)
	}
	if s.Score < 0 || s.Score > 1 {
		t.Fatalf("score out of range: %v", s.Score)
	}
}
