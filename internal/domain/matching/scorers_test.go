package matching

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSkillScore_EmptyCandidateSkills(t *testing.T) {
	got := SkillScore(nil, []string{"solar panel"}, nil)
	if got != 0 {
		t.Fatalf("expected 0 for empty candidate skills, got %v", got)
	}
}

func TestSkillScore_SubstringSymmetry(t *testing.T) {
	// Candidate skill contains the required term.
	a := SkillScore([]string{"Solar Panel Installation"}, []string{"solar panel"}, nil)
	// Required term contains the candidate skill.
	b := SkillScore([]string{"solar panel"}, []string{"Solar Panel Installation"}, nil)

	if !almostEqual(a, 0.7) {
		t.Fatalf("expected 0.7 for forward substring match, got %v", a)
	}
	if !almostEqual(b, 0.7) {
		t.Fatalf("expected 0.7 for reverse substring match, got %v", b)
	}
}

func TestSkillScore_RequiredAndPreferred(t *testing.T) {
	cand := []string{"Solar Panel Installation", "Electrical Wiring"}

	got := SkillScore(cand, []string{"solar panel installation"}, []string{"electrical"})
	if !almostEqual(got, 1.0) {
		t.Fatalf("expected 1.0 for full required+preferred coverage, got %v", got)
	}

	got = SkillScore(cand, []string{"solar panel installation", "plumbing"}, nil)
	if !almostEqual(got, 0.35) {
		t.Fatalf("expected 0.35 for half required coverage, got %v", got)
	}
}

func TestSkillScore_NoRequiredSkills(t *testing.T) {
	// Required term is 0 by convention; score comes from preferred only.
	got := SkillScore([]string{"Safety Protocols"}, nil, []string{"safety"})
	if !almostEqual(got, 0.3) {
		t.Fatalf("expected 0.3 from preferred coverage alone, got %v", got)
	}

	got = SkillScore([]string{"Safety Protocols"}, nil, nil)
	if got != 0 {
		t.Fatalf("expected 0 with no required and no preferred skills, got %v", got)
	}
}

func TestLocationScore(t *testing.T) {
	if got := LocationScore("Coimbatore", "Tamil Nadu", "Coimbatore", "Tamil Nadu"); got != 1.0 {
		t.Fatalf("same city: expected 1.0, got %v", got)
	}
	if got := LocationScore("Coimbatore", "Tamil Nadu", "Chennai", "Tamil Nadu"); got != 0.7 {
		t.Fatalf("same state: expected 0.7, got %v", got)
	}
	if got := LocationScore("Coimbatore", "Tamil Nadu", "Kochi", "Kerala"); got != 0.3 {
		t.Fatalf("different state: expected 0.3, got %v", got)
	}
	if got := LocationScore("coimbatore", "tamil nadu", "COIMBATORE", "TAMIL NADU"); got != 1.0 {
		t.Fatalf("city compare should be case-insensitive, got %v", got)
	}
}

func TestSalaryScore_Overlap(t *testing.T) {
	// Overlap [20000,30000] width 10000, avg range width 13500.
	got := SalaryScore(ptrInt(18000), ptrInt(30000), ptrInt(20000), ptrInt(35000))
	want := 10000.0 / 13500.0
	if !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSalaryScore_NoOverlap(t *testing.T) {
	// Gap 15000, max 40000 -> 1 - 15000/40000 = 0.625.
	got := SalaryScore(ptrInt(10000), ptrInt(15000), ptrInt(30000), ptrInt(40000))
	if !almostEqual(got, 0.625) {
		t.Fatalf("expected 0.625, got %v", got)
	}
}

func TestSalaryScore_MissingBounds(t *testing.T) {
	if got := SalaryScore(nil, ptrInt(30000), ptrInt(20000), ptrInt(35000)); got != 0.5 {
		t.Fatalf("expected neutral 0.5 with missing bound, got %v", got)
	}
	if got := SalaryScore(ptrInt(18000), ptrInt(30000), nil, nil); got != 0.5 {
		t.Fatalf("expected neutral 0.5 with missing posting range, got %v", got)
	}
}

func TestSalaryScore_SinglePointRanges(t *testing.T) {
	if got := SalaryScore(ptrInt(25000), ptrInt(25000), ptrInt(25000), ptrInt(25000)); got != 1.0 {
		t.Fatalf("expected 1.0 for identical point ranges, got %v", got)
	}
}

func TestExperienceScore(t *testing.T) {
	if got := ExperienceScore(0, 0); got != 1.0 {
		t.Fatalf("no requirement: expected 1.0, got %v", got)
	}
	if got := ExperienceScore(3, 2); got != 1.0 {
		t.Fatalf("meets requirement: expected 1.0, got %v", got)
	}
	if got := ExperienceScore(0, 2); got != 0.3 {
		t.Fatalf("zero years vs required 2: expected floor 0.3, got %v", got)
	}
	if got := ExperienceScore(1, 2); got != 0.5 {
		t.Fatalf("partial credit: expected 0.5, got %v", got)
	}
}

func TestQualificationScore(t *testing.T) {
	if got := QualificationScore(80, 60); !almostEqual(got, 0.8) {
		t.Fatalf("meets minimum: expected 0.8, got %v", got)
	}
	if got := QualificationScore(45, 60); !almostEqual(got, 0.75) {
		t.Fatalf("below minimum: expected 0.75, got %v", got)
	}
	if got := QualificationScore(5, 60); got != 0.2 {
		t.Fatalf("far below minimum: expected floor 0.2, got %v", got)
	}
	if got := QualificationScore(70, 0); !almostEqual(got, 0.7) {
		t.Fatalf("zero minimum falls back to default threshold, got %v", got)
	}
}

func TestScorerBounds(t *testing.T) {
	cases := []struct {
		name string
		got  float64
	}{
		{"skill", SkillScore([]string{"a", "b", "c"}, []string{"a"}, []string{"b", "c"})},
		{"location", LocationScore("x", "y", "z", "w")},
		{"salary", SalaryScore(ptrInt(0), ptrInt(0), ptrInt(100000), ptrInt(100000))},
		{"experience", ExperienceScore(100, 1)},
		{"qualification", QualificationScore(100, 1)},
	}
	for _, c := range cases {
		if c.got < 0 || c.got > 1 {
			t.Fatalf("%s score out of [0,1]: %v", c.name, c.got)
		}
	}
}

func ptrInt(v int) *int { return &v }
