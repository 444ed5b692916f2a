package ml

import (
	"math"
	"testing"

	"solar-match/internal/domain/candidate"
	"solar-match/internal/domain/matching"

	"github.com/google/uuid"
)

func trainingPool(t *testing.T, n int) []matching.Features {
	t.Helper()

	states := []string{"Tamil Nadu", "Kerala", "Karnataka"}
	cities := []string{"Coimbatore", "Chennai", "Kochi", "Bangalore"}
	results := []string{candidate.TrainingPass, candidate.TrainingFail}
	placements := []string{candidate.PlacementPlaced, candidate.PlacementNotPlaced, candidate.PlacementUnknown}

	out := make([]matching.Features, 0, n)
	for i := 0; i < n; i++ {
		skills := `["Solar Panel Installation","Safety Protocols"]`
		if i%2 == 0 {
			skills = `["Electrical Wiring","Maintenance"]`
		}
		diploma := 60.0 + float64(i%40)
		years := i % 5
		salaryMin := 15000 + 1000*(i%10)
		salaryMax := salaryMin + 10000
		training := results[i%len(results)]
		placement := placements[i%len(placements)]

		c := candidate.Candidate{
			ID:                 deterministicUUID(i),
			City:               cities[i%len(cities)],
			State:              states[i%len(states)],
			SkillsRaw:          &skills,
			DiplomaScore:       &diploma,
			ExperienceYears:    &years,
			PreferredSalaryMin: &salaryMin,
			PreferredSalaryMax: &salaryMax,
			TrainingResult:     &training,
			PlacementStatus:    &placement,
		}
		out = append(out, matching.BuildFeatures(c))
	}
	return out
}

func deterministicUUID(i int) uuid.UUID {
	var b [16]byte
	b[0] = byte(i)
	b[1] = byte(i >> 8)
	b[6] = 0x40
	b[8] = 0x80
	id, _ := uuid.FromBytes(b[:])
	return id
}

func TestTrain_EmptyPool(t *testing.T) {
	if _, err := Train(nil, TrainOptions{}); err != ErrNoTrainingData {
		t.Fatalf("expected ErrNoTrainingData, got %v", err)
	}
}

func TestTrain_Deterministic(t *testing.T) {
	pool := trainingPool(t, 30)

	m1, err := Train(pool, TrainOptions{Neighbors: 5, Seed: 42})
	if err != nil {
		t.Fatalf("train 1: %v", err)
	}
	m2, err := Train(pool, TrainOptions{Neighbors: 5, Seed: 42})
	if err != nil {
		t.Fatalf("train 2: %v", err)
	}

	if m1.Classifier.Intercept != m2.Classifier.Intercept {
		t.Fatalf("intercepts differ: %v vs %v", m1.Classifier.Intercept, m2.Classifier.Intercept)
	}
	if len(m1.Classifier.Coef) != len(m2.Classifier.Coef) {
		t.Fatalf("coef length differs")
	}
	for i := range m1.Classifier.Coef {
		if m1.Classifier.Coef[i] != m2.Classifier.Coef[i] {
			t.Fatalf("coef %d differs: %v vs %v", i, m1.Classifier.Coef[i], m2.Classifier.Coef[i])
		}
	}
}

func TestModel_UnseenCategoricalDegradesGracefully(t *testing.T) {
	pool := trainingPool(t, 20)
	m, err := Train(pool, TrainOptions{Seed: 1})
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	stranger := pool[0]
	stranger.State = "Never Seen Before"
	stranger.City = "Atlantis"

	enc := m.Encoders["state"]
	if got := enc.Transform("Never Seen Before"); got != enc.UnknownCode() {
		t.Fatalf("expected unknown bucket %d, got %d", enc.UnknownCode(), got)
	}

	p := m.PlacementLikelihood(stranger)
	if p < 0 || p > 1 || math.IsNaN(p) {
		t.Fatalf("likelihood out of range for unseen categoricals: %v", p)
	}
}

func TestModel_PlacementLikelihoodBounds(t *testing.T) {
	pool := trainingPool(t, 25)
	m, err := Train(pool, TrainOptions{Seed: 7})
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	for _, f := range pool {
		p := m.PlacementLikelihood(f)
		if p < 0 || p > 1 || math.IsNaN(p) {
			t.Fatalf("likelihood out of [0,1]: %v", p)
		}
	}
}

func TestModel_SimilarCandidates(t *testing.T) {
	pool := trainingPool(t, 20)
	m, err := Train(pool, TrainOptions{Neighbors: 10, Seed: 3})
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	got, ok := m.SimilarToID(pool[0].CandidateID, 5)
	if !ok {
		t.Fatalf("expected candidate in index")
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 neighbors, got %d", len(got))
	}
	for i, n := range got {
		if n.CandidateID == pool[0].CandidateID {
			t.Fatalf("query candidate appeared in its own neighbors")
		}
		if i > 0 && got[i-1].Distance > n.Distance+1e-12 {
			t.Fatalf("neighbors not sorted by distance: %v then %v", got[i-1].Distance, n.Distance)
		}
	}

	if _, ok := m.SimilarToID(uuid.New(), 5); ok {
		t.Fatalf("expected unknown id to report ok=false")
	}
}

func TestModel_SelfIsNearest(t *testing.T) {
	pool := trainingPool(t, 15)
	m, err := Train(pool, TrainOptions{Seed: 11})
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	neighbors := m.Index.Query(m.Vector(pool[3]), 1)
	if len(neighbors) != 1 {
		t.Fatalf("expected one neighbor, got %d", len(neighbors))
	}
	if neighbors[0].CandidateID != pool[3].CandidateID {
		t.Fatalf("expected self as nearest, got %v", neighbors[0].CandidateID)
	}
	if neighbors[0].Distance > 1e-9 {
		t.Fatalf("expected near-zero self distance, got %v", neighbors[0].Distance)
	}
}

func TestModel_SaveLoadRoundtrip(t *testing.T) {
	pool := trainingPool(t, 20)
	m, err := Train(pool, TrainOptions{Neighbors: 4, Seed: 9})
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	dir := t.TempDir()
	if err := m.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.SampleCount != m.SampleCount {
		t.Fatalf("sample count mismatch: %d vs %d", loaded.SampleCount, m.SampleCount)
	}
	if len(loaded.FeatureColumns) != len(m.FeatureColumns) {
		t.Fatalf("feature columns mismatch")
	}

	// A loaded model must score identically to the one in memory.
	for _, f := range pool[:5] {
		a := m.PlacementLikelihood(f)
		b := loaded.PlacementLikelihood(f)
		if math.Abs(a-b) > 1e-12 {
			t.Fatalf("loaded model diverges: %v vs %v", a, b)
		}
	}
}

func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load(t.TempDir()); err != ErrNotTrained {
		t.Fatalf("expected ErrNotTrained, got %v", err)
	}
}

func TestScaler_ZeroVarianceColumn(t *testing.T) {
	s := FitScaler([][]float64{{1, 5}, {1, 7}, {1, 9}})
	out := s.Transform([]float64{1, 7})
	if out[0] != 0 {
		t.Fatalf("constant column should standardize to 0, got %v", out[0])
	}
	if out[1] != 0 {
		t.Fatalf("mean value should standardize to 0, got %v", out[1])
	}
}
