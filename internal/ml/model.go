package ml

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"solar-match/internal/domain/matching"

	"github.com/google/uuid"
)

var (
	ErrNoTrainingData = errors.New("no candidates to train on")
	ErrNotTrained     = errors.New("model not trained")
)

const (
	modelFileName    = "model.gob"
	metadataFileName = "metadata.json"
)

// Model is the trained artifact bundle: categorical encoders, feature
// scaler, placement classifier, and the neighbor index, plus the
// feature-column list binding them together. Immutable once trained;
// callers pass it explicitly rather than sharing global state.
type Model struct {
	Encoders       map[string]*LabelEncoder
	Scaler         *StandardScaler
	Classifier     *LogisticRegression
	Index          *NeighborIndex
	FeatureColumns []string
	Neighbors      int
	Seed           int64
	TrainedAt      time.Time
	SampleCount    int
}

type TrainOptions struct {
	Neighbors int
	Seed      int64
}

// numericColumns is the fixed leading part of every feature vector;
// encoded categorical columns follow.
var numericColumns = []string{
	"diploma_score",
	"experience_years",
	"preferred_salary_min",
	"preferred_salary_max",
	"skills_count",
	"has_solar_installation",
	"has_maintenance",
	"has_electrical",
	"has_safety",
	"has_technical_doc",
	"has_project_mgmt",
	"salary_range",
	"is_placed",
	"passed_training",
}

// Train fits encoders, scaler, classifier, and neighbor index from the
// full candidate feature set. Deterministic for a given input order
// and seed.
func Train(features []matching.Features, opts TrainOptions) (*Model, error) {
	if len(features) == 0 {
		return nil, ErrNoTrainingData
	}

	neighbors := opts.Neighbors
	if neighbors <= 0 {
		neighbors = DefaultNeighbors
	}

	m := &Model{
		Encoders:    make(map[string]*LabelEncoder, len(matching.CategoricalColumns)),
		Neighbors:   neighbors,
		Seed:        opts.Seed,
		TrainedAt:   time.Now().UTC(),
		SampleCount: len(features),
	}

	for _, col := range matching.CategoricalColumns {
		values := make([]string, 0, len(features))
		for _, f := range features {
			values = append(values, f.Categorical(col))
		}
		m.Encoders[col] = FitLabelEncoder(values)
	}

	m.FeatureColumns = append([]string{}, numericColumns...)
	for _, col := range matching.CategoricalColumns {
		m.FeatureColumns = append(m.FeatureColumns, col+"_encoded")
	}

	raw := make([][]float64, 0, len(features))
	labels := make([]int, 0, len(features))
	ids := make([]uuid.UUID, 0, len(features))
	for _, f := range features {
		raw = append(raw, m.rawVector(f))
		labels = append(labels, f.IsPlaced)
		ids = append(ids, f.CandidateID)
	}

	m.Scaler = FitScaler(raw)
	scaled := m.Scaler.TransformAll(raw)

	m.Index = &NeighborIndex{IDs: ids, Vectors: scaled}
	m.Classifier = trainLogisticRegression(scaled, labels, opts.Seed)

	return m, nil
}

// Vector standardizes a candidate's features using the encoders and
// scaler fitted at training time. Unseen categorical values land in
// the encoders' unknown bucket.
func (m *Model) Vector(f matching.Features) []float64 {
	return m.Scaler.Transform(m.rawVector(f))
}

// PlacementLikelihood is the classifier's probability that the
// candidate resembles previously placed candidates. A supplementary,
// explainable signal; never blended into the aggregate match score.
func (m *Model) PlacementLikelihood(f matching.Features) float64 {
	return m.Classifier.PredictProba(m.Vector(f))
}

// SimilarCandidates finds the k nearest candidates to f in the trained
// feature space.
func (m *Model) SimilarCandidates(f matching.Features, k int) []Neighbor {
	if k <= 0 {
		k = m.Neighbors
	}
	neighbors := m.Index.Query(m.Vector(f), k+1)

	out := make([]Neighbor, 0, k)
	for _, n := range neighbors {
		if n.CandidateID == f.CandidateID {
			continue
		}
		out = append(out, n)
		if len(out) == k {
			break
		}
	}
	return out
}

// SimilarToID finds neighbors of a candidate that was part of the
// training pool. ok is false when the id is unknown to the index.
func (m *Model) SimilarToID(id uuid.UUID, k int) ([]Neighbor, bool) {
	if k <= 0 {
		k = m.Neighbors
	}
	return m.Index.QueryByID(id, k)
}

func (m *Model) rawVector(f matching.Features) []float64 {
	out := make([]float64, 0, len(m.FeatureColumns))
	out = append(out,
		f.DiplomaScore,
		float64(f.ExperienceYears),
		float64(f.PreferredSalaryMin),
		float64(f.PreferredSalaryMax),
		float64(f.SkillsCount),
	)
	for _, col := range matching.SkillFlagColumns {
		out = append(out, float64(f.SkillFlags[col]))
	}
	out = append(out,
		float64(f.SalaryRange),
		float64(f.IsPlaced),
		float64(f.PassedTraining),
	)
	for _, col := range matching.CategoricalColumns {
		out = append(out, float64(m.Encoders[col].Transform(f.Categorical(col))))
	}
	return out
}

type metadata struct {
	FeatureColumns []string  `json:"feature_columns"`
	Neighbors      int       `json:"neighbors"`
	Seed           int64     `json:"seed"`
	TrainedAt      time.Time `json:"trained_at"`
	SampleCount    int       `json:"sample_count"`
}

// Save persists the bundle to dir: a gob blob with the model itself
// and a small JSON metadata file for humans.
func (m *Model) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, modelFileName))
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	meta := metadata{
		FeatureColumns: m.FeatureColumns,
		Neighbors:      m.Neighbors,
		Seed:           m.Seed,
		TrainedAt:      m.TrainedAt,
		SampleCount:    m.SampleCount,
	}
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFileName), b, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// Load reads a bundle previously written by Save.
func Load(dir string) (*Model, error) {
	f, err := os.Open(filepath.Join(dir, modelFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotTrained
		}
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &m, nil
}
