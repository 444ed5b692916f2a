package ml

import (
	"math"
	"math/rand"
)

// LogisticRegression predicts placement likelihood from a
// standardized feature vector. Trained with seeded stochastic gradient
// descent; the same data and seed always reproduce the same weights.
type LogisticRegression struct {
	Coef      []float64
	Intercept float64
}

const (
	trainEpochs       = 100
	trainLearningRate = 0.05
)

// PredictProba returns the probability of the positive class.
func (m *LogisticRegression) PredictProba(x []float64) float64 {
	z := m.Intercept
	n := len(m.Coef)
	if len(x) < n {
		n = len(x)
	}
	for i := 0; i < n; i++ {
		z += m.Coef[i] * x[i]
	}
	return sigmoid(z)
}

func trainLogisticRegression(rows [][]float64, labels []int, seed int64) *LogisticRegression {
	if len(rows) == 0 {
		return &LogisticRegression{}
	}

	cols := len(rows[0])
	model := &LogisticRegression{Coef: make([]float64, cols)}

	rng := rand.New(rand.NewSource(seed))
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < trainEpochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for _, i := range order {
			pred := model.PredictProba(rows[i])
			grad := pred - float64(labels[i])

			model.Intercept -= trainLearningRate * grad
			for j := 0; j < cols; j++ {
				model.Coef[j] -= trainLearningRate * grad * rows[i][j]
			}
		}
	}

	return model
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
