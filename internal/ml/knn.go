package ml

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

const DefaultNeighbors = 10

// Neighbor is one candidate-similarity hit.
type Neighbor struct {
	CandidateID uuid.UUID
	Distance    float64
}

// NeighborIndex is a brute-force nearest-neighbor index over
// standardized feature vectors, using cosine distance. Pool sizes here
// are small enough that exact search beats anything cleverer.
type NeighborIndex struct {
	IDs     []uuid.UUID
	Vectors [][]float64
}

// Query returns the k nearest stored vectors to vec, closest first.
// Ties keep insertion order.
func (idx *NeighborIndex) Query(vec []float64, k int) []Neighbor {
	if idx == nil || len(idx.IDs) == 0 {
		return nil
	}
	if k <= 0 {
		k = DefaultNeighbors
	}

	out := make([]Neighbor, 0, len(idx.IDs))
	for i, v := range idx.Vectors {
		out = append(out, Neighbor{
			CandidateID: idx.IDs[i],
			Distance:    cosineDistance(vec, v),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})

	if len(out) > k {
		out = out[:k]
	}
	return out
}

// QueryByID finds neighbors of a candidate already in the index,
// excluding the candidate itself. ok is false when the id was not part
// of the training pool.
func (idx *NeighborIndex) QueryByID(id uuid.UUID, k int) ([]Neighbor, bool) {
	if idx == nil {
		return nil, false
	}

	pos := -1
	for i, cid := range idx.IDs {
		if cid == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, false
	}

	neighbors := idx.Query(idx.Vectors[pos], k+1)
	out := make([]Neighbor, 0, k)
	for _, n := range neighbors {
		if n.CandidateID == id {
			continue
		}
		out = append(out, n)
		if len(out) == k {
			break
		}
	}
	return out, true
}

func cosineDistance(a, b []float64) float64 {
	var dot, na, nb float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
