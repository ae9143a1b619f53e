package index

import (
	"fmt"
	"slices"
)

// flatStore is an exact inner-product similarity store over L2-normalized
// vectors. It is the in-memory equivalent of a flat IP index: no clustering,
// no quantization, every query scans all entries. Exact and fast enough for
// candidate datasets in the tens to low hundreds.
type flatStore struct {
	dim     int
	vectors [][]float32
}

// newFlatStore creates an empty store for vectors of the given dimensionality.
func newFlatStore(dim int) *flatStore {
	return &flatStore{dim: dim}
}

// add appends a vector. Position i in the store always corresponds to
// record i in the caller's backing list; the two are rebuilt together.
func (s *flatStore) add(vector []float32) error {
	if len(vector) != s.dim {
		return fmt.Errorf("%w: expected %d, received %d", ErrDimensionMismatch, s.dim, len(vector))
	}
	s.vectors = append(s.vectors, vector)
	return nil
}

// count returns the number of stored vectors.
func (s *flatStore) count() int {
	return len(s.vectors)
}

// scoredPosition pairs a store position with its similarity to a query.
type scoredPosition struct {
	position int
	score    float32
}

// search returns up to k positions ranked by inner product with the query,
// highest first. Ties break on insertion position so results are stable.
func (s *flatStore) search(query []float32, k int) []scoredPosition {
	if k > len(s.vectors) {
		k = len(s.vectors)
	}
	if k <= 0 {
		return nil
	}

	scored := make([]scoredPosition, len(s.vectors))
	for i, vector := range s.vectors {
		scored[i] = scoredPosition{position: i, score: dotProduct(query, vector)}
	}

	slices.SortFunc(scored, func(a, b scoredPosition) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return a.position - b.position
	})

	return scored[:k]
}
