package domain

// Pairwise distance (meters) and travel time (seconds) between a set of
// coordinates, indexed by input position. A nil cell means the provider
// could not compute that pair. A Matrix is not mutated after construction.
type Matrix struct {
	Distances [][]*float64 `json:"distances"`
	Times     [][]*float64 `json:"times"`
}

// Number of rows (and columns) in the matrix.
func (m *Matrix) Size() int {
	if m == nil {
		return 0
	}
	return len(m.Times)
}

// Report whether both tables are n x n.
func (m *Matrix) IsSquare(n int) bool {
	if m == nil || len(m.Distances) != n || len(m.Times) != n {
		return false
	}
	for i := 0; i < n; i++ {
		if len(m.Distances[i]) != n || len(m.Times[i]) != n {
			return false
		}
	}
	return true
}
