package services

import (
	"itinerary-route-service/internal/domain"
	"math"
	"slices"
)

// BuildTour orders stops with a greedy nearest-neighbor walk over a travel
// time matrix, keeping the first and last stops fixed.
//
// The algorithm minimizes immediate travel time at each step and never
// revisits earlier choices; it is not a full TSP solve. Ties keep the
// candidate that comes first in index order. When no remaining candidate
// has a numeric time from the current stop, the first remaining one is taken
// so the walk always terminates.
func BuildTour(times [][]*float64) []int {
	n := len(times)
	switch n {
	case 0:
		return []int{}
	case 1:
		return []int{0}
	case 2:
		return []int{0, 1}
	}

	end := n - 1
	remaining := make([]int, 0, n-2)
	for i := 1; i < end; i++ {
		remaining = append(remaining, i)
	}

	order := make([]int, 0, n)
	order = append(order, 0)
	current := 0

	for len(remaining) > 0 {
		best := -1
		minTime := math.Inf(1)

		// Select next stop by minimum travel time (greedy step).
		for k, candidate := range remaining {
			t := cell(times, current, candidate)
			if t == nil {
				continue
			}
			if *t < minTime {
				minTime = *t
				best = k
			}
		}

		if best == -1 {
			best = 0
		}

		current = remaining[best]
		order = append(order, current)
		remaining = slices.Delete(remaining, best, best+1)
	}

	return append(order, end)
}

// SummarizeOrder sums matrix cells between consecutive stops of order.
// Missing cells contribute zero.
func SummarizeOrder(m *domain.Matrix, order []int) domain.RouteSummary {
	var summary domain.RouteSummary
	if m == nil {
		return summary
	}

	for i := 1; i < len(order); i++ {
		from, to := order[i-1], order[i]
		if d := cell(m.Distances, from, to); d != nil {
			summary.TotalDistance += *d
		}
		if t := cell(m.Times, from, to); t != nil {
			summary.TotalTime += *t
		}
	}

	return summary
}

func cell(table [][]*float64, i, j int) *float64 {
	if i < 0 || i >= len(table) || j < 0 || j >= len(table[i]) {
		return nil
	}
	return table[i][j]
}
