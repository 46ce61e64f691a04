package ml

import (
	"math"
	"sort"
)

// Agglomerative merges singletons bottom-up with Ward linkage until k
// clusters remain. dist is the Euclidean distance matrix of the rows.
// Labels are numbered by each cluster's smallest member index.
func Agglomerative(dist [][]float64, k int) ([]int, error) {
	n := len(dist)
	if n == 0 {
		return nil, ErrEmptyMatrix
	}
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	// Lance-Williams recurrence on squared distances reproduces Ward merges.
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			d[i][j] = dist[i][j] * dist[i][j]
		}
	}
	size := make([]int, n)
	active := make([]bool, n)
	members := make([][]int, n)
	for i := 0; i < n; i++ {
		size[i] = 1
		active[i] = true
		members[i] = []int{i}
	}

	for remaining := n; remaining > k; remaining-- {
		bi, bj, best := -1, -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if active[j] && d[i][j] < best {
					bi, bj, best = i, j, d[i][j]
				}
			}
		}

		ni, nj := float64(size[bi]), float64(size[bj])
		for m := 0; m < n; m++ {
			if !active[m] || m == bi || m == bj {
				continue
			}
			nm := float64(size[m])
			v := ((ni+nm)*d[bi][m] + (nj+nm)*d[bj][m] - nm*d[bi][bj]) / (ni + nj + nm)
			d[bi][m] = v
			d[m][bi] = v
		}
		size[bi] += size[bj]
		members[bi] = append(members[bi], members[bj]...)
		members[bj] = nil
		active[bj] = false
	}

	roots := make([]int, 0, k)
	for i := 0; i < n; i++ {
		if active[i] {
			sort.Ints(members[i])
			roots = append(roots, i)
		}
	}
	sort.Slice(roots, func(a, b int) bool {
		return members[roots[a]][0] < members[roots[b]][0]
	})

	labels := make([]int, n)
	for id, r := range roots {
		for _, p := range members[r] {
			labels[p] = id
		}
	}
	return labels, nil
}
