package ml

// Noise is the DBSCAN label of points that belong to no dense region.
const Noise = -1

// DBSCAN groups points that have at least minSamples neighbours (self
// included) within eps. dist is the Euclidean distance matrix. Clusters are
// numbered in discovery order; unreachable points get Noise.
func DBSCAN(dist [][]float64, eps float64, minSamples int) ([]int, error) {
	n := len(dist)
	if n == 0 {
		return nil, ErrEmptyMatrix
	}

	neighbours := func(p int) []int {
		var out []int
		for q := 0; q < n; q++ {
			if dist[p][q] <= eps {
				out = append(out, q)
			}
		}
		return out
	}

	const unvisited = -2
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unvisited
	}

	next := 0
	for p := 0; p < n; p++ {
		if labels[p] != unvisited {
			continue
		}
		seeds := neighbours(p)
		if len(seeds) < minSamples {
			labels[p] = Noise
			continue
		}

		id := next
		next++
		labels[p] = id
		queue := append([]int(nil), seeds...)
		for len(queue) > 0 {
			q := queue[0]
			queue = queue[1:]
			if labels[q] == Noise {
				labels[q] = id
			}
			if labels[q] != unvisited {
				continue
			}
			labels[q] = id
			if nb := neighbours(q); len(nb) >= minSamples {
				queue = append(queue, nb...)
			}
		}
	}
	return labels, nil
}

// CountClusters returns the number of distinct non-noise labels and the
// number of noise points.
func CountClusters(labels []int) (clusters, noise int) {
	seen := make(map[int]struct{})
	for _, l := range labels {
		if l == Noise {
			noise++
			continue
		}
		seen[l] = struct{}{}
	}
	return len(seen), noise
}
