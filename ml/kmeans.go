package ml

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// KMeansOptions configures KMeans.
type KMeansOptions struct {
	K        int
	Seed     int64
	Restarts int
	MaxIter  int
}

// KMeansResult is the best partition found across restarts.
type KMeansResult struct {
	Labels    []int
	Centroids [][]float64
	Inertia   float64
}

// KMeans partitions x with Lloyd iterations from k-means++ seeds. The run
// with the lowest inertia wins; ties keep the earliest restart. K is capped
// at the number of rows.
func KMeans(x [][]float64, opts KMeansOptions) (*KMeansResult, error) {
	if len(x) == 0 {
		return nil, ErrEmptyMatrix
	}
	k := opts.K
	if k > len(x) {
		k = len(x)
	}
	if k < 1 {
		k = 1
	}
	if opts.Restarts < 1 {
		opts.Restarts = 10
	}
	if opts.MaxIter < 1 {
		opts.MaxIter = 300
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	var best *KMeansResult
	for r := 0; r < opts.Restarts; r++ {
		res := lloyd(x, seedCentroids(x, k, rng), opts.MaxIter)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// seedCentroids picks k starting centroids with the k-means++ rule.
func seedCentroids(x [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := rng.Intn(len(x))
	centroids = append(centroids, append([]float64(nil), x[first]...))

	dist := make([]float64, len(x))
	for i := range x {
		dist[i] = SquaredDistance(x[i], centroids[0])
	}
	for len(centroids) < k {
		total := floats.Sum(dist)
		next := 0
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			next = -1
			last := 0
			for i, d := range dist {
				if d <= 0 {
					continue
				}
				last = i
				acc += d
				if acc >= target {
					next = i
					break
				}
			}
			if next < 0 {
				next = last
			}
		} else {
			next = rng.Intn(len(x))
		}
		c := append([]float64(nil), x[next]...)
		centroids = append(centroids, c)
		for i := range x {
			if d := SquaredDistance(x[i], c); d < dist[i] {
				dist[i] = d
			}
		}
	}
	return centroids
}

func lloyd(x [][]float64, centroids [][]float64, maxIter int) *KMeansResult {
	k := len(centroids)
	dim := len(x[0])
	labels := make([]int, len(x))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, row := range x {
			c := nearest(row, centroids)
			if c != labels[i] {
				labels[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, row := range x {
			floats.Add(sums[labels[i]], row)
			counts[labels[i]]++
		}
		for c := range centroids {
			// An emptied cluster keeps its previous centroid.
			if counts[c] == 0 {
				continue
			}
			floats.Scale(1/float64(counts[c]), sums[c])
			centroids[c] = sums[c]
		}
	}

	inertia := 0.0
	for i, row := range x {
		inertia += SquaredDistance(row, centroids[labels[i]])
	}
	return &KMeansResult{Labels: labels, Centroids: centroids, Inertia: inertia}
}

func nearest(row []float64, centroids [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := SquaredDistance(row, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
