package ml

import "math"

// WorstSilhouette is reported for partitions the coefficient is undefined on.
const WorstSilhouette = -1.0

// Silhouette returns the mean silhouette coefficient of labels over the
// distance matrix dist, treating every distinct label (Noise included) as a
// cluster. Members of singleton clusters score 0. With fewer than two
// labels, or one label per row, it returns WorstSilhouette and false.
func Silhouette(dist [][]float64, labels []int) (float64, bool) {
	n := len(labels)
	members := make(map[int][]int)
	for i, l := range labels {
		members[l] = append(members[l], i)
	}
	if len(members) < 2 || len(members) >= n {
		return WorstSilhouette, false
	}

	total := 0.0
	for i, own := range labels {
		if len(members[own]) == 1 {
			continue
		}
		a := meanDistance(dist[i], members[own], i)
		b := math.Inf(1)
		for l, idx := range members {
			if l == own {
				continue
			}
			if m := meanDistance(dist[i], idx, -1); m < b {
				b = m
			}
		}
		if den := math.Max(a, b); den > 0 {
			total += (b - a) / den
		}
	}
	return total / float64(n), true
}

func meanDistance(row []float64, idx []int, skip int) float64 {
	sum, count := 0.0, 0
	for _, j := range idx {
		if j == skip {
			continue
		}
		sum += row[j]
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
