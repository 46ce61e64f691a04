package ml

import "gonum.org/v1/gonum/floats"

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

// PairwiseDistances returns the symmetric Euclidean distance matrix of x.
func PairwiseDistances(x [][]float64) [][]float64 {
	n := len(x)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := floats.Distance(x[i], x[j], 2)
			d[i][j] = v
			d[j][i] = v
		}
	}
	return d
}
