package ml

import (
	"fmt"
	"math"
	"sort"
)

// ClassScore holds precision, recall and F1 for one label value.
type ClassScore struct {
	Label     int
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Accuracy is the share of predictions equal to the truth.
func Accuracy(truth, pred []int) float64 {
	if len(truth) == 0 {
		return 0
	}
	hit := 0
	for i := range truth {
		if truth[i] == pred[i] {
			hit++
		}
	}
	return float64(hit) / float64(len(truth))
}

// ClassificationReport scores every label present in truth or pred, in
// ascending label order. Undefined ratios are 0.
func ClassificationReport(truth, pred []int) ([]ClassScore, error) {
	if len(truth) != len(pred) {
		return nil, fmt.Errorf("ml: report: %d truths but %d predictions", len(truth), len(pred))
	}
	labels := make(map[int]struct{})
	for i := range truth {
		labels[truth[i]] = struct{}{}
		labels[pred[i]] = struct{}{}
	}
	ordered := make([]int, 0, len(labels))
	for l := range labels {
		ordered = append(ordered, l)
	}
	sort.Ints(ordered)

	out := make([]ClassScore, 0, len(ordered))
	for _, l := range ordered {
		var tp, fp, fn int
		for i := range truth {
			switch {
			case truth[i] == l && pred[i] == l:
				tp++
			case truth[i] != l && pred[i] == l:
				fp++
			case truth[i] == l && pred[i] != l:
				fn++
			}
		}
		s := ClassScore{Label: l, Support: tp + fn}
		s.Precision = ratio(tp, tp+fp)
		s.Recall = ratio(tp, tp+fn)
		if s.Precision+s.Recall > 0 {
			s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
		}
		out = append(out, s)
	}
	return out, nil
}

// Quantile returns the q-th quantile of values with linear interpolation
// between order statistics. values is not modified.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
