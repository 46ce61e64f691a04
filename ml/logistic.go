package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogisticOptions configures LogisticRegression training.
type LogisticOptions struct {
	// C is the inverse L2 regularisation strength.
	C            float64
	LearningRate float64
	MaxIter      int
	Tolerance    float64
}

// DefaultLogisticOptions mirrors the usual C=1 / 1000-iteration setup.
func DefaultLogisticOptions() LogisticOptions {
	return LogisticOptions{C: 1, LearningRate: 2, MaxIter: 1000, Tolerance: 1e-6}
}

// LogisticRegression is a binary linear classifier over dense rows.
type LogisticRegression struct {
	opts      LogisticOptions
	Weights   []float64
	Intercept float64
}

// NewLogisticRegression creates an untrained model.
func NewLogisticRegression(opts LogisticOptions) *LogisticRegression {
	def := DefaultLogisticOptions()
	if opts.C <= 0 {
		opts.C = def.C
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = def.LearningRate
	}
	if opts.MaxIter < 1 {
		opts.MaxIter = def.MaxIter
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = def.Tolerance
	}
	return &LogisticRegression{opts: opts}
}

// Fit minimises C·Σ logloss + ½‖w‖² by full-batch gradient descent from a
// zero start. The intercept is not regularised. y must hold 0/1 and both
// classes.
func (m *LogisticRegression) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return ErrEmptyMatrix
	}
	if len(x) != len(y) {
		return fmt.Errorf("ml: logistic fit: %d rows but %d labels", len(x), len(y))
	}
	if !hasBothClasses(y) {
		return ErrDegenerateLabels
	}

	n := float64(len(x))
	dim := len(x[0])
	m.Weights = make([]float64, dim)
	m.Intercept = 0

	grad := make([]float64, dim)
	for iter := 0; iter < m.opts.MaxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradB := 0.0
		for i, row := range x {
			residual := sigmoid(floats.Dot(m.Weights, row)+m.Intercept) - float64(y[i])
			floats.AddScaled(grad, residual*m.opts.C, row)
			gradB += residual * m.opts.C
		}
		floats.Add(grad, m.Weights)

		// Steps are scaled by 1/n so the learning rate is independent of size.
		maxGrad := math.Abs(gradB)
		for _, g := range grad {
			maxGrad = math.Max(maxGrad, math.Abs(g))
		}
		floats.AddScaled(m.Weights, -m.opts.LearningRate/n, grad)
		m.Intercept -= m.opts.LearningRate / n * gradB
		if maxGrad/n < m.opts.Tolerance {
			break
		}
	}
	return nil
}

// PredictProba returns P(y=1) for each row.
func (m *LogisticRegression) PredictProba(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = sigmoid(floats.Dot(m.Weights, row) + m.Intercept)
	}
	return out
}

// Predict returns the 0/1 class of each row, thresholded at 0.5.
func (m *LogisticRegression) Predict(x [][]float64) []int {
	probs := m.PredictProba(x)
	out := make([]int, len(probs))
	for i, p := range probs {
		if p > 0.5 {
			out[i] = 1
		}
	}
	return out
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func hasBothClasses(y []int) bool {
	var zero, one bool
	for _, v := range y {
		if v == 1 {
			one = true
		} else {
			zero = true
		}
	}
	return zero && one
}
