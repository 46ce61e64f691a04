// Package ml holds the numeric building blocks of the enrichment pipeline:
// TF-IDF vectorization, partitioning algorithms with their silhouette score,
// and a binary logistic-regression text classifier with its evaluation.
//
// Every routine is deterministic for a given input and seed.
package ml

import "errors"

var (
	// ErrEmptyVocabulary is returned when no term survives the document
	// frequency bounds.
	ErrEmptyVocabulary = errors.New("ml: empty vocabulary after document-frequency filtering")
	// ErrDegenerateLabels is returned when a label vector holds a single class.
	ErrDegenerateLabels = errors.New("ml: labels contain a single class")
	// ErrEmptyMatrix is returned when an algorithm receives no rows.
	ErrEmptyMatrix = errors.New("ml: empty feature matrix")
	// ErrTooFewSamples is returned when a class is too small to be split.
	ErrTooFewSamples = errors.New("ml: too few samples")
)
