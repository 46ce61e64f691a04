package ml

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// VectorizerOptions bounds the vocabulary a Vectorizer keeps.
type VectorizerOptions struct {
	// MaxFeatures keeps the most frequent terms across the corpus.
	MaxFeatures int
	// MinDF drops terms found in fewer documents.
	MinDF int
	// MaxDF drops terms found in more than this fraction of documents.
	MaxDF float64
}

// Vectorizer turns cleaned offer text into L2-normalised TF-IDF rows.
// It is fit fresh on every run; nothing is persisted.
type Vectorizer struct {
	opts  VectorizerOptions
	terms []string
	index map[string]int
	idf   []float64
}

// NewVectorizer creates an unfitted Vectorizer.
func NewVectorizer(opts VectorizerOptions) *Vectorizer {
	if opts.MinDF < 1 {
		opts.MinDF = 1
	}
	if opts.MaxDF <= 0 || opts.MaxDF > 1 {
		opts.MaxDF = 1
	}
	return &Vectorizer{opts: opts}
}

// Fit builds the vocabulary and idf weights from docs.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return ErrEmptyMatrix
	}

	df := make(map[string]int)
	total := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(CleanText(doc)) {
			total[tok]++
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	maxDocs := v.opts.MaxDF * float64(len(docs))
	kept := make([]string, 0, len(df))
	for term, n := range df {
		if n < v.opts.MinDF || float64(n) > maxDocs {
			continue
		}
		kept = append(kept, term)
	}
	if len(kept) == 0 {
		return fmt.Errorf("%w (%d documents, min_df=%d, max_df=%.2f)",
			ErrEmptyVocabulary, len(docs), v.opts.MinDF, v.opts.MaxDF)
	}

	if v.opts.MaxFeatures > 0 && len(kept) > v.opts.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if total[kept[i]] != total[kept[j]] {
				return total[kept[i]] > total[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.opts.MaxFeatures]
	}
	sort.Strings(kept)

	n := float64(len(docs))
	v.terms = kept
	v.index = make(map[string]int, len(kept))
	v.idf = make([]float64, len(kept))
	for i, term := range kept {
		v.index[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return nil
}

// Transform maps docs onto the fitted vocabulary. Out-of-vocabulary terms
// are ignored; a document with no known term yields a zero row.
func (v *Vectorizer) Transform(docs []string) [][]float64 {
	rows := make([][]float64, len(docs))
	for i, doc := range docs {
		row := make([]float64, len(v.terms))
		for _, tok := range Tokenize(CleanText(doc)) {
			if j, ok := v.index[tok]; ok {
				row[j]++
			}
		}
		floats.Mul(row, v.idf)
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
		rows[i] = row
	}
	return rows
}

// FitTransform fits on docs and returns their vectors.
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs), nil
}

// Vocabulary returns the fitted terms in column order.
func (v *Vectorizer) Vocabulary() []string {
	return append([]string(nil), v.terms...)
}

// OneHot encodes values against the closed, ordered category list.
// Values outside the list produce an all-zero row.
func OneHot(values, categories []string) [][]float64 {
	pos := make(map[string]int, len(categories))
	for i, c := range categories {
		pos[c] = i
	}
	rows := make([][]float64, len(values))
	for i, val := range values {
		row := make([]float64, len(categories))
		if j, ok := pos[val]; ok {
			row[j] = 1
		}
		rows[i] = row
	}
	return rows
}

// HStack concatenates the columns of a and b row by row.
func HStack(a, b [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		row := make([]float64, 0, len(a[i])+len(b[i]))
		row = append(row, a[i]...)
		out[i] = append(row, b[i]...)
	}
	return out
}
