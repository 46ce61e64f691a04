package ml

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanTextStripsMarkers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Développeur Python H/F Orange Paris CDI Informatique", "développeur python orange paris informatique"},
		{"Serveur (h / f) CDD", "serveur ( )"},
		{"cdi Vendeur Stage", "vendeur"},
		{"Chargé de stage", "chargé de"},
		{"Alternance Comptable France", "comptable"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanText(tt.in), "CleanText(%q)", tt.in)
	}
}

func TestTokenizeDropsShortTokensAndStopWords(t *testing.T) {
	got := Tokenize("Chef de rang à l'hôtel des Alpes - 74")
	assert.Equal(t, []string{"chef", "rang", "hôtel", "alpes", "74"}, got)
}

func corpus() []string {
	return []string{
		"Développeur Python Capgemini Paris CDI Informatique",
		"Développeur Java Sopra Paris CDI Informatique",
		"Serveur Brasserie Lyon CDD Restauration",
		"Serveur Restaurant Lyon CDI Restauration",
		"Comptable Cabinet Paris CDI Finance",
	}
}

func TestVectorizerDocumentFrequencyBounds(t *testing.T) {
	v := NewVectorizer(VectorizerOptions{MaxFeatures: 100, MinDF: 2, MaxDF: 0.7})
	rows, err := v.FitTransform(corpus())
	require.NoError(t, err)

	// "paris" appears in 3/5 docs (<= 0.7) and "développeur", "serveur",
	// "lyon", "informatique", "restauration" in 2; single-doc terms drop out.
	assert.Equal(t, []string{"développeur", "informatique", "lyon", "paris", "restauration", "serveur"}, v.Vocabulary())
	require.Len(t, rows, 5)
	for i, row := range rows {
		assert.Len(t, row, 6)
		norm := 0.0
		for _, x := range row {
			norm += x * x
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9, "row %d should be unit length", i)
	}
}

func TestVectorizerMaxFeaturesKeepsMostFrequent(t *testing.T) {
	v := NewVectorizer(VectorizerOptions{MaxFeatures: 2, MinDF: 1, MaxDF: 1})
	require.NoError(t, v.Fit(corpus()))
	// paris (3) beats every other term; ties at 2 resolve alphabetically.
	assert.Equal(t, []string{"développeur", "paris"}, v.Vocabulary())
}

func TestVectorizerEmptyVocabulary(t *testing.T) {
	v := NewVectorizer(VectorizerOptions{MaxFeatures: 10, MinDF: 2, MaxDF: 1})
	err := v.Fit([]string{"alpha beta", "gamma delta"})
	assert.True(t, errors.Is(err, ErrEmptyVocabulary), "got %v", err)
}

func TestVectorizerUnknownDocumentIsZeroRow(t *testing.T) {
	v := NewVectorizer(VectorizerOptions{MaxFeatures: 10, MinDF: 1, MaxDF: 1})
	require.NoError(t, v.Fit([]string{"serveur lyon", "serveur paris"}))
	rows := v.Transform([]string{"plombier marseille"})
	for _, x := range rows[0] {
		assert.Zero(t, x)
	}
}

func TestOneHotAndHStack(t *testing.T) {
	cats := []string{"Informatique", "Commerce", "Autre"}
	oh := OneHot([]string{"Commerce", "Inconnu"}, cats)
	assert.Equal(t, [][]float64{{0, 1, 0}, {0, 0, 0}}, oh)

	stacked := HStack([][]float64{{0.5}, {0.25}}, oh)
	assert.Equal(t, [][]float64{{0.5, 0, 1, 0}, {0.25, 0, 0, 0}}, stacked)
}
