package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offer-enrichment/config"
	"offer-enrichment/ml"
	"offer-enrichment/models"
)

func enriched(titre, texte string, cluster int) *models.EnrichedOffer {
	eo := models.NewEnrichedOffer(&models.CleanOffer{Titre: titre, TexteComplet: texte})
	eo.ClusterID = cluster
	return eo
}

// Six copies of one title and four single ones: the 0.8 quantile of
// [1 1 1 1 6] is 2, so only the repeated title is high-demand.
func demandOffers() []*models.EnrichedOffer {
	var offers []*models.EnrichedOffer
	for i := 0; i < 6; i++ {
		offers = append(offers, enriched("Développeur Go", "Développeur Go ACME Paris CDI Informatique", 0))
	}
	for _, t := range []string{"Serveur", "Serveuse", "Plongeur", "Barman"} {
		offers = append(offers, enriched(t, t+" Brasserie Lyon CDD Restauration", 1))
	}
	return offers
}

func TestDemandTitleFrequencyLabels(t *testing.T) {
	d := NewDemandClassifier(testConfig(), newTestLogger())

	y, threshold, err := d.Labels(demandOffers())
	require.NoError(t, err)
	assert.InDelta(t, 2.0, threshold, 1e-9)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 0, 0, 0, 0}, y)
}

func TestDemandClusterLabels(t *testing.T) {
	cfg := testConfig()
	cfg.LabelPolicy = config.LabelCluster
	cfg.LabelClusterID = 1
	d := NewDemandClassifier(cfg, newTestLogger())

	y, _, err := d.Labels(demandOffers())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1}, y)
}

func TestDemandDegenerateLabelsFail(t *testing.T) {
	d := NewDemandClassifier(testConfig(), newTestLogger())
	offers := []*models.EnrichedOffer{
		enriched("A", "alpha", 0), enriched("B", "beta", 0), enriched("C", "gamma", 0),
	}

	_, _, err := d.Run(offers)
	assert.ErrorIs(t, err, ml.ErrDegenerateLabels)

	cfg := testConfig()
	cfg.LabelPolicy = config.LabelCluster
	cfg.LabelClusterID = 7
	_, _, err = NewDemandClassifier(cfg, newTestLogger()).Run(offers)
	assert.ErrorIs(t, err, ml.ErrDegenerateLabels)
}

func TestDemandRunPredictsEveryRow(t *testing.T) {
	d := NewDemandClassifier(testConfig(), newTestLogger())
	in := demandOffers()

	out, report, err := d.Run(in)
	require.NoError(t, err)
	require.Len(t, out, len(in))

	assert.Equal(t, 6, report.Positives)
	assert.Equal(t, 3, report.TestSize)
	assert.Equal(t, 7, report.TrainSize)
	assert.Len(t, report.PerClass, 2)
	assert.GreaterOrEqual(t, report.Accuracy, 0.0)
	assert.LessOrEqual(t, report.Accuracy, 1.0)

	for i, o := range out {
		assert.Equal(t, o.MetierTresDemande, o.PredTresDemande, "row %d", i)
		assert.Equal(t, 0, in[i].PredTresDemande, "input row %d mutated", i)
	}
}
