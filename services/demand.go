package services

import (
	"fmt"

	"offer-enrichment/config"
	"offer-enrichment/ml"
	"offer-enrichment/models"
	"offer-enrichment/utils"
)

// DemandClassifier labels high-demand offers, trains a logistic regression
// on a stratified split, and predicts every row.
type DemandClassifier struct {
	cfg    *config.Config
	logger *utils.Logger
}

func NewDemandClassifier(cfg *config.Config, logger *utils.Logger) *DemandClassifier {
	return &DemandClassifier{cfg: cfg, logger: logger}
}

// Labels builds the ground-truth column with the configured policy. The
// returned threshold is the title count cut-off, or the target cluster id.
func (d *DemandClassifier) Labels(offers []*models.EnrichedOffer) ([]int, float64, error) {
	y := make([]int, len(offers))
	var threshold float64

	switch d.cfg.LabelPolicy {
	case config.LabelTitleFrequency:
		counts := make(map[string]int)
		order := make([]string, 0)
		for _, o := range offers {
			if counts[o.Titre] == 0 {
				order = append(order, o.Titre)
			}
			counts[o.Titre]++
		}
		values := make([]float64, len(order))
		for i, t := range order {
			values[i] = float64(counts[t])
		}
		threshold = ml.Quantile(values, d.cfg.LabelQuantile)
		for i, o := range offers {
			if float64(counts[o.Titre]) >= threshold {
				y[i] = 1
			}
		}
	case config.LabelCluster:
		threshold = float64(d.cfg.LabelClusterID)
		for i, o := range offers {
			if o.ClusterID == d.cfg.LabelClusterID {
				y[i] = 1
			}
		}
	default:
		return nil, 0, fmt.Errorf("demand: unknown label policy %q", d.cfg.LabelPolicy)
	}

	positives := 0
	for _, v := range y {
		positives += v
	}
	if positives == 0 || positives == len(y) {
		return nil, 0, fmt.Errorf("demand: %s policy gave %d/%d positives: %w",
			d.cfg.LabelPolicy, positives, len(y), ml.ErrDegenerateLabels)
	}
	return y, threshold, nil
}

// Run returns copies of offers with metier_tres_demande and
// pred_tres_demande set. Predictions cover training rows too.
func (d *DemandClassifier) Run(offers []*models.EnrichedOffer) ([]*models.EnrichedOffer, *models.DemandReport, error) {
	y, threshold, err := d.Labels(offers)
	if err != nil {
		return nil, nil, err
	}

	train, test, err := ml.StratifiedSplit(y, d.cfg.TestFraction, d.cfg.Seed)
	if err != nil {
		return nil, nil, fmt.Errorf("demand: split: %w", err)
	}

	docs := make([]string, len(offers))
	for i, o := range offers {
		docs[i] = o.TexteComplet
	}

	vec := ml.NewVectorizer(vectorizerOptions(d.cfg.ClassifierVector))
	if err := vec.Fit(ml.Rows(docs, train)); err != nil {
		return nil, nil, fmt.Errorf("demand: vectorize: %w", err)
	}
	x := vec.Transform(docs)

	model := ml.NewLogisticRegression(ml.DefaultLogisticOptions())
	if err := model.Fit(ml.Rows(x, train), ml.Rows(y, train)); err != nil {
		return nil, nil, fmt.Errorf("demand: fit: %w", err)
	}

	truth := ml.Rows(y, test)
	pred := model.Predict(ml.Rows(x, test))
	scores, err := ml.ClassificationReport(truth, pred)
	if err != nil {
		return nil, nil, fmt.Errorf("demand: evaluate: %w", err)
	}

	report := &models.DemandReport{
		Policy:    d.cfg.LabelPolicy,
		Threshold: threshold,
		TrainSize: len(train),
		TestSize:  len(test),
		Accuracy:  ml.Accuracy(truth, pred),
	}
	for _, v := range y {
		report.Positives += v
	}
	for _, s := range scores {
		report.PerClass = append(report.PerClass, models.ClassMetrics{
			Label: s.Label, Precision: s.Precision, Recall: s.Recall, F1: s.F1, Support: s.Support,
		})
	}

	d.logger.Info("[demand] Policy %s, threshold %.1f: %d/%d high-demand offers",
		report.Policy, threshold, report.Positives, len(offers))
	d.logger.Info("[demand] Vocabulary %d terms, train %d / test %d, accuracy %.3f",
		len(vec.Vocabulary()), report.TrainSize, report.TestSize, report.Accuracy)

	all := model.Predict(x)
	out := make([]*models.EnrichedOffer, len(offers))
	for i, o := range offers {
		c := *o
		c.MetierTresDemande = y[i]
		c.PredTresDemande = all[i]
		out[i] = &c
	}
	return out, report, nil
}
