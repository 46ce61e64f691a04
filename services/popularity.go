package services

import (
	"math"

	"offer-enrichment/models"
	"offer-enrichment/utils"
)

const (
	defaultPopularityBonus = 5
	highDemandBonus        = 30
)

var popularityDomainBonus = map[string]float64{
	"Informatique":        30,
	"Santé":               25,
	"Commerce":            15,
	"Logistique":          10,
	"Administration":      10,
	"Industrie":           15,
	"Restauration":        5,
	"Autre":               5,
	"BTP":                 15,
	"Énergie / Technique": 20,
	"Finance / Assurance": 20,
	"Management":          15,
	"Qualité / QHSE":      10,
}

type PopularityScorer struct {
	logger *utils.Logger
}

func NewPopularityScorer(logger *utils.Logger) *PopularityScorer {
	return &PopularityScorer{logger: logger}
}

// RawPopularity is the un-normalised score of every offer, rounded to 0.1.
func RawPopularity(offers []*models.EnrichedOffer) []float64 {
	counts := make(map[string]int)
	for _, o := range offers {
		counts[o.Titre]++
	}
	n := float64(len(offers))
	raw := make([]float64, len(offers))
	for i, o := range offers {
		bonus, ok := popularityDomainBonus[o.DomaineMetier]
		if !ok {
			bonus = defaultPopularityBonus
		}
		v := float64(counts[o.Titre])/n*100 + float64(highDemandBonus*o.PredTresDemande) + bonus
		raw[i] = round1(v)
	}
	return raw
}

// Score min-max normalises the raw scores of the whole table to [0,100].
// When every raw score is equal all offers score 0.
func (p *PopularityScorer) Score(offers []*models.EnrichedOffer) []*models.EnrichedOffer {
	out := make([]*models.EnrichedOffer, len(offers))
	if len(offers) == 0 {
		return out
	}

	raw := RawPopularity(offers)
	lo, hi := raw[0], raw[0]
	for _, v := range raw[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		p.logger.Warn("[popularity] All %d offers share raw score %.1f, scores set to 0", len(offers), lo)
	}

	for i, o := range offers {
		c := *o
		if hi > lo {
			c.ScorePopularite = round1((raw[i] - lo) / (hi - lo) * 100)
		}
		out[i] = &c
	}
	p.logger.Info("[popularity] Raw range %.1f..%.1f normalised over %d offers", lo, hi, len(offers))
	return out
}

func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
