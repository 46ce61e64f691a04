package services

import (
	"strings"

	"offer-enrichment/models"
	"offer-enrichment/utils"
)

const baseSalaryScore = 50

// salaryDomainBonus lists domain adjustments. Santé and Industrie are never
// produced by the default domain rules but a custom rule table may.
var salaryDomainBonus = map[string]int{
	"Informatique": 25,
	"Santé":        15,
	"Industrie":    10,
	"Commerce":     5,
}

var salaryTitleGroups = []struct {
	keywords []string
	delta    int
}{
	{[]string{"manager", "directeur", "responsable", "chef", "lead"}, 20},
	{[]string{"senior", "expert", "ingénieur", "developpeur", "développeur"}, 15},
	{[]string{"junior", "assistant", "stagiaire"}, -10},
}

// SalaryScore estimates a 0-100 pay score from contract, domain and title.
func SalaryScore(contrat, domaine, titre string) int {
	score := baseSalaryScore

	c := strings.ToUpper(contrat)
	switch {
	case strings.Contains(c, "CDI"):
		score += 20
	case strings.Contains(c, "CDD"):
		score += 10
	}

	score += salaryDomainBonus[domaine]

	t := strings.ToLower(titre)
	for _, g := range salaryTitleGroups {
		for _, k := range g.keywords {
			if strings.Contains(t, k) {
				score += g.delta
				break
			}
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// SalaryLevelFor buckets a score; each bucket includes its upper bound.
func SalaryLevelFor(score int) models.SalaryLevel {
	switch {
	case score <= 40:
		return models.SalaryBas
	case score <= 60:
		return models.SalaryMoyen
	case score <= 80:
		return models.SalaryBon
	default:
		return models.SalaryEleve
	}
}

type SalaryScorer struct {
	logger *utils.Logger
	pool   *utils.WorkerPool
}

func NewSalaryScorer(logger *utils.Logger, pool *utils.WorkerPool) *SalaryScorer {
	return &SalaryScorer{logger: logger, pool: pool}
}

// Score returns copies of offers with score_salaire and niveau_salaire set.
func (s *SalaryScorer) Score(offers []*models.EnrichedOffer) []*models.EnrichedOffer {
	out := make([]*models.EnrichedOffer, len(offers))
	s.pool.Each(len(offers), func(i int) {
		c := *offers[i]
		c.ScoreSalaire = SalaryScore(c.ContratPropre, c.DomaineMetier, c.Titre)
		c.NiveauSalaire = SalaryLevelFor(c.ScoreSalaire)
		out[i] = &c
	})

	counts := make(map[models.SalaryLevel]int)
	for _, o := range out {
		counts[o.NiveauSalaire]++
	}
	for _, l := range models.SalaryLevels() {
		s.logger.Debug("[salary] %-6s %d", l, counts[l])
	}
	s.logger.Info("[salary] Scored %d offers", len(out))
	return out
}
