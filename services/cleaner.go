package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"offer-enrichment/models"
	"offer-enrichment/utils"
)

// Sentinels substituted for missing values.
const (
	MissingTitre      = "Non spécifié"
	MissingEntreprise = "Entreprise non communiquée"
	MissingDate       = "Date inconnue"
	MissingVille      = "Non spécifié"
	MissingContrat    = "NON_SPECIFIE"
)

// villeRegexp splits "Paris 11e - 75" into name and department code.
var villeRegexp = regexp.MustCompile(`^(.+?)\s*-\s*(\d+)$`)

// Cleaner transforms RawOffers into CleanOffers. It never drops a row.
type Cleaner struct {
	logger *utils.Logger
	pool   *utils.WorkerPool
}

// NewCleaner creates a Cleaner that fans rows out over pool.
func NewCleaner(logger *utils.Logger, pool *utils.WorkerPool) *Cleaner {
	return &Cleaner{logger: logger, pool: pool}
}

type cleanStats struct {
	titre, entreprise, date, ville, contrat, departement bool
}

// Clean returns one CleanOffer per RawOffer, in input order. Domain and
// composite text are left empty for the domain stage.
func (c *Cleaner) Clean(raw []*models.RawOffer) []*models.CleanOffer {
	result := make([]*models.CleanOffer, len(raw))
	stats := make([]cleanStats, len(raw))

	c.pool.Each(len(raw), func(i int) {
		result[i], stats[i] = cleanOne(raw[i])
	})

	var titre, entreprise, date, ville, contrat, noDep int
	for _, st := range stats {
		titre += b2i(st.titre)
		entreprise += b2i(st.entreprise)
		date += b2i(st.date)
		ville += b2i(st.ville)
		contrat += b2i(st.contrat)
		noDep += b2i(!st.departement)
	}

	c.logger.Info("[cleaner] Cleaned %d offers (sentinels: titre=%d entreprise=%d ville=%d contrat=%d date=%d, no departement=%d)",
		len(result), titre, entreprise, ville, contrat, date, noDep)
	return result
}

func cleanOne(r *models.RawOffer) (*models.CleanOffer, cleanStats) {
	var s cleanStats
	o := &models.CleanOffer{
		Titre:      normaliseText(r.Titre),
		Entreprise: normaliseText(r.Entreprise),
		Ville:      normaliseText(r.Ville),
		Contrat:    normaliseText(r.Contrat),
		Date:       normaliseText(r.Date),
	}

	if isMissing(o.Titre) {
		o.Titre, s.titre = MissingTitre, true
	}
	if isMissing(o.Entreprise) {
		o.Entreprise, s.entreprise = MissingEntreprise, true
	}
	if isMissing(o.Date) {
		o.Date, s.date = MissingDate, true
	}

	o.VillePropre, o.Departement = parseVille(o.Ville)
	s.ville = o.VillePropre == MissingVille && isMissing(o.Ville)
	s.departement = o.Departement != 0

	o.ContratPropre = normaliseContrat(o.Contrat)
	s.contrat = o.ContratPropre == MissingContrat

	return o, s
}

// parseVille extracts the city name and department from "<name> - <digits>".
// Anything else keeps the raw value and department 0.
func parseVille(ville string) (string, int) {
	if m := villeRegexp.FindStringSubmatch(ville); len(m) == 3 {
		dep, err := strconv.Atoi(m[2])
		if err != nil {
			dep = 0
		}
		return strings.TrimSpace(m[1]), dep
	}
	if isMissing(ville) {
		return MissingVille, 0
	}
	return ville, 0
}

// normaliseContrat upper-cases the contract and removes every space.
func normaliseContrat(contrat string) string {
	c := strings.ToUpper(contrat)
	c = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, c)
	switch c {
	case "", "NAN", "NONE":
		return MissingContrat
	}
	return c
}

// normaliseText composes accents (NFC), strips leading/trailing whitespace
// and collapses internal whitespace.
func normaliseText(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

func isMissing(s string) bool {
	switch s {
	case "", "nan", "NaN", "None":
		return true
	}
	return false
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
