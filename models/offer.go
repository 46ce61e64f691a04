package models

// RawOffer holds one job posting exactly as the collector wrote it.
// Any field may be empty.
type RawOffer struct {
	Titre      string
	Entreprise string
	Ville      string
	Contrat    string
	Date       string
}

// CleanOffer is a RawOffer with sanitized text, sentinels for missing
// values and the derived location, contract and domain fields.
type CleanOffer struct {
	Titre      string
	Entreprise string
	Ville      string
	Contrat    string
	Date       string

	VillePropre   string
	Departement   int
	ContratPropre string
	DomaineMetier string
	TexteComplet  string
}

// EnrichedOffer is the final output row.
type EnrichedOffer struct {
	CleanOffer

	ClusterID  int
	ClusterNom string

	// MetierTresDemande is the ground-truth label the classifier was trained on.
	MetierTresDemande int
	PredTresDemande   int

	ScoreSalaire    int
	NiveauSalaire   SalaryLevel
	ScorePopularite float64
}

// NewEnrichedOffer wraps a copy of c with no enrichment yet.
func NewEnrichedOffer(c *CleanOffer) *EnrichedOffer {
	return &EnrichedOffer{CleanOffer: *c}
}
