package services

import (
	"testing"

	"offer-enrichment/models"
)

func TestSalaryScore(t *testing.T) {
	tests := []struct {
		contrat, domaine, titre string
		want                    int
	}{
		{"NON_SPECIFIE", "Autre", "Stagiaire Marketing", 40},
		{"CDD", "Restauration", "Serveur", 60},
		{"CDD", "Restauration", "Chef de rang", 80},
		{"CDI", "Informatique", "Développeur Python", 100},
		{"CDI-CDD", "Autre", "Agent", 70},
		{"INTERIM", "Commerce", "Vendeur junior", 45},
		{"NON_SPECIFIE", "Administration", "Assistant de direction", 40},
		{"CDI", "Santé", "Infirmier senior", 100},
		{"STAGE", "Industrie", "Opérateur", 60},
		{"CDI", "Informatique", "Lead developer junior", 100},
	}

	for _, tt := range tests {
		got := SalaryScore(tt.contrat, tt.domaine, tt.titre)
		if got != tt.want {
			t.Errorf("SalaryScore(%q, %q, %q) = %d; want %d", tt.contrat, tt.domaine, tt.titre, got, tt.want)
		}
	}
}

func TestSalaryLevelBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  models.SalaryLevel
	}{
		{0, models.SalaryBas},
		{40, models.SalaryBas},
		{41, models.SalaryMoyen},
		{60, models.SalaryMoyen},
		{61, models.SalaryBon},
		{80, models.SalaryBon},
		{81, models.SalaryEleve},
		{100, models.SalaryEleve},
	}

	for _, tt := range tests {
		if got := SalaryLevelFor(tt.score); got != tt.want {
			t.Errorf("SalaryLevelFor(%d) = %s; want %s", tt.score, got, tt.want)
		}
	}
}

func TestSalaryScorerEngineeredOffers(t *testing.T) {
	s := NewSalaryScorer(newTestLogger(), newTestPool())
	in := []*models.EnrichedOffer{
		models.NewEnrichedOffer(&models.CleanOffer{Titre: "Stagiaire Marketing", ContratPropre: "NON_SPECIFIE", DomaineMetier: "Autre"}),
		models.NewEnrichedOffer(&models.CleanOffer{Titre: "Serveur", ContratPropre: "CDD", DomaineMetier: "Restauration"}),
		models.NewEnrichedOffer(&models.CleanOffer{Titre: "Chef de rang", ContratPropre: "CDD", DomaineMetier: "Restauration"}),
	}
	want := []models.SalaryLevel{models.SalaryBas, models.SalaryMoyen, models.SalaryBon}

	out := s.Score(in)
	for i, o := range out {
		if o.NiveauSalaire != want[i] {
			t.Errorf("offer %d: niveau %s (score %d); want %s", i, o.NiveauSalaire, o.ScoreSalaire, want[i])
		}
		if in[i].ScoreSalaire != 0 {
			t.Errorf("offer %d: input mutated", i)
		}
	}
}

func TestSalaryLevelsAreOrdered(t *testing.T) {
	levels := models.SalaryLevels()
	for i := 1; i < len(levels); i++ {
		if !levels[i-1].Less(levels[i]) {
			t.Errorf("%s should sort before %s", levels[i-1], levels[i])
		}
	}
}
