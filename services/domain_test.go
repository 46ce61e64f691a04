package services

import (
	"testing"

	"offer-enrichment/models"
)

func TestDomainClassify(t *testing.T) {
	d := NewDomainClassifier(nil, newTestLogger(), newTestPool())

	tests := []struct {
		title string
		want  string
	}{
		{"Chef de Projet", "Management"},
		{"Stagiaire Marketing", "Autre"},
		{"Développeur Python", "Informatique"},
		{"SERVEUR H/F", "Restauration"},
		{"Magasinier cariste", "Logistique"},
		{"Vendeur en magasin", "Commerce"},
		{"Technicien de maintenance", "Énergie / Technique"},
		{"Responsable QHSE", "Qualité / QHSE"},
		{"Comptable", "Finance / Assurance"},
		{"", "Autre"},
	}

	for _, tt := range tests {
		got := d.Classify(tt.title)
		if got != tt.want {
			t.Errorf("Classify(%q) = %q; want %q", tt.title, got, tt.want)
		}
	}
}

// A rule earlier in the table wins even when a later one also matches.
func TestDomainFirstMatchWins(t *testing.T) {
	d := NewDomainClassifier(nil, newTestLogger(), newTestPool())

	// "responsable" is Management but "qualité" comes first.
	if got := d.Classify("Responsable qualité"); got != "Qualité / QHSE" {
		t.Errorf("got %q; want Qualité / QHSE", got)
	}

	custom := []models.DomainRule{
		{Category: "B", Keywords: []string{"data"}},
		{Category: "A", Keywords: []string{"Data Engineer"}},
	}
	d = NewDomainClassifier(custom, newTestLogger(), newTestPool())
	if got := d.Classify("data engineer"); got != "B" {
		t.Errorf("got %q; want B", got)
	}
	if got := d.Classify("DATA ENGINEER"); got != "B" {
		t.Errorf("got %q; want B (case-insensitive)", got)
	}
}

func TestDomainClassifyIsIdempotent(t *testing.T) {
	d := NewDomainClassifier(nil, newTestLogger(), newTestPool())
	titles := []string{"Chef de Projet", "Développeur Python", "Cuisinier", "Cariste", "Assistante"}

	for _, title := range titles {
		first := d.Classify(title)
		for i := 0; i < 3; i++ {
			if got := d.Classify(title); got != first {
				t.Errorf("Classify(%q) changed from %q to %q", title, first, got)
			}
		}
	}
}

func TestDomainCategories(t *testing.T) {
	d := NewDomainClassifier(nil, newTestLogger(), newTestPool())
	cats := d.Categories()
	if len(cats) != len(DefaultDomainRules)+1 {
		t.Fatalf("expected %d categories, got %d", len(DefaultDomainRules)+1, len(cats))
	}
	if cats[0] != "Restauration" || cats[len(cats)-1] != DomainAutre {
		t.Errorf("unexpected order: %v", cats)
	}
}

func TestDomainApplyBuildsTexteComplet(t *testing.T) {
	d := NewDomainClassifier(nil, newTestLogger(), newTestPool())
	in := []*models.CleanOffer{{
		Titre: "Développeur Go", Entreprise: "ACME", VillePropre: "Paris", ContratPropre: "CDI",
	}}

	out := d.Apply(in)
	if out[0].DomaineMetier != "Informatique" {
		t.Errorf("DomaineMetier = %q", out[0].DomaineMetier)
	}
	if want := "Développeur Go ACME Paris CDI Informatique"; out[0].TexteComplet != want {
		t.Errorf("TexteComplet = %q; want %q", out[0].TexteComplet, want)
	}
	if in[0].DomaineMetier != "" || in[0].TexteComplet != "" {
		t.Errorf("input offer was mutated: %+v", in[0])
	}
}
