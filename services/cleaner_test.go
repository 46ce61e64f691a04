package services

import (
	"testing"

	"offer-enrichment/models"
	"offer-enrichment/utils"
)

func newTestLogger() *utils.Logger { return utils.NewDiscardLogger() }

func newTestPool() *utils.WorkerPool { return utils.NewWorkerPool(4, 0) }

func TestCleanerNormaliseContrat(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"CDI ", "CDI"},
		{"cdd", "CDD"},
		{"", "NON_SPECIFIE"},
		{"nan", "NON_SPECIFIE"},
		{"None", "NON_SPECIFIE"},
		{"Contrat pro", "CONTRATPRO"},
		{" Intérim ", "INTÉRIM"},
	}

	for _, tt := range tests {
		got := normaliseContrat(tt.raw)
		if got != tt.want {
			t.Errorf("normaliseContrat(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerParseVille(t *testing.T) {
	tests := []struct {
		raw     string
		wantVil string
		wantDep int
	}{
		{"Paris - 75", "Paris", 75},
		{"Lyon 3e - 69", "Lyon 3e", 69},
		{"Saint-Étienne - 42", "Saint-Étienne", 42},
		{"Ajaccio-2", "Ajaccio", 2},
		{"Télétravail", "Télétravail", 0},
		{"Bordeaux - Gironde", "Bordeaux - Gironde", 0},
		{"", MissingVille, 0},
	}

	for _, tt := range tests {
		vil, dep := parseVille(tt.raw)
		if vil != tt.wantVil || dep != tt.wantDep {
			t.Errorf("parseVille(%q) = (%q, %d); want (%q, %d)", tt.raw, vil, dep, tt.wantVil, tt.wantDep)
		}
	}
}

func TestCleanerFillsSentinels(t *testing.T) {
	c := NewCleaner(newTestLogger(), newTestPool())
	raw := []*models.RawOffer{
		{Titre: "  ", Entreprise: "nan", Ville: "", Contrat: "", Date: "NaN"},
	}

	got := c.Clean(raw)[0]
	if got.Titre != MissingTitre {
		t.Errorf("Titre = %q; want %q", got.Titre, MissingTitre)
	}
	if got.Entreprise != MissingEntreprise {
		t.Errorf("Entreprise = %q; want %q", got.Entreprise, MissingEntreprise)
	}
	if got.Date != MissingDate {
		t.Errorf("Date = %q; want %q", got.Date, MissingDate)
	}
	if got.VillePropre != MissingVille || got.Departement != 0 {
		t.Errorf("Ville = (%q, %d); want (%q, 0)", got.VillePropre, got.Departement, MissingVille)
	}
	if got.ContratPropre != MissingContrat {
		t.Errorf("ContratPropre = %q; want %q", got.ContratPropre, MissingContrat)
	}
}

func TestCleanerCollapsesWhitespace(t *testing.T) {
	c := NewCleaner(newTestLogger(), newTestPool())
	raw := []*models.RawOffer{
		{Titre: "  Chef   de\tprojet  ", Entreprise: "ACME\n SAS", Ville: " Nantes  -  44 ", Contrat: "cdi"},
	}

	got := c.Clean(raw)[0]
	if got.Titre != "Chef de projet" {
		t.Errorf("Titre = %q", got.Titre)
	}
	if got.Entreprise != "ACME SAS" {
		t.Errorf("Entreprise = %q", got.Entreprise)
	}
	if got.VillePropre != "Nantes" || got.Departement != 44 {
		t.Errorf("Ville = (%q, %d); want (Nantes, 44)", got.VillePropre, got.Departement)
	}
}

func TestCleanerComposesAccents(t *testing.T) {
	c := NewCleaner(newTestLogger(), newTestPool())
	raw := []*models.RawOffer{{Titre: "De\u0301veloppeur"}}

	got := c.Clean(raw)[0]
	if got.Titre != "Développeur" {
		t.Errorf("Titre = %q; want NFC form", got.Titre)
	}
}

func TestCleanerKeepsEveryRow(t *testing.T) {
	c := NewCleaner(newTestLogger(), newTestPool())
	raw := []*models.RawOffer{
		{},
		{Titre: "Serveur", Ville: "Lille - 59"},
		{Entreprise: "Sans titre"},
		{Titre: "Sans entreprise"},
		{},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != len(raw) {
		t.Fatalf("expected %d offers, got %d", len(raw), len(cleaned))
	}
	if cleaned[1].Titre != "Serveur" || cleaned[1].Departement != 59 {
		t.Errorf("row order not preserved: %+v", cleaned[1])
	}
	if len(c.Clean(nil)) != 0 {
		t.Errorf("expected empty output for empty input")
	}
}
