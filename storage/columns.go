package storage

import (
	"strconv"

	"offer-enrichment/models"
)

// RawHeader is the column set of the collector's table.
var RawHeader = []string{"Titre", "Entreprise", "Ville", "Contrat", "Date"}

// EnrichedHeader is the column order of the enriched table.
var EnrichedHeader = []string{
	"Titre", "Entreprise", "Ville", "Contrat", "Date",
	"Ville_propre", "Departement", "Contrat_propre", "Domaine_metier", "texte_complet",
	"cluster_id", "cluster_nom", "metier_tres_demande", "pred_tres_demande",
	"score_salaire", "niveau_salaire", "score_popularite",
}

func rawRow(o *models.RawOffer) []string {
	return []string{o.Titre, o.Entreprise, o.Ville, o.Contrat, o.Date}
}

func enrichedRow(o *models.EnrichedOffer) []string {
	return []string{
		o.Titre, o.Entreprise, o.Ville, o.Contrat, o.Date,
		o.VillePropre,
		strconv.Itoa(o.Departement),
		o.ContratPropre,
		o.DomaineMetier,
		o.TexteComplet,
		strconv.Itoa(o.ClusterID),
		o.ClusterNom,
		strconv.Itoa(o.MetierTresDemande),
		strconv.Itoa(o.PredTresDemande),
		strconv.Itoa(o.ScoreSalaire),
		o.NiveauSalaire.String(),
		strconv.FormatFloat(o.ScorePopularite, 'f', 1, 64),
	}
}
