package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"offer-enrichment/models"
	"offer-enrichment/utils"
)

const (
	offersTable = "offres_enrichies"
	batchSize   = 50
)

// offerColumns is the insert column list; run_id first, then EnrichedHeader.
var offerColumns = []string{
	"run_id",
	"titre", "entreprise", "ville", "contrat", "date_offre",
	"ville_propre", "departement", "contrat_propre", "domaine_metier", "texte_complet",
	"cluster_id", "cluster_nom", "metier_tres_demande", "pred_tres_demande",
	"score_salaire", "niveau_salaire", "score_popularite",
}

// sqlWriter holds what the PostgreSQL and SQLite sinks share. Only the
// schema and the placeholder syntax differ.
type sqlWriter struct {
	db          *sql.DB
	name        string
	placeholder func(n int) string
	logger      *utils.Logger
}

func (w *sqlWriter) migrate(statements []string) error {
	for _, stmt := range statements {
		if _, err := w.db.Exec(stmt); err != nil {
			return fmt.Errorf("%s: migrate: %w", w.name, err)
		}
	}
	return nil
}

// Write replaces the table contents with offers inside one transaction,
// stamping each row with runID.
func (w *sqlWriter) Write(offers []*models.EnrichedOffer, runID string) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("%s: begin: %w", w.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM " + offersTable); err != nil {
		return fmt.Errorf("%s: clear: %w", w.name, err)
	}

	for i := 0; i < len(offers); i += batchSize {
		end := i + batchSize
		if end > len(offers) {
			end = len(offers)
		}
		if err := w.insertBatch(tx, offers[i:end], runID); err != nil {
			return fmt.Errorf("%s: insert rows %d-%d: %w", w.name, i, end-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", w.name, err)
	}
	w.logger.Info("[%s] Stored %d offers in %s (run %s)", w.name, len(offers), offersTable, runID)
	return nil
}

func (w *sqlWriter) insertBatch(tx *sql.Tx, batch []*models.EnrichedOffer, runID string) error {
	width := len(offerColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*width)

	for idx, o := range batch {
		ph := make([]string, width)
		for j := range ph {
			ph[j] = w.placeholder(idx*width + j + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			runID,
			o.Titre, o.Entreprise, o.Ville, o.Contrat, o.Date,
			o.VillePropre, o.Departement, o.ContratPropre, o.DomaineMetier, o.TexteComplet,
			o.ClusterID, o.ClusterNom, o.MetierTresDemande, o.PredTresDemande,
			o.ScoreSalaire, o.NiveauSalaire.String(), o.ScorePopularite)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		offersTable, strings.Join(offerColumns, ", "), strings.Join(valueStrings, ","))
	_, err := tx.Exec(query, valueArgs...)
	return err
}

// Count returns the number of stored offers.
func (w *sqlWriter) Count() (int, error) {
	var n int
	if err := w.db.QueryRow("SELECT COUNT(*) FROM " + offersTable).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: count: %w", w.name, err)
	}
	return n, nil
}

func (w *sqlWriter) Close() error {
	return w.db.Close()
}
