package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"offer-enrichment/utils"
)

// SQLiteWriter persists the enriched table to a local SQLite file.
type SQLiteWriter struct {
	*sqlWriter
}

func NewSQLiteWriter(path string, logger *utils.Logger) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One writer; the file is locked per connection.
	db.SetMaxOpenConns(1)

	sw := &SQLiteWriter{&sqlWriter{
		db:          db,
		name:        "sqlite",
		placeholder: func(int) string { return "?" },
		logger:      logger,
	}}
	if err := sw.migrate(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sw, nil
}

var sqliteSchema = []string{`
	CREATE TABLE IF NOT EXISTS offres_enrichies (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id              TEXT    NOT NULL,
		titre               TEXT    NOT NULL,
		entreprise          TEXT    NOT NULL,
		ville               TEXT    NOT NULL DEFAULT '',
		contrat             TEXT    NOT NULL DEFAULT '',
		date_offre          TEXT    NOT NULL,
		ville_propre        TEXT    NOT NULL,
		departement         INTEGER NOT NULL DEFAULT 0,
		contrat_propre      TEXT    NOT NULL,
		domaine_metier      TEXT    NOT NULL,
		texte_complet       TEXT    NOT NULL,
		cluster_id          INTEGER NOT NULL,
		cluster_nom         TEXT    NOT NULL,
		metier_tres_demande INTEGER NOT NULL,
		pred_tres_demande   INTEGER NOT NULL,
		score_salaire       INTEGER NOT NULL,
		niveau_salaire      TEXT    NOT NULL,
		score_popularite    REAL    NOT NULL,
		created_at          TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_offres_domaine ON offres_enrichies(domaine_metier)`,
	`CREATE INDEX IF NOT EXISTS idx_offres_cluster ON offres_enrichies(cluster_id)`,
}
