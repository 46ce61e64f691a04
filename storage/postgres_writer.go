package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"offer-enrichment/utils"
)

// PostgresWriter persists the enriched table to PostgreSQL.
type PostgresWriter struct {
	*sqlWriter
}

// NewPostgresWriter opens a connection to PostgreSQL, waits for it to
// answer, runs schema migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, maxRetries int, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: maxRetries, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{&sqlWriter{
		db:          db,
		name:        "postgres",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		logger:      logger,
	}}
	if err := pw.migrate(postgresSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return pw, nil
}

var postgresSchema = []string{`
	CREATE TABLE IF NOT EXISTS offres_enrichies (
		id                  SERIAL PRIMARY KEY,
		run_id              UUID         NOT NULL,
		titre               TEXT         NOT NULL,
		entreprise          TEXT         NOT NULL,
		ville               TEXT         NOT NULL DEFAULT '',
		contrat             TEXT         NOT NULL DEFAULT '',
		date_offre          TEXT         NOT NULL,
		ville_propre        TEXT         NOT NULL,
		departement         INTEGER      NOT NULL DEFAULT 0,
		contrat_propre      VARCHAR(64)  NOT NULL,
		domaine_metier      VARCHAR(64)  NOT NULL,
		texte_complet       TEXT         NOT NULL,
		cluster_id          INTEGER      NOT NULL,
		cluster_nom         TEXT         NOT NULL,
		metier_tres_demande SMALLINT     NOT NULL,
		pred_tres_demande   SMALLINT     NOT NULL,
		score_salaire       SMALLINT     NOT NULL,
		niveau_salaire      VARCHAR(16)  NOT NULL,
		score_popularite    NUMERIC(4,1) NOT NULL,
		created_at          TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_offres_domaine ON offres_enrichies(domaine_metier)`,
	`CREATE INDEX IF NOT EXISTS idx_offres_cluster ON offres_enrichies(cluster_id)`,
	`CREATE INDEX IF NOT EXISTS idx_offres_niveau  ON offres_enrichies(niveau_salaire)`,
}
