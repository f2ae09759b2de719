package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clarity/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Dynamic phrase ids start well above the bulk-load range so runtime
// additions never collide with the static lexicon rows.
const dynamicIDBase = 1 << 20

// PostgresRepository handles database operations
type PostgresRepository struct {
	db        *sqlx.DB
	retention int
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn, retention int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db, retention: retention}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the phrase index and analysis log tables
func (r *PostgresRepository) EnsureSchema(ctx context.Context, dimensions int) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS phrase_index (
			id BIGINT PRIMARY KEY DEFAULT nextval('phrase_index_id_seq'),
			category TEXT NOT NULL,
			standard_value TEXT NOT NULL,
			phrase TEXT NOT NULL,
			is_primary BOOLEAN NOT NULL DEFAULT false,
			embedding vector(%d) NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, dimensions),
		`CREATE UNIQUE INDEX IF NOT EXISTS phrase_index_category_phrase_idx ON phrase_index (category, phrase)`,
		`CREATE INDEX IF NOT EXISTS phrase_index_category_idx ON phrase_index (category)`,
		`CREATE TABLE IF NOT EXISTS analysis_logs (
			id UUID PRIMARY KEY,
			sentence TEXT NOT NULL,
			final_analysis TEXT NOT NULL DEFAULT '',
			suggested_action TEXT NOT NULL DEFAULT '',
			proceed BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	// sequence first so the table default can reference it
	if _, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`CREATE SEQUENCE IF NOT EXISTS phrase_index_id_seq START %d`, dynamicIDBase)); err != nil {
		return fmt.Errorf("failed to create phrase id sequence: %w", err)
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// SearchPhrases returns the nearest indexed phrases for a category,
// ordered by descending cosine similarity
func (r *PostgresRepository) SearchPhrases(ctx context.Context, embedding []float32, category string, limit int) ([]model.PhraseMatch, error) {
	vec := pgvector.NewVector(embedding)
	query := `
		SELECT standard_value, phrase, is_primary,
			1 - (embedding <=> $1) AS score
		FROM phrase_index
		WHERE category = $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`

	var matches []model.PhraseMatch
	if err := r.db.SelectContext(ctx, &matches, query, vec, category, limit); err != nil {
		return nil, fmt.Errorf("failed to search phrases: %w", err)
	}
	return matches, nil
}

// UpsertPhrase adds or replaces one indexed phrase. Keyed by
// (category, phrase) so re-adding the same phrase is idempotent; new rows
// take ids from the dynamic sequence range.
func (r *PostgresRepository) UpsertPhrase(ctx context.Context, category, standardValue, phrase string, isPrimary bool, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	query := `
		INSERT INTO phrase_index (category, standard_value, phrase, is_primary, embedding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category, phrase) DO UPDATE
		SET standard_value = EXCLUDED.standard_value,
			is_primary = EXCLUDED.is_primary,
			embedding = EXCLUDED.embedding,
			updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, category, standardValue, phrase, isPrimary, vec); err != nil {
		return fmt.Errorf("failed to upsert phrase: %w", err)
	}
	return nil
}

// ReplacePhrases rebuilds the whole index in one transaction using the
// bulk-load id range
func (r *PostgresRepository) ReplacePhrases(ctx context.Context, points []model.PhrasePoint) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM phrase_index`); err != nil {
		return fmt.Errorf("failed to clear phrase index: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO phrase_index (id, category, standard_value, phrase, is_primary, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (category, phrase) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		vec := pgvector.NewVector(p.Embedding)
		if _, err := stmt.ExecContext(ctx, p.ID, p.Category, p.StandardValue, p.Phrase, p.IsPrimary, vec); err != nil {
			return fmt.Errorf("failed to insert phrase %q: %w", p.Phrase, err)
		}
	}

	// keep dynamic additions out of the bulk id range
	if _, err := tx.ExecContext(ctx, `SELECT setval('phrase_index_id_seq', $1, false)`, int64(dynamicIDBase)); err != nil {
		return fmt.Errorf("failed to reset phrase id sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reindex: %w", err)
	}
	return nil
}

// CountPhrases returns the number of indexed phrases
func (r *PostgresRepository) CountPhrases(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM phrase_index`); err != nil {
		return 0, fmt.Errorf("failed to count phrases: %w", err)
	}
	return count, nil
}

// InsertAnalysisLog stores one analysis record and trims the log to the
// configured retention
func (r *PostgresRepository) InsertAnalysisLog(ctx context.Context, rec *model.AnalysisLog) error {
	query := `
		INSERT INTO analysis_logs (id, sentence, final_analysis, suggested_action, proceed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query, rec.ID, rec.Sentence, rec.FinalAnalysis, rec.SuggestedAction, rec.Proceed, rec.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert analysis log: %w", err)
	}

	if r.retention > 0 {
		trim := `
			DELETE FROM analysis_logs
			WHERE id NOT IN (
				SELECT id FROM analysis_logs ORDER BY created_at DESC LIMIT $1
			)
		`
		if _, err := r.db.ExecContext(ctx, trim, r.retention); err != nil {
			return fmt.Errorf("failed to trim analysis logs: %w", err)
		}
	}
	return nil
}

// ListAnalysisLogs returns the most recent analysis records
func (r *PostgresRepository) ListAnalysisLogs(ctx context.Context, limit int) ([]model.AnalysisLog, error) {
	query := `
		SELECT id, sentence, final_analysis, suggested_action, proceed, created_at
		FROM analysis_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	logs := []model.AnalysisLog{}
	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list analysis logs: %w", err)
	}
	return logs, nil
}
