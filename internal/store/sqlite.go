package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/legallenshq/legal-lens-api/internal/models"
	"github.com/legallenshq/legal-lens-api/internal/utils"
)

// sqliteStore is the durable backend, selected with RESULTS_BACKEND=sqlite.
// Clause lists are stored as a JSON column; analyses are insert-only.
type sqliteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(db *sqlx.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Put(ctx context.Context, analysis *models.StructuredAnalysis) (string, error) {
	id := utils.GenerateID()

	clausesJSON, err := json.Marshal(analysis.RiskyClauses)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO analyses (id, summary, risky_clauses, explanations, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = s.db.ExecContext(ctx, query,
		id,
		analysis.Summary,
		string(clausesJSON),
		analysis.Explanations,
		time.Now(),
	)
	if err != nil {
		return "", err
	}

	return id, nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*models.StructuredAnalysis, error) {
	var analysis models.StructuredAnalysis
	var clausesJSON string

	query := `
		SELECT summary, risky_clauses, explanations
		FROM analyses
		WHERE id = $1
	`

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&analysis.Summary,
		&clausesJSON,
		&analysis.Explanations,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	analysis.RiskyClauses = []models.Clause{}
	if clausesJSON != "" {
		if err := json.Unmarshal([]byte(clausesJSON), &analysis.RiskyClauses); err != nil {
			return nil, err
		}
	}
	if analysis.RiskyClauses == nil {
		analysis.RiskyClauses = []models.Clause{}
	}

	return &analysis, nil
}
