package store

import (
	"context"
	"encoding/json"
	"fmt"

	"finhealth/pkg/models"
)

// DocumentRepo persists normalized statements as JSONB blobs keyed by
// document id. A re-upload of the same document id replaces the statement.
type DocumentRepo struct{}

var _ DocumentStore = (*DocumentRepo)(nil)

func NewDocumentRepo() *DocumentRepo {
	return &DocumentRepo{}
}

func (r *DocumentRepo) SaveStatement(ctx context.Context, st *models.NormalizedStatement) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal statement: %w", err)
	}

	query := `
		INSERT INTO normalized_statements (document_id, company_id, statement_json, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (document_id)
		DO UPDATE SET
			company_id = EXCLUDED.company_id,
			statement_json = EXCLUDED.statement_json,
			created_at = EXCLUDED.created_at;
	`

	if _, err := pool.Exec(ctx, query, st.DocumentID, st.CompanyID, jsonData, st.CreatedAt); err != nil {
		return fmt.Errorf("failed to save statement: %w", err)
	}
	return nil
}

func (r *DocumentRepo) StatementsByCompany(ctx context.Context, companyID string) ([]models.NormalizedStatement, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT statement_json FROM normalized_statements WHERE company_id = $1 ORDER BY created_at`

	rows, err := pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	var statements []models.NormalizedStatement
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		var st models.NormalizedStatement
		if err := json.Unmarshal(jsonData, &st); err != nil {
			return nil, fmt.Errorf("failed to unmarshal statement: %w", err)
		}
		statements = append(statements, st)
	}

	return statements, rows.Err()
}

func (r *DocumentRepo) DeleteStatement(ctx context.Context, documentID string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	if _, err := pool.Exec(ctx, `DELETE FROM normalized_statements WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("failed to delete statement: %w", err)
	}
	return nil
}
