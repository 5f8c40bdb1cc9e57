package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/vizsync/internal/workspace"
)

const stateColumns = `id, name, document, created_at, updated_at`

// stateRepository implements workspace.StateRepository using SQLite.
type stateRepository struct {
	db *sql.DB
}

func newStateRepository(db *sql.DB) *stateRepository {
	return &stateRepository{db: db}
}

var _ workspace.StateRepository = (*stateRepository)(nil)

func scanState(scanner interface{ Scan(...any) error }) (*savedStateModel, error) {
	var model savedStateModel
	err := scanner.Scan(&model.ID, &model.Name, &model.Document, &model.CreatedAt, &model.UpdatedAt)
	return &model, err
}

// Save inserts the state, or replaces the document of the state with the same
// name while keeping its creation time.
func (r *stateRepository) Save(ctx context.Context, state *workspace.SavedState) error {
	model := toSavedStateModel(state)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_states (name, document, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		model.Name, model.Document, model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Find retrieves a state by name.
func (r *stateRepository) Find(ctx context.Context, name string) (*workspace.SavedState, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+stateColumns+` FROM saved_states WHERE name = ?`, name)
	model, err := scanState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, workspace.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find state: %w", err)
	}
	return model.toDomain(), nil
}

// List returns every state, most recently updated first.
func (r *stateRepository) List(ctx context.Context) ([]*workspace.SavedState, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+stateColumns+` FROM saved_states ORDER BY updated_at DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	defer func() { _ = rows.Close() }()

	states := make([]*workspace.SavedState, 0)
	for rows.Next() {
		model, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		states = append(states, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate states: %w", err)
	}
	return states, nil
}

// Delete removes a state by name.
func (r *stateRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_states WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if n == 0 {
		return workspace.ErrStateNotFound
	}
	return nil
}
