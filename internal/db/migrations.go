package db

import (
	"context"
	"fmt"
)

// Migrate creates the records table and its indexes if they are missing.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.createTable(s.table) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating %s table: %w", s.table, err)
		}
	}
	return nil
}

// Reset drops and recreates the records table.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.dropTable(s.table)); err != nil {
		return fmt.Errorf("dropping %s table: %w", s.table, err)
	}
	return s.Migrate(ctx)
}
