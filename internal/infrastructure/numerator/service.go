// Package numerator provides the PostgreSQL implementation of document
// auto-numbering. It implements core/numerator.Generator.
package numerator

import (
	"context"
	"fmt"
	"time"

	corenumerator "gescom/internal/core/numerator"
	"gescom/internal/infrastructure/storage/postgres"
)

// Service allocates document numbers from the doc_sequences table.
//
// Allocation happens through the context's transaction: the UPSERT takes a
// row lock on the (prefix, year) slot that is held until the caller
// commits, so a number and the document it names commit or roll back
// together. Two concurrent creations of the same family serialize on that
// row and each get their own value — no gap-then-duplicate race.
type Service struct {
	txm *postgres.TxManager
}

// Ensure compile-time interface compliance.
var _ corenumerator.Generator = (*Service)(nil)

func New(txm *postgres.TxManager) *Service {
	return &Service{txm: txm}
}

// Next returns the next number for the family in the period's year.
func (s *Service) Next(ctx context.Context, cfg corenumerator.Config, period time.Time) (string, error) {
	querier := s.txm.GetQuerier(ctx)

	var num int64
	err := querier.QueryRow(ctx, `
        INSERT INTO doc_sequences (prefix, year, current_val)
        VALUES ($1, $2, 1)
        ON CONFLICT (prefix, year) DO UPDATE SET current_val = doc_sequences.current_val + 1
        RETURNING current_val
	`, cfg.Prefix, period.Year()).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("allocate number %s-%d: %w", cfg.Prefix, period.Year(), err)
	}

	return corenumerator.Format(cfg, period, num), nil
}
