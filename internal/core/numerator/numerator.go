// Package numerator provides domain contracts for document auto-numbering.
// Implementations live in the infrastructure layer.
package numerator

import (
	"context"
	"fmt"
	"time"
)

// Config holds numbering configuration for one document family.
type Config struct {
	// Prefix added to all numbers (e.g., "FAC", "BR")
	Prefix string

	// PadWidth is the minimum number width (default 4)
	PadWidth int

	// TimestampSuffix appends a high-resolution suffix after the counter.
	// Used by reception and delivery documents that may be created in
	// bursts from the same screen.
	TimestampSuffix bool
}

// DefaultConfig returns sensible defaults.
// Counters reset every year and restart at 0001.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:   prefix,
		PadWidth: 4,
	}
}

// Generator allocates sequential document numbers.
//
// Pattern: PREFIX-YEAR-NNNN (e.g., FAC-2026-0001), scoped per prefix per
// year. Implementations MUST allocate within the caller's transaction so
// that number allocation and header insertion commit or roll back together.
type Generator interface {
	// Next returns the next unused number for the family in the period's year.
	Next(ctx context.Context, cfg Config, period time.Time) (string, error)
}

// Format renders the final number string for a counter value.
func Format(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 4
	}
	formatted := fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	if cfg.TimestampSuffix {
		formatted = fmt.Sprintf("%s-%d", formatted, time.Now().UnixNano()%1_000_000)
	}
	return formatted
}
