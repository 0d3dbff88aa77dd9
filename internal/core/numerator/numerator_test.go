package numerator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_PrefixYearPadding(t *testing.T) {
	period := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "FAC-2026-0001", Format(DefaultConfig("FAC"), period, 1))
	assert.Equal(t, "CF-2026-0042", Format(DefaultConfig("CF"), period, 42))
	assert.Equal(t, "BC-2026-12345", Format(DefaultConfig("BC"), period, 12345), "counter wider than padding is kept whole")
}

func TestFormat_TimestampSuffix(t *testing.T) {
	cfg := DefaultConfig("BR")
	cfg.TimestampSuffix = true
	period := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	got := Format(cfg, period, 7)
	require.True(t, strings.HasPrefix(got, "BR-2026-0007-"), got)
	assert.Greater(t, len(got), len("BR-2026-0007-"))
}

func TestMockGenerator_ScopesCountersPerPrefixAndYear(t *testing.T) {
	gen := &MockGenerator{}
	ctx := context.Background()
	in2026 := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	in2027 := time.Date(2027, time.January, 5, 0, 0, 0, 0, time.UTC)

	first, err := gen.Next(ctx, DefaultConfig("FAC"), in2026)
	require.NoError(t, err)
	second, err := gen.Next(ctx, DefaultConfig("FAC"), in2026)
	require.NoError(t, err)
	assert.Equal(t, "FAC-2026-0001", first)
	assert.Equal(t, "FAC-2026-0002", second)

	// Another family runs its own counter.
	other, err := gen.Next(ctx, DefaultConfig("AV"), in2026)
	require.NoError(t, err)
	assert.Equal(t, "AV-2026-0001", other)

	// A new year restarts at 0001.
	newYear, err := gen.Next(ctx, DefaultConfig("FAC"), in2027)
	require.NoError(t, err)
	assert.Equal(t, "FAC-2027-0001", newYear)
}
