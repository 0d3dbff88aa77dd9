package reception_note

import "gescom/internal/core/numerator"

// NumberPrefix is the family prefix: BR-YYYY-NNNN.
const NumberPrefix = "BR"

// NumberConfig returns the numbering configuration. Receptions are often
// keyed in bursts from the same screen, so a high-resolution suffix keeps
// the numbers unique even within one counter slot.
func NumberConfig() numerator.Config {
	cfg := numerator.DefaultConfig(NumberPrefix)
	cfg.TimestampSuffix = true
	return cfg
}
