package credit_note

import "gescom/internal/core/numerator"

// NumberPrefix is the family prefix: AV-YYYY-NNNN.
const NumberPrefix = "AV"

// NumberConfig returns the numbering configuration.
func NumberConfig() numerator.Config {
	return numerator.DefaultConfig(NumberPrefix)
}
