package sale

import "gescom/internal/core/numerator"

// NumberPrefix is the family prefix: FAC-YYYY-NNNN.
const NumberPrefix = "FAC"

// NumberConfig returns the numbering configuration.
func NumberConfig() numerator.Config {
	return numerator.DefaultConfig(NumberPrefix)
}
