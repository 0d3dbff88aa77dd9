package supplier_order

import "gescom/internal/core/numerator"

// NumberPrefix is the family prefix: CF-YYYY-NNNN.
const NumberPrefix = "CF"

// NumberConfig returns the numbering configuration.
func NumberConfig() numerator.Config {
	return numerator.DefaultConfig(NumberPrefix)
}
