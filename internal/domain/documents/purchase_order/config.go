package purchase_order

import "gescom/internal/core/numerator"

// NumberPrefix is the family prefix: BC-YYYY-NNNN.
const NumberPrefix = "BC"

// NumberConfig returns the numbering configuration.
func NumberConfig() numerator.Config {
	return numerator.DefaultConfig(NumberPrefix)
}
