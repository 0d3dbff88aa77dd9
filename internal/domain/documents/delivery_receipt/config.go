package delivery_receipt

import "gescom/internal/core/numerator"

// NumberPrefix is the family prefix: BL-YYYY-NNNN.
const NumberPrefix = "BL"

// NumberConfig returns the numbering configuration. Delivery receipts get
// the same high-resolution suffix as reception notes.
func NumberConfig() numerator.Config {
	cfg := numerator.DefaultConfig(NumberPrefix)
	cfg.TimestampSuffix = true
	return cfg
}
