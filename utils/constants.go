package utils

const (
	// Split methods
	SplitMethodItemBased   = "item_based"
	SplitMethodDivideBased = "divide_based"
	SplitMethodNotSet      = "not_set"

	// Share split types
	SplitTypePercentage = "percentage"

	// HTTP status messages
	ErrInvalidRequest = "Invalid request"
	ErrBillNotFound   = "Bill not found"

	// Precision for monetary calculations
	MoneyPrecision = 100.0
	RatePrecision  = 10000.0

	// Tolerance when checking that percentages sum to 100 and when
	// deciding whether participant totals need a cent-level correction
	MoneyTolerance = 0.01

	// Similarity cutoff for fuzzy participant email matching
	EmailMatchCutoff = 0.6
)
