package purchase_order

import "stockbook/pkg/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for this document type.
	// Purchase orders are accounting documents, so we use Strict strategy.
	NumeratorStrategy = numerator.StrategyStrict
)
