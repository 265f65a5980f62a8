package model

import "time"

const (
	TallyCacheKey        = "tally:summary"
	DefaultTallyCacheTTL = 2 * time.Minute

	DefaultReconcileTimeout = 5 * time.Second

	DefaultVotersPageSize = 50
	MaxVotersPageSize     = 200
	ExportPageSize        = 500
)
