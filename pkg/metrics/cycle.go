package metrics

// CycleStats captures the cost of one refresh cycle for structured logs.
type CycleStats struct {
	CollectMillis int64 `json:"collectMillis"`
	ComputeMillis int64 `json:"computeMillis"`
	FactorCount   int   `json:"factorCount"`
	AlertCount    int   `json:"alertCount"`
}

// IsZero reports whether stats were never recorded.
func (s CycleStats) IsZero() bool {
	return s.CollectMillis == 0 && s.ComputeMillis == 0 && s.FactorCount == 0 && s.AlertCount == 0
}
