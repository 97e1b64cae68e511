package dto

// SystemMetrics are running totals reported by the health endpoint.
type SystemMetrics struct {
	RequestsTotal            uint64  `json:"requestsTotal"`
	AverageRequestDurationMs float64 `json:"averageRequestDurationMs"`
	CacheHits                uint64  `json:"cacheHits"`
	CacheMisses              uint64  `json:"cacheMisses"`
	CacheHitRatio            float64 `json:"cacheHitRatio"`
	StoreQueries             uint64  `json:"storeQueries"`
	Goroutines               int     `json:"goroutines"`
	UptimeSeconds            int64   `json:"uptimeSeconds"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status  string        `json:"status"`
	Store   string        `json:"store"`
	Cache   bool          `json:"cache"`
	Metrics SystemMetrics `json:"metrics"`
}
