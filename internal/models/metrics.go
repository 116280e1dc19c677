package models

import "time"

// SystemMetrics is a lightweight snapshot of runtime counters exposed on
// the admin reports surface.
type SystemMetrics struct {
	CacheHitRatio                 float64   `json:"cacheHitRatio"`
	CacheHits                     uint64    `json:"cacheHits"`
	CacheMisses                   uint64    `json:"cacheMisses"`
	RequestsTotal                 uint64    `json:"requestsTotal"`
	AverageRequestDurationMs      float64   `json:"averageRequestDurationMs"`
	GatewayCallCount              uint64    `json:"gatewayCallCount"`
	AverageGatewayCallDurationMs  float64   `json:"averageGatewayCallDurationMs"`
	Goroutines                    int       `json:"goroutines"`
	GeneratedAt                   time.Time `json:"generatedAt"`
}
