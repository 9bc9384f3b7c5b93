package config

// Coordinate and zoom bounds are fixed invariants of the canvas space,
// not tunables: the coordinate range keeps float64 math well away from
// precision loss, and the zoom range keeps the visible rectangle finite.
const (
	// MinCoordinate is the minimum canvas coordinate on either axis
	MinCoordinate = -1_000_000.0
	// MaxCoordinate is the maximum canvas coordinate on either axis
	MaxCoordinate = 1_000_000.0

	// MinZoom is the minimum viewport zoom level
	MinZoom = 0.1
	// MaxZoom is the maximum viewport zoom level
	MaxZoom = 10.0
)

// DomainConfig holds the configurable business rules and resource caps
// enforced by the canvas at admission time. The caps exist to bound
// per-operation cost and memory footprint regardless of caller behavior.
type DomainConfig struct {
	// Canvas constraints
	MaxNodes       int
	MaxConnections int

	// Node constraints
	MaxLabelLength   int
	MaxContentLength int
	MaxGroupChildren int

	// Protocol constraints
	MaxContentTypeLength    int
	MaxSuggestedConnections int

	// Suggestion engine tuning
	MaxSuggestions      int
	ProximityRadius     float64
	SimilarityThreshold float64
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNodes:       10_000,
		MaxConnections: 100_000,

		MaxLabelLength:   4096,
		MaxContentLength: 50_000,
		MaxGroupChildren: 1000,

		MaxContentTypeLength:    512,
		MaxSuggestedConnections: 32,

		MaxSuggestions:      20,
		ProximityRadius:     600.0,
		SimilarityThreshold: 0.3,
	}
}
