package entity

import "time"

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Factors is the audit trail of a price: every multiplier that went into it,
// unrounded.
type Factors struct {
	BasePricePerSqm    float64 `json:"base_price_per_sqm"`
	LocationMultiplier float64 `json:"location_multiplier"`
	TypeMultiplier     float64 `json:"type_multiplier"`
	AgeFactor          float64 `json:"age_factor"`
	RoomFactor         float64 `json:"room_factor"`
	AmenitiesFactor    float64 `json:"amenities_factor"`
	FloorFactor        float64 `json:"floor_factor"`
}

type Estimate struct {
	EstimatedPrice  float64    `json:"estimated_price"`
	ConfidenceScore float64    `json:"confidence_score"`
	PriceRange      PriceRange `json:"price_range"`
	Factors         Factors    `json:"factors"`
}

// Valuation is an Estimate stamped for delivery to a caller.
type Valuation struct {
	Estimate
	Timestamp    time.Time
	ModelVersion string
}

type FactorDescription struct {
	Name        string
	Description string
}

type ModelInfo struct {
	Version     string
	Description string
	LastUpdated string
}
