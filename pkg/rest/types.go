// Package rest holds the wire types of the valuation HTTP API.
package rest

import "time"

type PropertyFeatures struct {
	SqMeters    *float64 `json:"sq_meters"    validate:"required,gt=0"`
	RoomCount   *int     `json:"room_count"   validate:"required,gte=1"`
	BuildingAge *int     `json:"building_age" validate:"required,gte=0"`
	Floor       *int     `json:"floor,omitempty"`
	TotalFloors *int     `json:"total_floors,omitempty"`
	HeatingType *string  `json:"heating_type,omitempty"`
	HasParking  bool     `json:"has_parking"`
	HasBalcony  bool     `json:"has_balcony"`
	IsFurnished bool     `json:"is_furnished"`
}

type LocationInfo struct {
	City      string   `json:"city"                validate:"required"`
	District  string   `json:"district"            validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty"  validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type ValuationRequest struct {
	PropertyType       string           `json:"property_type"                  validate:"required"`
	Features           PropertyFeatures `json:"features"                       validate:"required"`
	Location           LocationInfo     `json:"location"                       validate:"required"`
	CurrentMarketPrice *float64         `json:"current_market_price,omitempty" validate:"omitempty,gte=0"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Factors struct {
	BasePricePerSqm    float64 `json:"base_price_per_sqm"`
	LocationMultiplier float64 `json:"location_multiplier"`
	TypeMultiplier     float64 `json:"type_multiplier"`
	AgeFactor          float64 `json:"age_factor"`
	RoomFactor         float64 `json:"room_factor"`
	AmenitiesFactor    float64 `json:"amenities_factor"`
	FloorFactor        float64 `json:"floor_factor"`
}

type ValuationResponse struct {
	EstimatedPrice  float64    `json:"estimated_price"`
	ConfidenceScore float64    `json:"confidence_score"`
	PriceRange      PriceRange `json:"price_range"`
	Factors         Factors    `json:"factors"`
	Timestamp       time.Time  `json:"timestamp"`
	ModelVersion    string     `json:"model_version"`
}

type BatchItemResult struct {
	Index           int         `json:"index"`
	Success         bool        `json:"success"`
	EstimatedPrice  *float64    `json:"estimated_price,omitempty"`
	ConfidenceScore *float64    `json:"confidence_score,omitempty"`
	PriceRange      *PriceRange `json:"price_range,omitempty"`
	Error           string      `json:"error,omitempty"`
	Code            string      `json:"code,omitempty"`
}

type BatchValuationResponse struct {
	Message        string            `json:"message"`
	Results        []BatchItemResult `json:"results"`
	TotalProcessed int               `json:"total_processed"`
	Successful     int               `json:"successful"`
	Failed         int               `json:"failed"`
}

type ModelInfo struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	LastUpdated string `json:"last_updated"`
}

type FactorsResponse struct {
	Factors   map[string]string `json:"factors"`
	ModelInfo ModelInfo         `json:"model_info"`
}

type CitiesResponse struct {
	Cities []string `json:"cities"`
	Total  int      `json:"total"`
}

type PropertyTypesResponse struct {
	PropertyTypes []string `json:"property_types"`
	Total         int      `json:"total"`
}

// Error is the body of every non-2xx reply.
type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}
