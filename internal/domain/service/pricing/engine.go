// Package pricing holds the valuation formula: a fixed multiplicative model
// over property attributes and two static reference tables.
package pricing

import (
	"math"
	"strconv"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"valuation_service/internal/domain/entity"
	"valuation_service/internal/domain/value"
)

const ModelVersion = "1.0.0"

const (
	BasePricePerSqm = 15000.0

	ageDepreciationPerYear = 0.01
	minAgeFactor           = 0.7

	roomPremium = 0.1

	parkingPremium   = 0.10
	balconyPremium   = 0.05
	furnishedPremium = 0.15

	groundFloor       = 1
	groundFloorFactor = 0.9
	topFloorFactor    = 0.95

	baseConfidence   = 0.85
	coordinatesBonus = 0.05
	heatingTypeBonus = 0.05
	maxConfidence    = 0.95

	rangeLowerFactor = 0.85
	rangeUpperFactor = 1.15

	pricePlaces      = 2
	confidencePlaces = 3
)

// Engine prices properties. It holds no mutable state and may be shared by any
// number of goroutines.
type Engine struct {
	cities        value.MultiplierTable
	propertyTypes value.MultiplierTable
}

func NewEngine(cities, propertyTypes value.MultiplierTable) Engine {
	return Engine{
		cities:        cities,
		propertyTypes: propertyTypes,
	}
}

func NewDefaultEngine() Engine {
	return NewEngine(DefaultCityMultipliers(), DefaultPropertyTypeMultipliers())
}

func DefaultCityMultipliers() value.MultiplierTable {
	return value.NewMultiplierTable(
		value.Multiplier{Key: "istanbul", Value: 1.5},
		value.Multiplier{Key: "ankara", Value: 1.2},
		value.Multiplier{Key: "izmir", Value: 1.3},
		value.Multiplier{Key: "antalya", Value: 1.4},
		value.Multiplier{Key: "bursa", Value: 1.1},
	)
}

func DefaultPropertyTypeMultipliers() value.MultiplierTable {
	return value.NewMultiplierTable(
		value.Multiplier{Key: "daire", Value: 1.0},
		value.Multiplier{Key: "villa", Value: 1.8},
		value.Multiplier{Key: "dükkan", Value: 1.3},
		value.Multiplier{Key: "ofis", Value: 1.2},
		value.Multiplier{Key: "arsa", Value: 0.7},
	)
}

func (e Engine) Cities() value.MultiplierTable {
	return e.cities
}

func (e Engine) PropertyTypes() value.MultiplierTable {
	return e.propertyTypes
}

// PriceRequest prices a full request. CurrentMarketPrice is ignored.
func (e Engine) PriceRequest(req entity.ValuationRequest) entity.Estimate {
	return e.Price(req.PropertyType, req.Features, req.Location)
}

// Price expects validated features: area > 0, rooms >= 1, age >= 0.
func (e Engine) Price(
	propertyType string,
	features entity.PropertyFeatures,
	location entity.Location,
) entity.Estimate {
	factors := entity.Factors{
		BasePricePerSqm:    BasePricePerSqm,
		LocationMultiplier: e.cities.Lookup(location.City),
		TypeMultiplier:     e.propertyTypes.Lookup(propertyType),
		AgeFactor:          ageFactor(features.BuildingAge),
		RoomFactor:         roomFactor(features.RoomCount),
		AmenitiesFactor:    amenitiesFactor(features),
		FloorFactor:        floorFactor(features.Floor, features.TotalFloors),
	}

	price := factors.BasePricePerSqm *
		features.SqMeters *
		factors.LocationMultiplier *
		factors.TypeMultiplier *
		factors.AgeFactor *
		factors.RoomFactor *
		factors.AmenitiesFactor *
		factors.FloorFactor

	return entity.Estimate{
		EstimatedPrice:  round(price, pricePlaces),
		ConfidenceScore: round(confidence(features, location), confidencePlaces),
		PriceRange: entity.PriceRange{
			Min: round(price*rangeLowerFactor, pricePlaces),
			Max: round(price*rangeUpperFactor, pricePlaces),
		},
		Factors: factors,
	}
}

// ageFactor is clamped at minAgeFactor so very old buildings keep a value.
func ageFactor(buildingAge int) float64 {
	return math.Max(minAgeFactor, 1.0-float64(buildingAge)*ageDepreciationPerYear)
}

func roomFactor(roomCount int) float64 {
	return 1.0 + float64(roomCount-1)*roomPremium
}

func amenitiesFactor(features entity.PropertyFeatures) float64 {
	factor := 1.0

	if features.HasParking {
		factor += parkingPremium
	}

	if features.HasBalcony {
		factor += balconyPremium
	}

	if features.IsFurnished {
		factor += furnishedPremium
	}

	return factor
}

// floorFactor checks the ground floor first, so a single-storey building
// (floor 1 of 1) gets the ground floor discount. A zero floor or floor count
// counts as not given.
func floorFactor(floor, totalFloors *int) float64 {
	if lo.FromPtr(floor) == 0 || lo.FromPtr(totalFloors) == 0 {
		return 1.0
	}

	switch *floor {
	case groundFloor:
		return groundFloorFactor
	case *totalFloors:
		return topFloorFactor
	default:
		return 1.0
	}
}

func confidence(features entity.PropertyFeatures, location entity.Location) float64 {
	score := baseConfidence

	if location.HasCoordinates() {
		score += coordinatesBonus
	}

	if features.HeatingType != nil && *features.HeatingType != "" {
		score += heatingTypeBonus
	}

	return math.Min(score, maxConfidence)
}

// round works on the exact binary value of v and breaks exact ties to even,
// so 671068.125 rounds to 671068.12.
func round(v float64, places int32) float64 {
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', int(places), 64)).InexactFloat64()
}
