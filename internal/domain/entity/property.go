package entity

// PropertyFeatures are the structural attributes of a property. Range checks
// (area > 0, rooms >= 1, age >= 0) belong to the transport layer.
type PropertyFeatures struct {
	SqMeters    float64
	RoomCount   int
	BuildingAge int
	Floor       *int
	TotalFloors *int
	HeatingType *string
	HasParking  bool
	HasBalcony  bool
	IsFurnished bool
}

type Location struct {
	City string
	// District is carried through but does not affect the price.
	District  string
	Latitude  *float64
	Longitude *float64
}

// HasCoordinates reports whether both coordinates are given. Zero counts as
// not given.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && *l.Latitude != 0 && l.Longitude != nil && *l.Longitude != 0
}

type ValuationRequest struct {
	PropertyType string
	Features     PropertyFeatures
	Location     Location
	// CurrentMarketPrice is accepted and kept for future blending; the
	// formula does not read it.
	CurrentMarketPrice *float64
}
